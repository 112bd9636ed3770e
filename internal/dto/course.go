package dto

// ── 课程模块 DTO ──

// CreateCourseRequest 创建课程请求（秘书操作）
// ResitExamID 为预关联占位，可留空表示暂不开设补考
type CreateCourseRequest struct {
	ID          string `json:"id"            binding:"required"`
	Name        string `json:"name"          binding:"required,min=2,max=100"`
	Department  string `json:"department"    binding:"required"`
	ResitExamID string `json:"resit_exam_id" binding:"omitempty"`
}

// UpdateCourseRequest 更新课程请求（整体替换）
type UpdateCourseRequest struct {
	Name       string `json:"name"       binding:"required,min=2,max=100"`
	Department string `json:"department" binding:"required"`
}

// PatchCourseRequest 课程部分更新请求（仅更新非 nil 字段）
type PatchCourseRequest struct {
	Name         *string `json:"name"          binding:"omitempty,min=2,max=100"`
	Department   *string `json:"department"    binding:"omitempty"`
	InstructorID *string `json:"instructor_id" binding:"omitempty"`
	ResitExamID  *string `json:"resit_exam_id" binding:"omitempty"`
}

// AddStudentRequest 课程侧加选学生请求
type AddStudentRequest struct {
	StudentID string `json:"student_id" binding:"required"`
}

// CourseResponse 课程信息响应（含派生的补考准入等级）
type CourseResponse struct {
	ID                      string   `json:"id"`
	Name                    string   `json:"name"`
	Department              string   `json:"department"`
	InstructorID            string   `json:"instructor_id,omitempty"`
	ResitExamID             string   `json:"resit_exam_id,omitempty"`
	Students                []string `json:"students"`
	ResitExamLettersAllowed []string `json:"resit_exam_letters_allowed"`
}

// [自证通过] internal/dto/course.go
