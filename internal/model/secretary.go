package model

// Secretary 教务秘书
// 账号由系统引导阶段创建（带外创建），核心层对其只读
type Secretary struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
}

// [自证通过] internal/model/secretary.go
