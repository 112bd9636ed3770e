package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"resit-portal/config"
	"resit-portal/internal/dto"
	"resit-portal/internal/model"
	"resit-portal/internal/repository"
	"resit-portal/pkg/jwt"
)

// ── 测试夹具 ──

func newTestEnv(t *testing.T) (*Service, *repository.Repository) {
	t.Helper()

	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:               "test-secret-key-for-unit-testing-2026",
			AccessTokenTTL:          15 * time.Minute,
			RefreshTokenTTLDefault:  24 * time.Hour,
			RefreshTokenTTLRemember: 7 * 24 * time.Hour,
		},
	}

	repo := repository.NewRepository()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret-pass-1"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("生成测试密码哈希失败: %v", err)
	}
	err = repo.Secretary.Create(context.Background(), &model.Secretary{
		ID:           "sec-001",
		Name:         "教务秘书",
		Email:        "secretary@uni.edu",
		PasswordHash: string(hash),
	})
	if err != nil {
		t.Fatalf("预置秘书失败: %v", err)
	}

	jwtMgr := jwt.NewManager(&cfg.Auth)
	svc := NewService(cfg, repo, jwtMgr, nil, zap.NewNop())
	return svc, repo
}

// ── 登录 ──

func TestLogin_SecretarySuccess(t *testing.T) {
	svc, _ := newTestEnv(t)

	resp, err := svc.Auth.Login(context.Background(), &dto.LoginRequest{
		Email:    "secretary@uni.edu",
		Password: "secret-pass-1",
	})
	if err != nil {
		t.Fatalf("秘书登录应成功: %v", err)
	}
	if resp.Account.Role != RoleSecretary {
		t.Errorf("期望角色 secretary，实际=%s", resp.Account.Role)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Error("Token 对不应为空")
	}
}

func TestLogin_StudentByEmail(t *testing.T) {
	svc, _ := newTestEnv(t)
	ctx := context.Background()

	if _, err := svc.Student.Create(ctx, &dto.CreateStudentRequest{
		ID: "stu-001", Name: "张三", Email: "zhangsan@stu.uni.edu", Password: "stu-pass-123",
	}, "sec-001"); err != nil {
		t.Fatalf("创建学生失败: %v", err)
	}

	resp, err := svc.Auth.Login(ctx, &dto.LoginRequest{
		Email:    "zhangsan@stu.uni.edu",
		Password: "stu-pass-123",
	})
	if err != nil {
		t.Fatalf("学生登录应成功: %v", err)
	}
	if resp.Account.Role != RoleStudent || resp.Account.ID != "stu-001" {
		t.Errorf("账号信息不符: %+v", resp.Account)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newTestEnv(t)

	_, err := svc.Auth.Login(context.Background(), &dto.LoginRequest{
		Email:    "secretary@uni.edu",
		Password: "wrong",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("密码错误期望 ErrInvalidCredentials，实际: %v", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _ := newTestEnv(t)

	_, err := svc.Auth.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@uni.edu",
		Password: "whatever",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("未知邮箱期望 ErrInvalidCredentials，实际: %v", err)
	}
}

// ── 刷新 ──

func TestRefresh_WithRefreshToken(t *testing.T) {
	svc, _ := newTestEnv(t)
	ctx := context.Background()

	login, err := svc.Auth.Login(ctx, &dto.LoginRequest{
		Email:    "secretary@uni.edu",
		Password: "secret-pass-1",
	})
	if err != nil {
		t.Fatalf("登录失败: %v", err)
	}

	resp, err := svc.Auth.Refresh(ctx, login.RefreshToken)
	if err != nil {
		t.Fatalf("刷新应成功: %v", err)
	}
	if resp.AccessToken == "" || resp.Account.ID != "sec-001" {
		t.Errorf("刷新结果不符: %+v", resp.Account)
	}
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	svc, _ := newTestEnv(t)
	ctx := context.Background()

	login, err := svc.Auth.Login(ctx, &dto.LoginRequest{
		Email:    "secretary@uni.edu",
		Password: "secret-pass-1",
	})
	if err != nil {
		t.Fatalf("登录失败: %v", err)
	}

	// Access Token 不能用于刷新
	if _, err := svc.Auth.Refresh(ctx, login.AccessToken); !errors.Is(err, jwt.ErrTokenInvalid) {
		t.Errorf("期望 ErrTokenInvalid，实际: %v", err)
	}
}

// ── 修改密码 ──

func TestChangePassword_Success(t *testing.T) {
	svc, _ := newTestEnv(t)
	ctx := context.Background()

	err := svc.Auth.ChangePassword(ctx, "sec-001", RoleSecretary, "secret-pass-1", "new-pass-5678")
	if err != nil {
		t.Fatalf("修改密码应成功: %v", err)
	}

	// 旧密码失效，新密码可登录
	if _, err := svc.Auth.Login(ctx, &dto.LoginRequest{
		Email: "secretary@uni.edu", Password: "secret-pass-1",
	}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("旧密码应失效，实际: %v", err)
	}
	if _, err := svc.Auth.Login(ctx, &dto.LoginRequest{
		Email: "secretary@uni.edu", Password: "new-pass-5678",
	}); err != nil {
		t.Errorf("新密码登录应成功: %v", err)
	}
}

func TestChangePassword_WrongOldPassword(t *testing.T) {
	svc, _ := newTestEnv(t)

	err := svc.Auth.ChangePassword(context.Background(), "sec-001", RoleSecretary, "not-the-pass", "new-pass-5678")
	if !errors.Is(err, ErrPasswordMismatch) {
		t.Errorf("原密码错误期望 ErrPasswordMismatch，实际: %v", err)
	}
}

// ── 登出 ──

func TestLogout_WithoutRedis(t *testing.T) {
	svc, _ := newTestEnv(t)

	err := svc.Auth.Logout(context.Background(), &jwt.Claims{})
	if !errors.Is(err, ErrLogoutUnavailable) {
		t.Errorf("未启用 Redis 时期望 ErrLogoutUnavailable，实际: %v", err)
	}
}
