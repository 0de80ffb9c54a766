package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/piyushmali/solana-launchpad/internal/clock"
	"github.com/piyushmali/solana-launchpad/internal/config"
	"github.com/piyushmali/solana-launchpad/internal/custody"
	"github.com/piyushmali/solana-launchpad/internal/database"
	"github.com/piyushmali/solana-launchpad/internal/launchpad"
	"github.com/piyushmali/solana-launchpad/internal/logger"
	"github.com/piyushmali/solana-launchpad/internal/metrics"
	"github.com/piyushmali/solana-launchpad/internal/router"
	"github.com/piyushmali/solana-launchpad/internal/scheduler"
	"go.uber.org/automaxprocs/maxprocs"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化日志
	if err := logger.Init(cfg.Log); err != nil {
		logger.Fatal("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// 按容器 CPU 配额设置 GOMAXPROCS
	if _, err := maxprocs.Set(maxprocs.Logger(logger.Info)); err != nil {
		logger.Warn("Failed to set GOMAXPROCS: %v", err)
	}

	// 初始化数据库
	db, err := database.Init(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}
	defer database.Close(db)

	// 初始化记账引擎
	engine, err := launchpad.NewEngine(launchpad.Params{
		TokenDecimals:      cfg.Launchpad.TokenDecimals,
		VestingDuration:    cfg.Launchpad.VestingDuration,
		ReleaseMode:        launchpad.ReleaseMode(cfg.Launchpad.ReleaseMode),
		EnforceCapOrder:    cfg.Launchpad.EnforceCapOrder,
		EnforceRoundWindow: cfg.Launchpad.EnforceRoundWindow,
	})
	if err != nil {
		logger.Fatal("Failed to initialize launchpad engine: %v", err)
	}
	clk := clock.SystemClock{}
	m := metrics.New()

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化路由
	r := router.Setup(db, engine, custody.NewLedgerService(), clk, m, cfg)

	// 启动定时任务
	manager, err := scheduler.Start(db, clk, m, cfg)
	if err != nil {
		logger.Fatal("Failed to start task manager: %v", err)
	}
	defer manager.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 启动服务器
	srv := &http.Server{Addr: ":" + cfg.Server.Port, Handler: r}
	go func() {
		logger.Info("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed: %v", err)
	}
}
