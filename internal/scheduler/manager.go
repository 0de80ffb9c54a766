package scheduler

import (
	"fmt"

	"github.com/go-co-op/gocron/v2"
	"github.com/piyushmali/solana-launchpad/internal/clock"
	"github.com/piyushmali/solana-launchpad/internal/config"
	"github.com/piyushmali/solana-launchpad/internal/logger"
	"github.com/piyushmali/solana-launchpad/internal/metrics"
	"gorm.io/gorm"
)

// Manager 任务管理器
type Manager struct {
	scheduler gocron.Scheduler
	db        *gorm.DB
	clock     clock.Clock
	metrics   *metrics.Metrics
	config    *config.Config
}

// NewManager 创建新的任务管理器
func NewManager(db *gorm.DB, clk clock.Clock, m *metrics.Metrics, cfg *config.Config) (*Manager, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Manager{
		scheduler: s,
		db:        db,
		clock:     clk,
		metrics:   m,
		config:    cfg,
	}, nil
}

// Start 创建任务管理器，注册所有任务并启动调度器
func Start(db *gorm.DB, clk clock.Clock, m *metrics.Metrics, cfg *config.Config) (*Manager, error) {
	manager, err := NewManager(db, clk, m, cfg)
	if err != nil {
		return nil, err
	}

	// 注册所有任务
	if err := manager.RegisterJobs(); err != nil {
		_ = manager.scheduler.Shutdown()
		return nil, err
	}

	// 启动调度器
	manager.scheduler.Start()

	logger.Info("Task manager started successfully")
	return manager, nil
}

// RegisterJobs 注册所有任务
func (m *Manager) RegisterJobs() error {
	// 注册归属报表任务
	return m.RegisterVestingReportJob()
}

// RegisterVestingReportJob 注册归属报表任务
func (m *Manager) RegisterVestingReportJob() error {
	job := NewVestingReportJob(m.db, m.clock, m.config.Task, m.metrics)

	_, err := m.scheduler.NewJob(
		job.GetSchedule(),
		gocron.NewTask(job.Execute),
		gocron.WithName(job.GetName()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to register job %s: %w", job.GetName(), err)
	}
	return nil
}

// Jobs 已注册的任务
func (m *Manager) Jobs() []gocron.Job {
	return m.scheduler.Jobs()
}

// Stop 停止任务管理器
func (m *Manager) Stop() {
	if err := m.scheduler.Shutdown(); err != nil {
		logger.Error("Failed to shutdown scheduler: %v", err)
	}
	logger.Info("Task manager stopped")
}
