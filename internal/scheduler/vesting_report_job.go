package scheduler

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/panjf2000/ants/v2"
	"github.com/piyushmali/solana-launchpad/internal/clock"
	"github.com/piyushmali/solana-launchpad/internal/config"
	"github.com/piyushmali/solana-launchpad/internal/launchpad"
	"github.com/piyushmali/solana-launchpad/internal/logger"
	"github.com/piyushmali/solana-launchpad/internal/metrics"
	"github.com/piyushmali/solana-launchpad/internal/model"
	"gorm.io/gorm"
)

// SaleReport 单个发售的归属汇总
type SaleReport struct {
	SaleId      int64
	Grants      int64
	Allocated   uint64
	Vested      uint64
	Released    uint64
	StaleRounds []int64 // 已过结束时间但仍处于激活状态的轮次
}

// VestingReportJob 归属报表任务，只读
type VestingReportJob struct {
	db       *gorm.DB
	clock    clock.Clock
	interval time.Duration
	workers  int
	metrics  *metrics.Metrics
}

// NewVestingReportJob 创建归属报表任务
func NewVestingReportJob(db *gorm.DB, clk clock.Clock, cfg config.TaskConfig, m *metrics.Metrics) *VestingReportJob {
	interval := time.Duration(cfg.Interval) * time.Second
	if interval <= 0 {
		interval = time.Minute
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	return &VestingReportJob{
		db:       db,
		clock:    clk,
		interval: interval,
		workers:  workers,
		metrics:  m,
	}
}

// GetName 获取任务名称
func (j *VestingReportJob) GetName() string {
	return "vesting_report"
}

// GetSchedule 获取调度配置
func (j *VestingReportJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(j.interval)
}

// Execute 执行任务
func (j *VestingReportJob) Execute() {
	logger.Debug("Starting vesting report task")

	reports, err := j.Run(context.Background())
	if err != nil {
		logger.Error("Vesting report failed: %v", err)
		return
	}

	stale := 0
	for _, r := range reports {
		stale += len(r.StaleRounds)
		logger.Info("Sale %d: %d grants, allocated=%d vested=%d released=%d",
			r.SaleId, r.Grants, r.Allocated, r.Vested, r.Released)
		for _, roundId := range r.StaleRounds {
			logger.Warn("Sale %d round %d is still active after its end time", r.SaleId, roundId)
		}
	}

	j.metrics.ObserveReport(stale)
	logger.Debug("Vesting report completed for %d sales", len(reports))
}

// Run 按发售并发汇总归属数据，结果按发售ID排序
func (j *VestingReportJob) Run(ctx context.Context) ([]SaleReport, error) {
	var saleIds []int64
	if err := j.db.WithContext(ctx).Model(&model.SaleModel{}).Order("id ASC").Pluck("id", &saleIds).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch sales: %w", err)
	}
	if len(saleIds) == 0 {
		return nil, nil
	}

	pool, err := ants.NewPool(j.workers)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool for %d workers: %w", j.workers, err)
	}
	defer pool.Release()

	now := j.clock.Now()
	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		reports  = make([]SaleReport, 0, len(saleIds))
		firstErr error
	)

	for _, saleId := range saleIds {
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			report, err := j.reportSale(ctx, saleId, now)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			reports = append(reports, report)
		})
		if err != nil {
			wg.Done()
			logger.Error("Failed to submit task to pool: %v", err)
		}
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	sort.Slice(reports, func(a, b int) bool { return reports[a].SaleId < reports[b].SaleId })
	return reports, nil
}

func (j *VestingReportJob) reportSale(ctx context.Context, saleId, now int64) (SaleReport, error) {
	db := j.db.WithContext(ctx)
	report := SaleReport{SaleId: saleId}

	var grants []model.VestingGrantModel
	if err := db.Where("sale_id = ?", saleId).Find(&grants).Error; err != nil {
		return report, fmt.Errorf("failed to fetch grants of sale %d: %w", saleId, err)
	}
	report.Grants = int64(len(grants))
	for i := range grants {
		report.Allocated += grants[i].TotalAllocation
		report.Released += grants[i].Released
		report.Vested += launchpad.VestedAt(&grants[i], now)
	}

	if err := db.Model(&model.RoundModel{}).
		Where("sale_id = ? AND is_active = ? AND end_time < ?", saleId, true, now).
		Order("id ASC").
		Pluck("id", &report.StaleRounds).Error; err != nil {
		return report, fmt.Errorf("failed to fetch rounds of sale %d: %w", saleId, err)
	}

	return report, nil
}
