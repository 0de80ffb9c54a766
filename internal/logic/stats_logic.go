package logic

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/piyushmali/solana-launchpad/internal/custody"
	"github.com/piyushmali/solana-launchpad/internal/model"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SaleStats 发售统计
type SaleStats struct {
	SaleId               int64  `json:"sale_id"`
	SoftCap              uint64 `json:"soft_cap"`
	HardCap              uint64 `json:"hard_cap"`
	TotalRaised          uint64 `json:"total_raised"`
	TotalRaisedDisplay   string `json:"total_raised_display"`
	CompletionPercentage string `json:"completion_percentage"`
	SoftCapReached       bool   `json:"soft_cap_reached"`
	IsActive             bool   `json:"is_active"`
	RoundCount           int64  `json:"round_count"`
	ActiveRoundCount     int64  `json:"active_round_count"`
	TokensSold           uint64 `json:"tokens_sold"`
	TokensAvailable      uint64 `json:"tokens_available"`
	PurchaseCount        int64  `json:"purchase_count"`
	InvestorCount        int64  `json:"investor_count"`
	TokensAllocated      uint64 `json:"tokens_allocated"`
	TokensReleased       uint64 `json:"tokens_released"`
	VaultDeposited       uint64 `json:"vault_deposited"`
	VaultReleased        uint64 `json:"vault_released"`
}

// CampaignStats 发射台统计
type CampaignStats struct {
	CampaignId    int64  `json:"campaign_id"`
	TotalProjects uint64 `json:"total_projects"`
	ActiveSales   int64  `json:"active_sales"`
	TotalRaised   uint64 `json:"total_raised"`
	InvestorCount int64  `json:"investor_count"`
}

// StatsLogic 统计业务逻辑
type StatsLogic struct {
	db            *gorm.DB
	quoteDecimals int32
}

// NewStatsLogic 创建统计业务逻辑，quoteDecimals 为计价货币精度
func NewStatsLogic(db *gorm.DB, quoteDecimals uint8) *StatsLogic {
	return &StatsLogic{db: db, quoteDecimals: int32(quoteDecimals)}
}

// GetSaleStats 获取发售统计信息
func (s *StatsLogic) GetSaleStats(ctx context.Context, saleId int64) (*SaleStats, error) {
	db := s.db.WithContext(ctx)
	sale, err := getSale(db, saleId)
	if err != nil {
		return nil, err
	}

	stats := &SaleStats{
		SaleId:         sale.Id,
		SoftCap:        sale.SoftCap,
		HardCap:        sale.HardCap,
		TotalRaised:    sale.TotalRaised,
		SoftCapReached: sale.TotalRaised >= sale.SoftCap,
		IsActive:       sale.IsActive,
	}
	stats.TotalRaisedDisplay = ToDisplay(sale.TotalRaised, s.quoteDecimals)
	stats.CompletionPercentage = completion(sale.TotalRaised, sale.HardCap)

	// 轮次统计
	var rounds struct {
		RoundCount       int64
		ActiveRoundCount int64
		TokensSold       uint64
		TokensAvailable  uint64
	}
	if err := db.Model(&model.RoundModel{}).
		Select(`COUNT(*) AS round_count,
			COALESCE(SUM(CASE WHEN is_active THEN 1 ELSE 0 END), 0) AS active_round_count,
			COALESCE(SUM(tokens_sold), 0) AS tokens_sold,
			COALESCE(SUM(tokens_available), 0) AS tokens_available`).
		Where("sale_id = ?", saleId).
		Scan(&rounds).Error; err != nil {
		return nil, fmt.Errorf("获取轮次统计失败: %w", err)
	}
	stats.RoundCount = rounds.RoundCount
	stats.ActiveRoundCount = rounds.ActiveRoundCount
	stats.TokensSold = rounds.TokensSold
	stats.TokensAvailable = rounds.TokensAvailable

	// 购买统计
	if err := db.Model(&model.PurchaseRecordModel{}).Where("sale_id = ?", saleId).Count(&stats.PurchaseCount).Error; err != nil {
		return nil, fmt.Errorf("获取购买次数失败: %w", err)
	}
	if err := db.Model(&model.PurchaseRecordModel{}).Where("sale_id = ?", saleId).
		Distinct("investor").Count(&stats.InvestorCount).Error; err != nil {
		return nil, fmt.Errorf("获取投资人数失败: %w", err)
	}

	// 归属统计
	var grants struct {
		TokensAllocated uint64
		TokensReleased  uint64
	}
	if err := db.Model(&model.VestingGrantModel{}).
		Select("COALESCE(SUM(total_allocation), 0) AS tokens_allocated, COALESCE(SUM(released), 0) AS tokens_released").
		Where("sale_id = ?", saleId).
		Scan(&grants).Error; err != nil {
		return nil, fmt.Errorf("获取归属统计失败: %w", err)
	}
	stats.TokensAllocated = grants.TokensAllocated
	stats.TokensReleased = grants.TokensReleased

	vault, err := custody.GetVaultTotals(ctx, s.db, saleId)
	if err != nil {
		return nil, err
	}
	stats.VaultDeposited = vault.Deposited
	stats.VaultReleased = vault.Released

	return stats, nil
}

// GetCampaignStats 获取发射台统计信息
func (s *StatsLogic) GetCampaignStats(ctx context.Context, campaignId int64) (*CampaignStats, error) {
	db := s.db.WithContext(ctx)

	var campaign model.CampaignModel
	if err := db.First(&campaign, campaignId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, fmt.Errorf("获取发射台失败: %w", err)
	}

	stats := &CampaignStats{CampaignId: campaign.Id, TotalProjects: campaign.TotalProjects}

	if err := db.Model(&model.SaleModel{}).
		Where("campaign_id = ? AND is_active = ?", campaignId, true).
		Count(&stats.ActiveSales).Error; err != nil {
		return nil, fmt.Errorf("获取活跃发售数失败: %w", err)
	}
	if err := db.Model(&model.SaleModel{}).
		Select("COALESCE(SUM(total_raised), 0)").
		Where("campaign_id = ?", campaignId).
		Scan(&stats.TotalRaised).Error; err != nil {
		return nil, fmt.Errorf("获取募资总额失败: %w", err)
	}
	if err := db.Model(&model.PurchaseRecordModel{}).
		Joins("JOIN sale ON sale.id = purchase_record.sale_id").
		Where("sale.campaign_id = ?", campaignId).
		Distinct("purchase_record.investor").
		Count(&stats.InvestorCount).Error; err != nil {
		return nil, fmt.Errorf("获取投资人数失败: %w", err)
	}

	return stats, nil
}

// ToDisplay 将最小单位金额转换为带小数的展示值
func ToDisplay(amount uint64, decimals int32) string {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(amount), -decimals).String()
}

// completion 完成百分比，保留两位小数
func completion(raised, hardCap uint64) string {
	if hardCap == 0 {
		return "0"
	}
	r := decimal.NewFromBigInt(new(big.Int).SetUint64(raised), 0)
	h := decimal.NewFromBigInt(new(big.Int).SetUint64(hardCap), 0)
	return r.Div(h).Mul(decimal.NewFromInt(100)).StringFixed(2)
}
