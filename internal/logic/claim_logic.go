package logic

import (
	"context"
	"errors"
	"fmt"

	"github.com/piyushmali/solana-launchpad/internal/clock"
	"github.com/piyushmali/solana-launchpad/internal/custody"
	"github.com/piyushmali/solana-launchpad/internal/launchpad"
	"github.com/piyushmali/solana-launchpad/internal/logger"
	"github.com/piyushmali/solana-launchpad/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ClaimResult 领取结果
type ClaimResult struct {
	Grant  model.VestingGrantModel
	Claim  model.ClaimRecordModel
	Amount uint64
}

// GrantView 归属计划及当前可领取数量
type GrantView struct {
	Grant      model.VestingGrantModel
	Vested     uint64
	Releasable uint64
}

// ClaimLogic 归属领取业务逻辑
type ClaimLogic struct {
	db      *gorm.DB
	engine  *launchpad.Engine
	custody custody.Service
	clock   clock.Clock
}

// NewClaimLogic 创建领取业务逻辑
func NewClaimLogic(db *gorm.DB, engine *launchpad.Engine, custodySvc custody.Service, clk clock.Clock) *ClaimLogic {
	return &ClaimLogic{db: db, engine: engine, custody: custodySvc, clock: clk}
}

// Claim 领取已归属的代币，仅归属计划的投资人可操作
func (c *ClaimLogic) Claim(ctx context.Context, grantId int64, signer string) (*ClaimResult, error) {
	unlock := locks.Lock(lockKey("grant", grantId))
	defer unlock()

	var result ClaimResult
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var grant model.VestingGrantModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&grant, grantId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGrantNotFound
			}
			return err
		}
		if err := authorize(grant.Investor, signer); err != nil {
			return err
		}
		// 发售的 mint 和金库地址注册后不变，无需加锁
		sale, err := getSale(tx, grant.SaleId)
		if err != nil {
			return err
		}

		now := c.clock.Now()
		amount, err := c.engine.Claim(&grant, now)
		if err != nil {
			return err
		}

		// 金库代币转给投资人
		ref, err := c.custody.Transfer(ctx, tx, custody.TransferRequest{
			Kind:   model.TransferKindRelease,
			SaleId: sale.Id,
			Asset:  sale.TokenMint,
			From:   sale.Vault,
			To:     grant.Investor,
			Amount: amount,
		})
		if err != nil {
			return fmt.Errorf("代币释放失败: %w", err)
		}

		if err := tx.Model(&grant).Update("released", grant.Released).Error; err != nil {
			return fmt.Errorf("更新归属计划失败: %w", err)
		}

		claim := model.ClaimRecordModel{
			GrantId:     grant.Id,
			SaleId:      grant.SaleId,
			Investor:    grant.Investor,
			Amount:      amount,
			Elapsed:     now - grant.StartTime,
			ClaimedAt:   now,
			TransferRef: ref,
		}
		if err := tx.Create(&claim).Error; err != nil {
			return fmt.Errorf("创建领取记录失败: %w", err)
		}

		result = ClaimResult{Grant: grant, Claim: claim, Amount: amount}
		return nil
	})
	if err != nil {
		logger.Warn("Claim rejected on grant %d: %v", grantId, err)
		return nil, err
	}

	logger.Info("Claimed %d tokens from grant %d (%d/%d released)",
		result.Amount, grantId, result.Grant.Released, result.Grant.TotalAllocation)
	return &result, nil
}

// GetGrant 获取归属计划及当前可领取数量
func (c *ClaimLogic) GetGrant(ctx context.Context, id int64) (*GrantView, error) {
	var grant model.VestingGrantModel
	if err := c.db.WithContext(ctx).First(&grant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGrantNotFound
		}
		return nil, fmt.Errorf("获取归属计划失败: %w", err)
	}
	return c.view(grant), nil
}

// ListInvestorGrants 获取投资人的归属计划
func (c *ClaimLogic) ListInvestorGrants(ctx context.Context, investor string, page, pageSize int) ([]GrantView, int64, error) {
	var grants []model.VestingGrantModel
	var total int64

	query := c.db.WithContext(ctx).Model(&model.VestingGrantModel{}).Where("investor = ?", investor)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("获取归属计划总数失败: %w", err)
	}

	offset := (page - 1) * pageSize
	if err := query.Offset(offset).Limit(pageSize).Order("id DESC").Find(&grants).Error; err != nil {
		return nil, 0, fmt.Errorf("获取归属计划列表失败: %w", err)
	}

	views := make([]GrantView, len(grants))
	for i, grant := range grants {
		views[i] = *c.view(grant)
	}
	return views, total, nil
}

// GetGrantClaims 获取归属计划的领取记录
func (c *ClaimLogic) GetGrantClaims(ctx context.Context, grantId int64) ([]model.ClaimRecordModel, error) {
	var claims []model.ClaimRecordModel
	if err := c.db.WithContext(ctx).Where("grant_id = ?", grantId).Order("id ASC").Find(&claims).Error; err != nil {
		return nil, fmt.Errorf("获取领取记录失败: %w", err)
	}
	return claims, nil
}

func (c *ClaimLogic) view(grant model.VestingGrantModel) *GrantView {
	now := c.clock.Now()
	// 时钟早于开始时间时可领取数量为 0
	releasable, _ := c.engine.Releasable(&grant, now)
	return &GrantView{
		Grant:      grant,
		Vested:     launchpad.VestedAt(&grant, now),
		Releasable: releasable,
	}
}
