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

// PurchaseResult 购买结果
type PurchaseResult struct {
	Grant    model.VestingGrantModel
	Purchase model.PurchaseRecordModel
}

// PurchaseLogic 购买业务逻辑
type PurchaseLogic struct {
	db      *gorm.DB
	engine  *launchpad.Engine
	custody custody.Service
	clock   clock.Clock
}

// NewPurchaseLogic 创建购买业务逻辑
func NewPurchaseLogic(db *gorm.DB, engine *launchpad.Engine, custodySvc custody.Service, clk clock.Clock) *PurchaseLogic {
	return &PurchaseLogic{db: db, engine: engine, custody: custodySvc, clock: clk}
}

// Purchase 购买代币。校验、记账、资金托管和归属计划创建在同一事务中完成，任何一步失败都不会留下修改
func (p *PurchaseLogic) Purchase(ctx context.Context, roundId int64, investor string, amount uint64) (*PurchaseResult, error) {
	var current model.RoundModel
	if err := p.db.WithContext(ctx).Select("id", "sale_id").First(&current, roundId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoundNotFound
		}
		return nil, fmt.Errorf("获取轮次失败: %w", err)
	}

	unlock := locks.Lock(lockKey("round", roundId), lockKey("sale", current.SaleId))
	defer unlock()

	var result PurchaseResult
	err := p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var round model.RoundModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&round, roundId).Error; err != nil {
			return err
		}
		var sale model.SaleModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&sale, round.SaleId).Error; err != nil {
			return err
		}

		now := p.clock.Now()
		grant, err := p.engine.Purchase(&round, &sale, investor, amount, now)
		if err != nil {
			return err
		}

		// 更新轮次和发售记账
		if err := tx.Model(&round).Updates(map[string]interface{}{
			"tokens_available": round.TokensAvailable,
			"tokens_sold":      round.TokensSold,
		}).Error; err != nil {
			return fmt.Errorf("更新轮次失败: %w", err)
		}
		if err := tx.Model(&sale).Update("total_raised", sale.TotalRaised).Error; err != nil {
			return fmt.Errorf("更新发售失败: %w", err)
		}

		// 投资人资金转入金库
		ref, err := p.custody.Transfer(ctx, tx, custody.TransferRequest{
			Kind:   model.TransferKindDeposit,
			SaleId: sale.Id,
			Asset:  custody.NativeAsset,
			From:   investor,
			To:     sale.Vault,
			Amount: amount,
		})
		if err != nil {
			return fmt.Errorf("资金托管失败: %w", err)
		}

		// 创建归属计划
		if err := tx.Create(grant).Error; err != nil {
			return fmt.Errorf("创建归属计划失败: %w", err)
		}

		purchase := model.PurchaseRecordModel{
			SaleId:      sale.Id,
			RoundId:     round.Id,
			GrantId:     grant.Id,
			Investor:    investor,
			Amount:      amount,
			Tokens:      grant.TotalAllocation,
			TransferRef: ref,
		}
		if err := tx.Create(&purchase).Error; err != nil {
			return fmt.Errorf("创建购买记录失败: %w", err)
		}

		result.Grant = *grant
		result.Purchase = purchase
		return nil
	})
	if err != nil {
		logger.Warn("Purchase rejected on round %d for %s (amount %d): %v", roundId, investor, amount, err)
		return nil, err
	}

	logger.Info("Purchase on round %d: %s paid %d for %d tokens (grant %d)",
		roundId, investor, amount, result.Grant.TotalAllocation, result.Grant.Id)
	return &result, nil
}
