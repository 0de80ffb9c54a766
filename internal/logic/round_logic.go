package logic

import (
	"context"
	"errors"
	"fmt"

	"github.com/piyushmali/solana-launchpad/internal/launchpad"
	"github.com/piyushmali/solana-launchpad/internal/logger"
	"github.com/piyushmali/solana-launchpad/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RoundLogic 发售轮次业务逻辑
type RoundLogic struct {
	db     *gorm.DB
	engine *launchpad.Engine
}

// NewRoundLogic 创建轮次业务逻辑
func NewRoundLogic(db *gorm.DB, engine *launchpad.Engine) *RoundLogic {
	return &RoundLogic{db: db, engine: engine}
}

// AddRound 为发售新增轮次，仅发售注册人可操作
func (r *RoundLogic) AddRound(ctx context.Context, saleId int64, signer string, spec launchpad.RoundSpec) (*model.RoundModel, error) {
	sale, err := getSale(r.db.WithContext(ctx), saleId)
	if err != nil {
		return nil, err
	}
	if err := authorize(sale.Registrant, signer); err != nil {
		return nil, err
	}

	round, err := r.engine.AddRound(sale, spec)
	if err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Create(round).Error; err != nil {
		return nil, fmt.Errorf("创建轮次失败: %w", err)
	}

	logger.Info("Added round %d to sale %d: price %d, supply %d, window [%d, %d]",
		round.Id, saleId, round.PricePerToken, round.TokensAvailable, round.StartTime, round.EndTime)
	return round, nil
}

// ActivateRound 激活轮次，仅发售注册人可操作
func (r *RoundLogic) ActivateRound(ctx context.Context, roundId int64, signer string) (*model.RoundModel, error) {
	current, err := r.GetRound(ctx, roundId)
	if err != nil {
		return nil, err
	}

	unlock := locks.Lock(lockKey("round", roundId), lockKey("sale", current.SaleId))
	defer unlock()

	var round model.RoundModel
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&round, roundId).Error; err != nil {
			return err
		}
		var sale model.SaleModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&sale, round.SaleId).Error; err != nil {
			return err
		}
		if err := authorize(sale.Registrant, signer); err != nil {
			return err
		}

		launchpad.ActivateRound(&round, &sale)

		if err := tx.Model(&round).Update("is_active", round.IsActive).Error; err != nil {
			return fmt.Errorf("激活轮次失败: %w", err)
		}
		if err := tx.Model(&sale).Update("is_active", sale.IsActive).Error; err != nil {
			return fmt.Errorf("更新发售状态失败: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Activated round %d of sale %d", round.Id, round.SaleId)
	return &round, nil
}

// GetRound 获取轮次
func (r *RoundLogic) GetRound(ctx context.Context, id int64) (*model.RoundModel, error) {
	var round model.RoundModel
	if err := r.db.WithContext(ctx).First(&round, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoundNotFound
		}
		return nil, fmt.Errorf("获取轮次失败: %w", err)
	}
	return &round, nil
}

// ListRounds 获取发售的所有轮次
func (r *RoundLogic) ListRounds(ctx context.Context, saleId int64) ([]model.RoundModel, error) {
	if _, err := getSale(r.db.WithContext(ctx), saleId); err != nil {
		return nil, err
	}

	var rounds []model.RoundModel
	if err := r.db.WithContext(ctx).Where("sale_id = ?", saleId).Order("id ASC").Find(&rounds).Error; err != nil {
		return nil, fmt.Errorf("获取轮次列表失败: %w", err)
	}
	return rounds, nil
}
