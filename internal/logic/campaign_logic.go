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

// CampaignLogic 发射台与发售注册业务逻辑
type CampaignLogic struct {
	db        *gorm.DB
	engine    *launchpad.Engine
	programId string
}

// NewCampaignLogic 创建发射台业务逻辑
func NewCampaignLogic(db *gorm.DB, engine *launchpad.Engine, programId string) *CampaignLogic {
	return &CampaignLogic{db: db, engine: engine, programId: programId}
}

// Initialize 创建发射台
func (c *CampaignLogic) Initialize(ctx context.Context, admin string) (*model.CampaignModel, error) {
	campaign, err := launchpad.Initialize(admin)
	if err != nil {
		return nil, err
	}

	if err := c.db.WithContext(ctx).Create(campaign).Error; err != nil {
		return nil, fmt.Errorf("创建发射台失败: %w", err)
	}

	logger.Info("Initialized campaign %d with admin %s", campaign.Id, admin)
	return campaign, nil
}

// GetCampaign 获取发射台
func (c *CampaignLogic) GetCampaign(ctx context.Context, id int64) (*model.CampaignModel, error) {
	var campaign model.CampaignModel
	if err := c.db.WithContext(ctx).First(&campaign, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, fmt.Errorf("获取发射台失败: %w", err)
	}
	return &campaign, nil
}

// RegisterSale 在发射台下注册发售，并原子地增加项目计数
func (c *CampaignLogic) RegisterSale(ctx context.Context, campaignId int64, registrant, tokenMint string, softCap, hardCap uint64) (*model.SaleModel, error) {
	vault, err := launchpad.VaultAddress(c.programId, tokenMint)
	if err != nil {
		return nil, err
	}

	unlock := locks.Lock(lockKey("campaign", campaignId))
	defer unlock()

	var sale *model.SaleModel
	err = c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var campaign model.CampaignModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&campaign, campaignId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCampaignNotFound
			}
			return err
		}

		registered, err := c.engine.RegisterSale(&campaign, registrant, tokenMint, softCap, hardCap)
		if err != nil {
			return err
		}
		registered.Vault = vault
		sale = registered

		if err := tx.Create(sale).Error; err != nil {
			return fmt.Errorf("创建发售失败: %w", err)
		}
		if err := tx.Model(&campaign).Update("total_projects", campaign.TotalProjects).Error; err != nil {
			return fmt.Errorf("更新项目计数失败: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Registered sale %d under campaign %d (mint %s, caps %d/%d)",
		sale.Id, campaignId, tokenMint, softCap, hardCap)
	return sale, nil
}

// GetSale 获取发售
func (c *CampaignLogic) GetSale(ctx context.Context, id int64) (*model.SaleModel, error) {
	return getSale(c.db.WithContext(ctx), id)
}

// ListSales 获取发射台下的发售列表
func (c *CampaignLogic) ListSales(ctx context.Context, campaignId int64, page, pageSize int) ([]model.SaleModel, int64, error) {
	var sales []model.SaleModel
	var total int64

	query := c.db.WithContext(ctx).Model(&model.SaleModel{}).Where("campaign_id = ?", campaignId)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("获取发售总数失败: %w", err)
	}

	offset := (page - 1) * pageSize
	if err := query.Offset(offset).Limit(pageSize).Order("id ASC").Find(&sales).Error; err != nil {
		return nil, 0, fmt.Errorf("获取发售列表失败: %w", err)
	}
	return sales, total, nil
}

func getSale(db *gorm.DB, id int64) (*model.SaleModel, error) {
	var sale model.SaleModel
	if err := db.First(&sale, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSaleNotFound
		}
		return nil, fmt.Errorf("获取发售失败: %w", err)
	}
	return &sale, nil
}
