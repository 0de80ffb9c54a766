package model

import (
	"time"
)

// SaleModel 代币发售
type SaleModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CampaignId int64  `json:"campaign_id" gorm:"not null;index"`
	Registrant string `json:"registrant" gorm:"not null;size:64"`
	TokenMint  string `json:"token_mint" gorm:"not null;size:64"`
	Vault      string `json:"vault" gorm:"size:64"` // 托管金库地址

	// 募资信息
	SoftCap     uint64 `json:"soft_cap" gorm:"type:numeric(20,0);not null"`
	HardCap     uint64 `json:"hard_cap" gorm:"type:numeric(20,0);not null"`
	TotalRaised uint64 `json:"total_raised" gorm:"type:numeric(20,0);not null;default:0"`

	IsActive bool `json:"is_active" gorm:"default:false"`
}

// TableName 自定义表名
func (SaleModel) TableName() string {
	return "sale"
}
