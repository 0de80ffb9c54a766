package model

import (
	"time"
)

// RoundModel 发售轮次
type RoundModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	SaleId int64 `json:"sale_id" gorm:"not null;index"`

	// 定价与供应
	PricePerToken   uint64 `json:"price_per_token" gorm:"type:numeric(20,0);not null"`
	TokensAvailable uint64 `json:"tokens_available" gorm:"type:numeric(20,0);not null"`
	TokensSold      uint64 `json:"tokens_sold" gorm:"type:numeric(20,0);not null;default:0"`

	// 单笔贡献限制
	MinContribution uint64 `json:"min_contribution" gorm:"type:numeric(20,0);not null"`
	MaxContribution uint64 `json:"max_contribution" gorm:"type:numeric(20,0);not null"`

	// 时间窗口（unix 秒）
	StartTime int64 `json:"start_time" gorm:"not null"`
	EndTime   int64 `json:"end_time" gorm:"not null"`

	IsActive bool `json:"is_active" gorm:"default:false"`
}

// TableName 自定义表名
func (RoundModel) TableName() string {
	return "sale_round"
}
