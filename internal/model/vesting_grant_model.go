package model

import (
	"time"
)

// VestingGrantModel 归属计划，每次购买生成一条
type VestingGrantModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	SaleId   int64  `json:"sale_id" gorm:"not null;index"`
	RoundId  int64  `json:"round_id" gorm:"not null;index"`
	Investor string `json:"investor" gorm:"not null;size:64;index"`

	TotalAllocation uint64 `json:"total_allocation" gorm:"type:numeric(20,0);not null"`
	Released        uint64 `json:"released" gorm:"type:numeric(20,0);not null;default:0"`
	StartTime       int64  `json:"start_time" gorm:"not null"` // unix 秒
	Duration        uint64 `json:"duration" gorm:"not null"`   // 秒
}

// TableName 自定义表名
func (VestingGrantModel) TableName() string {
	return "vesting_grant"
}
