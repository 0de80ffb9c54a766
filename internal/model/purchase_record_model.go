package model

import (
	"time"
)

// PurchaseRecordModel 购买记录
type PurchaseRecordModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	SaleId      int64  `json:"sale_id" gorm:"not null;index"`
	RoundId     int64  `json:"round_id" gorm:"not null;index"`
	GrantId     int64  `json:"grant_id" gorm:"not null;uniqueIndex"`
	Investor    string `json:"investor" gorm:"not null;size:64"`
	Amount      uint64 `json:"amount" gorm:"type:numeric(20,0);not null"` // 计价货币金额
	Tokens      uint64 `json:"tokens" gorm:"type:numeric(20,0);not null"` // 获得的代币数量
	TransferRef string `json:"transfer_ref" gorm:"size:36"`
}

// TableName 自定义表名
func (PurchaseRecordModel) TableName() string {
	return "purchase_record"
}
