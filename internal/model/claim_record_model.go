package model

import (
	"time"
)

// ClaimRecordModel 领取记录
type ClaimRecordModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	GrantId     int64  `json:"grant_id" gorm:"not null;index"`
	SaleId      int64  `json:"sale_id" gorm:"not null;index"`
	Investor    string `json:"investor" gorm:"not null;size:64"`
	Amount      uint64 `json:"amount" gorm:"type:numeric(20,0);not null"`
	Elapsed     int64  `json:"elapsed" gorm:"not null"`    // 领取时距归属开始的秒数
	ClaimedAt   int64  `json:"claimed_at" gorm:"not null"` // unix 秒
	TransferRef string `json:"transfer_ref" gorm:"size:36"`
}

// TableName 自定义表名
func (ClaimRecordModel) TableName() string {
	return "claim_record"
}
