package model

import (
	"time"
)

// TransferKind 托管转账类型
type TransferKind string

const (
	TransferKindDeposit TransferKind = "deposit" // 投资人 -> 金库（计价货币）
	TransferKindRelease TransferKind = "release" // 金库 -> 投资人（发售代币）
)

// TransferRecordModel 托管账本记录
type TransferRecordModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Reference string       `json:"reference" gorm:"not null;size:36;uniqueIndex"`
	Kind      TransferKind `json:"kind" gorm:"not null;size:16"`
	SaleId    int64        `json:"sale_id" gorm:"not null;index"`
	Asset     string       `json:"asset" gorm:"not null;size:64"` // "native" 或代币 mint 地址
	From      string       `json:"from" gorm:"column:from_address;not null;size:64"`
	To        string       `json:"to" gorm:"column:to_address;not null;size:64"`
	Amount    uint64       `json:"amount" gorm:"type:numeric(20,0);not null"`
}

// TableName 自定义表名
func (TransferRecordModel) TableName() string {
	return "transfer_record"
}
