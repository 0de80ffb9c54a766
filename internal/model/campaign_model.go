package model

import (
	"time"
)

// CampaignModel 发射台实例，每个实例一条记录
type CampaignModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Admin         string `json:"admin" gorm:"not null;size:64"`            // 管理员地址，创建后不可变
	TotalProjects uint64 `json:"total_projects" gorm:"not null;default:0"` // 已注册发售数量，只增不减
}

// TableName 自定义表名
func (CampaignModel) TableName() string {
	return "campaign"
}
