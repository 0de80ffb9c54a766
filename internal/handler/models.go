package handler

import (
	"github.com/piyushmali/solana-launchpad/internal/logic"
	"github.com/piyushmali/solana-launchpad/internal/model"
)

// 通用响应结构
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// 分页信息结构
type Pagination struct {
	Page      int   `json:"page"`
	PageSize  int   `json:"page_size"`
	Total     int64 `json:"total"`
	TotalPage int64 `json:"total_page"`
}

func newPagination(page, pageSize int, total int64) Pagination {
	return Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
}

// 请求模型

// RegisterSaleRequest 注册发售请求
type RegisterSaleRequest struct {
	TokenMint string `json:"token_mint" binding:"required"`
	SoftCap   uint64 `json:"soft_cap"`
	HardCap   uint64 `json:"hard_cap" binding:"required"`
}

// AddRoundRequest 新增轮次请求
type AddRoundRequest struct {
	PricePerToken   uint64 `json:"price_per_token" binding:"required"`
	TokensAvailable uint64 `json:"tokens_available" binding:"required"`
	MinContribution uint64 `json:"min_contribution"`
	MaxContribution uint64 `json:"max_contribution" binding:"required"`
	StartTime       int64  `json:"start_time"`
	EndTime         int64  `json:"end_time" binding:"required"`
}

// PurchaseRequest 购买请求，amount 为计价货币最小单位
type PurchaseRequest struct {
	Amount uint64 `json:"amount" binding:"required"`
}

// 响应模型

// ListSalesResponse 发售列表
type ListSalesResponse struct {
	Sales      []model.SaleModel `json:"sales"`
	Pagination Pagination        `json:"pagination"`
}

// ListRoundsResponse 轮次列表
type ListRoundsResponse struct {
	Rounds []model.RoundModel `json:"rounds"`
}

// PurchaseResponse 购买结果
type PurchaseResponse struct {
	Grant    model.VestingGrantModel   `json:"grant"`
	Purchase model.PurchaseRecordModel `json:"purchase"`
}

// GrantResponse 归属计划及当前状态
type GrantResponse struct {
	Grant      model.VestingGrantModel `json:"grant"`
	Vested     uint64                  `json:"vested"`
	Releasable uint64                  `json:"releasable"`
}

// ListGrantsResponse 投资人归属计划列表
type ListGrantsResponse struct {
	Grants     []GrantResponse `json:"grants"`
	Pagination Pagination      `json:"pagination"`
}

// ClaimResponse 领取结果
type ClaimResponse struct {
	Amount uint64                  `json:"amount"`
	Grant  model.VestingGrantModel `json:"grant"`
	Claim  model.ClaimRecordModel  `json:"claim"`
}

// ToGrantResponse 转换归属计划视图
func ToGrantResponse(view logic.GrantView) GrantResponse {
	return GrantResponse{
		Grant:      view.Grant,
		Vested:     view.Vested,
		Releasable: view.Releasable,
	}
}

// ToGrantResponseList 转换归属计划视图列表
func ToGrantResponseList(views []logic.GrantView) []GrantResponse {
	list := make([]GrantResponse, len(views))
	for i, view := range views {
		list[i] = ToGrantResponse(view)
	}
	return list
}
