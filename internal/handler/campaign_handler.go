package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/piyushmali/solana-launchpad/internal/logic"
)

// CampaignHandler 发射台处理器
type CampaignHandler struct {
	campaignLogic *logic.CampaignLogic
	statsLogic    *logic.StatsLogic
}

// NewCampaignHandler 创建发射台处理器
func NewCampaignHandler(campaignLogic *logic.CampaignLogic, statsLogic *logic.StatsLogic) *CampaignHandler {
	return &CampaignHandler{
		campaignLogic: campaignLogic,
		statsLogic:    statsLogic,
	}
}

// Initialize 创建发射台，签名者成为管理员
func (h *CampaignHandler) Initialize(c *gin.Context) {
	campaign, err := h.campaignLogic.Initialize(c.Request.Context(), signerOf(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, "发射台创建成功", campaign)
}

// GetCampaign 获取发射台详情
func (h *CampaignHandler) GetCampaign(c *gin.Context) {
	id, ok := parseId(c, "发射台")
	if !ok {
		return
	}

	campaign, err := h.campaignLogic.GetCampaign(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "获取发射台成功", campaign)
}

// GetCampaignStats 获取发射台统计信息
func (h *CampaignHandler) GetCampaignStats(c *gin.Context) {
	id, ok := parseId(c, "发射台")
	if !ok {
		return
	}

	stats, err := h.statsLogic.GetCampaignStats(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "获取发射台统计信息成功", stats)
}

// RegisterSale 注册新的代币发售，签名者成为注册人
func (h *CampaignHandler) RegisterSale(c *gin.Context) {
	id, ok := parseId(c, "发射台")
	if !ok {
		return
	}

	var req RegisterSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	sale, err := h.campaignLogic.RegisterSale(c.Request.Context(), id, signerOf(c), req.TokenMint, req.SoftCap, req.HardCap)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, "发售注册成功", sale)
}

// ListSales 获取发射台下的发售列表
func (h *CampaignHandler) ListSales(c *gin.Context) {
	id, ok := parseId(c, "发射台")
	if !ok {
		return
	}
	page, pageSize := pageParams(c)

	sales, total, err := h.campaignLogic.ListSales(c.Request.Context(), id, page, pageSize)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "获取发售列表成功", ListSalesResponse{
		Sales:      sales,
		Pagination: newPagination(page, pageSize, total),
	})
}
