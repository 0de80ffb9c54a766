package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/piyushmali/solana-launchpad/internal/launchpad"
	"github.com/piyushmali/solana-launchpad/internal/logic"
)

// SaleHandler 发售处理器
type SaleHandler struct {
	campaignLogic *logic.CampaignLogic
	roundLogic    *logic.RoundLogic
	statsLogic    *logic.StatsLogic
}

// NewSaleHandler 创建发售处理器
func NewSaleHandler(campaignLogic *logic.CampaignLogic, roundLogic *logic.RoundLogic, statsLogic *logic.StatsLogic) *SaleHandler {
	return &SaleHandler{
		campaignLogic: campaignLogic,
		roundLogic:    roundLogic,
		statsLogic:    statsLogic,
	}
}

// GetSale 获取发售详情
func (h *SaleHandler) GetSale(c *gin.Context) {
	id, ok := parseId(c, "发售")
	if !ok {
		return
	}

	sale, err := h.campaignLogic.GetSale(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "获取发售成功", sale)
}

// GetSaleStats 获取发售统计信息
func (h *SaleHandler) GetSaleStats(c *gin.Context) {
	id, ok := parseId(c, "发售")
	if !ok {
		return
	}

	stats, err := h.statsLogic.GetSaleStats(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "获取发售统计信息成功", stats)
}

// ListRounds 获取发售的所有轮次
func (h *SaleHandler) ListRounds(c *gin.Context) {
	id, ok := parseId(c, "发售")
	if !ok {
		return
	}

	rounds, err := h.roundLogic.ListRounds(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "获取轮次列表成功", ListRoundsResponse{Rounds: rounds})
}

// AddRound 新增发售轮次，仅注册人可操作
func (h *SaleHandler) AddRound(c *gin.Context) {
	id, ok := parseId(c, "发售")
	if !ok {
		return
	}

	var req AddRoundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	round, err := h.roundLogic.AddRound(c.Request.Context(), id, signerOf(c), launchpad.RoundSpec{
		PricePerToken:   req.PricePerToken,
		TokensAvailable: req.TokensAvailable,
		MinContribution: req.MinContribution,
		MaxContribution: req.MaxContribution,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, "轮次创建成功", round)
}
