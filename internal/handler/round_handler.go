package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/piyushmali/solana-launchpad/internal/logic"
	"github.com/piyushmali/solana-launchpad/internal/metrics"
)

// RoundHandler 轮次处理器
type RoundHandler struct {
	roundLogic    *logic.RoundLogic
	purchaseLogic *logic.PurchaseLogic
	metrics       *metrics.Metrics
}

// NewRoundHandler 创建轮次处理器
func NewRoundHandler(roundLogic *logic.RoundLogic, purchaseLogic *logic.PurchaseLogic, m *metrics.Metrics) *RoundHandler {
	return &RoundHandler{
		roundLogic:    roundLogic,
		purchaseLogic: purchaseLogic,
		metrics:       m,
	}
}

// GetRound 获取轮次详情
func (h *RoundHandler) GetRound(c *gin.Context) {
	id, ok := parseId(c, "轮次")
	if !ok {
		return
	}

	round, err := h.roundLogic.GetRound(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "获取轮次成功", round)
}

// ActivateRound 激活轮次
func (h *RoundHandler) ActivateRound(c *gin.Context) {
	id, ok := parseId(c, "轮次")
	if !ok {
		return
	}

	round, err := h.roundLogic.ActivateRound(c.Request.Context(), id, signerOf(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "轮次已激活", round)
}

// Purchase 在轮次中购买代币，签名者为投资人
func (h *RoundHandler) Purchase(c *gin.Context) {
	id, ok := parseId(c, "轮次")
	if !ok {
		return
	}

	var req PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.purchaseLogic.Purchase(c.Request.Context(), id, signerOf(c), req.Amount)
	h.metrics.ObservePurchase(err, req.Amount)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, "购买成功", PurchaseResponse{
		Grant:    result.Grant,
		Purchase: result.Purchase,
	})
}
