package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/piyushmali/solana-launchpad/internal/launchpad"
	"github.com/piyushmali/solana-launchpad/internal/logic"
	"github.com/piyushmali/solana-launchpad/internal/metrics"
)

// GrantHandler 归属计划处理器
type GrantHandler struct {
	claimLogic *logic.ClaimLogic
	metrics    *metrics.Metrics
}

// NewGrantHandler 创建归属计划处理器
func NewGrantHandler(claimLogic *logic.ClaimLogic, m *metrics.Metrics) *GrantHandler {
	return &GrantHandler{claimLogic: claimLogic, metrics: m}
}

// ListInvestorGrants 获取投资人的归属计划
func (h *GrantHandler) ListInvestorGrants(c *gin.Context) {
	investor := c.Param("address")
	if !launchpad.ValidIdentity(investor) {
		ErrorResponse(c, http.StatusBadRequest, "无效的投资人地址")
		return
	}
	page, pageSize := pageParams(c)

	views, total, err := h.claimLogic.ListInvestorGrants(c.Request.Context(), investor, page, pageSize)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "获取归属计划列表成功", ListGrantsResponse{
		Grants:     ToGrantResponseList(views),
		Pagination: newPagination(page, pageSize, total),
	})
}

// GetGrant 获取归属计划及当前可领取数量
func (h *GrantHandler) GetGrant(c *gin.Context) {
	id, ok := parseId(c, "归属计划")
	if !ok {
		return
	}

	view, err := h.claimLogic.GetGrant(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "获取归属计划成功", ToGrantResponse(*view))
}

// GetGrantClaims 获取归属计划的领取记录
func (h *GrantHandler) GetGrantClaims(c *gin.Context) {
	id, ok := parseId(c, "归属计划")
	if !ok {
		return
	}

	claims, err := h.claimLogic.GetGrantClaims(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "获取领取记录成功", claims)
}

// Claim 领取已归属的代币
func (h *GrantHandler) Claim(c *gin.Context) {
	id, ok := parseId(c, "归属计划")
	if !ok {
		return
	}

	result, err := h.claimLogic.Claim(c.Request.Context(), id, signerOf(c))
	if err != nil {
		h.metrics.ObserveClaim(err, 0)
		HandleError(c, err)
		return
	}
	h.metrics.ObserveClaim(nil, result.Amount)
	SuccessResponse(c, http.StatusOK, "领取成功", ClaimResponse{
		Amount: result.Amount,
		Grant:  result.Grant,
		Claim:  result.Claim,
	})
}
