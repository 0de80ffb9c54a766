package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/piyushmali/solana-launchpad/internal/launchpad"
	"github.com/piyushmali/solana-launchpad/internal/logic"
)

// SuccessResponse 成功响应
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse 错误响应
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Message: message,
		Data:    nil,
	})
}

// HandleError 按业务错误类型返回对应的状态码
func HandleError(c *gin.Context, err error) {
	status := StatusOf(err)
	if status == http.StatusInternalServerError {
		RequestLogger(c).Error("Request %s %s failed: %v", c.Request.Method, c.FullPath(), err)
	}
	ErrorResponse(c, status, err.Error())
}

// StatusOf 业务错误到 HTTP 状态码的映射
func StatusOf(err error) int {
	switch {
	case errors.Is(err, logic.ErrCampaignNotFound),
		errors.Is(err, logic.ErrSaleNotFound),
		errors.Is(err, logic.ErrRoundNotFound),
		errors.Is(err, logic.ErrGrantNotFound):
		return http.StatusNotFound
	case errors.Is(err, logic.ErrUnauthorizedSigner):
		return http.StatusForbidden
	case errors.Is(err, launchpad.ErrHardCapReached),
		errors.Is(err, launchpad.ErrInsufficientTokens),
		errors.Is(err, launchpad.ErrRoundNotActive),
		errors.Is(err, launchpad.ErrRoundWindowClosed),
		errors.Is(err, launchpad.ErrNothingToClaim):
		return http.StatusConflict
	case errors.Is(err, launchpad.ErrVestingNotStarted):
		return http.StatusTooEarly
	case errors.Is(err, launchpad.ErrZeroContribution),
		errors.Is(err, launchpad.ErrAmountOutOfRange),
		errors.Is(err, launchpad.ErrContributionTooLow),
		errors.Is(err, launchpad.ErrContributionExceeded),
		errors.Is(err, launchpad.ErrRoundSaleMismatch),
		errors.Is(err, launchpad.ErrArithmeticOverflow),
		errors.Is(err, launchpad.ErrDivisionByZero),
		errors.Is(err, launchpad.ErrInvalidIdentity),
		errors.Is(err, launchpad.ErrInvalidCaps),
		errors.Is(err, launchpad.ErrZeroPrice),
		errors.Is(err, launchpad.ErrInvalidRoundWindow),
		errors.Is(err, launchpad.ErrInvalidContributionBounds):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func parseId(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		ErrorResponse(c, http.StatusBadRequest, "无效的"+name+"ID")
		return 0, false
	}
	return id, true
}

func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}
	return page, pageSize
}
