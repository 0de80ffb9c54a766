package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/piyushmali/solana-launchpad/internal/clock"
	"github.com/piyushmali/solana-launchpad/internal/config"
	"github.com/piyushmali/solana-launchpad/internal/custody"
	"github.com/piyushmali/solana-launchpad/internal/handler"
	"github.com/piyushmali/solana-launchpad/internal/launchpad"
	"github.com/piyushmali/solana-launchpad/internal/logger"
	"github.com/piyushmali/solana-launchpad/internal/logic"
	"github.com/piyushmali/solana-launchpad/internal/metrics"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RequestIdHeader 请求ID
const RequestIdHeader = "X-Request-ID"

func Setup(db *gorm.DB, engine *launchpad.Engine, custodySvc custody.Service, clk clock.Clock, m *metrics.Metrics, cfg *config.Config) *gin.Engine {
	r := gin.New()

	// 中间件
	r.Use(requestIdMiddleware())
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())
	r.Use(metricsMiddleware(m))

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "solana-launchpad",
		})
	})
	if m != nil {
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}

	campaignLogic := logic.NewCampaignLogic(db, engine, cfg.Launchpad.ProgramId)
	roundLogic := logic.NewRoundLogic(db, engine)
	purchaseLogic := logic.NewPurchaseLogic(db, engine, custodySvc, clk)
	claimLogic := logic.NewClaimLogic(db, engine, custodySvc, clk)
	statsLogic := logic.NewStatsLogic(db, cfg.Launchpad.QuoteDecimals)

	campaignHandler := handler.NewCampaignHandler(campaignLogic, statsLogic)
	saleHandler := handler.NewSaleHandler(campaignLogic, roundLogic, statsLogic)
	roundHandler := handler.NewRoundHandler(roundLogic, purchaseLogic, m)
	grantHandler := handler.NewGrantHandler(claimLogic, m)
	signed := handler.RequireSigner()

	// API版本组
	v1 := r.Group("/api/v1")
	{
		// 发射台相关路由
		campaigns := v1.Group("/campaigns")
		{
			campaigns.POST("", signed, campaignHandler.Initialize)
			campaigns.GET("/:id", campaignHandler.GetCampaign)
			campaigns.GET("/:id/stats", campaignHandler.GetCampaignStats)
			campaigns.GET("/:id/sales", campaignHandler.ListSales)
			campaigns.POST("/:id/sales", signed, campaignHandler.RegisterSale)
		}

		// 发售相关路由
		sales := v1.Group("/sales")
		{
			sales.GET("/:id", saleHandler.GetSale)
			sales.GET("/:id/stats", saleHandler.GetSaleStats)
			sales.GET("/:id/rounds", saleHandler.ListRounds)
			sales.POST("/:id/rounds", signed, saleHandler.AddRound)
		}

		// 轮次相关路由
		rounds := v1.Group("/rounds")
		{
			rounds.GET("/:id", roundHandler.GetRound)
			rounds.POST("/:id/activate", signed, roundHandler.ActivateRound)
			rounds.POST("/:id/purchases", signed, roundHandler.Purchase)
		}

		// 归属计划相关路由
		v1.GET("/investors/:address/grants", grantHandler.ListInvestorGrants)
		grants := v1.Group("/grants")
		{
			grants.GET("/:id", grantHandler.GetGrant)
			grants.GET("/:id/claims", grantHandler.GetGrantClaims)
			grants.POST("/:id/claim", signed, grantHandler.Claim)
		}
	}

	return r
}

// CORS中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, "+handler.SignerHeader+", "+RequestIdHeader)

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// 请求ID中间件，沿用客户端传入的ID，否则生成新的
func requestIdMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIdHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(RequestIdHeader, id)
		handler.SetRequestLogger(c, logger.With(zap.String("request_id", id)))
		c.Next()
	}
}

// 指标中间件
func metricsMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		m.ObserveRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
