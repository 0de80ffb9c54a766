package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/piyushmali/solana-launchpad/internal/launchpad"
	"github.com/piyushmali/solana-launchpad/internal/logger"
)

// SignerHeader 请求签名者地址
const SignerHeader = "X-Signer"

const (
	signerKey = "signer"
	loggerKey = "logger"
)

// RequireSigner 校验 X-Signer 为合法的 base58 公钥
func RequireSigner() gin.HandlerFunc {
	return func(c *gin.Context) {
		signer := c.GetHeader(SignerHeader)
		if signer == "" {
			ErrorResponse(c, http.StatusUnauthorized, "缺少签名者")
			c.Abort()
			return
		}
		if !launchpad.ValidIdentity(signer) {
			ErrorResponse(c, http.StatusBadRequest, "无效的签名者地址")
			c.Abort()
			return
		}
		c.Set(signerKey, signer)
		c.Next()
	}
}

func signerOf(c *gin.Context) string {
	return c.GetString(signerKey)
}

// SetRequestLogger 绑定请求级日志器
func SetRequestLogger(c *gin.Context, l *logger.Logger) {
	c.Set(loggerKey, l)
}

// RequestLogger 请求级日志器，未绑定时返回默认日志器
func RequestLogger(c *gin.Context) *logger.Logger {
	if v, ok := c.Get(loggerKey); ok {
		if l, ok := v.(*logger.Logger); ok {
			return l
		}
	}
	return logger.With()
}
