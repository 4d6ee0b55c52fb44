package router

import (
	"strconv"
	"strings"
	"time"

	"github.com/relief-next/internal/config"
	"github.com/relief-next/internal/constants"
	"github.com/relief-next/internal/http/response"
	"github.com/relief-next/internal/logger"
	"github.com/relief-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDMiddleware 为每个请求生成追踪 ID
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(constants.CtxKeyRequestID, requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// LoggerMiddleware 请求访问日志
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Infow("http_request",
			"request_id", c.GetString(constants.CtxKeyRequestID),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
	}
}

// CORSMiddleware 跨域处理
func CORSMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	allowedOrigins := []string{"*"}
	allowedMethods := "GET, POST, PUT, DELETE, OPTIONS"
	allowedHeaders := "Content-Type, Authorization"
	allowCredentials := "false"
	maxAge := "600"
	if cfg != nil {
		if len(cfg.AllowedOrigins) > 0 {
			allowedOrigins = cfg.AllowedOrigins
		}
		if len(cfg.AllowedMethods) > 0 {
			allowedMethods = strings.Join(cfg.AllowedMethods, ", ")
		}
		if len(cfg.AllowedHeaders) > 0 {
			allowedHeaders = strings.Join(cfg.AllowedHeaders, ", ")
		}
		if cfg.AllowCredentials {
			allowCredentials = "true"
		}
		if cfg.MaxAge > 0 {
			maxAge = strconv.Itoa(cfg.MaxAge)
		}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		allowed := ""
		for _, candidate := range allowedOrigins {
			if candidate == "*" || candidate == origin {
				allowed = candidate
				break
			}
		}
		if allowed != "" {
			c.Header("Access-Control-Allow-Origin", allowed)
			c.Header("Access-Control-Allow-Methods", allowedMethods)
			c.Header("Access-Control-Allow-Headers", allowedHeaders)
			c.Header("Access-Control-Allow-Credentials", allowCredentials)
			c.Header("Access-Control-Max-Age", maxAge)
		}
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}

// AuthMiddleware 必须携带有效 JWT
func AuthMiddleware(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseBearer(c, authService)
		if !ok {
			response.Error(c, response.CodeUnauthorized, "authentication required")
			c.Abort()
			return
		}
		c.Set(constants.CtxKeyActorID, claims.UserID)
		c.Set(constants.CtxKeyActorRole, claims.Role)
		c.Next()
	}
}

// OptionalAuthMiddleware 可匿名访问，携带有效 JWT 时注入操作者身份
func OptionalAuthMiddleware(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := parseBearer(c, authService); ok {
			c.Set(constants.CtxKeyActorID, claims.UserID)
			c.Set(constants.CtxKeyActorRole, claims.Role)
		}
		c.Next()
	}
}

func parseBearer(c *gin.Context, authService *service.AuthService) (*service.AuthClaims, bool) {
	header := c.GetHeader("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return nil, false
	}
	claims, err := authService.ParseToken(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		return nil, false
	}
	return claims, true
}
