package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KokoroRay/Shopflow-E-commerce-sub000/internal/container"
	handlers "github.com/KokoroRay/Shopflow-E-commerce-sub000/internal/interface/http"
	"github.com/KokoroRay/Shopflow-E-commerce-sub000/internal/interface/middleware"
)

type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// Public endpoints with per-IP-per-route limits. Reset init is the
	// tightest: it sends email.
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	resetInitLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	resetConfirmLimiter := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/auth/login", loginLimiter, m.Handler.Login)
	rg.POST("/auth/refresh", m.Handler.Refresh)
	rg.POST("/auth/logout", m.Handler.Logout)
	rg.POST("/auth/reset/init", resetInitLimiter, m.Handler.RequestReset)
	rg.POST("/auth/reset/verify", resetConfirmLimiter, m.Handler.VerifyReset)
	rg.POST("/auth/reset/confirm", resetConfirmLimiter, m.Handler.CompleteReset)
}
