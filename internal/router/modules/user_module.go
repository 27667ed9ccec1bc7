package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/helliomastic/Movie-Final-Recom/internal/application"
	"github.com/helliomastic/Movie-Final-Recom/internal/container"
	handlers "github.com/helliomastic/Movie-Final-Recom/internal/interface/http"
	"github.com/helliomastic/Movie-Final-Recom/internal/interface/middleware"
	"github.com/helliomastic/Movie-Final-Recom/pkg/helpers"
)

// UserModule wires account routes.
// Public: GET /, GET+POST /register, GET+POST /login, GET /logout
// Protected: GET /dashboard

type UserModule struct {
	Handler  *handlers.UserHandler
	JWT      *helpers.JWTManager
	Sessions application.SessionStore
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager, sessions application.SessionStore) *UserModule {
	return &UserModule{Handler: h, JWT: jwt, Sessions: sessions}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	// Credential endpoints get tighter per-IP limits
	registerLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)

	rg.GET("/", m.Handler.Home)
	rg.GET("/register", m.Handler.RegisterPage)
	rg.POST("/register", registerLimiter, m.Handler.Register)
	rg.GET("/login", m.Handler.LoginPage)
	rg.POST("/login", loginLimiter, m.Handler.Login)
	rg.GET("/logout", m.Handler.Logout)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Sessions, m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("/dashboard", m.Handler.Dashboard)
	}
}
