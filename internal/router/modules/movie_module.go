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

// MovieModule wires catalog and recommendation routes.
// Public: GET /admin, GET /movie, GET /movie/:id, POST /recommendations
// Protected: POST /admin (only a logged-in admin adds movies)

type MovieModule struct {
	Handler  *handlers.MovieHandler
	JWT      *helpers.JWTManager
	Sessions application.SessionStore
}

func NewMovieModule(h *handlers.MovieHandler, jwt *helpers.JWTManager, sessions application.SessionStore) *MovieModule {
	return &MovieModule{Handler: h, JWT: jwt, Sessions: sessions}
}

func (m *MovieModule) Register(rg *gin.RouterGroup) {
	// The upstream call is slow-ish; keep the abuse window small per IP.
	recommendLimiter := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())

	rg.GET("/admin", m.Handler.AdminPage)
	rg.GET("/movie", m.Handler.List)
	rg.GET("/movie/:id", m.Handler.Show)
	rg.POST("/recommendations", recommendLimiter, m.Handler.Recommend)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Sessions, m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/admin", m.Handler.AdminCreate)
	}
}
