package router

import (
	app "github.com/helliomastic/Movie-Final-Recom/internal/application"
	"github.com/helliomastic/Movie-Final-Recom/internal/container"
	gcsinfra "github.com/helliomastic/Movie-Final-Recom/internal/infrastructure/gcs"
	pginfra "github.com/helliomastic/Movie-Final-Recom/internal/infrastructure/postgres"
	"github.com/helliomastic/Movie-Final-Recom/internal/infrastructure/redisstore"
	"github.com/helliomastic/Movie-Final-Recom/internal/infrastructure/tmdb"
	handlers "github.com/helliomastic/Movie-Final-Recom/internal/interface/http"
	"github.com/helliomastic/Movie-Final-Recom/internal/router/modules"
)

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	sessions := redisstore.NewSessionStore(container.GetRedis())

	userRepo := pginfra.NewUserRepository(container.GetPGPool())
	userSvc := app.NewUserService(
		userRepo,
		container.GetJWT(),
		sessions,
		logger,
		container.GetRabbitPub(),
		cfg.MailSendEnabled,
		cfg.SessionTTL,
	)
	userHandler := handlers.NewUserHandler(userSvc, container.GetJWT(), logger, cfg.CookieDomain, cfg.CookieSecure)

	var posters app.PosterStore
	if container.GetGCS() != nil && cfg.GCSBucket != "" {
		posters = gcsinfra.NewPosterStore(container.GetGCS(), cfg.GCSBucket)
	}
	var rec app.Recommender = tmdb.NewClient(cfg.TMDBBaseURL, cfg.TMDBImageBaseURL, cfg.TMDBAPIKey, cfg.TMDBTimeout, logger)
	if rdb := container.GetRedis(); rdb != nil {
		rec = redisstore.NewRecommendCache(rec, rdb, cfg.TMDBCacheTTL)
	}

	movieRepo := pginfra.NewMovieRepository(container.GetPGPool())
	catalogSvc := app.NewCatalogService(movieRepo, posters, rec, logger, container.GetES(), cfg.ESMoviesIndex)
	movieHandler := handlers.NewMovieHandler(catalogSvc, logger)

	r.Add(modules.NewUserModule(userHandler, container.GetJWT(), sessions))
	r.Add(modules.NewMovieModule(movieHandler, container.GetJWT(), sessions))
}
