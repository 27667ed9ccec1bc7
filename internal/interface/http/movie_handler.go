package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	catalog "github.com/helliomastic/Movie-Final-Recom/internal/application"
	"github.com/helliomastic/Movie-Final-Recom/internal/domain/entity"
	"github.com/helliomastic/Movie-Final-Recom/internal/domain/repository"
	"github.com/helliomastic/Movie-Final-Recom/internal/infrastructure/tmdb"
	"github.com/helliomastic/Movie-Final-Recom/pkg/response"
	"github.com/helliomastic/Movie-Final-Recom/pkg/validation"
)

type MovieHandler struct {
	Svc    *catalog.CatalogService
	Logger *logrus.Logger
}

func NewMovieHandler(svc *catalog.CatalogService, logger *logrus.Logger) *MovieHandler {
	return &MovieHandler{Svc: svc, Logger: logger}
}

type addMovieRequest struct {
	Title       string  `form:"title" binding:"required"`
	Description string  `form:"description" binding:"required"`
	Genre       string  `form:"genre"`
	Director    string  `form:"director"`
	ReleaseDate string  `form:"release_date"`
	Rating      float64 `form:"rating"`
}

type recommendRequest struct {
	MovieName string `form:"movie_name" binding:"required"`
}

func movieJSON(m *entity.Movie) gin.H {
	return gin.H{
		"id":           m.ID,
		"title":        m.Title,
		"description":  m.Description,
		"image":        m.Image,
		"genre":        m.Genre,
		"director":     m.Director,
		"release_date": m.ReleaseDate,
		"rating":       m.Rating,
	}
}

// AdminPage GET /admin
func (h *MovieHandler) AdminPage(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"page": "admin"}, "add movie form", nil)
}

// AdminCreate POST /admin accepts the multipart add-movie form with poster upload.
func (h *MovieHandler) AdminCreate(c *gin.Context) {
	var req addMovieRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	fh, err := c.FormFile("image")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"image": "is required"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "unreadable image upload", nil)
		return
	}
	defer func() { _ = f.Close() }()

	in := catalog.AddMovieInput{
		Title:       req.Title,
		Description: req.Description,
		Genre:       req.Genre,
		Director:    req.Director,
		ReleaseDate: req.ReleaseDate,
		Rating:      req.Rating,
	}
	m, err := h.Svc.AddMovie(c.Request.Context(), in, fh.Filename, fh.Header.Get("Content-Type"), f)
	if err != nil {
		if errors.Is(err, catalog.ErrBadImageName) {
			response.Error[any](c, http.StatusBadRequest, "invalid image filename", nil)
			return
		}
		if h.Logger != nil {
			h.Logger.WithError(err).Error("add movie failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "failed to add movie", nil)
		return
	}

	c.Redirect(http.StatusSeeOther, "/movie/"+strconv.FormatInt(m.ID, 10))
}

// Show GET /movie/:id
func (h *MovieHandler) Show(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error[any](c, http.StatusNotFound, "movie not found", nil)
		return
	}
	m, err := h.Svc.GetMovie(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Error[any](c, http.StatusNotFound, "movie not found", nil)
			return
		}
		if h.Logger != nil {
			h.Logger.WithError(err).WithField("movie_id", id).Error("get movie failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "failed to load movie", nil)
		return
	}
	response.Success(c, http.StatusOK, movieJSON(m), "movie", nil)
}

// List GET /movie lists the catalog; ?q= searches it instead.
func (h *MovieHandler) List(c *gin.Context) {
	var (
		movies []*entity.Movie
		err    error
	)
	if q := c.Query("q"); q != "" {
		movies, err = h.Svc.SearchCatalog(c.Request.Context(), q, 20)
	} else {
		movies, err = h.Svc.ListMovies()
	}
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Error("list movies failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "failed to load movies", nil)
		return
	}

	out := make([]gin.H, 0, len(movies))
	for _, m := range movies {
		out = append(out, movieJSON(m))
	}
	response.Success(c, http.StatusOK, gin.H{"movies": out}, "movies", nil)
}

// Recommend POST /recommendations renders upstream search hits for a title.
// Upstream failures render a generic message with an empty list, never a 5xx.
func (h *MovieHandler) Recommend(c *gin.Context) {
	var req recommendRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	recs, err := h.Svc.Recommendations(c.Request.Context(), req.MovieName)
	if err != nil {
		response.Success(c, http.StatusOK, gin.H{
			"recommendations": []tmdb.Recommendation{},
			"error":           tmdb.Message,
		}, "recommendations", nil)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"recommendations": recs}, "recommendations", nil)
}
