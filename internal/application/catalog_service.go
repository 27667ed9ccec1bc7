package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/helliomastic/Movie-Final-Recom/internal/domain/entity"
	repo "github.com/helliomastic/Movie-Final-Recom/internal/domain/repository"
	"github.com/helliomastic/Movie-Final-Recom/internal/infrastructure/tmdb"
)

// ErrBadImageName rejects uploads whose filename is empty or carries path separators.
var ErrBadImageName = errors.New("invalid image filename")

// PosterStore persists an uploaded poster and returns its public URL.
type PosterStore interface {
	Save(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
}

// Recommender is the external movie-search dependency.
type Recommender interface {
	Search(ctx context.Context, title string) ([]tmdb.Recommendation, error)
}

type CatalogService struct {
	Repo          repo.MovieRepository
	Posters       PosterStore
	Rec           Recommender
	Logger        *logrus.Logger
	ES            *elasticsearch.Client
	ESMoviesIndex string
}

func NewCatalogService(repo repo.MovieRepository, posters PosterStore, rec Recommender, logger *logrus.Logger, es *elasticsearch.Client, esMoviesIndex string) *CatalogService {
	return &CatalogService{
		Repo:          repo,
		Posters:       posters,
		Rec:           rec,
		Logger:        logger,
		ES:            es,
		ESMoviesIndex: esMoviesIndex,
	}
}

type AddMovieInput struct {
	Title       string
	Description string
	Genre       string
	Director    string
	ReleaseDate string
	Rating      float64
}

// AddMovie stores the uploaded poster and persists the movie.
func (s *CatalogService) AddMovie(ctx context.Context, in AddMovieInput, filename, contentType string, image io.Reader) (*entity.Movie, error) {
	if filename == "" || strings.ContainsAny(filename, `/\`) || strings.Contains(filename, "..") {
		return nil, ErrBadImageName
	}

	imageRef := filename
	if s.Posters != nil && image != nil {
		ext := strings.ToLower(filepath.Ext(filename))
		objectPath := "posters/" + uuid.NewString() + ext
		url, err := s.Posters.Save(ctx, objectPath, contentType, image)
		if err != nil {
			return nil, err
		}
		imageRef = url
	}

	m := &entity.Movie{
		Title:       in.Title,
		Description: in.Description,
		Image:       imageRef,
		Genre:       in.Genre,
		Director:    in.Director,
		ReleaseDate: in.ReleaseDate,
		Rating:      in.Rating,
	}
	if err := s.Repo.Create(m); err != nil {
		return nil, err
	}

	_ = s.indexMovie(ctx, m)
	return m, nil
}

func (s *CatalogService) GetMovie(id int64) (*entity.Movie, error) {
	return s.Repo.GetByID(id)
}

func (s *CatalogService) ListMovies() ([]*entity.Movie, error) {
	return s.Repo.List()
}

// Recommendations queries the upstream search API for display-ready results.
func (s *CatalogService) Recommendations(ctx context.Context, title string) ([]tmdb.Recommendation, error) {
	return s.Rec.Search(ctx, title)
}

// movieDoc is the Elasticsearch document shape for a catalog movie.
type movieDoc struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Genre       string  `json:"genre"`
	Director    string  `json:"director"`
	ReleaseDate string  `json:"release_date"`
	Rating      float64 `json:"rating"`
	CreatedAt   string  `json:"created_at"`
}

func (s *CatalogService) indexMovie(ctx context.Context, m *entity.Movie) error {
	if s.ES == nil || s.ESMoviesIndex == "" {
		return nil
	}
	doc := movieDoc{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Image:       m.Image,
		Genre:       m.Genre,
		Director:    m.Director,
		ReleaseDate: m.ReleaseDate,
		Rating:      m.Rating,
		CreatedAt:   m.CreatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESMoviesIndex, DocumentID: strconv.FormatInt(m.ID, 10), Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("movie_id", m.ID).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("movie_id", m.ID).Warn("es index response error")
	}
	return nil
}

// SearchCatalog runs a multi_match over the indexed movies. Without an ES client
// it degrades to a substring scan over the SQL list.
func (s *CatalogService) SearchCatalog(ctx context.Context, q string, size int) ([]*entity.Movie, error) {
	if size <= 0 || size > 50 {
		size = 10
	}
	if s.ES == nil || s.ESMoviesIndex == "" {
		return s.scanCatalog(q)
	}

	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^2", "description", "genre", "director"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(s.ESMoviesIndex), s.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source movieDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]*entity.Movie, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		d := h.Source
		created, _ := time.Parse(time.RFC3339Nano, d.CreatedAt)
		out = append(out, &entity.Movie{
			ID:          d.ID,
			Title:       d.Title,
			Description: d.Description,
			Image:       d.Image,
			Genre:       d.Genre,
			Director:    d.Director,
			ReleaseDate: d.ReleaseDate,
			Rating:      d.Rating,
			CreatedAt:   created,
		})
	}
	return out, nil
}

func (s *CatalogService) scanCatalog(q string) ([]*entity.Movie, error) {
	all, err := s.Repo.List()
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(q)
	out := make([]*entity.Movie, 0)
	for _, m := range all {
		hay := strings.ToLower(m.Title + " " + m.Description + " " + m.Genre + " " + m.Director)
		if strings.Contains(hay, needle) {
			out = append(out, m)
		}
	}
	return out, nil
}
