package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrUpstreamUnavailable covers every HTTP-level failure talking to TMDB.
// Handlers show Message to the user; the underlying detail is only logged.
var ErrUpstreamUnavailable = errors.New("tmdb unavailable")

// Message is the generic user-facing text rendered when the upstream call fails.
const Message = "Error fetching data from TMDB API. Please try again later."

// Recommendation is one search hit projected for display.
// PosterURL is nil when the upstream result carries no poster_path.
type Recommendation struct {
	Name      string  `json:"name"`
	PosterURL *string `json:"poster_url,omitempty"`
}

// Client calls the TMDB movie search endpoint.
type Client struct {
	BaseURL      string
	ImageBaseURL string
	APIKey       string
	HTTP         *http.Client
	Logger       *logrus.Logger
}

func NewClient(baseURL, imageBaseURL, apiKey string, timeout time.Duration, logger *logrus.Logger) *Client {
	return &Client{
		BaseURL:      baseURL,
		ImageBaseURL: imageBaseURL,
		APIKey:       apiKey,
		HTTP:         &http.Client{Timeout: timeout},
		Logger:       logger,
	}
}

type searchResponse struct {
	Results []struct {
		Title      string `json:"title"`
		PosterPath string `json:"poster_path"`
	} `json:"results"`
}

// Search queries /search/movie and projects title/poster_path into Recommendations.
// A missing results key yields an empty slice, not an error.
func (c *Client) Search(ctx context.Context, title string) ([]Recommendation, error) {
	q := url.Values{}
	q.Set("api_key", c.APIKey)
	q.Set("query", title)
	endpoint := c.BaseURL + "/search/movie?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	res, err := c.HTTP.Do(req)
	if err != nil {
		if c.Logger != nil {
			c.Logger.WithError(err).Warn("tmdb search request failed")
		}
		return nil, ErrUpstreamUnavailable
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		if c.Logger != nil {
			c.Logger.WithField("status", res.StatusCode).Warn("tmdb search returned non-2xx")
		}
		return nil, ErrUpstreamUnavailable
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		if c.Logger != nil {
			c.Logger.WithError(err).Warn("tmdb search body decode failed")
		}
		return nil, ErrUpstreamUnavailable
	}

	out := make([]Recommendation, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		rec := Recommendation{Name: r.Title}
		if r.PosterPath != "" {
			u := c.ImageBaseURL + r.PosterPath
			rec.PosterURL = &u
		}
		out = append(out, rec)
	}
	return out, nil
}
