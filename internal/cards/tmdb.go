package cards

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/samber/lo"
)

const (
	tmdbAPIBase   = "https://api.themoviedb.org/3"
	tmdbImageBase = "https://image.tmdb.org/t/p/w500"

	// Popularity-sorted discover pages to sample a "random" deck from.
	tmdbSamplePages = 10

	tmdbMaxAttempts = 3
)

// ErrUnavailable wraps transient TMDB failures (rate limits, 5xx, network)
// so handlers can map them to a "service temporarily unavailable" response.
var ErrUnavailable = errors.New("card source unavailable")

// Genres maps friendly names to TMDB genre ids.
var Genres = map[string]int{
	"comedy":  35,
	"drama":   18,
	"action":  28,
	"horror":  27,
	"scifi":   878,
	"romance": 10749,
}

// DefaultGenreID is used when the client doesn't pick a genre.
var DefaultGenreID = Genres["comedy"]

// TMDBClient resolves movie card decks from the TMDB discover endpoint.
type TMDBClient struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
	logger  *slog.Logger
}

func NewTMDBClient(baseURL, apiKey string, logger *slog.Logger) *TMDBClient {
	if baseURL == "" {
		baseURL = tmdbAPIBase
	}
	return &TMDBClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpc:   &http.Client{Timeout: 10 * time.Second},
		logger:  logger,
	}
}

type tmdbMovie struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	PosterPath  string  `json:"poster_path"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`
	GenreIDs    []int   `json:"genre_ids"`
}

type tmdbDiscoverResponse struct {
	Page       int         `json:"page"`
	TotalPages int         `json:"total_pages"`
	Results    []tmdbMovie `json:"results"`
}

// RandomCards samples one popular-movies page for the genre, keeps entries
// with a poster, and returns up to limit cards in random order.
func (c *TMDBClient) RandomCards(ctx context.Context, genreID, limit int) ([]Card, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: TMDB_API_KEY is not configured", ErrUnavailable)
	}

	page := rand.IntN(tmdbSamplePages) + 1
	discover, err := c.discover(ctx, genreID, page)
	if err != nil {
		return nil, err
	}

	withPoster := lo.Filter(discover.Results, func(m tmdbMovie, _ int) bool {
		return m.PosterPath != ""
	})

	shuffled := lo.Shuffle(withPoster)
	if len(shuffled) > limit {
		shuffled = shuffled[:limit]
	}
	if len(shuffled) == 0 {
		return nil, fmt.Errorf("%w: empty discover result for genre %d", ErrUnavailable, genreID)
	}

	deck := make([]Card, 0, len(shuffled))
	for _, m := range shuffled {
		genreIDs := m.GenreIDs
		if len(genreIDs) == 0 {
			genreIDs = []int{genreID}
		}
		deck = append(deck, Card{
			ID:          "tmdb:" + strconv.Itoa(m.ID),
			Title:       m.Title,
			Description: m.Overview,
			ImageURL:    tmdbImageBase + m.PosterPath,
			Source:      SourceTMDB,
			TMDB: &TMDBInfo{
				MovieID:     m.ID,
				GenreIDs:    genreIDs,
				ReleaseDate: m.ReleaseDate,
				Rating:      m.VoteAverage,
			},
		})
	}
	return deck, nil
}

func (c *TMDBClient) discover(ctx context.Context, genreID, page int) (*tmdbDiscoverResponse, error) {
	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("sort_by", "popularity.desc")
	q.Set("include_adult", "false")
	q.Set("include_video", "false")
	q.Set("with_genres", strconv.Itoa(genreID))
	q.Set("page", strconv.Itoa(page))
	endpoint := c.baseURL + "/discover/movie?" + q.Encode()

	var lastErr error
	for attempt := 0; attempt < tmdbMaxAttempts; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(attempt) * 500 * time.Millisecond
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		resp, err := c.do(ctx, endpoint)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if !errors.Is(err, errRetryable) {
			return nil, err
		}
		c.logger.Warn("tmdb discover retry", "attempt", attempt+1, "error", err)
	}
	return nil, fmt.Errorf("%w: %v", ErrUnavailable, lastErr)
}

var errRetryable = errors.New("retryable")

func (c *TMDBClient) do(ctx context.Context, endpoint string) (*tmdbDiscoverResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errRetryable, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusTooManyRequests || res.StatusCode >= 500 {
		return nil, fmt.Errorf("%w: tmdb HTTP %d", errRetryable, res.StatusCode)
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: tmdb HTTP %d", ErrUnavailable, res.StatusCode)
	}

	var out tmdbDiscoverResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: decoding tmdb response: %v", ErrUnavailable, err)
	}
	return &out, nil
}
