package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/mmcdole/cinelist/internal/domain"
)

// Fixed listing constraints
const (
	StartYear = 2000
	EndYear   = 2025
	PageLimit = 10
)

const (
	defaultTimeout = 30 * time.Second
	defaultRPS     = 5
	userAgent      = "Cinelist/1.0"
)

// Options configures a catalog Client
type Options struct {
	BaseURL           string // defaults to https://{Host}
	Host              string // X-RapidAPI-Host
	APIKey            string // X-RapidAPI-Key
	Timeout           time.Duration
	RequestsPerSecond float64
}

// Client implements domain.CatalogClient against the RapidAPI movie catalog
type Client struct {
	baseURL    string
	host       string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates a new catalog API client
func NewClient(opts Options, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://" + opts.Host
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	rps := opts.RequestsPerSecond
	if rps <= 0 {
		rps = defaultRPS
	}
	return &Client{
		baseURL: baseURL,
		host:    opts.Host,
		apiKey:  opts.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		logger:  logger,
	}
}

// doRequest performs an authenticated GET request
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL = fmt.Sprintf("%s?%s", reqURL, query.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-RapidAPI-Key", c.apiKey)
	req.Header.Set("X-RapidAPI-Host", c.host)
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("catalog request", "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.logger.Error("catalog request failed", "error", err)
		return nil, domain.ErrServerOffline
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return body, nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, domain.ErrAuthFailed
	case http.StatusNotFound:
		return nil, domain.ErrMovieNotFound
	default:
		c.logger.Error("catalog request error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
}

// decode parses a JSON body, reporting shape problems as malformed responses
func (c *Client) decode(body []byte, dest any) error {
	if err := json.Unmarshal(body, dest); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	return nil
}

// ListByGenre returns one page of titles released 2000-2025.
// An empty genre lists all genres.
func (c *Client) ListByGenre(ctx context.Context, genre string, page int) (domain.MoviePage, error) {
	if page < 1 {
		page = 1
	}

	query := url.Values{}
	query.Set("startYear", strconv.Itoa(StartYear))
	query.Set("endYear", strconv.Itoa(EndYear))
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(PageLimit))
	if genre != "" {
		query.Set("genre", genre)
	}

	body, err := c.doRequest(ctx, "/titles", query)
	if err != nil {
		return domain.MoviePage{}, err
	}

	var resp listResponse
	if err := c.decode(body, &resp); err != nil {
		return domain.MoviePage{}, err
	}
	if resp.Results == nil {
		return domain.MoviePage{}, fmt.Errorf("%w: missing results", domain.ErrMalformedResponse)
	}

	movies, err := MapTitles(*resp.Results)
	if err != nil {
		return domain.MoviePage{}, err
	}

	entries := len(movies)
	if resp.Entries != nil {
		entries = *resp.Entries
	}
	if entries < 0 {
		return domain.MoviePage{}, fmt.Errorf("%w: negative entry count", domain.ErrMalformedResponse)
	}

	return domain.MoviePage{Results: movies, Entries: entries}, nil
}

// ListGenres returns the catalog's genre names in server order
func (c *Client) ListGenres(ctx context.Context) ([]string, error) {
	body, err := c.doRequest(ctx, "/titles/utils/genres", nil)
	if err != nil {
		return nil, err
	}

	var resp genresResponse
	if err := c.decode(body, &resp); err != nil {
		return nil, err
	}
	if resp.Results == nil {
		return nil, fmt.Errorf("%w: missing results", domain.ErrMalformedResponse)
	}

	return MapGenres(*resp.Results), nil
}

// GetByID returns a single title by its catalog key
func (c *Client) GetByID(ctx context.Context, ref string) (domain.Movie, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return domain.Movie{}, domain.ErrMovieNotFound
	}

	body, err := c.doRequest(ctx, "/titles/"+url.PathEscape(ref), nil)
	if err != nil {
		return domain.Movie{}, err
	}

	var resp detailResponse
	if err := c.decode(body, &resp); err != nil {
		return domain.Movie{}, err
	}
	if resp.Results == nil {
		return domain.Movie{}, domain.ErrMovieNotFound
	}

	return MapTitle(*resp.Results)
}
