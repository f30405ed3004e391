// Package unsplash is a small client for the Unsplash photo API.
//
// Only the calls needed to place stock photos on slides are covered:
// search, random photo, image download and the download tracking ping the
// API guidelines require once a photo is actually used.
package unsplash

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"keynote-mcp/internal/logger"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	DefaultBaseURL = "https://api.unsplash.com"
	DefaultTimeout = 30 * time.Second

	// MaxPerPage is the largest page size the search endpoint accepts
	MaxPerPage = 30
)

// ErrNoAccessKey is returned by New when no access key is configured
var ErrNoAccessKey = errors.New("unsplash access key is not configured")

// Config configures the client
type Config struct {
	AccessKey  string
	BaseURL    string        // default DefaultBaseURL
	Timeout    time.Duration // default DefaultTimeout
	HTTPClient *http.Client  // optional, overrides Timeout
	Logger     *logger.Logger
}

// Client talks to the Unsplash API
type Client struct {
	http      *http.Client
	baseURL   string
	accessKey string
	logger    *logger.Logger
}

// New creates a client. It fails with ErrNoAccessKey when cfg has no key,
// which callers treat as "image tools unavailable".
func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.AccessKey) == "" {
		return nil, ErrNoAccessKey
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}

	return &Client{
		http:      httpClient,
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		accessKey: strings.TrimSpace(cfg.AccessKey),
		logger:    log,
	}, nil
}

// SearchParams are the supported /search/photos filters
type SearchParams struct {
	Query       string
	PerPage     int    // clamped to [1, MaxPerPage]
	Orientation string // landscape, portrait, squarish or empty
	OrderBy     string // relevant or latest, empty for relevant
}

type searchResponse struct {
	Total      int     `json:"total"`
	TotalPages int     `json:"total_pages"`
	Results    []Photo `json:"results"`
}

// Search returns photos matching p.Query
func (c *Client) Search(ctx context.Context, p SearchParams) ([]Photo, error) {
	perPage := p.PerPage
	if perPage < 1 {
		perPage = 10
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	orderBy := p.OrderBy
	if orderBy == "" {
		orderBy = "relevant"
	}

	q := url.Values{}
	q.Set("query", p.Query)
	q.Set("per_page", strconv.Itoa(perPage))
	q.Set("order_by", orderBy)
	if p.Orientation != "" {
		q.Set("orientation", p.Orientation)
	}

	var resp searchResponse
	if err := c.getJSON(ctx, "search", c.baseURL+"/search/photos?"+q.Encode(), &resp); err != nil {
		return nil, err
	}
	c.logger.Debug("unsplash search %q returned %d of %d photos", p.Query, len(resp.Results), resp.Total)
	return resp.Results, nil
}

// Random returns one random photo, optionally matching query and orientation
func (c *Client) Random(ctx context.Context, query, orientation string) (*Photo, error) {
	q := url.Values{}
	if query != "" {
		q.Set("query", query)
	}
	if orientation != "" {
		q.Set("orientation", orientation)
	}

	endpoint := c.baseURL + "/photos/random"
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}

	var photo Photo
	if err := c.getJSON(ctx, "random photo", endpoint, &photo); err != nil {
		return nil, err
	}
	return &photo, nil
}

// Download saves the photo's image into dir as unsplash_<id>.jpg and
// returns the file path
func (c *Client) Download(ctx context.Context, photo *Photo, dir string) (string, error) {
	imageURL := photo.ImageURL()
	if imageURL == "" {
		return "", &APIError{Op: "download", Err: fmt.Errorf("photo %s has no downloadable URL", photo.ID)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", &APIError{Op: "download", Err: err}
	}
	// image CDN URLs are public; no credential header
	resp, err := c.http.Do(req)
	if err != nil {
		return "", &APIError{Op: "download", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", newStatusError("download", resp)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &APIError{Op: "save image", Err: err}
	}
	path := filepath.Join(dir, photo.FileName())

	f, err := os.Create(path)
	if err != nil {
		return "", &APIError{Op: "save image", Err: err}
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(path)
		return "", &APIError{Op: "save image", Err: err}
	}
	if err := f.Close(); err != nil {
		return "", &APIError{Op: "save image", Err: err}
	}

	c.logger.Debug("downloaded photo %s to %s", photo.ID, path)
	return path, nil
}

// TrackDownload pings the photo's download_location. Unsplash requires it
// once a photo is actually used.
func (c *Client) TrackDownload(ctx context.Context, photo *Photo) error {
	if photo.Links.DownloadLocation == "" {
		return nil
	}
	var ignored map[string]any
	return c.getJSON(ctx, "track download", photo.Links.DownloadLocation, &ignored)
}

func (c *Client) getJSON(ctx context.Context, op, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &APIError{Op: op, Err: err}
	}
	req.Header.Set("Authorization", "Client-ID "+c.accessKey)
	req.Header.Set("Accept-Version", "v1")

	resp, err := c.http.Do(req)
	if err != nil {
		return &APIError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return newStatusError(op, resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &APIError{Op: op, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}
