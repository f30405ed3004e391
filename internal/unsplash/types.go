package unsplash

import (
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Photo is the subset of an Unsplash photo record used here
type Photo struct {
	ID             string `json:"id"`
	Description    string `json:"description"`
	AltDescription string `json:"alt_description"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
	Likes          int    `json:"likes"`
	URLs           struct {
		Full    string `json:"full"`
		Regular string `json:"regular"`
		Small   string `json:"small"`
	} `json:"urls"`
	Links struct {
		HTML             string `json:"html"`
		DownloadLocation string `json:"download_location"`
	} `json:"links"`
	User struct {
		Name     string `json:"name"`
		Username string `json:"username"`
	} `json:"user"`
}

// Summary returns the description, falling back to the alt text, cut to
// limit runes
func (p *Photo) Summary(limit int) string {
	s := p.Description
	if s == "" {
		s = p.AltDescription
	}
	if s == "" {
		return "No description"
	}
	r := []rune(s)
	if len(r) > limit {
		return string(r[:limit]) + "..."
	}
	return s
}

// Photographer returns the author's display name
func (p *Photo) Photographer() string {
	if p.User.Name != "" {
		return p.User.Name
	}
	if p.User.Username != "" {
		return p.User.Username
	}
	return "Unknown"
}

// ImageURL prefers the regular size and falls back to full
func (p *Photo) ImageURL() string {
	if p.URLs.Regular != "" {
		return p.URLs.Regular
	}
	return p.URLs.Full
}

// FileName is the local file name a downloaded photo is saved under
func (p *Photo) FileName() string {
	id := p.ID
	if id == "" {
		id = "unknown"
	}
	return "unsplash_" + id + ".jpg"
}

// APIError is any failure talking to Unsplash: transport errors, non-200
// responses and undecodable bodies
type APIError struct {
	Op         string
	StatusCode int
	Body       string
	Err        error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unsplash %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("unsplash %s: HTTP %d: %s", e.Op, e.StatusCode, e.Body)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Category labels these failures in tool responses
func (e *APIError) Category() string {
	return "Image service error"
}

func newStatusError(op string, resp *http.Response) *APIError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return &APIError{
		Op:         op,
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(body)),
	}
}
