package unsplash

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := New(Config{AccessKey: "test-key", BaseURL: srv.URL})
	require.NoError(t, err)
	return c, srv
}

func TestNew_RequiresAccessKey(t *testing.T) {
	_, err := New(Config{AccessKey: "  "})
	assert.ErrorIs(t, err, ErrNoAccessKey)
}

func TestSearch(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/photos", r.URL.Path)
		assert.Equal(t, "Client-ID test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "v1", r.Header.Get("Accept-Version"))

		q := r.URL.Query()
		assert.Equal(t, "mountain lake", q.Get("query"))
		assert.Equal(t, "30", q.Get("per_page"))
		assert.Equal(t, "latest", q.Get("order_by"))
		assert.Equal(t, "landscape", q.Get("orientation"))

		w.Write([]byte(`{"total":1,"total_pages":1,"results":[{"id":"abc","description":"Calm water","width":4000,"height":3000,"urls":{"regular":"https://img/r"},"user":{"name":"Ansel"}}]}`))
	}))

	photos, err := c.Search(context.Background(), SearchParams{
		Query:       "mountain lake",
		PerPage:     99,
		Orientation: "landscape",
		OrderBy:     "latest",
	})
	require.NoError(t, err)
	require.Len(t, photos, 1)
	assert.Equal(t, "abc", photos[0].ID)
	assert.Equal(t, "Ansel", photos[0].Photographer())
	assert.Equal(t, "https://img/r", photos[0].ImageURL())
}

func TestSearch_HTTPError(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"errors":["OAuth error: The access token is invalid"]}`))
	}))

	_, err := c.Search(context.Background(), SearchParams{Query: "x"})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "access token is invalid")
	assert.Equal(t, "Image service error", apiErr.Category())
}

func TestSearch_BadJSON(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": [`))
	}))

	_, err := c.Search(context.Background(), SearchParams{Query: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode response")
}

func TestRandom(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/photos/random", r.URL.Path)
		assert.Equal(t, "forest", r.URL.Query().Get("query"))
		assert.Empty(t, r.URL.Query().Get("orientation"))
		w.Write([]byte(`{"id":"rnd","alt_description":"trees","urls":{"full":"https://img/f"}}`))
	}))

	p, err := c.Random(context.Background(), "forest", "")
	require.NoError(t, err)
	assert.Equal(t, "rnd", p.ID)
	assert.Equal(t, "trees", p.Summary(50))
	assert.Equal(t, "https://img/f", p.ImageURL())
}

func TestDownloadAndTrack(t *testing.T) {
	var tracked int32
	mux := http.NewServeMux()
	mux.HandleFunc("/img/abc", func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write([]byte("JPEGDATA"))
	})
	mux.HandleFunc("/photos/abc/download", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Client-ID test-key", r.Header.Get("Authorization"))
		atomic.AddInt32(&tracked, 1)
		w.Write([]byte(`{"url":"https://img/abc"}`))
	})
	c, srv := newTestClient(t, mux)

	p := &Photo{ID: "abc"}
	p.URLs.Regular = srv.URL + "/img/abc"
	p.Links.DownloadLocation = srv.URL + "/photos/abc/download"

	dir := t.TempDir()
	path, err := c.Download(context.Background(), p, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "unsplash_abc.jpg"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "JPEGDATA", string(data))

	require.NoError(t, c.TrackDownload(context.Background(), p))
	assert.Equal(t, int32(1), atomic.LoadInt32(&tracked))
}

func TestDownload_NoURL(t *testing.T) {
	c, _ := newTestClient(t, http.NotFoundHandler())

	_, err := c.Download(context.Background(), &Photo{ID: "x"}, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no downloadable URL")
}

func TestPhotoSummary(t *testing.T) {
	p := &Photo{Description: "A very long description of a mountain range at sunrise, golden light"}
	assert.Equal(t, "A very long description of a mountain range at sun...", p.Summary(50))

	assert.Equal(t, "No description", (&Photo{}).Summary(50))
	assert.Equal(t, "Unknown", (&Photo{}).Photographer())
	assert.Equal(t, "unsplash_unknown.jpg", (&Photo{}).FileName())
}
