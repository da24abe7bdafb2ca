package storage

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowboard/internal/shared/errors"
	"flowboard/internal/shared/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	log := logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return NewClient(srv.URL, "anon-key", "media", "tickets", log, WithHTTPClient(srv.Client()))
}

func TestUpload(t *testing.T) {
	payload := bytes.Repeat([]byte{0xAB}, 4096)

	var received []byte
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/storage/v1/object/media/tickets/shot.png", r.URL.Path)
		assert.Equal(t, "image/png", r.Header.Get("Content-Type"))
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer anon-key", r.Header.Get("Authorization"))

		var err error
		received, err = io.ReadAll(r.Body)
		require.NoError(t, err)
		w.WriteHeader(http.StatusOK)
	})

	var reports []int
	url, err := c.Upload(
		context.Background(),
		"shot.png",
		bytes.NewReader(payload),
		int64(len(payload)),
		"image/png",
		func(pct int) { reports = append(reports, pct) },
	)

	require.NoError(t, err)
	assert.Equal(t, payload, received)
	assert.True(t, strings.HasSuffix(url, "/storage/v1/object/public/media/tickets/shot.png"))

	require.NotEmpty(t, reports)
	assert.Equal(t, 100, reports[len(reports)-1])
	for i := 1; i < len(reports); i++ {
		assert.GreaterOrEqual(t, reports[i], reports[i-1], "progress never goes backwards")
	}
}

func TestUpload_TooLarge(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("oversized upload must not reach the network")
	})

	_, err := c.Upload(context.Background(), "big.mp4", bytes.NewReader(nil), maxUploadSize+1, "video/mp4", nil)

	require.Error(t, err)
	assert.True(t, errors.IsUploadError(err))
}

func TestUpload_AtLimit(t *testing.T) {
	// Exactly 10 MiB passes the gate.
	payload := bytes.Repeat([]byte{0x00}, maxUploadSize)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body)
		w.WriteHeader(http.StatusOK)
	})

	_, err := c.Upload(context.Background(), "ok.gif", bytes.NewReader(payload), int64(len(payload)), "image/gif", nil)

	require.NoError(t, err)
}

func TestUpload_UnsupportedType(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("rejected content type must not reach the network")
	})

	for _, contentType := range []string{"application/pdf", "text/html", "image/svg+xml", ""} {
		_, err := c.Upload(context.Background(), "f", bytes.NewReader([]byte("x")), 1, contentType, nil)
		require.Error(t, err, contentType)
		assert.True(t, errors.IsUploadError(err))
	}
}

func TestUpload_Empty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("empty upload must not reach the network")
	})

	_, err := c.Upload(context.Background(), "f.png", bytes.NewReader(nil), 0, "image/png", nil)

	require.Error(t, err)
	assert.True(t, errors.IsUploadError(err))
}

func TestUpload_ServerRejection(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"bucket not found"}`, http.StatusNotFound)
	})

	_, err := c.Upload(context.Background(), "f.png", bytes.NewReader([]byte("x")), 1, "image/png", nil)

	require.Error(t, err)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeUpload, appErr.Type)
}

func TestUpload_SessionToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
	}))
	t.Cleanup(srv.Close)

	log := logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
	c := NewClient(srv.URL, "anon-key", "media", "", log,
		WithHTTPClient(srv.Client()),
		WithTokenSource(func() string { return "session-token" }),
	)

	_, err := c.Upload(context.Background(), "f.png", bytes.NewReader([]byte("x")), 1, "image/png", nil)

	require.NoError(t, err)
	assert.Equal(t, "Bearer session-token", gotAuth)
}

func TestPublicURL_NoFolder(t *testing.T) {
	log := logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
	c := NewClient("https://xyz.supabase.co/", "anon-key", "media", "", log)

	assert.Equal(t, "https://xyz.supabase.co/storage/v1/object/public/media/f.png", c.PublicURL("f.png"))
}
