package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"flowboard/internal/shared/errors"
	"flowboard/internal/shared/logger"
)

// maxUploadSize is the hard cap on attachment size.
const maxUploadSize = 10 << 20 // 10 MiB

// allowedContentTypes is the attachment whitelist. Anything else is
// rejected before a single byte leaves the machine.
var allowedContentTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/gif":  {},
	"video/mp4":  {},
}

// Client uploads ticket media to the object storage API under the same
// project base URL as the data gateway.
type Client struct {
	baseURL    string
	anonKey    string
	bucket     string
	folder     string
	httpClient *http.Client
	logger     logger.Interface
	tokenFunc  func() string
}

// Option is a function that configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(client *Client) {
		client.httpClient.Timeout = d
	}
}

// WithTokenSource sets the bearer token source, normally the signed-in
// session. Without it uploads authenticate with the anon key.
func WithTokenSource(fn func() string) Option {
	return func(client *Client) {
		client.tokenFunc = fn
	}
}

// NewClient creates a storage client for one bucket. folder may be empty;
// otherwise objects land under "{folder}/{name}".
func NewClient(baseURL, anonKey, bucket, folder string, log logger.Interface, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		anonKey: anonKey,
		bucket:  bucket,
		folder:  folder,
		logger:  log.Named("storage"),
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.tokenFunc == nil {
		c.tokenFunc = func() string { return c.anonKey }
	}
	return c
}

func (c *Client) objectPath(objectName string) string {
	if c.folder == "" {
		return objectName
	}
	return c.folder + "/" + objectName
}

// PublicURL returns the public download URL for an uploaded object.
func (c *Client) PublicURL(objectName string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.baseURL, c.bucket, c.objectPath(objectName))
}

// Upload stores the object and returns its public URL. Size and content
// type are gated locally first; a rejection here makes no network call.
// progress, when non-nil, receives percentages from 0 to 100 as bytes go
// out.
func (c *Client) Upload(ctx context.Context, objectName string, r io.Reader, size int64, contentType string, progress func(pct int)) (string, error) {
	if size <= 0 {
		return "", errors.NewUploadError("file is empty")
	}
	if size > maxUploadSize {
		return "", errors.NewUploadError(
			"file exceeds the 10 MB limit",
			fmt.Sprintf("size=%d", size),
		)
	}
	if _, ok := allowedContentTypes[contentType]; !ok {
		return "", errors.NewUploadError(
			"unsupported file type",
			fmt.Sprintf("content_type=%s", contentType),
		)
	}

	reqURL := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, c.bucket, c.objectPath(objectName))

	body := &countingReader{r: r, total: size, progress: progress}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, body)
	if err != nil {
		return "", errors.NewInternalError(fmt.Sprintf("create request: %v", err))
	}
	req.ContentLength = size
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+c.tokenFunc())
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.NewUploadError(fmt.Sprintf("upload failed: %v", err))
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Errorw("upload rejected", "object", objectName, "status", resp.StatusCode)
		return "", errors.NewUploadError(
			fmt.Sprintf("upload rejected: status=%d", resp.StatusCode),
			string(respBody),
		)
	}

	if progress != nil {
		progress(100)
	}

	publicURL := c.PublicURL(objectName)
	c.logger.Infow("uploaded media", "object", objectName, "size", size, "url", publicURL)
	return publicURL, nil
}

// countingReader reports cumulative progress as the request body drains.
type countingReader struct {
	r        io.Reader
	total    int64
	read     int64
	lastPct  int
	progress func(pct int)
}

func (cr *countingReader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	cr.read += int64(n)
	if cr.progress != nil && cr.total > 0 {
		pct := int(cr.read * 100 / cr.total)
		if pct > 100 {
			pct = 100
		}
		if pct != cr.lastPct {
			cr.lastPct = pct
			cr.progress(pct)
		}
	}
	return n, err
}
