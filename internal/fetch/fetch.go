package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/net/html/charset"

	"fbauer/flatwatcher/internal/state"
	"fbauer/flatwatcher/logger"
	watcherrors "fbauer/flatwatcher/pkg/errors"
	"fbauer/flatwatcher/services/cache"
)

const (
	requestTimeout = 30 * time.Second
	defaultBackoff = 5 * time.Minute
)

// Status classifies a fetch outcome
type Status int

const (
	// StatusContent means the page changed and a body is available
	StatusContent Status = iota
	// StatusNotModified means the conditional request matched; no body
	StatusNotModified
	// StatusError means the request failed or returned an unexpected status
	StatusError
)

// Result is the outcome of one conditional retrieval. On StatusContent, Body
// holds the UTF-8 decoded markup and Meta the validators to replay next time.
type Result struct {
	Status Status
	Body   string
	Meta   state.Meta
	Err    error
}

// Fetcher performs conditional GETs against the target page
type Fetcher struct {
	url        string
	userAgent  string
	client     *http.Client
	cache      cache.CacheService
	backoffKey string
	log        *logger.Logger
}

// New creates a fetcher for the target URL. cacheSvc may be nil; when set it
// is used to honor rate-limit backoff windows across cycles.
func New(targetURL, userAgent string, cacheSvc cache.CacheService, log *logger.Logger) *Fetcher {
	backoffKey := "fetch_backoff"
	if u, err := url.Parse(targetURL); err == nil && u.Host != "" {
		backoffKey = "fetch_backoff_" + u.Host
	}

	return &Fetcher{
		url:       targetURL,
		userAgent: userAgent,
		client: &http.Client{
			Timeout: requestTimeout,
		},
		cache:      cacheSvc,
		backoffKey: backoffKey,
		log:        log,
	}
}

// Fetch performs one conditional GET, replaying the validators from prior.
// Any 2xx response is Content, 304 is NotModified, everything else is Error.
// Validators missing from the response keep their prior values.
func (f *Fetcher) Fetch(ctx context.Context, prior state.Meta) Result {
	if f.cache != nil {
		if _, err := f.cache.Get(f.backoffKey); err == nil {
			return Result{
				Status: StatusError,
				Err:    watcherrors.NewRateLimit("fetcher", defaultBackoff),
			}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return Result{
			Status: StatusError,
			Err:    watcherrors.NewFetch("fetcher", "failed to create request", err),
		}
	}

	req.Header.Set("User-Agent", f.userAgent)
	if prior.ETag != "" {
		req.Header.Set("If-None-Match", prior.ETag)
	}
	if prior.LastModified != "" {
		req.Header.Set("If-Modified-Since", prior.LastModified)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return Result{
			Status: StatusError,
			Err:    watcherrors.NewFetch("fetcher", fmt.Sprintf("GET %s failed", f.url), err),
		}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotModified:
		return Result{Status: StatusNotModified, Meta: prior}

	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == 430:
		backoff := retryAfter(resp.Header.Get("Retry-After"))
		f.rememberBackoff(backoff)
		return Result{
			Status: StatusError,
			Err:    watcherrors.NewRateLimit("fetcher", backoff),
		}

	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return Result{
			Status: StatusError,
			Err: watcherrors.NewFetch("fetcher",
				fmt.Sprintf("GET %s unexpected status code: %d", f.url, resp.StatusCode), nil),
		}
	}

	body, err := decodeBody(resp)
	if err != nil {
		return Result{
			Status: StatusError,
			Err:    watcherrors.NewFetch("fetcher", "failed to read response body", err),
		}
	}

	meta := prior
	if etag := resp.Header.Get("ETag"); etag != "" {
		meta.ETag = etag
	}
	if lastModified := resp.Header.Get("Last-Modified"); lastModified != "" {
		meta.LastModified = lastModified
	}

	return Result{Status: StatusContent, Body: body, Meta: meta}
}

// decodeBody reads the response and converts it to UTF-8 when the declared or
// detected encoding differs.
func decodeBody(resp *http.Response) (string, error) {
	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	encoding, name, _ := charset.DetermineEncoding(bodyBytes, resp.Header.Get("Content-Type"))
	if name == "utf-8" || name == "UTF-8" {
		return string(bodyBytes), nil
	}

	utf8Reader := encoding.NewDecoder().Reader(bytes.NewReader(bodyBytes))
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, utf8Reader); err != nil {
		return "", fmt.Errorf("failed to convert body to UTF-8: %w", err)
	}
	return buf.String(), nil
}

// rememberBackoff records a rate-limit window so following cycles skip the
// request entirely until it expires.
func (f *Fetcher) rememberBackoff(backoff time.Duration) {
	if f.cache == nil {
		return
	}
	value := []byte(strconv.Itoa(int(backoff / time.Second)))
	if err := f.cache.Set(f.backoffKey, value, backoff); err != nil {
		f.log.Warn().Err(err).Msg("Failed to record rate-limit backoff")
	}
}

// retryAfter parses a Retry-After header in seconds, defaulting when absent
// or unparseable.
func retryAfter(header string) time.Duration {
	if header == "" {
		return defaultBackoff
	}
	seconds, err := strconv.Atoi(header)
	if err != nil || seconds <= 0 {
		return defaultBackoff
	}
	return time.Duration(seconds) * time.Second
}
