package seed

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/Undanomi/OSINT-GAME-sub000/internal/shared/types"
)

// FetchOptions tunes remote seed downloads
type FetchOptions struct {
	Timeout time.Duration
	Retries int
	MinWait time.Duration
	MaxWait time.Duration
}

// DefaultFetchOptions returns the standard download settings
func DefaultFetchOptions() FetchOptions {
	return FetchOptions{
		Timeout: 30 * time.Second,
		Retries: 3,
		MinWait: time.Second,
		MaxWait: 10 * time.Second,
	}
}

// Fetcher downloads seed documents over http(s)
type Fetcher struct {
	client *resty.Client
}

// NewFetcher creates a fetcher
func NewFetcher(opts FetchOptions) *Fetcher {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = opts.Retries
	retryClient.RetryWaitMin = opts.MinWait
	retryClient.RetryWaitMax = opts.MaxWait
	retryClient.Logger = nil

	client := resty.New().
		SetTimeout(opts.Timeout).
		SetRetryCount(opts.Retries).
		SetRetryWaitTime(opts.MinWait).
		SetRetryMaxWaitTime(opts.MaxWait).
		SetHeader("Accept", "application/yaml, application/toml, application/json;q=0.9, */*;q=0.5").
		SetHeader("User-Agent", "webctl-seed/1.0")
	client.SetTransport(retryClient.HTTPClient.Transport)

	return &Fetcher{client: client}
}

// IsRemote reports whether source is an http(s) URL
func IsRemote(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Fetch downloads and decodes the document at rawURL
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]types.ContentRecord, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse seed url: %w", err)
	}

	resp, err := f.client.R().SetContext(ctx).Get(u.String())
	if err != nil {
		return nil, fmt.Errorf("fetch seed %s: %w", rawURL, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch seed %s: status %d", rawURL, resp.StatusCode())
	}

	records, err := decodeSource(u.Path, resp.Header().Get("Content-Type"), resp.Body())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", rawURL, err)
	}
	return records, nil
}
