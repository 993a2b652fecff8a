package profile

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/go-shiori/go-readability"
)

// DefaultMaxBodySize caps how much of a page is read.
const DefaultMaxBodySize = 10 * 1024 * 1024

// Article is the readable part of a web page.
type Article struct {
	URL      string
	Title    string
	Byline   string
	SiteName string
	Text     string
}

// Fetcher downloads pages and extracts their main text.
type Fetcher struct {
	Client      *http.Client
	UserAgent   string
	MaxBodySize int64
}

// NewFetcher creates a Fetcher with the given request timeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{
		Client:      &http.Client{Timeout: timeout},
		UserAgent:   "Mozilla/5.0 (compatible; prevalence-profile/1.0)",
		MaxBodySize: DefaultMaxBodySize,
	}
}

// Fetch retrieves rawURL and runs readability over the body.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (Article, error) {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return Article{}, fmt.Errorf("parse url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Article{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.Client.Do(req)
	if err != nil {
		return Article{}, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Article{}, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	maxBody := f.MaxBodySize
	if maxBody <= 0 {
		maxBody = DefaultMaxBodySize
	}
	if resp.ContentLength > maxBody {
		return Article{}, fmt.Errorf("Content-Length %d exceeds limit of %d bytes", resp.ContentLength, maxBody)
	}
	// Read one byte past the limit to tell a truncated body from one that fits exactly.
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody+1))
	if err != nil {
		return Article{}, fmt.Errorf("read response body: %w", err)
	}
	if int64(len(body)) > maxBody {
		return Article{}, fmt.Errorf("response body exceeded maximum size limit of %d bytes", maxBody)
	}

	article, err := readability.FromReader(bytes.NewReader(body), parsedURL)
	if err != nil {
		return Article{}, fmt.Errorf("extract article: %w", err)
	}

	return Article{
		URL:      rawURL,
		Title:    article.Title,
		Byline:   article.Byline,
		SiteName: article.SiteName,
		Text:     article.TextContent,
	}, nil
}
