package dataset

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log"
	"net/http"
	"os"
	"path/filepath"
)

const (
	// DefaultURL is where the Brysbaert prevalence workbook is published.
	DefaultURL = "https://osf.io/nbu9e/download"
	// DefaultFileName is the name the workbook is stored under locally.
	DefaultFileName = "English_Word_Prevalences.xlsx"
)

// ErrFileExists is returned by Download when the destination is already present.
// It wraps fs.ErrExist so callers can use either sentinel with errors.Is.
var ErrFileExists = fmt.Errorf("data file already exists: %w", fs.ErrExist)

// Downloader fetches the data file over HTTP.
type Downloader struct {
	Client *http.Client
	// Logger receives progress messages. nil means no logging.
	Logger *log.Logger
}

// NewDownloader returns a Downloader using http.DefaultClient.
func NewDownloader(logger *log.Logger) *Downloader {
	return &Downloader{
		Client: http.DefaultClient,
		Logger: logger,
	}
}

// Ensure checks if the data file exists at path.
// If not, it downloads it from url.
func (d *Downloader) Ensure(ctx context.Context, path, url string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}

	d.logf("Data file doesn't exist at %s", path)
	return d.Download(ctx, url, path)
}

// Download fetches url and writes the body to path. The whole body is read before
// anything touches the disk, and an existing file at path is never replaced.
func (d *Downloader) Download(ctx context.Context, url, path string) error {
	d.logf("Attempting to download data file from %s", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	client := d.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("download failed: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
	}

	// O_EXCL makes the existence check and the create a single step.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("%s: %w", path, ErrFileExists)
		}
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if _, err := f.Write(body); err != nil {
		f.Close()
		return fmt.Errorf("failed to write to file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close data file: %w", err)
	}

	d.logf("Downloaded %d bytes to %s", len(body), path)
	return nil
}

func (d *Downloader) logf(format string, args ...interface{}) {
	if d.Logger != nil {
		d.Logger.Printf(format, args...)
	}
}
