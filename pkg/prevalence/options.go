package prevalence

import (
	"context"
	"log"
	"net/http"

	"github.com/emcoglab/brysbaert-prevalence/pkg/dataset"
)

// Options controls how New obtains the data file.
type Options struct {
	// Path of the local workbook.
	Path string
	// URL the workbook is fetched from when AutoDownload is set.
	URL string
	// AutoDownload fetches the workbook when Path is missing.
	AutoDownload bool
	// Client is used for the download. nil means http.DefaultClient.
	Client *http.Client
	// Logger is used for informational messages. nil means no logging.
	Logger *log.Logger
}

// DefaultOptions downloads the published workbook into the working directory.
func DefaultOptions() Options {
	return Options{
		Path:         dataset.DefaultFileName,
		URL:          dataset.DefaultURL,
		AutoDownload: true,
	}
}

// New obtains the data file and loads it.
//
// A failed download is logged and otherwise ignored: the subsequent load then
// fails with the underlying filesystem error (fs.ErrNotExist for a missing file).
func New(ctx context.Context, opts Options) (*Table, error) {
	if opts.Path == "" {
		opts.Path = dataset.DefaultFileName
	}
	if opts.URL == "" {
		opts.URL = dataset.DefaultURL
	}

	if opts.AutoDownload {
		d := &dataset.Downloader{Client: opts.Client, Logger: opts.Logger}
		if err := d.Ensure(ctx, opts.Path, opts.URL); err != nil && opts.Logger != nil {
			opts.Logger.Printf("Warning: File download failed: %v", err)
		}
	}

	return Load(opts.Path)
}
