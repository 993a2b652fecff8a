package main

import (
	"github.com/spf13/cobra"

	"github.com/emcoglab/brysbaert-prevalence/pkg/dataset"
)

func newDownloadCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "download",
		Short: "Download the prevalence workbook",
		Long: `Download the prevalence workbook to the configured data path.

An existing file is never overwritten: the command fails instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.config()
			logger := a.logger(cmd.ErrOrStderr())
			d := &dataset.Downloader{Client: a.httpClient(), Logger: logger}
			if err := d.Download(cmd.Context(), cfg.DataURL, cfg.DataPath); err != nil {
				logger.Printf("Download failed: %v", err)
				return err
			}
			logger.Printf("Download complete: %s", cfg.DataPath)
			return nil
		},
	}
}
