package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/emcoglab/brysbaert-prevalence/pkg/db"
	"github.com/emcoglab/brysbaert-prevalence/pkg/prevalence"
	"github.com/emcoglab/brysbaert-prevalence/pkg/profile"
)

func newProfileCmd(a *app) *cobra.Command {
	var fromDB bool
	cmd := &cobra.Command{
		Use:   "profile URL...",
		Short: "Report how widely known the words of web articles are",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.config()

			var lookup prevalence.Lookuper
			if fromDB {
				conn, err := openImported(cfg.DBPath)
				if err != nil {
					return err
				}
				defer conn.Close()
				lookup = db.NewCachedLookup(conn)
			} else {
				table, err := a.loadTable(cmd.Context(), cmd)
				if err != nil {
					return err
				}
				lookup = table
			}

			results := profile.ProfileURLs(cmd.Context(), profile.NewFetcher(cfg.Timeout), lookup, args, cfg.Workers)

			out := cmd.OutOrStdout()
			var failed int
			for _, r := range results {
				if r.Err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", r.URL, r.Err)
					failed++
					continue
				}
				rep := r.Report
				fmt.Fprintf(out, "%s\n", r.URL)
				fmt.Fprintf(out, "  title:    %s\n", r.Article.Title)
				fmt.Fprintf(out, "  tokens:   %d (known %d, coverage %.1f%%)\n", rep.Tokens, rep.Known, rep.Coverage()*100)
				fmt.Fprintf(out, "  mean:     %.3f\n", rep.Mean)
				if rep.MinWord != "" {
					fmt.Fprintf(out, "  rarest:   %s (%.3f)\n", rep.MinWord, rep.Min)
				}
				if a.verbose && len(rep.UnknownWords) > 0 {
					fmt.Fprintf(out, "  unknown:  %s\n", strings.Join(rep.UnknownWords, ", "))
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d url(s) failed", failed, len(results))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&fromDB, "db", false, "read from the SQLite database at --db-path instead of the workbook")
	cmd.Flags().Int("workers", 4, "concurrent fetches")
	_ = a.v.BindPFlag("workers", cmd.Flags().Lookup("workers"))
	return cmd
}
