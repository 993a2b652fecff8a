package main

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emcoglab/brysbaert-prevalence/pkg/db"
	"github.com/emcoglab/brysbaert-prevalence/pkg/prevalence"
)

const defaultWord = "abbey"

// entryLookup resolves a word to its full row.
type entryLookup func(word string) (prevalence.Entry, error)

func newLookupCmd(a *app) *cobra.Command {
	var fromDB bool
	cmd := &cobra.Command{
		Use:   "lookup [word...]",
		Short: "Print the prevalence of each word",
		Long: `Print the prevalence of each word (default "abbey").

Words are matched exactly against the lowercase keys of the table, so
"Abbey" is not found. Missing words are reported on stderr and make the
command fail after all words have been printed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{defaultWord}
			}
			return a.runLookup(cmd, args, fromDB, false)
		},
	}
	cmd.Flags().BoolVar(&fromDB, "db", false, "read from the SQLite database at --db-path instead of the workbook")
	return cmd
}

// runLookup prints one line per word. With valueOnly the bare prevalence is
// printed, without the word.
func (a *app) runLookup(cmd *cobra.Command, words []string, fromDB, valueOnly bool) error {
	var lookup entryLookup
	if fromDB {
		conn, err := openImported(a.config().DBPath)
		if err != nil {
			return err
		}
		defer conn.Close()
		lookup = func(w string) (prevalence.Entry, error) { return db.LookupEntry(conn, w) }
	} else {
		table, err := a.loadTable(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		lookup = table.Entry
	}

	out := cmd.OutOrStdout()
	var missing int
	for _, w := range words {
		e, err := lookup(w)
		if prevalence.IsWordNotFound(err) {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: not found\n", w)
			missing++
			continue
		}
		if err != nil {
			return err
		}
		switch {
		case valueOnly:
			fmt.Fprintf(out, "%g\n", e.Prevalence)
		case a.verbose:
			fmt.Fprintf(out, "%s\t%g\tpknown=%g\tnobs=%d\tzipf_us=%g\n", w, e.Prevalence, e.PKnown, e.Nobs, e.FreqZipfUS)
		default:
			fmt.Fprintf(out, "%s\t%g\n", w, e.Prevalence)
		}
	}
	if missing > 0 {
		return fmt.Errorf("%d of %d word(s) not found", missing, len(words))
	}
	return nil
}

// openImported opens the database at path for reading, refusing one that
// does not exist or has never been imported into.
func openImported(path string) (*sql.DB, error) {
	conn, err := db.OpenImported(path)
	if err != nil {
		return nil, fmt.Errorf("no data imported into %s; run \"prevalence import\": %w", path, err)
	}
	return conn, nil
}
