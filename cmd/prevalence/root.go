package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/emcoglab/brysbaert-prevalence/pkg/config"
	"github.com/emcoglab/brysbaert-prevalence/pkg/prevalence"
)

const version = "v0.3.0"

// app carries what every subcommand needs once flags and config are resolved.
type app struct {
	v       *viper.Viper
	cfgFile string
	verbose bool
}

func (a *app) config() config.Config { return config.FromViper(a.v) }

func (a *app) logger(w io.Writer) *log.Logger {
	return log.New(w, "prevalence: ", log.LstdFlags)
}

func (a *app) httpClient() *http.Client {
	return &http.Client{Timeout: a.config().Timeout}
}

// loadTable builds the in-memory table, downloading the workbook first when
// auto_download is on.
func (a *app) loadTable(ctx context.Context, cmd *cobra.Command) (*prevalence.Table, error) {
	cfg := a.config()
	return prevalence.New(ctx, prevalence.Options{
		Path:         cfg.DataPath,
		URL:          cfg.DataURL,
		AutoDownload: cfg.AutoDownload,
		Client:       a.httpClient(),
		Logger:       a.logger(cmd.ErrOrStderr()),
	})
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	a := &app{v: v}
	config.SetDefaults(v)

	rootCmd := &cobra.Command{
		Use:   "prevalence",
		Short: "Look up English word prevalence scores",
		Long: `prevalence answers how widely known an English word is, using the
Brysbaert et al. word-prevalence table.

The workbook is downloaded on first use unless --auto-download=false.
Run without a subcommand to print the prevalence of "abbey".`,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runLookup(cmd, []string{defaultWord}, false, true)
		},
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default: $HOME/.prevalence/config.yaml)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")
	flags.String("data", config.Default().DataPath, "path of the prevalence workbook")
	flags.String("url", config.Default().DataURL, "where to download the workbook from")
	flags.Bool("auto-download", config.Default().AutoDownload, "download the workbook if it is missing")
	flags.String("db-path", config.Default().DBPath, "SQLite database used by import and --db")
	flags.Duration("timeout", config.Default().Timeout, "HTTP timeout")

	// Bind flags to viper
	_ = v.BindPFlag("data_path", flags.Lookup("data"))
	_ = v.BindPFlag("data_url", flags.Lookup("url"))
	_ = v.BindPFlag("auto_download", flags.Lookup("auto-download"))
	_ = v.BindPFlag("db_path", flags.Lookup("db-path"))
	_ = v.BindPFlag("timeout", flags.Lookup("timeout"))

	rootCmd.AddCommand(
		newLookupCmd(a),
		newDownloadCmd(a),
		newImportCmd(a),
		newProfileCmd(a),
		newConfigCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

// initConfig reads in config file and ENV variables
func (a *app) initConfig(cmd *cobra.Command) error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		a.v.AddConfigPath(filepath.Join(home, ".prevalence"))
		a.v.SetConfigType("yaml")
		a.v.SetConfigName("config")
	}

	// Read in environment variables that match PREVALENCE_*
	a.v.SetEnvPrefix("PREVALENCE")
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		// Without a config file, defaults, env and flags still apply.
		if a.cfgFile != "" {
			return fmt.Errorf("read config %s: %w", a.cfgFile, err)
		}
	} else if a.verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "Using config file: %s\n", a.v.ConfigFileUsed())
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "prevalence %s\n", version)
		},
	}
}
