// Package config holds the settings shared by the command-line tools.
package config

import (
	"time"

	"github.com/spf13/viper"

	"github.com/emcoglab/brysbaert-prevalence/pkg/dataset"
)

// Config is the resolved configuration.
type Config struct {
	DataPath     string        `yaml:"data_path" mapstructure:"data_path"`
	DataURL      string        `yaml:"data_url" mapstructure:"data_url"`
	AutoDownload bool          `yaml:"auto_download" mapstructure:"auto_download"`
	DBPath       string        `yaml:"db_path" mapstructure:"db_path"`
	BatchSize    int           `yaml:"batch_size" mapstructure:"batch_size"`
	Workers      int           `yaml:"workers" mapstructure:"workers"`
	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		DataPath:     dataset.DefaultFileName,
		DataURL:      dataset.DefaultURL,
		AutoDownload: true,
		DBPath:       "prevalence.db",
		BatchSize:    500,
		Workers:      4,
		Timeout:      30 * time.Second,
	}
}

// SetDefaults registers Default() on v so env vars and config files can override it.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("data_path", d.DataPath)
	v.SetDefault("data_url", d.DataURL)
	v.SetDefault("auto_download", d.AutoDownload)
	v.SetDefault("db_path", d.DBPath)
	v.SetDefault("batch_size", d.BatchSize)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("timeout", d.Timeout)
}

// FromViper reads the resolved values out of v.
func FromViper(v *viper.Viper) Config {
	return Config{
		DataPath:     v.GetString("data_path"),
		DataURL:      v.GetString("data_url"),
		AutoDownload: v.GetBool("auto_download"),
		DBPath:       v.GetString("db_path"),
		BatchSize:    v.GetInt("batch_size"),
		Workers:      v.GetInt("workers"),
		Timeout:      v.GetDuration("timeout"),
	}
}
