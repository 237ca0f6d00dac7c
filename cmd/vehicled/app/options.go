package app

import (
	"errors"
	"io/fs"
	"os"

	"github.com/spf13/pflag"

	"vehicle-status-backend/config"
)

const defaultConfigPath = "./config/config.yaml"

// Options are the flags shared by every subcommand.
type Options struct {
	ConfigPath string
	Backend    string
	LogLevel   string
}

// NewOptions returns options defaulting to CONFIG_PATH or ./config/config.yaml.
func NewOptions() *Options {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = defaultConfigPath
	}
	return &Options{ConfigPath: path}
}

func (o *Options) AddFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&o.ConfigPath, "config", "c", o.ConfigPath, "Path to the YAML configuration file.")
	flags.StringVar(&o.Backend, "backend", o.Backend, "Override the configured backend (upstream or demo).")
	flags.StringVar(&o.LogLevel, "log-level", o.LogLevel, "Override the configured log level.")
}

// Config loads the configuration file and applies flag overrides. A missing
// default file with --backend=demo falls back to the built-in defaults.
func (o *Options) Config() (*config.Config, error) {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) || o.Backend != config.BackendDemo {
			return nil, err
		}
		cfg = config.Default()
	}

	if o.Backend != "" {
		cfg.Backend = o.Backend
	}
	if o.LogLevel != "" {
		cfg.Log.Level = o.LogLevel
	}
	return cfg, nil
}
