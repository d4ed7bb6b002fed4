package main

import (
	"fmt"

	"github.com/podhmo/go-reflector/config"
	"github.com/podhmo/go-reflector/logging"
	"github.com/podhmo/go-reflector/server"
	"github.com/spf13/cobra"
)

type serveOptions struct {
	configPath string
	addr       string
	logLevel   string
	logFormat  string
}

func newServeCommand() *cobra.Command {
	opts := &serveOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Long: `Run the HTTP server until interrupted.

Settings come from the built-in defaults, then the file given by --config
(.toml, .yaml or .yml), then the flags.

Example:
  reflector serve --addr :9090 --log-level trace`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			level, err := logging.ParseLevel(cfg.LogLevel)
			if err != nil {
				return err
			}
			logger, err := logging.New(cmd.ErrOrStderr(), logging.Options{Level: level, Format: cfg.LogFormat})
			if err != nil {
				return err
			}
			s, err := server.New(cfg, logger)
			if err != nil {
				return err
			}
			return s.ListenAndRun(cmd.Context())
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "configuration file (.toml, .yaml or .yml)")
	flags.StringVar(&opts.addr, "addr", "", "listen address (default :8080)")
	flags.StringVar(&opts.logLevel, "log-level", "", "trace, debug, info, warn or error (default info)")
	flags.StringVar(&opts.logFormat, "log-format", "", "text or json (default text)")
	return cmd
}

// load merges the configuration file and the flags that were set.
func (o *serveOptions) load(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("addr") {
		cfg.Addr = o.addr
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = o.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration:\n%w", err)
	}
	return cfg, nil
}
