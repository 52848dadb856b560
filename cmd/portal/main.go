package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/schoolportal/portal/internal/config"
	portallog "github.com/schoolportal/portal/internal/log"
)

type rootOptions struct {
	configPath string
	logLevel   string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		color.Red("Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "portal",
		Short:         "School portal message center",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to config file")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override log level (debug, info, warn, error)")

	root.AddCommand(
		newServeCommand(opts),
		newInboxCommand(opts),
		newThreadCommand(opts),
		newSeedCommand(opts),
	)
	return root
}

// load resolves configuration and a logger writing to stderr, so command
// output on stdout stays clean.
func (o *rootOptions) load() (*config.Config, *zerolog.Logger, error) {
	bootstrap := portallog.NewWithWriter(os.Stderr, "info")

	cfg, path, err := config.Load(bootstrap, o.configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config %s: %w", path, err)
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}

	return &cfg, portallog.NewWithWriter(os.Stderr, cfg.LogLevel), nil
}
