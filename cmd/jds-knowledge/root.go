package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/zhubert/jds-knowledge/config"
	"github.com/zhubert/jds-knowledge/logger"
	"github.com/zhubert/jds-knowledge/mcp"
	"github.com/zhubert/jds-knowledge/paths"
	"github.com/zhubert/jds-knowledge/refdata"
	"github.com/zhubert/jds-knowledge/resolver"
)

type cliOptions struct {
	configFile string
	cfg        *config.Config
}

func newRootCommand() *cobra.Command {
	opts := &cliOptions{}

	root := &cobra.Command{
		Use:           "jds-knowledge",
		Short:         "Jio Design System knowledge server for coding agents",
		Long:          "jds-knowledge answers component, token, icon, Figma and asset lookups over JSON-RPC on stdin/stdout.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.configFile, cmd.Flags())
			if err != nil {
				return err
			}
			opts.cfg = cfg
			return setupLogging(cmd, cfg)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts.cfg)
		},
	}

	root.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file (default <config dir>/config.yaml)")
	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		newServeCmd(opts),
		newToolsCmd(opts),
		newCallCmd(opts),
		newFetchCmd(opts),
		newVersionCmd(),
	)
	return root
}

// setupLogging routes logs to the console sink or a log file. stdout is
// never used since it carries protocol traffic.
func setupLogging(cmd *cobra.Command, cfg *config.Config) error {
	logger.SetDebug(cfg.Debug)
	if cfg.LogConsole {
		logger.InitConsole(cmd.ErrOrStderr())
		return nil
	}

	path := cfg.LogFile
	if path == "" {
		def, err := logger.DefaultLogPath()
		if err != nil {
			return fmt.Errorf("resolve log path: %w", err)
		}
		path = def
	}
	return logger.Init(path)
}

// openStore loads reference data from the configured file, the fetch
// cache or the embedded dataset, in that order.
func openStore(cfg *config.Config, log *slog.Logger) (*refdata.Store, error) {
	cachePath, err := paths.CachedDataPath()
	if err != nil {
		log.Warn("cache path unavailable", "error", err)
		cachePath = ""
	}

	store, source, err := refdata.Open(cfg.DataFile, cachePath, log)
	if err != nil {
		return nil, fmt.Errorf("load reference data: %w", err)
	}
	log.Info("reference data loaded", append([]any{"source", source}, store.Summary()...)...)
	return store, nil
}

func newDispatcher(cfg *config.Config, log *slog.Logger) (*mcp.Dispatcher, error) {
	store, err := openStore(cfg, log)
	if err != nil {
		return nil, err
	}
	tools := mcp.KnowledgeTools(resolver.New(store))
	return mcp.NewDispatcher(tools, version, logger.WithComponent("mcp")), nil
}
