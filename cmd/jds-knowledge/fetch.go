package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zhubert/jds-knowledge/config"
	"github.com/zhubert/jds-knowledge/logger"
	"github.com/zhubert/jds-knowledge/paths"
	"github.com/zhubert/jds-knowledge/refdata"
)

var errNoUpdateURL = errors.New("no reference data URL: pass --url or set update_url")

func newFetchCmd(opts *cliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download reference data into the local cache",
		Long:  "fetch downloads a reference data document, validates it and atomically replaces the cached copy. The previous cache is kept if anything fails.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFetch(cmd, opts.cfg)
		},
	}
	config.RegisterFetchFlags(cmd.Flags())
	return cmd
}

func runFetch(cmd *cobra.Command, cfg *config.Config) error {
	if cfg.UpdateURL == "" {
		return errNoUpdateURL
	}
	dest, err := paths.CachedDataPath()
	if err != nil {
		return fmt.Errorf("resolve cache path: %w", err)
	}

	log := logger.WithComponent("fetch")
	store, err := refdata.NewFetcher(cfg.FetchTimeout).Fetch(cmd.Context(), cfg.UpdateURL, dest)
	if err != nil {
		log.Error("fetch failed", "url", cfg.UpdateURL, "error", err)
		return err
	}
	log.Info("reference data cached", "url", cfg.UpdateURL, "path", dest)

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Cached %d components, %d icons and %d references to %s\n",
		len(store.Components()), len(store.Icons), len(store.References), dest)
	return err
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the server version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", "jds-knowledge-server", version)
			return err
		},
	}
}
