package main

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/zhubert/jds-knowledge/config"
	"github.com/zhubert/jds-knowledge/logger"
	"github.com/zhubert/jds-knowledge/mcp"
)

func newServeCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve JSON-RPC requests on stdin/stdout (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts.cfg)
		},
	}
}

func runServe(cmd *cobra.Command, cfg *config.Config) error {
	instanceID := uuid.New().String()
	log := logger.WithSession(instanceID)

	d, err := newDispatcher(cfg, log)
	if err != nil {
		log.Error("startup failed", "error", err)
		return err
	}

	srv := mcp.NewServer(cmd.InOrStdin(), cmd.OutOrStdout(), d, instanceID,
		mcp.WithMaxMessageSize(cfg.MaxMessageSize))
	return srv.Run()
}
