package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zhubert/jds-knowledge/logger"
)

func newToolsCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "Print the tool descriptors as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := newDispatcher(opts.cfg, logger.WithComponent("cli"))
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetEscapeHTML(false)
			enc.SetIndent("", "  ")
			return enc.Encode(d.Tools().Definitions())
		},
	}
}

func newCallCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "call <tool> [json-args]",
		Short: "Run one tool and print its result",
		Example: `  jds-knowledge call lookup_component '{"component_name":"Button"}'
  jds-knowledge call get_assets`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			toolArgs := map[string]any{}
			if len(args) == 2 {
				parsed, err := parseToolArgs(args[1])
				if err != nil {
					return err
				}
				toolArgs = parsed
			}

			d, err := newDispatcher(opts.cfg, logger.WithComponent("cli"))
			if err != nil {
				return err
			}
			text, rpcErr := d.CallTool(args[0], toolArgs)
			if rpcErr != nil {
				return fmt.Errorf("%s: %w (code %d)", args[0], rpcErr, rpcErr.Code)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}
}

var errArgsNotObject = errors.New("tool arguments must be a JSON object")

func parseToolArgs(raw string) (map[string]any, error) {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil, fmt.Errorf("parse tool arguments: %w", err)
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, errArgsNotObject
	}
	return obj, nil
}
