// Command jds-knowledge serves Jio Design System reference data to coding
// agents over a newline-delimited JSON-RPC stdio transport.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/zhubert/jds-knowledge/logger"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "3.1.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCommand().ExecuteContext(ctx)
	stop()
	logger.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
