// SPDX-License-Identifier: MIT

// Matrixstore runs the in-memory reference matrix store on a TCP address.
// Matrices live only as long as the process.
//
// Usage:
//
//	matrixstore [--config FILE] [--listen ADDR]
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/katalvlaran/matrixlink/config"
	"github.com/katalvlaran/matrixlink/memstore"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stderr, nil); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// run serves until ctx is cancelled. ready, when non-nil, receives the bound
// address once the listener is open.
func run(ctx context.Context, args []string, stderr io.Writer, ready chan<- net.Addr) error {
	var configPath, listen string

	flagSet := pflag.NewFlagSet("matrixstore", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&configPath, "config", "", "path to config file (default: $"+config.EnvVar+")")
	flagSet.StringVar(&listen, "listen", "", "address to listen on (overrides listen)")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if flagSet.NArg() > 0 {
		return fmt.Errorf("unexpected argument: %s", flagSet.Arg(0))
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if flagSet.Changed("listen") {
		cfg.Listen = listen
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := cfg.Log.NewLogger(stderr)
	if err != nil {
		return err
	}

	var listenConfig net.ListenConfig
	listener, err := listenConfig.Listen(ctx, "tcp", cfg.Listen)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", cfg.Listen, err)
	}
	if ready != nil {
		ready <- listener.Addr()
	}

	return memstore.NewServer(memstore.NewStore(), logger).Serve(ctx, listener)
}
