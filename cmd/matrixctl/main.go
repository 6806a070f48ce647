// SPDX-License-Identifier: MIT

// Matrixctl lists, fetches and combines sparse matrices held by a matrix
// store.
//
// Usage:
//
//	matrixctl [flags] list
//	matrixctl [flags] get ID
//	matrixctl [flags] add ID1 ID2
//	matrixctl [flags] mul ID1 ID2
//	matrixctl [flags] transpose ID
//
// add, mul and transpose fetch their operands, compute the result, and
// save it back under the next free id. Operand order for mul is the order
// given on the command line.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/katalvlaran/matrixlink/client"
	"github.com/katalvlaran/matrixlink/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var (
		configPath string
		host       string
		port       int
		ioTimeout  time.Duration
		logLevel   string
	)

	flagSet := pflag.NewFlagSet("matrixctl", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&configPath, "config", "", "path to config file (default: $"+config.EnvVar+")")
	flagSet.StringVar(&host, "host", "", "store host (overrides store.host)")
	flagSet.IntVar(&port, "port", 0, "store port (overrides store.port)")
	flagSet.DurationVar(&ioTimeout, "io-timeout", 0, "per-command timeout (overrides store.io_timeout)")
	flagSet.StringVar(&logLevel, "log-level", "", "debug, info, warn or error (overrides log.level)")
	flagSet.Usage = func() { printHelp(stderr, flagSet) }

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if flagSet.Changed("host") {
		cfg.Store.Host = host
	}
	if flagSet.Changed("port") {
		cfg.Store.Port = port
	}
	if flagSet.Changed("io-timeout") {
		cfg.Store.IOTimeout = ioTimeout
	}
	if flagSet.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	cmd, err := parseInvocation(flagSet.Args())
	if err != nil {
		printHelp(stderr, flagSet)
		return err
	}

	logger, err := cfg.Log.NewLogger(stderr)
	if err != nil {
		return err
	}

	c, err := client.Dial(ctx, cfg.Store.Host, cfg.Store.Port,
		client.WithLogger(logger),
		client.WithDialTimeout(cfg.Store.DialTimeout),
		client.WithIOTimeout(cfg.Store.IOTimeout),
	)
	if err != nil {
		return err
	}
	defer c.Close()

	return cmd.execute(ctx, c, logger, stdout)
}

func printHelp(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprint(w, `matrixctl: list, fetch and combine sparse matrices in a matrix store.

Usage:
  matrixctl [flags] list
  matrixctl [flags] get ID
  matrixctl [flags] add ID1 ID2
  matrixctl [flags] mul ID1 ID2
  matrixctl [flags] transpose ID

Flags:
`)
	fmt.Fprint(w, flagSet.FlagUsages())
}
