// Command lookback prices floating-strike lookback options by Monte Carlo.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alessiobaldini01/Lookback-Pricing/internal/cli"
	"github.com/alessiobaldini01/Lookback-Pricing/internal/config"
	apperrors "github.com/alessiobaldini01/Lookback-Pricing/internal/errors"
	"github.com/alessiobaldini01/Lookback-Pricing/internal/logging"
)

// Exit codes
const (
	exitOK      = 0
	exitRuntime = 1
	exitInput   = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Default()
	rootCmd := cli.NewRootCmd(cfg, logging.NewLoggerWithConfig(cfg.LogConfig()))
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		return report(stderr, err)
	}
	return exitOK
}

// report prints err on stderr and maps it to an exit code.
func report(stderr io.Writer, err error) int {
	if apperrors.IsInputError(err) {
		fmt.Fprintf(stderr, "Input Error: %v\n", err)
		return exitInput
	}
	fmt.Fprintf(stderr, "Runtime Error: %v\n", err)
	return exitRuntime
}
