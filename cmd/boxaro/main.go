package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/vpoulailleau/boxaro/internal/cli"
	bxerrors "github.com/vpoulailleau/boxaro/pkg/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130) // Standard shell convention for SIGINT
		}
		fmt.Fprintln(os.Stderr, "boxaro:", bxerrors.UserMessage(err))
		os.Exit(bxerrors.ExitCode(err))
	}
}

func run(ctx context.Context) error {
	// The level is raised by -v once flags are parsed.
	c := cli.New(os.Stderr, cli.LogWarn)
	return c.RootCommand().ExecuteContext(ctx)
}
