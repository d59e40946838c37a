package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/3-lines-studio/storefront/internal/adapters/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	if err := run(ctx, cli.NewOutput(), os.Args[1:]); err != nil {
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, output *cli.Output, args []string) error {
	cmd, e := newRootCmd(output)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	if closeErr := e.close(); err == nil {
		err = closeErr
	}
	if err != nil {
		output.PrintError("%v", err)
	}
	return err
}
