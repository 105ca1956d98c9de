// Command zipcache resolves postal codes through the zip cache from the
// command line, and seeds or migrates its store.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		stop()
		os.Exit(1)
	}
}

// run executes the CLI with args and always releases the container.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cmd, a := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	defer a.teardown()

	return cmd.ExecuteContext(ctx)
}
