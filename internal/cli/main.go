// Package cli implements the modelhub command.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

// Exit codes returned by MainWithArgs.
const (
	exitOK       = 0
	exitError    = 1
	exitNotReady = 3
)

// MainWithArgs is a testable variant of Main that accepts args and output
// streams explicitly. It returns an exit code.
func MainWithArgs(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	return run(ctx, &app{out: stdout, errOut: stderr}, args)
}

func run(ctx context.Context, a *app, args []string) int {
	root := buildRootCmd(a)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		if errors.Is(err, errNotReady) {
			return exitNotReady
		}
		fmt.Fprintln(a.errOut, "error:", err.Error())
		return exitError
	}
	return exitOK
}

// Main returns an exit code for use by cmd/modelhub.
func Main() int {
	return MainWithArgs(context.Background(), os.Args[1:], os.Stdout, os.Stderr)
}
