// Package main is the entry point for the backport CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/danielolaszy/backport/cmd"
	"github.com/danielolaszy/backport/internal/logging"
)

// main executes the root command. Any error fails the workflow step with the
// error's message as the reason.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := cmd.Execute(ctx)
	stop()
	if err != nil {
		msg := cmd.FailureMessage(err)
		logging.Error("command execution failed", "error", err)
		logging.Annotate(logging.AnnotationError, msg)
		fmt.Fprintln(os.Stderr, msg)
		os.Exit(1)
	}
}
