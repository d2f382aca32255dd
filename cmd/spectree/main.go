// Package main provides the entry point for the spectree CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mrz1836/spectree/internal/cli"
	"github.com/mrz1836/spectree/internal/signal"
)

// Build metadata injected via -ldflags at release time.
//
//nolint:gochecknoglobals // set by the linker
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

// run executes the CLI and returns its exit code. Split from main so the
// deferred cleanup runs before os.Exit.
func run() int {
	handler := signal.NewHandler(context.Background())
	defer handler.Stop()
	defer cli.CloseLogFile()

	err := cli.Execute(handler.Context(), cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	})

	if handler.WasInterrupted() {
		_, _ = fmt.Fprintln(os.Stderr, "Interrupted.")
	}

	return cli.ExitCodeForError(err)
}
