// Package main is the entry point for the viewlink CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jsamuelsen/viewlink/internal/domain"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	// Version is the semantic version of the CLI.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "unknown"

	// BuildTime is the timestamp when the binary was built.
	BuildTime = "unknown"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	c := &cli{}

	root := newRootCmd(c)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)

	if teardownErr := c.teardown(ctx); teardownErr != nil {
		err = errors.Join(err, teardownErr)
	}

	if err != nil {
		printError(stderr, err)
		return 1
	}

	return 0
}

// printError reports view link errors with their code.
func printError(w io.Writer, err error) {
	var vlErr *domain.ViewLinkError
	if errors.As(err, &vlErr) {
		fmt.Fprintf(w, "error [%s]: %s\n", vlErr.Code, vlErr.Message)
		return
	}

	fmt.Fprintf(w, "error: %v\n", err)
}
