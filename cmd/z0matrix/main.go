// Command z0matrix renders the Z0-Mandel-Matrix: an N×N grid of escape-time
// images, each computed from a different seed z0 over the same region of
// the c-plane.
//
// Usage:
//
//	z0matrix -n 200 -panel 8 -iter 32 -out matrix.png
//	z0matrix -config run.hcl -progress bar -listen :8080
//	z0matrix -from-raw matrix.z0mx -cmap magma -out magma.png
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(exitCode(err, os.Stderr))
}

// exitCode reports err on w and maps it to a process exit status:
// 2 for usage and configuration errors, 130 when interrupted, 1 otherwise.
func exitCode(err error, w io.Writer) int {
	if err == nil {
		return 0
	}

	fmt.Fprintln(w, "z0matrix:", err)

	var exitErr *ExitError
	switch {
	case errors.As(err, &exitErr):
		return exitErr.Code
	case errors.Is(err, context.Canceled):
		return 130
	default:
		return 1
	}
}
