package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/fx"
)

// run drives the shop application lifecycle and returns the process exit code.
func run(ctx context.Context, app *fx.App) int {
	if err := app.Start(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "megano: start:", err)
		return 1
	}

	select {
	case <-ctx.Done():
	case <-app.Done():
	}

	if err := app.Stop(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "megano: stop:", err)
		return 1
	}
	return 0
}
