// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// status.go - One-shot model readiness check.
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/PerifanosPrometheus/hemonchat-tui/internal/backend"
	"github.com/PerifanosPrometheus/hemonchat-tui/internal/ui/styles"
)

// statusTimeout bounds the single probe.
const statusTimeout = 10 * time.Second

// HandleStatus runs the status command. Exit code 0 means ready, 1
// means still loading, 2 means the backend could not be reached, so
// scripts can gate on readiness.
func HandleStatus(args Args) {
	client, err := newClient(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("[Error]"), err)
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), statusTimeout)
	defer cancel()

	os.Exit(printStatus(ctx, client, args.Quiet))
}

// printStatus probes the backend once and prints the result. Returns
// the intended exit code.
func printStatus(ctx context.Context, client *backend.Client, quiet bool) int {
	ready, err := client.ModelReady(ctx)

	switch {
	case err != nil:
		if quiet {
			fmt.Println("error")
		} else {
			fmt.Printf("%s backend %s unreachable\n", styles.StatusIndicators.Error, client.BaseURL())
			fmt.Println(mutedStyle.Render("  " + err.Error()))
		}
		return 2

	case ready:
		if quiet {
			fmt.Println("ready")
		} else {
			fmt.Printf("%s model ready at %s\n",
				successStyle.Render(styles.StatusIndicators.Success), client.BaseURL())
		}
		return 0

	default:
		if quiet {
			fmt.Println("loading")
		} else {
			fmt.Printf("%s model still loading at %s\n",
				warningStyle.Render(styles.StatusIndicators.Pending), client.BaseURL())
		}
		return 1
	}
}
