// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config.go - Configuration show/set commands.
package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/PerifanosPrometheus/hemonchat-tui/internal/config"
)

// HandleConfig runs the config command.
func HandleConfig(args Args) {
	switch args.Subcommand {
	case "show", "":
		handleConfigShow()
	case "set":
		handleConfigSet(args.ConfigKey, args.ConfigVal)
	case "path":
		handleConfigPath()
	default:
		fmt.Fprintln(os.Stderr, errorStyle.Render("[Error]"),
			"unknown config subcommand:", args.Subcommand)
		fmt.Fprintln(os.Stderr, "usage: hemonchat config [show|set KEY VALUE|path]")
		os.Exit(1)
	}
}

func handleConfigShow() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("[Error]"), err)
		os.Exit(1)
	}

	fmt.Println(promptStyle.Render("[api]"))
	fmt.Printf("  base_url           = %s\n", cfg.API.BaseURL)
	fmt.Printf("  timeout_secs       = %d\n", cfg.API.TimeoutSecs)
	fmt.Printf("  poll_interval_secs = %d\n", cfg.API.PollIntervalSecs)
	fmt.Println(promptStyle.Render("[ui]"))
	fmt.Printf("  theme          = %s\n", cfg.UI.Theme)
	fmt.Printf("  markdown_width = %d\n", cfg.UI.MarkdownWidth)
	fmt.Printf("  snake_enabled  = %t\n", cfg.UI.SnakeEnabled)

	if url := os.Getenv(config.EnvAPIURL); url != "" {
		fmt.Println(mutedStyle.Render(fmt.Sprintf("(%s=%s overrides base_url)", config.EnvAPIURL, url)))
	}
}

func handleConfigSet(key, value string) {
	if key == "" || value == "" {
		fmt.Fprintln(os.Stderr, "usage: hemonchat config set KEY VALUE")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("[Error]"), err)
		os.Exit(1)
	}

	if err := applyConfigKey(cfg, key, value); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("[Error]"), err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("[Error]"), err)
		os.Exit(1)
	}
	if err := cfg.Save(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("[Error]"), err)
		os.Exit(1)
	}

	fmt.Println(successStyle.Render("Saved."), key, "=", value)
}

// applyConfigKey sets one dotted key on the config.
func applyConfigKey(cfg *config.Config, key, value string) error {
	switch strings.ToLower(key) {
	case "api.base_url":
		cfg.API.BaseURL = value
	case "api.timeout_secs":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%s must be a positive integer", key)
		}
		cfg.API.TimeoutSecs = n
	case "api.poll_interval_secs":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%s must be a positive integer", key)
		}
		cfg.API.PollIntervalSecs = n
	case "ui.theme":
		cfg.UI.Theme = value
	case "ui.markdown_width":
		n, err := strconv.Atoi(value)
		if err != nil || n < 20 {
			return fmt.Errorf("%s must be an integer >= 20", key)
		}
		cfg.UI.MarkdownWidth = n
	case "ui.snake_enabled":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s must be true or false", key)
		}
		cfg.UI.SnakeEnabled = b
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

func handleConfigPath() {
	path, err := config.Path()
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("[Error]"), err)
		os.Exit(1)
	}
	fmt.Println(path)
}
