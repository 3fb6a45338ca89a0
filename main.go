// hemonchat - a terminal client for a hosted chat assistant.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/PerifanosPrometheus/hemonchat-tui/internal/backend"
	"github.com/PerifanosPrometheus/hemonchat-tui/internal/cli"
	"github.com/PerifanosPrometheus/hemonchat-tui/internal/config"
	"github.com/PerifanosPrometheus/hemonchat-tui/internal/ui/chat"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdTUI:
		runTUI(args)
	case cli.CmdAsk:
		cli.HandleAsk(args)
	case cli.CmdChat:
		cli.HandleChat(args)
	case cli.CmdStatus:
		cli.HandleStatus(args)
	case cli.CmdConfig:
		cli.HandleConfig(args)
	case cli.CmdVersion:
		cli.HandleVersion(args)
	case cli.CmdHelp:
		cli.PrintUsage()
	default:
		cli.PrintUsage()
		os.Exit(1)
	}
}

// runTUI starts the full-screen chat interface.
func runTUI(args cli.Args) {
	// Stray log output would corrupt the alternate screen, so it goes
	// to a file when debugging and nowhere otherwise.
	if os.Getenv("HEMONCHAT_DEBUG") != "" {
		f, err := tea.LogToFile("hemonchat-debug.log", "debug")
		if err != nil {
			fmt.Fprintln(os.Stderr, "could not open debug log:", err)
			os.Exit(1)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err)
		os.Exit(1)
	}
	if args.APIURL != "" {
		cfg.API.BaseURL = args.APIURL
	}

	bc := backend.DefaultConfig()
	bc.BaseURL = cfg.API.BaseURL
	bc.Timeout = time.Duration(cfg.API.TimeoutSecs) * time.Second
	client := backend.NewClient(bc)

	p := tea.NewProgram(
		chat.New(client, cfg),
		tea.WithAltScreen(),
	)

	// Hot-reload config edits into the running UI. Watch failures are
	// not fatal; the session just keeps its startup settings.
	if path, perr := config.Path(); perr == nil {
		watcher, werr := config.Watch(path,
			func(c *config.Config) {
				if args.APIURL != "" {
					c.API.BaseURL = args.APIURL
				}
				p.Send(chat.ConfigReloadedMsg{Config: c})
			},
			func(err error) {
				log.Printf("config watch: %v", err)
			},
		)
		if werr == nil {
			defer watcher.Close()
		}
	}

	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "error running TUI:", err)
		os.Exit(1)
	}
}
