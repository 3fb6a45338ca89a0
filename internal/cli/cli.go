// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"os"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdAsk
	CmdChat
	CmdStatus
	CmdConfig
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet   bool
	Verbose bool
	Plain   bool   // disable markdown rendering
	APIURL  string // override the configured backend URL

	// Command-specific
	Query      string
	Subcommand string
	ConfigKey  string
	ConfigVal  string

	// Raw args remaining after flag parsing
	Raw []string
}

const usageText = `hemonchat - terminal client for a hosted chat assistant

Usage:
  hemonchat                  Start the TUI (default)
  hemonchat ask "question"   Ask a single question, stream the answer
  hemonchat chat             Interactive line-based chat
  hemonchat status, s        Check model readiness
  hemonchat config [show|set|path]
                             Show or edit configuration
  hemonchat version          Print version information
  hemonchat help             Show this help

Global flags:
  --api-url URL    Backend base URL (overrides config and HEMONCHAT_API_URL)
  --plain          Disable markdown rendering of responses
  -q, --quiet      Minimal output
  -v, --verbose    Verbose output

Config commands:
  hemonchat config show               Print effective configuration
  hemonchat config set KEY VALUE     Set a key (api.base_url, api.timeout_secs,
                                     api.poll_interval_secs, ui.theme,
                                     ui.markdown_width, ui.snake_enabled)
  hemonchat config path              Print the config file location

Environment:
  HEMONCHAT_API_URL   Backend base URL (overrides the config file)
  HEMONCHAT_DEBUG     Write TUI debug logs to hemonchat-debug.log

Examples:
  hemonchat ask "What does errors.Is do?"
  hemonchat ask --plain "Give me a haiku" > haiku.txt
  hemonchat --api-url http://10.0.0.5:8000 status
  hemonchat config set ui.theme light
`

// Parse reads os.Args and returns the command to run with its
// arguments.
func Parse() (Command, Args) {
	remaining, parsed := parseGlobalFlags(os.Args[1:])

	if len(remaining) == 0 {
		return CmdTUI, parsed
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	parsed.Raw = remaining

	switch cmd {
	case "tui":
		return CmdTUI, parsed

	case "ask":
		parsed.Query = strings.TrimSpace(strings.Join(remaining, " "))
		return CmdAsk, parsed

	case "chat":
		return CmdChat, parsed

	case "status", "s":
		return CmdStatus, parsed

	case "config":
		parseConfigArgs(&parsed, remaining)
		return CmdConfig, parsed

	case "version", "--version", "-V":
		return CmdVersion, parsed

	case "help", "--help", "-h":
		return CmdHelp, parsed

	default:
		// Bare text is treated as a question, matching what people
		// type first: hemonchat "what is a goroutine"
		parsed.Query = strings.TrimSpace(strings.Join(append([]string{cmd}, remaining...), " "))
		return CmdAsk, parsed
	}
}

// parseGlobalFlags extracts flags valid for every command and returns
// the remaining arguments.
func parseGlobalFlags(args []string) ([]string, Args) {
	var parsed Args
	remaining := make([]string, 0, len(args))

	i := 0
	for i < len(args) {
		arg := args[i]
		switch {
		case arg == "-q" || arg == "--quiet":
			parsed.Quiet = true
		case arg == "-v" || arg == "--verbose":
			parsed.Verbose = true
		case arg == "--plain":
			parsed.Plain = true
		case arg == "--api-url":
			if i+1 < len(args) {
				i++
				parsed.APIURL = args[i]
			}
		case strings.HasPrefix(arg, "--api-url="):
			parsed.APIURL = strings.TrimPrefix(arg, "--api-url=")
		default:
			remaining = append(remaining, arg)
		}
		i++
	}

	return remaining, parsed
}

func parseConfigArgs(parsed *Args, args []string) {
	p := NewArgParser(args)
	parsed.Subcommand = p.Subcommand()
	if parsed.Subcommand == "" {
		parsed.Subcommand = "show"
	}

	pos := p.Positional()
	if len(pos) > 1 {
		parsed.ConfigKey = pos[1]
	}
	if len(pos) > 2 {
		parsed.ConfigVal = pos[2]
	}
}

// PrintUsage writes the top-level help text.
func PrintUsage() {
	fmt.Print(usageText)
}

// HandleVersion prints version information.
func HandleVersion(args Args) {
	if args.Quiet {
		fmt.Println(Version)
		return
	}
	fmt.Printf("hemonchat %s\n", Version)
	fmt.Printf("  commit:  %s\n", GitCommit)
	fmt.Printf("  built:   %s\n", BuildDate)
	fmt.Printf("  runtime: %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
