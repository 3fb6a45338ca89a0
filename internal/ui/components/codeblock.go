// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
)

// =============================================================================
// CODE BLOCK RENDERER
// =============================================================================

// Finalized assistant messages go through glamour, which highlights code
// itself. This renderer covers the other paths: the still-streaming
// message in the TUI and the plain REPL output, where running a full
// markdown pass on every repaint would be wasteful.

const fence = "```"

// HighlightFences replaces fenced code blocks in content with
// syntax-highlighted terminal output. An unterminated trailing fence
// (common mid-stream) is highlighted as-is.
func HighlightFences(content string) string {
	if !strings.Contains(content, fence) {
		return content
	}

	var out strings.Builder
	rest := content
	for {
		start := strings.Index(rest, fence)
		if start < 0 {
			out.WriteString(rest)
			break
		}
		out.WriteString(rest[:start])
		rest = rest[start+len(fence):]

		// Language tag runs to end of the fence line.
		language := ""
		if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
			language = strings.TrimSpace(rest[:nl])
			rest = rest[nl+1:]
		}

		end := strings.Index(rest, fence)
		var code string
		if end < 0 {
			code = rest
			rest = ""
		} else {
			code = rest[:end]
			rest = rest[end+len(fence):]
		}

		out.WriteString(highlightCode(code, language))
	}
	return out.String()
}

// highlightCode runs chroma over one code block. On any failure the
// original code is returned untouched.
func highlightCode(code, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}

	style := chromaStyles.Get("monokai")
	if style == nil {
		style = chromaStyles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		return code
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}
	return buf.String()
}
