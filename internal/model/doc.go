// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
//
// A Conversation is an ordered, append-only sequence of Messages. The one
// exception to append-only is the most recently opened assistant message,
// which is mutated in place while a response streams in. At most one
// assistant message is open at a time; Conversation enforces that
// invariant on every operation.
package model
