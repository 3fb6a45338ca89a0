// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for the
// hemonchat client.
//
// Configuration is TOML, with sensible defaults and an environment
// override for the one value that matters most: the backend base URL.
//
// Resolution order (highest wins):
//   - HEMONCHAT_API_URL environment variable
//   - ~/.hemonchat/config.toml
//   - Built-in defaults
package config
