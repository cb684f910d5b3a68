// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads and validates AI-chat configuration from
// ~/.ai-chat/config.toml with AICHAT_* environment overrides.
package config
