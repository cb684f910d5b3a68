// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides display helpers shared across the TUI: width-aware
// truncation and padding for list rows, and formatting for scores and
// service timestamps.
package util
