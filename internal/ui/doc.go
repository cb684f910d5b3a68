// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui implements the dashboard's terminal interface: three tabbed
// sections (chats, documents, search), a detail pane for the focused entity,
// and a user picker. Everything it renders is read from the store
// coordinator; the package owns presentation state only.
package ui
