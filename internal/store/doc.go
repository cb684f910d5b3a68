// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store holds the client-side state of the dashboard: chat sessions,
// the document corpus, search results, user identities, and the single focus
// that decides what the detail view presents.
//
// Stores follow the update-loop contract: methods that need the network
// return a tea.Cmd and mutate nothing remotely themselves; all state changes
// happen in Apply when the completion message arrives. State is therefore
// only ever touched from the program's update goroutine and needs no locks.
package store
