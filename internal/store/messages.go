// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Completion messages delivered when remote calls finish. Every remote
// operation dispatched by a store resolves to exactly one of these.

package store

import (
	"github.com/AdamKasp/AI-chat/internal/api"
)

// =============================================================================
// CHAT MESSAGES
// =============================================================================

// ChatsListedMsg delivers the result of a chat list fetch.
type ChatsListedMsg struct {
	Chats []api.Chat
	Total int
	Err   error
}

// ChatLoadedMsg delivers a single chat with its full transcript.
type ChatLoadedMsg struct {
	Chat *api.Chat
	Err  error
}

// ChatCreatedMsg delivers the outcome of the two-phase chat creation
// (acknowledgement followed by a full fetch). Chat is the complete
// transcript, never the bare acknowledgement.
type ChatCreatedMsg struct {
	Chat *api.Chat
	Err  error
}

// ChatContinuedMsg delivers the refreshed transcript after a turn was
// appended remotely.
type ChatContinuedMsg struct {
	ChatID string
	Chat   *api.Chat
	Err    error
}

// ChatDeletedMsg confirms a chat deletion.
type ChatDeletedMsg struct {
	ChatID string
	Err    error
}

// =============================================================================
// DOCUMENT MESSAGES
// =============================================================================

// DocumentsListedMsg delivers the document corpus listing.
type DocumentsListedMsg struct {
	Documents []api.Document
	Total     int
	Err       error
}

// DocumentLoadedMsg delivers a single document. Origin is non-nil when the
// fetch was triggered by selecting a search hit.
type DocumentLoadedMsg struct {
	Document *api.Document
	Origin   *api.SearchResult
	Err      error
}

// DocumentUploadedMsg delivers the upload acknowledgement.
type DocumentUploadedMsg struct {
	Filename string
	Ack      *api.UploadResponse
	Err      error
}

// DocumentDeletedMsg confirms a document deletion.
type DocumentDeletedMsg struct {
	DocumentID string
	Err        error
}

// =============================================================================
// SEARCH MESSAGES
// =============================================================================

// KeywordResultsMsg delivers keyword search hits. Seq identifies the request
// that produced them; stale sequences are discarded on apply.
type KeywordResultsMsg struct {
	Seq     uint64
	Query   string
	Results []api.SearchResult
	Err     error
}

// RAGResultsMsg delivers a RAG search response. A response with a non-empty
// Error field arrives with Err == nil; it is a soft failure stored as data.
type RAGResultsMsg struct {
	Seq      uint64
	Response *api.RAGSearchResponse
	Err      error
}

// =============================================================================
// USER MESSAGES
// =============================================================================

// UserResolvedMsg delivers one identity lookup. Err is set when the lookup
// failed; the cache then synthesizes a placeholder for the id.
type UserResolvedMsg struct {
	UserID string
	User   *api.User
	Err    error
}

// UsersListedMsg delivers the user directory listing.
type UsersListedMsg struct {
	Users []api.User
	Err   error
}

// UserCreatedMsg delivers a newly created user.
type UserCreatedMsg struct {
	User *api.User
	Err  error
}
