// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"github.com/AdamKasp/AI-chat/internal/api"
)

// =============================================================================
// FOCUS STATE MACHINE
// =============================================================================

// FocusKind enumerates the mutually exclusive focus states.
type FocusKind int

const (
	// FocusNone means no entity is presented in the detail view.
	FocusNone FocusKind = iota
	// FocusChat means a chat transcript is presented.
	FocusChat
	// FocusDocument means a document is presented, possibly opened from a
	// search hit.
	FocusDocument
)

// Focus tracks which single entity is presented in the detail view. It holds
// ids only, never entity copies: a deletion in the owning store is reflected
// everywhere the id is referenced.
//
// The machine has no terminal state; it lives for the dashboard's lifetime.
type Focus struct {
	kind       FocusKind
	chatID     string
	documentID string
	origin     *api.SearchResult
}

// Kind returns the current focus state.
func (f *Focus) Kind() FocusKind { return f.kind }

// ChatID returns the focused chat id, or "" outside FocusChat.
func (f *Focus) ChatID() string {
	if f.kind != FocusChat {
		return ""
	}
	return f.chatID
}

// DocumentID returns the focused document id, or "" outside FocusDocument.
func (f *Focus) DocumentID() string {
	if f.kind != FocusDocument {
		return ""
	}
	return f.documentID
}

// Origin returns the search hit the focused document was opened from, or nil.
func (f *Focus) Origin() *api.SearchResult {
	if f.kind != FocusDocument {
		return nil
	}
	return f.origin
}

// =============================================================================
// TRANSITIONS
// =============================================================================

// SelectChat focuses a chat, clearing any document focus.
func (f *Focus) SelectChat(chatID string) {
	f.kind = FocusChat
	f.chatID = chatID
	f.documentID = ""
	f.origin = nil
}

// SelectDocument focuses a document opened from the corpus listing.
func (f *Focus) SelectDocument(documentID string) {
	f.kind = FocusDocument
	f.documentID = documentID
	f.chatID = ""
	f.origin = nil
}

// SelectSearchHit focuses the document a search hit references, retaining
// the hit so its score can be displayed alongside the full document.
func (f *Focus) SelectSearchHit(hit api.SearchResult) {
	f.kind = FocusDocument
	f.documentID = hit.ID
	f.chatID = ""
	f.origin = &hit
}

// Clear drops any focus.
func (f *Focus) Clear() {
	*f = Focus{}
}

// ClearDocument drops document focus only. A new search supersedes the
// result set a prior selection referred to, so the selection is meaningless.
func (f *Focus) ClearDocument() {
	if f.kind == FocusDocument {
		f.Clear()
	}
}

// NoteChatDeleted clears focus iff the deleted chat was focused.
func (f *Focus) NoteChatDeleted(chatID string) {
	if f.kind == FocusChat && f.chatID == chatID {
		f.Clear()
	}
}

// NoteDocumentDeleted clears focus iff the deleted document was focused.
func (f *Focus) NoteDocumentDeleted(documentID string) {
	if f.kind == FocusDocument && f.documentID == documentID {
		f.Clear()
	}
}
