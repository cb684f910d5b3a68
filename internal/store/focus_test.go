// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"testing"

	"github.com/AdamKasp/AI-chat/internal/api"
)

func TestFocusExclusive(t *testing.T) {
	var f Focus

	f.SelectChat("c1")
	if f.Kind() != FocusChat || f.ChatID() != "c1" {
		t.Fatalf("kind=%v chat=%q", f.Kind(), f.ChatID())
	}
	if f.DocumentID() != "" || f.Origin() != nil {
		t.Error("chat focus must expose no document state")
	}

	f.SelectDocument("d1")
	if f.Kind() != FocusDocument || f.DocumentID() != "d1" {
		t.Fatalf("kind=%v doc=%q", f.Kind(), f.DocumentID())
	}
	if f.ChatID() != "" {
		t.Error("document focus must expose no chat state")
	}
	if f.Origin() != nil {
		t.Error("listing-opened document carries no origin")
	}
}

func TestFocusSearchHitRetainsOrigin(t *testing.T) {
	var f Focus
	f.SelectSearchHit(api.SearchResult{ID: "d1", Score: 0.91})

	if f.Kind() != FocusDocument || f.DocumentID() != "d1" {
		t.Fatalf("kind=%v doc=%q", f.Kind(), f.DocumentID())
	}
	if f.Origin() == nil || f.Origin().Score != 0.91 {
		t.Error("origin hit must be retained for score display")
	}
}

func TestFocusClearDocumentOnly(t *testing.T) {
	var f Focus

	f.SelectChat("c1")
	f.ClearDocument()
	if f.Kind() != FocusChat {
		t.Error("clearing document focus must not touch chat focus")
	}

	f.SelectDocument("d1")
	f.ClearDocument()
	if f.Kind() != FocusNone {
		t.Error("document focus must be cleared")
	}
}

func TestFocusDeletionNotices(t *testing.T) {
	var f Focus

	f.SelectChat("c1")
	f.NoteChatDeleted("other")
	if f.Kind() != FocusChat {
		t.Error("deleting an unrelated chat must not clear focus")
	}
	f.NoteChatDeleted("c1")
	if f.Kind() != FocusNone {
		t.Error("deleting the focused chat must clear focus")
	}

	f.SelectSearchHit(api.SearchResult{ID: "d1"})
	f.NoteDocumentDeleted("other")
	if f.Kind() != FocusDocument {
		t.Error("deleting an unrelated document must not clear focus")
	}
	f.NoteDocumentDeleted("d1")
	if f.Kind() != FocusNone {
		t.Error("deleting the focused document must clear focus")
	}
}
