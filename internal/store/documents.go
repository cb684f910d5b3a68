// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/AdamKasp/AI-chat/internal/api"
)

// =============================================================================
// DOCUMENT STORE
// =============================================================================

// DocumentStore owns the corpus listing and the single-document detail view.
//
// Generation is a monotonic counter bumped on every confirmed upload or
// deletion; dependent views compare it against the generation they last
// rendered to know a re-list is due.
type DocumentStore struct {
	svc     Service
	timeout time.Duration

	docs       []api.Document
	total      int
	current    *api.Document
	origin     *api.SearchResult
	generation uint64
	loading    bool
	lastErr    string
	status     string
}

// NewDocumentStore creates an empty document store backed by svc.
func NewDocumentStore(svc Service, timeout time.Duration) *DocumentStore {
	return &DocumentStore{svc: svc, timeout: timeout}
}

// Documents returns the current corpus listing.
func (s *DocumentStore) Documents() []api.Document { return s.docs }

// Total returns the corpus size reported by the service.
func (s *DocumentStore) Total() int { return s.total }

// Current returns the document in the detail view, or nil.
func (s *DocumentStore) Current() *api.Document { return s.current }

// Origin returns the search hit that opened the current document, or nil
// when it was opened from the corpus listing.
func (s *DocumentStore) Origin() *api.SearchResult { return s.origin }

// Generation returns the monotonic refresh counter.
func (s *DocumentStore) Generation() uint64 { return s.generation }

// Loading reports whether a document operation is in flight.
func (s *DocumentStore) Loading() bool { return s.loading }

// Err returns the last user-facing error, or "".
func (s *DocumentStore) Err() string { return s.lastErr }

// Status returns the last informational message (e.g. the upload
// acknowledgement), or "".
func (s *DocumentStore) Status() string { return s.status }

func (s *DocumentStore) begin() {
	s.lastErr = ""
	s.loading = true
}

// =============================================================================
// OPERATIONS
// =============================================================================

// List returns a command that fetches a page of the corpus.
func (s *DocumentStore) List(limit int) tea.Cmd {
	s.begin()
	svc, timeout := s.svc, s.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		resp, err := svc.ListDocuments(ctx, limit, 0)
		if err != nil {
			return DocumentsListedMsg{Err: err}
		}
		return DocumentsListedMsg{Documents: resp.Documents, Total: resp.Total}
	}
}

// Get returns a command that fetches one document's full content. Origin,
// when non-nil, records the search hit the fetch was triggered from; the
// snippet in the hit is never reused as document content.
func (s *DocumentStore) Get(id string, origin *api.SearchResult) tea.Cmd {
	s.begin()
	svc, timeout := s.svc, s.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		doc, err := svc.GetDocument(ctx, id)
		return DocumentLoadedMsg{Document: doc, Origin: origin, Err: err}
	}
}

// Upload returns a command that submits file bytes for ingestion. The
// command resolves once the service has ingested and indexed the document.
func (s *DocumentStore) Upload(filename string, data []byte) tea.Cmd {
	if filename == "" || len(data) == 0 {
		s.lastErr = "Please choose a non-empty file."
		return nil
	}
	s.begin()
	s.status = ""
	svc, timeout := s.svc, s.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		ack, err := svc.UploadDocument(ctx, filename, data)
		return DocumentUploadedMsg{Filename: filename, Ack: ack, Err: err}
	}
}

// Delete returns a command that deletes a document. Index invalidation is a
// remote-side guarantee; locally the entry is removed once confirmed.
func (s *DocumentStore) Delete(id string) tea.Cmd {
	s.begin()
	svc, timeout := s.svc, s.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		_, err := svc.DeleteDocument(ctx, id)
		return DocumentDeletedMsg{DocumentID: id, Err: err}
	}
}

// =============================================================================
// MESSAGE APPLICATION
// =============================================================================

// Apply folds a completion message into the store. It reports whether the
// message was one of the document messages.
func (s *DocumentStore) Apply(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case DocumentsListedMsg:
		s.loading = false
		if msg.Err != nil {
			s.lastErr = "Failed to load documents. Please try again."
			return true
		}
		s.docs = msg.Documents
		s.total = msg.Total
		return true

	case DocumentLoadedMsg:
		s.loading = false
		if msg.Err != nil {
			s.lastErr = "Failed to load document. Please try again."
			return true
		}
		s.current = msg.Document
		s.origin = msg.Origin
		return true

	case DocumentUploadedMsg:
		s.loading = false
		if msg.Err != nil {
			s.lastErr = "Failed to upload " + msg.Filename + ". Please try again."
			return true
		}
		s.generation++
		s.status = msg.Ack.Message
		return true

	case DocumentDeletedMsg:
		s.loading = false
		if msg.Err != nil {
			s.lastErr = "Failed to delete document. Please try again."
			return true
		}
		s.generation++
		s.removeLocal(msg.DocumentID)
		if s.current != nil && s.current.ID == msg.DocumentID {
			s.current = nil
			s.origin = nil
		}
		return true
	}
	return false
}

func (s *DocumentStore) removeLocal(id string) {
	for idx := range s.docs {
		if s.docs[idx].ID == id {
			s.docs = append(s.docs[:idx:idx], s.docs[idx+1:]...)
			s.total--
			return
		}
	}
}
