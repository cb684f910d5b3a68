// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/AdamKasp/AI-chat/internal/api"
)

// =============================================================================
// RETRIEVAL QUERY ENGINE
// =============================================================================

// SearchEngine issues keyword and RAG searches and owns both result sets.
//
// Each search wholesale replaces the previous result set of its kind. Races
// between overlapping searches resolve last-request-wins: every request
// carries a sequence number, and a completion whose sequence is not the
// latest issued is discarded on apply.
type SearchEngine struct {
	svc     Service
	timeout time.Duration

	keywordSeq     uint64
	keywordQuery   string
	keywordResults []api.SearchResult
	keywordRan     bool

	ragSeq uint64
	rag    *api.RAGSearchResponse

	searching bool
	lastErr   string
}

// NewSearchEngine creates an idle search engine backed by svc.
func NewSearchEngine(svc Service, timeout time.Duration) *SearchEngine {
	return &SearchEngine{svc: svc, timeout: timeout}
}

// KeywordResults returns the hits of the most recent keyword search.
func (e *SearchEngine) KeywordResults() []api.SearchResult { return e.keywordResults }

// KeywordQuery returns the query that produced the current keyword results.
func (e *SearchEngine) KeywordQuery() string { return e.keywordQuery }

// KeywordRan reports whether a keyword search has completed since the last
// reset; it distinguishes "no results" from "never searched".
func (e *SearchEngine) KeywordRan() bool { return e.keywordRan }

// RAG returns the most recent RAG response, soft failures included, or nil.
func (e *SearchEngine) RAG() *api.RAGSearchResponse { return e.rag }

// RAGDocuments returns the usable documents of the current RAG response.
// A soft-failed response yields none.
func (e *SearchEngine) RAGDocuments() []api.Document {
	if e.rag == nil || !e.rag.Usable() {
		return nil
	}
	return e.rag.Documents
}

// Searching reports whether any search is in flight.
func (e *SearchEngine) Searching() bool { return e.searching }

// Err returns the last user-facing error, or "". Soft RAG failures surface
// here too, verbatim from the service.
func (e *SearchEngine) Err() string { return e.lastErr }

// =============================================================================
// OPERATIONS
// =============================================================================

// Keyword returns a command that runs a keyword search. An empty query is
// rejected locally, saving a round trip for a guaranteed-empty result.
func (e *SearchEngine) Keyword(query string, limit int, scoreThreshold float64) tea.Cmd {
	query = strings.TrimSpace(query)
	if query == "" {
		e.lastErr = "Please enter a search query"
		return nil
	}
	e.lastErr = ""
	e.searching = true
	e.keywordSeq++
	seq := e.keywordSeq

	svc, timeout := e.svc, e.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		results, err := svc.SearchDocuments(ctx, query, limit, scoreThreshold)
		return KeywordResultsMsg{Seq: seq, Query: query, Results: results, Err: err}
	}
}

// RunRAG returns a command that runs a RAG search. An empty prompt is
// rejected locally.
func (e *SearchEngine) RunRAG(prompt string, count int, scoreThreshold float64) tea.Cmd {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		e.lastErr = "Please enter a search prompt"
		return nil
	}
	e.lastErr = ""
	e.searching = true
	e.ragSeq++
	seq := e.ragSeq

	svc, timeout := e.svc, e.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		resp, err := svc.RAGSearch(ctx, prompt, count, scoreThreshold)
		return RAGResultsMsg{Seq: seq, Response: resp, Err: err}
	}
}

// =============================================================================
// MESSAGE APPLICATION
// =============================================================================

// Apply folds a completion message into the engine, discarding stale
// sequences. It reports whether the message was one of the search messages.
func (e *SearchEngine) Apply(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case KeywordResultsMsg:
		if msg.Seq != e.keywordSeq {
			// A newer keyword search was issued after this one; its result
			// set must not be clobbered by this late completion.
			return true
		}
		e.searching = false
		if msg.Err != nil {
			e.lastErr = "Failed to search documents"
			return true
		}
		e.keywordQuery = msg.Query
		e.keywordResults = msg.Results
		e.keywordRan = true
		return true

	case RAGResultsMsg:
		if msg.Seq != e.ragSeq {
			return true
		}
		e.searching = false
		if msg.Err != nil {
			e.lastErr = "Failed to search documents"
			return true
		}
		// Soft failure: stored as data so the UI can render the error text
		// or a "no documents" notice, but never treated as usable results.
		e.rag = msg.Response
		if msg.Response.Error != "" {
			e.lastErr = msg.Response.Error
		}
		return true
	}
	return false
}
