// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"fmt"
	"testing"

	"github.com/AdamKasp/AI-chat/internal/api"
)

// End-to-end flows through the coordinator against an in-memory service.

func TestScenarioFirstChat(t *testing.T) {
	// Create a user, start a chat, and end with a decorated one-entry list.
	svc := newFakeService()
	svc.createUserFn = func(login string) (*api.User, error) {
		return &api.User{ID: "u1", Login: login}, nil
	}
	svc.listChatsFn = func(limit, offset int, userID string) (*api.ChatListResponse, error) {
		return &api.ChatListResponse{}, nil
	}
	svc.createChatFn = func(req api.ChatRequest) (*api.AIResponse, error) {
		if req.UserID != "u1" || req.Prompt != "hello" {
			t.Errorf("creation request = %+v", req)
		}
		return &api.AIResponse{Answer: "hi!", Metadata: api.AIMetadata{ChatID: "c1"}}, nil
	}
	svc.getChatFn = func(id string) (*api.Chat, error) {
		return &api.Chat{ID: id, UserID: "u1", Messages: []api.Message{
			{Message: "hello", Author: api.AuthorUser},
			{Message: "hi!", Author: api.AuthorAgent},
		}}, nil
	}
	c := newTestCoordinator(svc)

	drain(c, c.CreateUser("alice"))
	drain(c, c.NewChat("hello"))

	if len(c.Chats.Chats()) != 1 {
		t.Fatalf("chat list length = %d, want 1", len(c.Chats.Chats()))
	}
	active := c.Chats.Active()
	if active == nil || active.ID != "c1" || len(active.Messages) != 2 {
		t.Fatalf("active = %+v, want c1 with 2 messages", active)
	}
	if active.Messages[0].Author != api.AuthorUser || active.Messages[1].Author != api.AuthorAgent {
		t.Error("transcript must carry the prompt and the agent reply")
	}
	if got := c.Identity.Login(active.UserID); got != "alice" {
		t.Errorf("owner decorated as %q, want alice", got)
	}
}

func TestScenarioUploadThenSearch(t *testing.T) {
	// Upload two documents, then keyword search with limit 1.
	corpus := map[string]string{}
	svc := newFakeService()
	svc.uploadDocumentFn = func(filename string, data []byte) (*api.UploadResponse, error) {
		id := fmt.Sprintf("d%d", len(corpus)+1)
		corpus[id] = filename
		return &api.UploadResponse{ID: id, Localisation: filename, Message: "ingested"}, nil
	}
	svc.listDocumentsFn = func(limit, offset int) (*api.DocumentListResponse, error) {
		resp := &api.DocumentListResponse{Total: len(corpus)}
		for id, name := range corpus {
			resp.Documents = append(resp.Documents, api.Document{ID: id, Localisation: name})
		}
		return resp, nil
	}
	svc.searchFn = func(query string, limit int, threshold float64) ([]api.SearchResult, error) {
		if limit != 1 {
			t.Errorf("limit = %d, want 1", limit)
		}
		return []api.SearchResult{{ID: "d1", FilePath: "a.txt", Score: 0.87}}, nil
	}
	c := NewCoordinator(svc, Options{Model: "gpt-4", KeywordLimit: 1})

	drain(c, c.UploadDocument("a.txt", []byte("alpha")))
	drain(c, c.UploadDocument("b.txt", []byte("beta")))

	// The corpus listing includes both uploaded ids.
	if len(c.Documents.Documents()) != 2 {
		t.Fatalf("documents = %d, want 2", len(c.Documents.Documents()))
	}

	drain(c, c.RunKeywordSearch("a"))

	results := c.Search.KeywordResults()
	if len(results) != 1 {
		t.Fatalf("results = %d, want exactly 1", len(results))
	}
	if results[0].Score < 0 || results[0].Score > 1 {
		t.Errorf("score = %v, want within [0,1]", results[0].Score)
	}
}

func TestScenarioRAGNoDocuments(t *testing.T) {
	// A RAG search finding nothing is an empty outcome, not a failure.
	svc := newFakeService()
	svc.ragFn = func(prompt string, count int, threshold float64) (*api.RAGSearchResponse, error) {
		return &api.RAGSearchResponse{Query: prompt, DocumentCount: 0, HasContext: false}, nil
	}
	c := newTestCoordinator(svc)

	drain(c, c.RunRAGSearch("anything relevant?"))

	rag := c.Search.RAG()
	if rag == nil {
		t.Fatal("response must be stored")
	}
	if rag.Usable() {
		t.Error("zero documents must not count as usable results")
	}
	if c.Search.Err() != "" {
		t.Errorf("Err = %q; an empty result set is not an error", c.Search.Err())
	}
}

func TestScenarioDeleteViewedDocument(t *testing.T) {
	// Deleting the document in the viewer clears focus and the listing entry.
	svc := newFakeService()
	full := docFixture("d1")
	svc.getDocumentFn = func(id string) (*api.Document, error) { return &full, nil }
	svc.deleteDocumentFn = func(id string) (*api.DeleteResponse, error) {
		return &api.DeleteResponse{Message: "deleted"}, nil
	}
	svc.listDocumentsFn = func(limit, offset int) (*api.DocumentListResponse, error) {
		return &api.DocumentListResponse{Documents: []api.Document{docFixture("d2")}, Total: 1}, nil
	}
	c := newTestCoordinator(svc)
	c.Documents.Apply(DocumentsListedMsg{
		Documents: []api.Document{docFixture("d1"), docFixture("d2")}, Total: 2,
	})

	drain(c, c.OpenDocument("d1"))
	if c.Focus().Kind() != FocusDocument {
		t.Fatal("setup: document must be focused")
	}

	drain(c, c.DeleteDocument("d1"))

	if c.Focus().Kind() != FocusNone {
		t.Error("viewer focus must clear when its document is deleted")
	}
	for _, doc := range c.Documents.Documents() {
		if doc.ID == "d1" {
			t.Error("deleted document must not appear in the listing")
		}
	}
	if c.Documents.Current() != nil {
		t.Error("viewer content must be cleared")
	}
}
