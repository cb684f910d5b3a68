// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClientWithConfig(&ClientConfig{BaseURL: srv.URL, RequestsPerSecond: 1000, Burst: 100})
	return c, srv
}

// =============================================================================
// CHAT ENDPOINT TESTS
// =============================================================================

func TestCreateChat(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/chat" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("missing X-Request-ID header")
		}
		var req ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Prompt != "hello" || req.UserID != "u1" {
			t.Errorf("unexpected request body: %+v", req)
		}
		json.NewEncoder(w).Encode(AIResponse{
			FinishReason: "stop",
			Answer:       "hi there",
			Metadata:     AIMetadata{ChatID: "c1"},
		})
	}))

	resp, err := c.CreateChat(context.Background(), ChatRequest{UserID: "u1", Prompt: "hello", Model: "gpt-4"})
	if err != nil {
		t.Fatalf("CreateChat: %v", err)
	}
	if resp.Metadata.ChatID != "c1" {
		t.Errorf("ChatID = %q, want c1", resp.Metadata.ChatID)
	}
	if resp.Answer != "hi there" {
		t.Errorf("Answer = %q", resp.Answer)
	}
}

func TestListChats_UserFilter(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("limit") != "100" || q.Get("offset") != "0" {
			t.Errorf("unexpected paging params: %v", q)
		}
		if q.Get("user_id") != "u1" {
			t.Errorf("user_id = %q, want u1", q.Get("user_id"))
		}
		json.NewEncoder(w).Encode(ChatListResponse{
			Chats: []Chat{{ID: "c1", UserID: "u1"}},
			Total: 1, Limit: 100,
		})
	}))

	resp, err := c.ListChats(context.Background(), 100, 0, "u1")
	if err != nil {
		t.Fatalf("ListChats: %v", err)
	}
	if len(resp.Chats) != 1 || resp.Chats[0].ID != "c1" {
		t.Errorf("unexpected chats: %+v", resp.Chats)
	}
}

func TestDeleteChat_StatusError(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))

	_, err := c.DeleteChat(context.Background(), "missing")
	if err == nil {
		t.Fatal("expected error for 404")
	}
	status, ok := IsStatus(err)
	if !ok || status != http.StatusNotFound {
		t.Errorf("IsStatus = (%d, %v), want (404, true)", status, ok)
	}
}

// =============================================================================
// DOCUMENT ENDPOINT TESTS
// =============================================================================

func TestUploadDocument_Multipart(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer f.Close()
		if hdr.Filename != "a.txt" {
			t.Errorf("filename = %q, want a.txt", hdr.Filename)
		}
		json.NewEncoder(w).Encode(UploadResponse{ID: "d1", Localisation: "a.txt", Message: "ingested"})
	}))

	resp, err := c.UploadDocument(context.Background(), "a.txt", []byte("alpha"))
	if err != nil {
		t.Fatalf("UploadDocument: %v", err)
	}
	if resp.ID != "d1" || resp.Localisation != "a.txt" {
		t.Errorf("unexpected upload response: %+v", resp)
	}
}

func TestSearchDocuments_ThresholdOmitted(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("query") != "alpha" || q.Get("limit") != "10" {
			t.Errorf("unexpected query params: %v", q)
		}
		if q.Has("score_threshold") {
			t.Error("score_threshold should be omitted when negative")
		}
		json.NewEncoder(w).Encode([]SearchResult{{ID: "d1", FilePath: "a.txt", Score: 0.9}})
	}))

	results, err := c.SearchDocuments(context.Background(), "alpha", 10, -1)
	if err != nil {
		t.Fatalf("SearchDocuments: %v", err)
	}
	if len(results) != 1 || results[0].Score != 0.9 {
		t.Errorf("unexpected results: %+v", results)
	}
}

// =============================================================================
// RAG ENDPOINT TESTS
// =============================================================================

func TestRAGSearch_SoftError(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(RAGSearchResponse{
			Query: "q", Error: "no documents found",
		})
	}))

	resp, err := c.RAGSearch(context.Background(), "q", 5, 0.5)
	if err != nil {
		t.Fatalf("RAGSearch should not fail on a soft error: %v", err)
	}
	if resp.Error != "no documents found" {
		t.Errorf("Error = %q", resp.Error)
	}
	if resp.Usable() {
		t.Error("soft-failed response must not be usable")
	}
}

// =============================================================================
// USER ENDPOINT TESTS
// =============================================================================

func TestCreateUser(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req CreateUserRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Login != "alice" {
			t.Errorf("login = %q, want alice", req.Login)
		}
		json.NewEncoder(w).Encode(User{ID: "u1", Login: "alice"})
	}))

	u, err := c.CreateUser(context.Background(), "alice")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if u.ID != "u1" || u.Login != "alice" {
		t.Errorf("unexpected user: %+v", u)
	}
}

func TestDeleteUser(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/users/u1" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(DeleteResponse{Message: "user deleted"})
	}))

	resp, err := c.DeleteUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if resp.Message != "user deleted" {
		t.Errorf("Message = %q", resp.Message)
	}
}

// =============================================================================
// TRANSPORT FAILURE TESTS
// =============================================================================

func TestUnreachableServer(t *testing.T) {
	c := NewClientWithConfig(&ClientConfig{BaseURL: "http://127.0.0.1:1", RequestsPerSecond: 1000, Burst: 100})

	_, err := c.ListDocuments(context.Background(), 10, 0)
	if err == nil {
		t.Fatal("expected error for unreachable server")
	}
	var clientErr *ClientError
	if !errors.As(err, &clientErr) {
		t.Fatalf("error is not a *ClientError: %v", err)
	}
	if clientErr.Type != ErrTypeUnreachable && clientErr.Type != ErrTypeTimeout {
		t.Errorf("unexpected error type %d", clientErr.Type)
	}
}
