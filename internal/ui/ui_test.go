// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/AdamKasp/AI-chat/internal/api"
	"github.com/AdamKasp/AI-chat/internal/store"
)

// stubService satisfies store.Service with canned data; the UI tests only
// exercise presentation logic, not remote behavior.
type stubService struct{}

func (stubService) CreateChat(context.Context, api.ChatRequest) (*api.AIResponse, error) {
	return &api.AIResponse{Metadata: api.AIMetadata{ChatID: "c1"}}, nil
}
func (stubService) ListChats(context.Context, int, int, string) (*api.ChatListResponse, error) {
	return &api.ChatListResponse{}, nil
}
func (stubService) GetChat(_ context.Context, id string) (*api.Chat, error) {
	return &api.Chat{ID: id, UserID: "u1"}, nil
}
func (stubService) DeleteChat(context.Context, string) (*api.DeleteResponse, error) {
	return &api.DeleteResponse{}, nil
}
func (stubService) ListDocuments(context.Context, int, int) (*api.DocumentListResponse, error) {
	return &api.DocumentListResponse{}, nil
}
func (stubService) GetDocument(_ context.Context, id string) (*api.Document, error) {
	return &api.Document{ID: id}, nil
}
func (stubService) UploadDocument(context.Context, string, []byte) (*api.UploadResponse, error) {
	return &api.UploadResponse{Message: "ok"}, nil
}
func (stubService) DeleteDocument(context.Context, string) (*api.DeleteResponse, error) {
	return &api.DeleteResponse{}, nil
}
func (stubService) SearchDocuments(context.Context, string, int, float64) ([]api.SearchResult, error) {
	return nil, nil
}
func (stubService) RAGSearch(context.Context, string, int, float64) (*api.RAGSearchResponse, error) {
	return &api.RAGSearchResponse{}, nil
}
func (stubService) ListUsers(context.Context, int, int) (*api.UserListResponse, error) {
	return &api.UserListResponse{}, nil
}
func (stubService) GetUser(_ context.Context, id string) (*api.User, error) {
	return &api.User{ID: id, Login: "alice"}, nil
}
func (stubService) CreateUser(_ context.Context, login string) (*api.User, error) {
	return &api.User{ID: "u1", Login: login}, nil
}

func newTestModel() Model {
	coord := store.NewCoordinator(stubService{}, store.Options{Model: "gpt-4"})
	m := New(coord)
	sized, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return sized.(Model)
}

func keyPress(m Model, key string) (Model, tea.Cmd) {
	var msg tea.KeyMsg
	switch key {
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		msg = tea.KeyMsg{Type: tea.KeyShiftTab}
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestTabCyclesSections(t *testing.T) {
	m := newTestModel()

	m, _ = keyPress(m, "tab")
	if m.tab != tabDocuments {
		t.Errorf("tab = %v, want documents", m.tab)
	}
	m, _ = keyPress(m, "tab")
	if m.tab != tabSearch {
		t.Errorf("tab = %v, want search", m.tab)
	}
	m, _ = keyPress(m, "tab")
	if m.tab != tabChats {
		t.Errorf("tab = %v, want wrap to chats", m.tab)
	}
	m, _ = keyPress(m, "shift+tab")
	if m.tab != tabSearch {
		t.Errorf("tab = %v, want backwards wrap to search", m.tab)
	}
}

func TestTabSwitchClearsFocus(t *testing.T) {
	m := newTestModel()
	m.coord.Focus().SelectChat("c1")

	m, _ = keyPress(m, "tab")

	if m.coord.Focus().Kind() != store.FocusNone {
		t.Error("switching sections must drop the detail focus")
	}
}

func TestInputLineEscCancels(t *testing.T) {
	m := newTestModel()
	m.coord.Apply(store.UsersListedMsg{Users: []api.User{{ID: "u1", Login: "alice"}}})

	m, _ = keyPress(m, "n")
	if m.purpose != inputNewChat {
		t.Fatalf("purpose = %v, want new-chat input", m.purpose)
	}

	m, _ = keyPress(m, "esc")
	if m.purpose != inputNone {
		t.Error("Esc must dismiss the input line")
	}
	if m.input.Value() != "" {
		t.Error("dismissed input must be cleared")
	}
}

func TestInputLineCapturesListKeys(t *testing.T) {
	m := newTestModel()
	m, _ = keyPress(m, "n")

	// "q" must type into the input, not quit the program.
	m, _ = keyPress(m, "q")
	if m.input.Value() != "q" {
		t.Errorf("input = %q, want the key typed", m.input.Value())
	}
	if m.purpose != inputNewChat {
		t.Error("input line must stay open while typing")
	}
}

func TestSearchKeyOpensKeywordInput(t *testing.T) {
	m := newTestModel()
	m, _ = keyPress(m, "tab")
	m, _ = keyPress(m, "tab")
	if m.tab != tabSearch {
		t.Fatal("setup: expected search tab")
	}

	m, _ = keyPress(m, "/")
	if m.purpose != inputKeyword {
		t.Errorf("purpose = %v, want keyword input", m.purpose)
	}
}

func TestDroppedFileTriggersUpload(t *testing.T) {
	m := newTestModel()

	next, cmd := m.Update(DroppedFileMsg{Name: "notes.md", Data: []byte("# notes")})
	m = next.(Model)
	if cmd == nil {
		t.Fatal("dropped file must produce an upload command")
	}
	if _, ok := cmd().(store.DocumentUploadedMsg); !ok {
		t.Error("upload command must resolve to an upload completion")
	}
}

func TestRAGSoftErrorRenderedOnce(t *testing.T) {
	m := newTestModel()
	m, _ = keyPress(m, "tab")
	m, _ = keyPress(m, "tab")

	const softErr = "embedding service unavailable"
	m.coord.Apply(store.RAGResultsMsg{Seq: 0, Response: &api.RAGSearchResponse{
		Query: "anything",
		Error: softErr,
	}})

	out := m.View()
	if got := strings.Count(out, softErr); got != 1 {
		t.Errorf("soft error rendered %d times, want once (in the search pane only)", got)
	}
}

func TestTransportSearchErrorStillBannered(t *testing.T) {
	m := newTestModel()
	m.coord.Search.Apply(store.KeywordResultsMsg{Seq: 0, Err: errors.New("boom")})

	if !strings.Contains(m.View(), "Failed to search documents") {
		t.Error("transport search failures must surface in the banner")
	}
}

func TestQuitKey(t *testing.T) {
	m := newTestModel()

	_, cmd := keyPress(m, "q")
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q must quit from browse mode")
	}
}

func TestClampCursor(t *testing.T) {
	cases := []struct {
		cursor, n, want int
	}{
		{0, 0, 0},
		{5, 3, 2},
		{-1, 3, 0},
		{1, 3, 1},
	}
	for _, tc := range cases {
		if got := clampCursor(tc.cursor, tc.n); got != tc.want {
			t.Errorf("clampCursor(%d, %d) = %d, want %d", tc.cursor, tc.n, got, tc.want)
		}
	}
}
