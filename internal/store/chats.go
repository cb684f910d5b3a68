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
// CHAT SESSION STORE
// =============================================================================

// ChatStore owns the chat list and the active chat's full transcript.
//
// The store is the sole mutator of both; other components hold chat ids only.
// Every operation resolves to exactly one completion message, and every
// failure path clears the loading flag, so the UI can never be left blocked.
type ChatStore struct {
	svc     Service
	timeout time.Duration

	chats   []api.Chat
	active  *api.Chat
	total   int
	loading bool
	lastErr string
}

// NewChatStore creates an empty chat store backed by svc.
func NewChatStore(svc Service, timeout time.Duration) *ChatStore {
	return &ChatStore{svc: svc, timeout: timeout}
}

// Chats returns the current chat list, newest first.
func (s *ChatStore) Chats() []api.Chat { return s.chats }

// Active returns the chat whose transcript is loaded, or nil.
func (s *ChatStore) Active() *api.Chat { return s.active }

// Loading reports whether a chat operation is in flight.
func (s *ChatStore) Loading() bool { return s.loading }

// Err returns the last user-facing error, or "".
func (s *ChatStore) Err() string { return s.lastErr }

// begin marks an operation started: prior error cleared, loading set.
func (s *ChatStore) begin() {
	s.lastErr = ""
	s.loading = true
}

// =============================================================================
// OPERATIONS
// =============================================================================

// List returns a command that fetches the chat list for ownerID. An absent
// owner clears the list without touching the network.
func (s *ChatStore) List(ownerID string, limit int) tea.Cmd {
	if ownerID == "" {
		s.chats = nil
		s.active = nil
		s.total = 0
		return nil
	}
	s.begin()
	svc, timeout := s.svc, s.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		resp, err := svc.ListChats(ctx, limit, 0, ownerID)
		if err != nil {
			return ChatsListedMsg{Err: err}
		}
		return ChatsListedMsg{Chats: resp.Chats, Total: resp.Total}
	}
}

// Load returns a command that fetches one chat's full transcript. On failure
// the previously active chat stays untouched.
func (s *ChatStore) Load(chatID string) tea.Cmd {
	s.begin()
	svc, timeout := s.svc, s.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		chat, err := svc.GetChat(ctx, chatID)
		return ChatLoadedMsg{Chat: chat, Err: err}
	}
}

// Create returns a command that starts a new chat. The creation endpoint
// acknowledges with the agent's answer and a chat id only, so the command
// performs the mandatory follow-up fetch of the full transcript before the
// chat enters the list. Empty input is rejected locally.
func (s *ChatStore) Create(ownerID, prompt, model, systemPrompt string) tea.Cmd {
	if ownerID == "" {
		s.lastErr = "Please select a user first."
		return nil
	}
	if strings.TrimSpace(prompt) == "" {
		s.lastErr = "Please enter a prompt."
		return nil
	}
	s.begin()
	req := api.ChatRequest{
		UserID:       ownerID,
		Prompt:       strings.TrimSpace(prompt),
		Model:        model,
		SystemPrompt: systemPrompt,
	}
	svc, timeout := s.svc, s.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		ack, err := svc.CreateChat(ctx, req)
		if err != nil {
			return ChatCreatedMsg{Err: err}
		}
		chat, err := svc.GetChat(ctx, ack.Metadata.ChatID)
		if err != nil {
			return ChatCreatedMsg{Err: err}
		}
		return ChatCreatedMsg{Chat: chat}
	}
}

// Continue returns a command that appends a turn to chatID and re-fetches the
// canonical transcript (the append acknowledgement does not carry it).
func (s *ChatStore) Continue(chatID, ownerID, message, model string) tea.Cmd {
	if strings.TrimSpace(message) == "" {
		s.lastErr = "Please enter a message."
		return nil
	}
	s.begin()
	req := api.ChatRequest{
		UserID: ownerID,
		Prompt: strings.TrimSpace(message),
		Model:  model,
		ChatID: chatID,
	}
	svc, timeout := s.svc, s.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if _, err := svc.CreateChat(ctx, req); err != nil {
			return ChatContinuedMsg{ChatID: chatID, Err: err}
		}
		chat, err := svc.GetChat(ctx, chatID)
		if err != nil {
			return ChatContinuedMsg{ChatID: chatID, Err: err}
		}
		return ChatContinuedMsg{ChatID: chatID, Chat: chat}
	}
}

// Delete returns a command that deletes chatID remotely. Local removal
// happens only when the deletion is confirmed; deleting an id that is
// already gone fails with an error message and leaves state intact.
func (s *ChatStore) Delete(chatID string) tea.Cmd {
	s.begin()
	svc, timeout := s.svc, s.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		_, err := svc.DeleteChat(ctx, chatID)
		return ChatDeletedMsg{ChatID: chatID, Err: err}
	}
}

// =============================================================================
// MESSAGE APPLICATION
// =============================================================================

// Apply folds a completion message into the store. It reports whether the
// message was one of the chat messages.
func (s *ChatStore) Apply(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case ChatsListedMsg:
		s.loading = false
		if msg.Err != nil {
			// Fail closed: an errored listing shows no chats.
			s.chats = nil
			s.total = 0
			s.lastErr = "Failed to load chats. Please try again."
			return true
		}
		s.chats = msg.Chats
		s.total = msg.Total
		return true

	case ChatLoadedMsg:
		s.loading = false
		if msg.Err != nil {
			s.lastErr = "Failed to load chat. Please try again."
			return true
		}
		s.active = msg.Chat
		return true

	case ChatCreatedMsg:
		s.loading = false
		if msg.Err != nil {
			s.lastErr = "Failed to create chat. Please try again."
			return true
		}
		s.chats = append([]api.Chat{*msg.Chat}, s.chats...)
		s.total++
		s.active = msg.Chat
		return true

	case ChatContinuedMsg:
		s.loading = false
		if msg.Err != nil {
			s.lastErr = "Failed to send message. Please try again."
			return true
		}
		s.replace(*msg.Chat)
		if s.active != nil && s.active.ID == msg.ChatID {
			s.active = msg.Chat
		}
		return true

	case ChatDeletedMsg:
		s.loading = false
		if msg.Err != nil {
			s.lastErr = "Failed to delete chat. Please try again."
			return true
		}
		s.remove(msg.ChatID)
		if s.active != nil && s.active.ID == msg.ChatID {
			s.active = nil
		}
		return true
	}
	return false
}

// replace swaps the list entry matching chat.ID, preserving list order.
// A chat not present in the list is left alone (it may belong to a listing
// the user has since navigated away from).
func (s *ChatStore) replace(chat api.Chat) {
	for idx := range s.chats {
		if s.chats[idx].ID == chat.ID {
			s.chats[idx] = chat
			return
		}
	}
}

// remove deletes the single list entry matching id.
func (s *ChatStore) remove(id string) {
	for idx := range s.chats {
		if s.chats[idx].ID == id {
			s.chats = append(s.chats[:idx:idx], s.chats[idx+1:]...)
			s.total--
			return
		}
	}
}
