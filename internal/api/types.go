// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for communicating with the AI-chat service.
package api

// =============================================================================
// REQUEST TYPES
// =============================================================================

// ChatRequest is the request body for POST /chat.
// When ChatID is empty the service creates a new chat; otherwise it appends
// a turn to the existing one.
type ChatRequest struct {
	UserID       string `json:"user_id"`
	Prompt       string `json:"prompt"`
	Model        string `json:"model"`
	ChatID       string `json:"chat_id,omitempty"`
	SystemPrompt string `json:"system_prompt,omitempty"`
}

// CreateUserRequest is the request body for POST /users.
type CreateUserRequest struct {
	Login string `json:"login"`
}

// =============================================================================
// CHAT TYPES
// =============================================================================

// Message is a single transcript entry. Author is "user" or "agent".
type Message struct {
	ID        string `json:"id"`
	Message   string `json:"message"`
	Author    string `json:"author"`
	CreatedAt string `json:"created_at"`
}

// Message author values.
const (
	AuthorUser  = "user"
	AuthorAgent = "agent"
)

// Chat is a conversation thread with its full transcript.
type Chat struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	CreatedAt string    `json:"created_at"`
	UpdatedAt string    `json:"updated_at,omitempty"`
	Messages  []Message `json:"messages"`
}

// ChatListResponse is the response from GET /chats.
type ChatListResponse struct {
	Chats  []Chat `json:"chats"`
	Total  int    `json:"total"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset,omitempty"`
}

// AIResponse is the acknowledgement from POST /chat. It carries the agent's
// answer and the chat id, never the full transcript; callers that need the
// canonical transcript must follow up with GetChat.
type AIResponse struct {
	FinishReason string     `json:"finishReason"`
	Answer       string     `json:"answer"`
	Metadata     AIMetadata `json:"metadata"`
}

// AIMetadata carries bookkeeping attached to an AIResponse.
type AIMetadata struct {
	ChatID  string         `json:"chat_id"`
	Usage   map[string]any `json:"usage,omitempty"`
	RAGInfo map[string]any `json:"rag_info,omitempty"`
}

// =============================================================================
// DOCUMENT TYPES
// =============================================================================

// Document is a corpus entry. Content is immutable after upload.
type Document struct {
	ID           string              `json:"id"`
	Localisation string              `json:"localisation"`
	Content      string              `json:"content"`
	Tokens       int                 `json:"tokens,omitempty"`
	Headers      map[string][]string `json:"headers,omitempty"`
	URLs         []string            `json:"urls,omitempty"`
	Images       []string            `json:"images,omitempty"`
	Metadata     map[string]any      `json:"document_metadata,omitempty"`
	CreatedAt    string              `json:"created_at"`
	UpdatedAt    string              `json:"updated_at,omitempty"`
}

// DocumentListResponse is the response from GET /documents.
type DocumentListResponse struct {
	Documents []Document `json:"documents"`
	Total     int        `json:"total"`
	Limit     int        `json:"limit"`
}

// UploadResponse is the acknowledgement from POST /documents. The service
// returns only after ingestion and indexing complete.
type UploadResponse struct {
	ID           string `json:"id"`
	Localisation string `json:"localisation"`
	Message      string `json:"message"`
	CreatedAt    string `json:"created_at"`
}

// DeleteResponse is the body returned by the DELETE endpoints.
type DeleteResponse struct {
	Message string `json:"message"`
}

// =============================================================================
// SEARCH TYPES
// =============================================================================

// SearchResult is one keyword-search hit. ID references a Document; Content
// is a snippet, not the full document text.
type SearchResult struct {
	ID       string         `json:"id"`
	Content  string         `json:"content"`
	FilePath string         `json:"file_path"`
	Score    float64        `json:"score"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// RAGSearchResponse is the structured bundle from GET /rag/search.
// A non-empty Error is a soft failure: the response is displayable but
// carries no usable documents.
type RAGSearchResponse struct {
	Query           string     `json:"query"`
	DocumentCount   int        `json:"document_count"`
	Documents       []Document `json:"documents"`
	Context         string     `json:"context"`
	ContextLength   int        `json:"context_length"`
	HasContext      bool       `json:"has_context"`
	DocumentSources []string   `json:"document_sources"`
	Error           string     `json:"error,omitempty"`
}

// Usable reports whether the response carries documents the UI may present
// as search output. Soft-failed responses are stored but never usable.
func (r *RAGSearchResponse) Usable() bool {
	return r.Error == "" && len(r.Documents) > 0
}

// =============================================================================
// USER TYPES
// =============================================================================

// User is an account record. ID is immutable; Login is unique service-side.
type User struct {
	ID        string `json:"id"`
	Login     string `json:"login"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// UserListResponse is the response from GET /users.
type UserListResponse struct {
	Users []User `json:"users"`
	Total int    `json:"total"`
	Limit int    `json:"limit"`
}

// =============================================================================
// HELPER METHODS
// =============================================================================

// LastMessage returns the most recent transcript entry, or nil for an empty chat.
func (c *Chat) LastMessage() *Message {
	if len(c.Messages) == 0 {
		return nil
	}
	return &c.Messages[len(c.Messages)-1]
}

// Preview returns the first user message, used as a list-row summary.
func (c *Chat) Preview() string {
	for i := range c.Messages {
		if c.Messages[i].Author == AuthorUser {
			return c.Messages[i].Message
		}
	}
	return ""
}
