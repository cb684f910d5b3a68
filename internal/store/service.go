// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"context"

	"github.com/AdamKasp/AI-chat/internal/api"
)

// Service is the slice of the remote contract the stores consume.
// *api.Client satisfies it; tests substitute a fake.
type Service interface {
	CreateChat(ctx context.Context, req api.ChatRequest) (*api.AIResponse, error)
	ListChats(ctx context.Context, limit, offset int, userID string) (*api.ChatListResponse, error)
	GetChat(ctx context.Context, id string) (*api.Chat, error)
	DeleteChat(ctx context.Context, id string) (*api.DeleteResponse, error)

	ListDocuments(ctx context.Context, limit, offset int) (*api.DocumentListResponse, error)
	GetDocument(ctx context.Context, id string) (*api.Document, error)
	UploadDocument(ctx context.Context, filename string, data []byte) (*api.UploadResponse, error)
	DeleteDocument(ctx context.Context, id string) (*api.DeleteResponse, error)

	SearchDocuments(ctx context.Context, query string, limit int, scoreThreshold float64) ([]api.SearchResult, error)
	RAGSearch(ctx context.Context, prompt string, count int, scoreThreshold float64) (*api.RAGSearchResponse, error)

	ListUsers(ctx context.Context, limit, offset int) (*api.UserListResponse, error)
	GetUser(ctx context.Context, id string) (*api.User, error)
	CreateUser(ctx context.Context, login string) (*api.User, error)
}
