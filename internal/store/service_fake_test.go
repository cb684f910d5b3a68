// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/AdamKasp/AI-chat/internal/api"
)

// errNotStubbed is returned by fake methods a test did not configure, so an
// unexpected remote call fails the assertion instead of passing silently.
var errNotStubbed = errors.New("not stubbed")

// fakeService implements Service with per-method hooks and call counters.
type fakeService struct {
	createChatFn     func(req api.ChatRequest) (*api.AIResponse, error)
	listChatsFn      func(limit, offset int, userID string) (*api.ChatListResponse, error)
	getChatFn        func(id string) (*api.Chat, error)
	deleteChatFn     func(id string) (*api.DeleteResponse, error)
	listDocumentsFn  func(limit, offset int) (*api.DocumentListResponse, error)
	getDocumentFn    func(id string) (*api.Document, error)
	uploadDocumentFn func(filename string, data []byte) (*api.UploadResponse, error)
	deleteDocumentFn func(id string) (*api.DeleteResponse, error)
	searchFn         func(query string, limit int, threshold float64) ([]api.SearchResult, error)
	ragFn            func(prompt string, count int, threshold float64) (*api.RAGSearchResponse, error)
	listUsersFn      func(limit, offset int) (*api.UserListResponse, error)
	getUserFn        func(id string) (*api.User, error)
	createUserFn     func(login string) (*api.User, error)

	calls map[string]int
}

func newFakeService() *fakeService {
	return &fakeService{calls: make(map[string]int)}
}

func (f *fakeService) count(name string) { f.calls[name]++ }

func (f *fakeService) CreateChat(_ context.Context, req api.ChatRequest) (*api.AIResponse, error) {
	f.count("CreateChat")
	if f.createChatFn == nil {
		return nil, errNotStubbed
	}
	return f.createChatFn(req)
}

func (f *fakeService) ListChats(_ context.Context, limit, offset int, userID string) (*api.ChatListResponse, error) {
	f.count("ListChats")
	if f.listChatsFn == nil {
		return nil, errNotStubbed
	}
	return f.listChatsFn(limit, offset, userID)
}

func (f *fakeService) GetChat(_ context.Context, id string) (*api.Chat, error) {
	f.count("GetChat")
	if f.getChatFn == nil {
		return nil, errNotStubbed
	}
	return f.getChatFn(id)
}

func (f *fakeService) DeleteChat(_ context.Context, id string) (*api.DeleteResponse, error) {
	f.count("DeleteChat")
	if f.deleteChatFn == nil {
		return nil, errNotStubbed
	}
	return f.deleteChatFn(id)
}

func (f *fakeService) ListDocuments(_ context.Context, limit, offset int) (*api.DocumentListResponse, error) {
	f.count("ListDocuments")
	if f.listDocumentsFn == nil {
		return nil, errNotStubbed
	}
	return f.listDocumentsFn(limit, offset)
}

func (f *fakeService) GetDocument(_ context.Context, id string) (*api.Document, error) {
	f.count("GetDocument")
	if f.getDocumentFn == nil {
		return nil, errNotStubbed
	}
	return f.getDocumentFn(id)
}

func (f *fakeService) UploadDocument(_ context.Context, filename string, data []byte) (*api.UploadResponse, error) {
	f.count("UploadDocument")
	if f.uploadDocumentFn == nil {
		return nil, errNotStubbed
	}
	return f.uploadDocumentFn(filename, data)
}

func (f *fakeService) DeleteDocument(_ context.Context, id string) (*api.DeleteResponse, error) {
	f.count("DeleteDocument")
	if f.deleteDocumentFn == nil {
		return nil, errNotStubbed
	}
	return f.deleteDocumentFn(id)
}

func (f *fakeService) SearchDocuments(_ context.Context, query string, limit int, threshold float64) ([]api.SearchResult, error) {
	f.count("SearchDocuments")
	if f.searchFn == nil {
		return nil, errNotStubbed
	}
	return f.searchFn(query, limit, threshold)
}

func (f *fakeService) RAGSearch(_ context.Context, prompt string, count int, threshold float64) (*api.RAGSearchResponse, error) {
	f.count("RAGSearch")
	if f.ragFn == nil {
		return nil, errNotStubbed
	}
	return f.ragFn(prompt, count, threshold)
}

func (f *fakeService) ListUsers(_ context.Context, limit, offset int) (*api.UserListResponse, error) {
	f.count("ListUsers")
	if f.listUsersFn == nil {
		return nil, errNotStubbed
	}
	return f.listUsersFn(limit, offset)
}

func (f *fakeService) GetUser(_ context.Context, id string) (*api.User, error) {
	f.count("GetUser")
	if f.getUserFn == nil {
		return nil, errNotStubbed
	}
	return f.getUserFn(id)
}

func (f *fakeService) CreateUser(_ context.Context, login string) (*api.User, error) {
	f.count("CreateUser")
	if f.createUserFn == nil {
		return nil, errNotStubbed
	}
	return f.createUserFn(login)
}

// chatFixture builds a chat with n alternating user/agent messages.
func chatFixture(id, userID string, n int) *api.Chat {
	chat := &api.Chat{ID: id, UserID: userID, CreatedAt: "2025-06-01T10:00:00Z"}
	for i := 0; i < n; i++ {
		author := api.AuthorUser
		if i%2 == 1 {
			author = api.AuthorAgent
		}
		chat.Messages = append(chat.Messages, api.Message{
			ID:      fmt.Sprintf("%s-m%d", id, i),
			Message: fmt.Sprintf("message %d", i),
			Author:  author,
		})
	}
	return chat
}
