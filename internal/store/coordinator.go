// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/AdamKasp/AI-chat/internal/api"
)

// =============================================================================
// COORDINATOR
// =============================================================================

// Options tunes the coordinator's remote operations.
type Options struct {
	// Timeout bounds every remote call.
	Timeout time.Duration
	// PageLimit is the page size for listings.
	PageLimit int
	// KeywordLimit caps keyword search hits.
	KeywordLimit int
	// RAGCount is the document count requested from RAG search.
	RAGCount int
	// ScoreThreshold filters search hits; negative disables it.
	ScoreThreshold float64
	// Model is sent with chat creation/continuation.
	Model string
	// SystemPrompt, when non-empty, is attached to new chats.
	SystemPrompt string
	// InitialUser, when present in the roster, is selected at startup
	// instead of the first listed user.
	InitialUser string
}

// Coordinator is the composition root of the client state. It owns the four
// stores and the focus machine, holds no business data itself, forwards user
// intents to the appropriate store, and reacts to completions by adjusting
// focus and triggering dependent refreshes.
type Coordinator struct {
	Identity  *Identity
	Chats     *ChatStore
	Documents *DocumentStore
	Search    *SearchEngine

	focus Focus
	opts  Options

	activeUser string
}

// NewCoordinator wires the stores around one service client.
func NewCoordinator(svc Service, opts Options) *Coordinator {
	if opts.Timeout == 0 {
		opts.Timeout = 60 * time.Second
	}
	if opts.PageLimit == 0 {
		opts.PageLimit = 100
	}
	if opts.KeywordLimit == 0 {
		opts.KeywordLimit = 10
	}
	if opts.RAGCount == 0 {
		opts.RAGCount = 5
	}
	return &Coordinator{
		Identity:  NewIdentity(svc, opts.Timeout),
		Chats:     NewChatStore(svc, opts.Timeout),
		Documents: NewDocumentStore(svc, opts.Timeout),
		Search:    NewSearchEngine(svc, opts.Timeout),
		opts:      opts,
	}
}

// Focus exposes the focus machine read-only to the view layer.
func (c *Coordinator) Focus() *Focus { return &c.focus }

// ActiveUser returns the id of the user operating the dashboard, or "".
func (c *Coordinator) ActiveUser() string { return c.activeUser }

// =============================================================================
// INTENTS
// =============================================================================

// Startup returns the initial fetches: user roster and document corpus.
// The chat list follows once a user is selected.
func (c *Coordinator) Startup() tea.Cmd {
	return tea.Batch(
		c.Identity.LoadRoster(c.opts.PageLimit),
		c.Documents.List(c.opts.PageLimit),
	)
}

// SelectUser switches the active user and reloads their chat list.
func (c *Coordinator) SelectUser(userID string) tea.Cmd {
	c.activeUser = userID
	c.focus.Clear()
	return c.Chats.List(userID, c.opts.PageLimit)
}

// OpenChat focuses a chat and loads its transcript.
func (c *Coordinator) OpenChat(chatID string) tea.Cmd {
	c.focus.SelectChat(chatID)
	return c.Chats.Load(chatID)
}

// NewChat starts a chat for the active user.
func (c *Coordinator) NewChat(prompt string) tea.Cmd {
	return c.Chats.Create(c.activeUser, prompt, c.opts.Model, c.opts.SystemPrompt)
}

// SendMessage appends a turn to the focused chat.
func (c *Coordinator) SendMessage(message string) tea.Cmd {
	if c.focus.Kind() != FocusChat {
		return nil
	}
	return c.Chats.Continue(c.focus.ChatID(), c.activeUser, message, c.opts.Model)
}

// DeleteChat deletes a chat; focus adjusts when the confirmation arrives.
func (c *Coordinator) DeleteChat(chatID string) tea.Cmd {
	return c.Chats.Delete(chatID)
}

// OpenDocument focuses a document from the corpus listing and fetches it.
func (c *Coordinator) OpenDocument(documentID string) tea.Cmd {
	c.focus.SelectDocument(documentID)
	return c.Documents.Get(documentID, nil)
}

// OpenSearchHit focuses the document a hit references. The full document is
// fetched by id; the hit's snippet is only kept for score display.
func (c *Coordinator) OpenSearchHit(hit api.SearchResult) tea.Cmd {
	c.focus.SelectSearchHit(hit)
	return c.Documents.Get(hit.ID, &hit)
}

// DeleteDocument deletes a document; focus adjusts on confirmation.
func (c *Coordinator) DeleteDocument(documentID string) tea.Cmd {
	return c.Documents.Delete(documentID)
}

// UploadDocument submits file bytes to the corpus.
func (c *Coordinator) UploadDocument(filename string, data []byte) tea.Cmd {
	return c.Documents.Upload(filename, data)
}

// RunKeywordSearch issues a keyword search. Any document focus is cleared:
// it referred to a result set this search supersedes.
func (c *Coordinator) RunKeywordSearch(query string) tea.Cmd {
	cmd := c.Search.Keyword(query, c.opts.KeywordLimit, c.opts.ScoreThreshold)
	if cmd != nil {
		c.focus.ClearDocument()
	}
	return cmd
}

// RunRAGSearch issues a RAG search, clearing document focus likewise.
func (c *Coordinator) RunRAGSearch(prompt string) tea.Cmd {
	cmd := c.Search.RunRAG(prompt, c.opts.RAGCount, c.opts.ScoreThreshold)
	if cmd != nil {
		c.focus.ClearDocument()
	}
	return cmd
}

// RefreshDocuments re-fetches the corpus listing.
func (c *Coordinator) RefreshDocuments() tea.Cmd {
	return c.Documents.List(c.opts.PageLimit)
}

// CreateUser creates a user; on confirmation the roster gains the entry and
// the new user becomes active.
func (c *Coordinator) CreateUser(login string) tea.Cmd {
	return c.Identity.Create(login)
}

// =============================================================================
// MESSAGE APPLICATION
// =============================================================================

// Apply routes a completion message to its store and performs the
// coordinator-level reactions: focus adjustment on deletions, owner
// decoration fetches after chat listings, corpus re-listing after uploads,
// and user auto-selection. The returned command carries any follow-up work.
func (c *Coordinator) Apply(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case ChatsListedMsg:
		c.Chats.Apply(msg)
		// Decorate list rows lazily: one resolution per distinct unknown owner.
		var cmds []tea.Cmd
		for _, chat := range c.Chats.Chats() {
			if cmd := c.Identity.Resolve(chat.UserID); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return tea.Batch(cmds...)

	case ChatDeletedMsg:
		c.Chats.Apply(msg)
		if msg.Err == nil {
			c.focus.NoteChatDeleted(msg.ChatID)
		}
		return nil

	case ChatCreatedMsg:
		c.Chats.Apply(msg)
		// The created chat is immediately viewable and continuable.
		if msg.Err == nil {
			c.focus.SelectChat(msg.Chat.ID)
		}
		return nil

	case ChatLoadedMsg, ChatContinuedMsg:
		c.Chats.Apply(msg)
		return nil

	case DocumentDeletedMsg:
		c.Documents.Apply(msg)
		if msg.Err == nil {
			c.focus.NoteDocumentDeleted(msg.DocumentID)
			return c.Documents.List(c.opts.PageLimit)
		}
		return nil

	case DocumentUploadedMsg:
		c.Documents.Apply(msg)
		if msg.Err == nil {
			return c.Documents.List(c.opts.PageLimit)
		}
		return nil

	case DocumentsListedMsg, DocumentLoadedMsg:
		c.Documents.Apply(msg)
		return nil

	case KeywordResultsMsg, RAGResultsMsg:
		c.Search.Apply(msg)
		return nil

	case UsersListedMsg:
		c.Identity.Apply(msg)
		if msg.Err == nil && c.activeUser == "" && len(msg.Users) > 0 {
			// The requested user when listed, the first user otherwise.
			for _, u := range msg.Users {
				if u.ID == c.opts.InitialUser {
					return c.SelectUser(u.ID)
				}
			}
			return c.SelectUser(msg.Users[0].ID)
		}
		return nil

	case UserCreatedMsg:
		c.Identity.Apply(msg)
		if msg.Err == nil {
			return c.SelectUser(msg.User.ID)
		}
		return nil

	case UserResolvedMsg:
		c.Identity.Apply(msg)
		return nil
	}
	return nil
}
