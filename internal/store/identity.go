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

// PlaceholderLogin is the display name synthesized when an identity lookup
// fails, so views depending on an owner never block or crash.
const PlaceholderLogin = "Unknown User"

// =============================================================================
// IDENTITY CACHE
// =============================================================================

// Identity resolves and memoizes user records by id, and carries the user
// directory used by the picker.
//
// The cache is monotonic: entries are never evicted and a real entry is
// never overwritten by a later fetch. Concurrent resolutions of the same id
// collapse onto one in-flight request via the pending set.
type Identity struct {
	svc     Service
	timeout time.Duration

	users   map[string]api.User
	pending map[string]struct{}

	roster  []api.User
	lastErr string
}

// NewIdentity creates an empty identity cache backed by svc.
func NewIdentity(svc Service, timeout time.Duration) *Identity {
	return &Identity{
		svc:     svc,
		timeout: timeout,
		users:   make(map[string]api.User),
		pending: make(map[string]struct{}),
	}
}

// Lookup returns the cached user for id. The second return is false when the
// id has never resolved (not even to a placeholder).
func (i *Identity) Lookup(id string) (api.User, bool) {
	u, ok := i.users[id]
	return u, ok
}

// Login returns the display name for id, falling back to the placeholder
// login while the id is unresolved.
func (i *Identity) Login(id string) string {
	if u, ok := i.users[id]; ok {
		return u.Login
	}
	return PlaceholderLogin
}

// Roster returns the user directory in service order.
func (i *Identity) Roster() []api.User {
	return i.roster
}

// Err returns the last user-facing error, or "".
func (i *Identity) Err() string {
	return i.lastErr
}

// =============================================================================
// OPERATIONS
// =============================================================================

// Resolve returns a command that fetches the user for id, or nil when the id
// is already cached or a fetch is in flight. Callers may invoke Resolve for
// the same id any number of times; at most one remote call per unresolved id
// is issued.
func (i *Identity) Resolve(id string) tea.Cmd {
	if id == "" {
		return nil
	}
	if _, ok := i.users[id]; ok {
		return nil
	}
	if _, ok := i.pending[id]; ok {
		return nil
	}
	i.pending[id] = struct{}{}

	svc, timeout := i.svc, i.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		user, err := svc.GetUser(ctx, id)
		return UserResolvedMsg{UserID: id, User: user, Err: err}
	}
}

// LoadRoster returns a command that fetches the user directory.
func (i *Identity) LoadRoster(limit int) tea.Cmd {
	i.lastErr = ""
	svc, timeout := i.svc, i.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		resp, err := svc.ListUsers(ctx, limit, 0)
		if err != nil {
			return UsersListedMsg{Err: err}
		}
		return UsersListedMsg{Users: resp.Users}
	}
}

// Create returns a command that creates a user. An empty login is rejected
// locally without a remote call.
func (i *Identity) Create(login string) tea.Cmd {
	login = strings.TrimSpace(login)
	if login == "" {
		i.lastErr = "Login is required"
		return nil
	}
	i.lastErr = ""
	svc, timeout := i.svc, i.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		user, err := svc.CreateUser(ctx, login)
		return UserCreatedMsg{User: user, Err: err}
	}
}

// =============================================================================
// MESSAGE APPLICATION
// =============================================================================

// Apply folds a completion message into the cache. It reports whether the
// message was one of the identity messages.
func (i *Identity) Apply(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case UserResolvedMsg:
		delete(i.pending, msg.UserID)
		if msg.Err != nil || msg.User == nil {
			i.remember(placeholderUser(msg.UserID))
			return true
		}
		i.remember(*msg.User)
		return true

	case UsersListedMsg:
		if msg.Err != nil {
			i.lastErr = "Failed to load users"
			return true
		}
		i.roster = msg.Users
		for _, u := range msg.Users {
			i.remember(u)
		}
		return true

	case UserCreatedMsg:
		if msg.Err != nil {
			i.lastErr = "Failed to create user. Login might already exist."
			return true
		}
		i.remember(*msg.User)
		i.roster = append([]api.User{*msg.User}, i.roster...)
		return true
	}
	return false
}

// remember stores a user, keeping the cache monotonic: a real entry is never
// replaced, a placeholder may be upgraded to a real record.
func (i *Identity) remember(u api.User) {
	if existing, ok := i.users[u.ID]; ok && !IsPlaceholder(existing) {
		return
	}
	i.users[u.ID] = u
}

// IsPlaceholder reports whether u was synthesized by a failed lookup.
func IsPlaceholder(u api.User) bool {
	return u.Login == PlaceholderLogin
}

func placeholderUser(id string) api.User {
	now := time.Now().UTC().Format(time.RFC3339)
	return api.User{ID: id, Login: PlaceholderLogin, CreatedAt: now}
}
