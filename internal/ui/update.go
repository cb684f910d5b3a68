// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/AdamKasp/AI-chat/internal/store"
)

// =============================================================================
// UPDATE LOOP
// =============================================================================

// Update is the single mutation point of the dashboard. Remote completions
// are folded into the coordinator; key presses either drive presentation
// state or dispatch coordinator intents.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, m.detailHeight())
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = m.detailHeight()
		}
		m.refreshDetail()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case DroppedFileMsg:
		return m, m.coord.UploadDocument(msg.Name, msg.Data)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Remote completion: fold into the coordinator, then re-render whatever
	// the detail pane presents.
	cmd := m.coord.Apply(msg)
	m.refreshDetail()
	m.clampCursors()
	return m, cmd
}

// detailHeight is the viewport height under the tab bar and above the
// banners and status bar.
func (m Model) detailHeight() int {
	h := m.height - 6
	if h < 3 {
		return 3
	}
	return h
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The input line captures everything while visible.
	if m.purpose != inputNone {
		return m.handleInputKey(msg)
	}
	if m.pickingUser {
		return m.handlePickerKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.NextTab):
		m.tab = (m.tab + 1) % 3
		m.coord.Focus().Clear()
		m.refreshDetail()
		return m, nil

	case key.Matches(msg, m.keys.PrevTab):
		m.tab = (m.tab + 2) % 3
		m.coord.Focus().Clear()
		m.refreshDetail()
		return m, nil

	case key.Matches(msg, m.keys.PickUser):
		m.pickingUser = true
		m.userCursor = 0
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, m.refreshCmd()

	case key.Matches(msg, m.keys.Back):
		m.coord.Focus().Clear()
		m.refreshDetail()
		return m, nil
	}

	// Focused detail: scrolling and detail-level actions.
	if m.coord.Focus().Kind() != store.FocusNone {
		return m.handleDetailKey(msg)
	}

	switch m.tab {
	case tabChats:
		return m.handleChatListKey(msg)
	case tabDocuments:
		return m.handleDocumentListKey(msg)
	default:
		return m.handleSearchKey(msg)
	}
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit

	case tea.KeyEsc:
		m.purpose = inputNone
		m.input.Blur()
		m.input.Reset()
		return m, nil

	case tea.KeyEnter:
		value := m.input.Value()
		purpose := m.purpose
		m.purpose = inputNone
		m.input.Blur()
		m.input.Reset()
		cmd := m.dispatchInput(purpose, value)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// dispatchInput turns a submitted input line into a coordinator intent.
func (m *Model) dispatchInput(purpose inputPurpose, value string) tea.Cmd {
	switch purpose {
	case inputNewChat:
		return m.coord.NewChat(value)
	case inputMessage:
		return m.coord.SendMessage(value)
	case inputKeyword:
		m.searchCursor = 0
		return m.coord.RunKeywordSearch(value)
	case inputRAG:
		m.searchCursor = 0
		return m.coord.RunRAGSearch(value)
	case inputNewUser:
		return m.coord.CreateUser(value)
	}
	return nil
}

func (m Model) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	roster := m.coord.Identity.Roster()
	switch {
	case key.Matches(msg, m.keys.Up):
		m.userCursor = clampCursor(m.userCursor-1, len(roster))
	case key.Matches(msg, m.keys.Down):
		m.userCursor = clampCursor(m.userCursor+1, len(roster))
	case key.Matches(msg, m.keys.New):
		m.pickingUser = false
		return m.openInput(inputNewUser)
	case key.Matches(msg, m.keys.Open):
		m.pickingUser = false
		if len(roster) > 0 {
			m.chatCursor = 0
			return m, m.coord.SelectUser(roster[m.userCursor].ID)
		}
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Quit):
		m.pickingUser = false
	}
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.New):
		if m.coord.Focus().Kind() == store.FocusChat {
			return m.openInput(inputMessage)
		}
	case key.Matches(msg, m.keys.Delete):
		switch m.coord.Focus().Kind() {
		case store.FocusChat:
			return m, m.coord.DeleteChat(m.coord.Focus().ChatID())
		case store.FocusDocument:
			return m, m.coord.DeleteDocument(m.coord.Focus().DocumentID())
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) handleChatListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	chats := m.coord.Chats.Chats()
	switch {
	case key.Matches(msg, m.keys.Up):
		m.chatCursor = clampCursor(m.chatCursor-1, len(chats))
	case key.Matches(msg, m.keys.Down):
		m.chatCursor = clampCursor(m.chatCursor+1, len(chats))
	case key.Matches(msg, m.keys.Open):
		if len(chats) > 0 {
			return m, m.coord.OpenChat(chats[m.chatCursor].ID)
		}
	case key.Matches(msg, m.keys.New):
		return m.openInput(inputNewChat)
	case key.Matches(msg, m.keys.Delete):
		if len(chats) > 0 {
			return m, m.coord.DeleteChat(chats[m.chatCursor].ID)
		}
	}
	return m, nil
}

func (m Model) handleDocumentListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	docs := m.coord.Documents.Documents()
	switch {
	case key.Matches(msg, m.keys.Up):
		m.docCursor = clampCursor(m.docCursor-1, len(docs))
	case key.Matches(msg, m.keys.Down):
		m.docCursor = clampCursor(m.docCursor+1, len(docs))
	case key.Matches(msg, m.keys.Open):
		if len(docs) > 0 {
			return m, m.coord.OpenDocument(docs[m.docCursor].ID)
		}
	case key.Matches(msg, m.keys.Delete):
		if len(docs) > 0 {
			return m, m.coord.DeleteDocument(docs[m.docCursor].ID)
		}
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	results := m.coord.Search.KeywordResults()
	switch {
	case key.Matches(msg, m.keys.Up):
		m.searchCursor = clampCursor(m.searchCursor-1, len(results))
	case key.Matches(msg, m.keys.Down):
		m.searchCursor = clampCursor(m.searchCursor+1, len(results))
	case key.Matches(msg, m.keys.Open):
		if len(results) > 0 {
			return m, m.coord.OpenSearchHit(results[m.searchCursor])
		}
	case key.Matches(msg, m.keys.Search):
		return m.openInput(inputKeyword)
	case key.Matches(msg, m.keys.RAG):
		return m.openInput(inputRAG)
	}
	return m, nil
}

// openInput shows the input line for the given purpose.
func (m Model) openInput(purpose inputPurpose) (tea.Model, tea.Cmd) {
	m.purpose = purpose
	m.input.Reset()
	return m, m.input.Focus()
}

// refreshCmd reloads the listing behind the current tab.
func (m *Model) refreshCmd() tea.Cmd {
	switch m.tab {
	case tabChats:
		return m.coord.SelectUser(m.coord.ActiveUser())
	case tabDocuments:
		return m.coord.RefreshDocuments()
	}
	return nil
}

// clampCursors keeps all cursors valid after listings change size.
func (m *Model) clampCursors() {
	m.chatCursor = clampCursor(m.chatCursor, len(m.coord.Chats.Chats()))
	m.docCursor = clampCursor(m.docCursor, len(m.coord.Documents.Documents()))
	m.searchCursor = clampCursor(m.searchCursor, len(m.coord.Search.KeywordResults()))
	m.userCursor = clampCursor(m.userCursor, len(m.coord.Identity.Roster()))
}
