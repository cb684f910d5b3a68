// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/AdamKasp/AI-chat/internal/store"
	"github.com/AdamKasp/AI-chat/internal/ui/styles"
)

// =============================================================================
// TABS AND INPUT MODES
// =============================================================================

// tab identifies the three dashboard sections.
type tab int

const (
	tabChats tab = iota
	tabDocuments
	tabSearch
)

var tabNames = [...]string{"Chats", "Documents", "Search"}

// inputPurpose says what the text input line collects when visible.
type inputPurpose int

const (
	inputNone inputPurpose = iota
	inputNewChat
	inputMessage
	inputKeyword
	inputRAG
	inputNewUser
)

// inputPrompts maps each purpose to the prompt label shown before the input.
var inputPrompts = map[inputPurpose]string{
	inputNewChat: "New chat",
	inputMessage: "Message",
	inputKeyword: "Search",
	inputRAG:     "Ask documents",
	inputNewUser: "New user login",
}

// =============================================================================
// EXTERNAL MESSAGES
// =============================================================================

// DroppedFileMsg carries a file picked up from the drop directory. The
// watcher goroutine injects it through Program.Send.
type DroppedFileMsg struct {
	Name string
	Data []byte
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the dashboard's Bubble Tea model. All state it renders lives in
// the coordinator; the model itself only holds presentation state such as
// cursors, the active tab, and the input line.
type Model struct {
	coord *store.Coordinator
	keys  KeyMap

	input    textinput.Model
	purpose  inputPurpose
	viewport viewport.Model
	spin     spinner.Model
	renderer *glamour.TermRenderer

	tab          tab
	chatCursor   int
	docCursor    int
	searchCursor int

	pickingUser bool
	userCursor  int

	width  int
	height int
	ready  bool
}

// New creates the dashboard model around an initialized coordinator.
func New(coord *store.Coordinator) Model {
	in := textinput.New()
	in.CharLimit = 4096
	in.Prompt = "> "

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Cyan)

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		renderer = nil
	}

	return Model{
		coord:    coord,
		keys:     DefaultKeyMap(),
		input:    in,
		spin:     sp,
		renderer: renderer,
	}
}

// Init starts the spinner and issues the coordinator's startup fetches.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.coord.Startup())
}

// markdown renders md through glamour, falling back to the raw text when
// the renderer is unavailable.
func (m *Model) markdown(md string) string {
	if m.renderer == nil {
		return md
	}
	out, err := m.renderer.Render(md)
	if err != nil {
		return md
	}
	return out
}

// clampCursor keeps cursor within [0, n).
func clampCursor(cursor, n int) int {
	if n == 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	if cursor < 0 {
		return 0
	}
	return cursor
}
