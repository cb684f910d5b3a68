// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/AdamKasp/AI-chat/internal/api"
	"github.com/AdamKasp/AI-chat/internal/store"
	"github.com/AdamKasp/AI-chat/internal/ui/styles"
	"github.com/AdamKasp/AI-chat/internal/util"
)

// =============================================================================
// VIEW
// =============================================================================

// View renders the dashboard.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.viewTabs())
	b.WriteString("\n")

	switch {
	case m.pickingUser:
		b.WriteString(m.viewUserPicker())
	case m.coord.Focus().Kind() != store.FocusNone:
		b.WriteString(styles.Pane.Width(m.width - 2).Render(m.viewport.View()))
	default:
		b.WriteString(m.viewListing())
	}
	b.WriteString("\n")

	if banner := m.viewBanner(); banner != "" {
		b.WriteString(banner)
		b.WriteString("\n")
	}
	if m.purpose != inputNone {
		b.WriteString(styles.PromptLabel.Render(inputPrompts[m.purpose]+": ") + m.input.View())
		b.WriteString("\n")
	}
	b.WriteString(m.viewStatusBar())
	return b.String()
}

// viewTabs renders the tab bar with the active tab highlighted.
func (m Model) viewTabs() string {
	parts := make([]string, len(tabNames))
	for i, name := range tabNames {
		if tab(i) == m.tab {
			parts[i] = styles.TabActive.Render(name)
		} else {
			parts[i] = styles.TabInactive.Render(name)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// =============================================================================
// LISTINGS
// =============================================================================

func (m Model) viewListing() string {
	switch m.tab {
	case tabChats:
		return m.viewChatList()
	case tabDocuments:
		return m.viewDocumentList()
	default:
		return m.viewSearch()
	}
}

func (m Model) viewChatList() string {
	chats := m.coord.Chats.Chats()
	if m.coord.ActiveUser() == "" {
		return styles.Hint.Render("  No user selected. Press u to pick one.")
	}
	if len(chats) == 0 {
		return styles.Hint.Render("  No chats yet. Press n to start one.")
	}

	var b strings.Builder
	for i, chat := range chats {
		owner := m.coord.Identity.Login(chat.UserID)
		row := fmt.Sprintf("%s  %s  %s",
			util.FormatTimestamp(chat.UpdatedAt),
			util.PadWidth(owner, 16),
			util.TruncateWidth(util.FirstLine(chat.Preview()), m.width-30),
		)
		b.WriteString(m.renderRow(row, i == m.chatCursor))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewDocumentList() string {
	docs := m.coord.Documents.Documents()
	if len(docs) == 0 {
		return styles.Hint.Render("  No documents in the corpus. Drop files into the watched directory to ingest them.")
	}

	var b strings.Builder
	for i, doc := range docs {
		row := fmt.Sprintf("%s  %6d tok  %s",
			util.FormatTimestamp(doc.CreatedAt),
			doc.Tokens,
			util.TruncateWidth(doc.Localisation, m.width-34),
		)
		b.WriteString(m.renderRow(row, i == m.docCursor))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewSearch() string {
	var b strings.Builder

	eng := m.coord.Search
	switch {
	case eng.Searching():
		b.WriteString(m.spin.View() + " Searching...\n")
	case !eng.KeywordRan() && eng.RAG() == nil:
		b.WriteString(styles.Hint.Render("  Press / for keyword search, ? to ask the documents a question.") + "\n")
	}

	if eng.KeywordRan() {
		b.WriteString(styles.Hint.Render(fmt.Sprintf("  Results for %q", eng.KeywordQuery())) + "\n")
		if len(eng.KeywordResults()) == 0 {
			b.WriteString(styles.Hint.Render("  No matches.") + "\n")
		}
		for i, hit := range eng.KeywordResults() {
			score := styles.ScoreStyle(hit.Score).Render(util.FormatScore(hit.Score))
			row := fmt.Sprintf("%s  %s  %s",
				score,
				util.TruncateWidth(hit.FilePath, 32),
				util.TruncateWidth(util.FirstLine(hit.Content), m.width-48),
			)
			b.WriteString(m.renderRow(row, i == m.searchCursor))
			b.WriteString("\n")
		}
	}

	if rag := eng.RAG(); rag != nil {
		b.WriteString("\n" + styles.Hint.Render(fmt.Sprintf("  Context for %q", rag.Query)) + "\n")
		switch {
		case rag.Error != "":
			b.WriteString(styles.ErrorBanner.Render(rag.Error) + "\n")
		case !rag.Usable():
			b.WriteString(styles.Hint.Render("  No relevant documents found.") + "\n")
		default:
			b.WriteString(styles.Hint.Render(fmt.Sprintf("  %d documents, %d context characters",
				rag.DocumentCount, rag.ContextLength)) + "\n")
			for _, src := range rag.DocumentSources {
				b.WriteString("  - " + util.TruncateWidth(src, m.width-6) + "\n")
			}
		}
	}

	return b.String()
}

func (m Model) viewUserPicker() string {
	roster := m.coord.Identity.Roster()

	var b strings.Builder
	b.WriteString(styles.Hint.Render("  Pick a user (Enter selects, n creates, Esc cancels)") + "\n")
	if len(roster) == 0 {
		b.WriteString(styles.Hint.Render("  No users yet. Press n to create one.") + "\n")
	}
	for i, u := range roster {
		marker := "  "
		if u.ID == m.coord.ActiveUser() {
			marker = "* "
		}
		b.WriteString(m.renderRow(marker+u.Login, i == m.userCursor))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderRow(row string, selected bool) string {
	if selected {
		return styles.Selected.Render("> " + row)
	}
	return styles.ListRow.Render("  " + row)
}

// =============================================================================
// DETAIL PANE
// =============================================================================

// refreshDetail re-renders the viewport content from the focused entity.
func (m *Model) refreshDetail() {
	if !m.ready {
		return
	}
	switch m.coord.Focus().Kind() {
	case store.FocusChat:
		m.viewport.SetContent(m.renderTranscript())
		m.viewport.GotoBottom()
	case store.FocusDocument:
		m.viewport.SetContent(m.renderDocument())
		m.viewport.GotoTop()
	default:
		m.viewport.SetContent("")
	}
}

func (m *Model) renderTranscript() string {
	chat := m.coord.Chats.Active()
	if chat == nil {
		return m.spin.View() + " Loading chat..."
	}

	var b strings.Builder
	for _, msg := range chat.Messages {
		if msg.Author == api.AuthorAgent {
			b.WriteString(styles.AgentLabel.Render("Agent") + "\n")
			b.WriteString(m.markdown(msg.Message))
		} else {
			b.WriteString(styles.UserLabel.Render(m.coord.Identity.Login(chat.UserID)) + "\n")
			b.WriteString(msg.Message + "\n")
		}
		b.WriteString("\n")
	}
	b.WriteString(styles.Hint.Render("n: reply  d: delete chat  Esc: back"))
	return b.String()
}

func (m *Model) renderDocument() string {
	doc := m.coord.Documents.Current()
	if doc == nil || doc.ID != m.coord.Focus().DocumentID() {
		return m.spin.View() + " Loading document..."
	}

	var b strings.Builder
	b.WriteString(styles.UserLabel.Render(doc.Localisation) + "\n")
	b.WriteString(styles.Hint.Render(fmt.Sprintf("%d tokens  created %s",
		doc.Tokens, util.FormatTimestamp(doc.CreatedAt))) + "\n")
	if origin := m.coord.Documents.Origin(); origin != nil {
		score := styles.ScoreStyle(origin.Score).Render(util.FormatScore(origin.Score))
		b.WriteString(styles.Hint.Render("match relevance ") + score + "\n")
	}
	b.WriteString("\n")
	b.WriteString(m.markdown(doc.Content))
	b.WriteString("\n" + styles.Hint.Render("d: delete document  Esc: back"))
	return b.String()
}

// =============================================================================
// BANNERS AND STATUS BAR
// =============================================================================

// viewBanner surfaces the most relevant transient notice: errors first,
// then informational status.
func (m Model) viewBanner() string {
	searchErr := m.coord.Search.Err()
	if rag := m.coord.Search.RAG(); rag != nil && rag.Error == searchErr {
		// Soft failures already render inside the search pane.
		searchErr = ""
	}
	for _, err := range []string{
		m.coord.Chats.Err(),
		m.coord.Documents.Err(),
		searchErr,
		m.coord.Identity.Err(),
	} {
		if err != "" {
			return styles.ErrorBanner.Render(err)
		}
	}
	if status := m.coord.Documents.Status(); status != "" {
		return styles.StatusBanner.Render(status)
	}
	return ""
}

func (m Model) viewStatusBar() string {
	user := m.coord.Identity.Login(m.coord.ActiveUser())
	if m.coord.ActiveUser() == "" {
		user = "no user"
	}

	left := fmt.Sprintf(" %s | %d chats | %d documents", user,
		len(m.coord.Chats.Chats()), m.coord.Documents.Total())
	if m.loading() {
		left = m.spin.View() + left
	}

	hints := "Tab: sections  u: user  r: refresh  q: quit"
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(hints) - 1
	if gap < 1 {
		gap = 1
	}
	return styles.StatusBar.Width(m.width).Render(left + strings.Repeat(" ", gap) + hints)
}

func (m Model) loading() bool {
	return m.coord.Chats.Loading() || m.coord.Documents.Loading() || m.coord.Search.Searching()
}
