// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling for the dashboard TUI.
// All colors use Lip Gloss AdaptiveColor for automatic light/dark detection.
package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// COLORS
// =============================================================================

// Cyan - Brand color, user messages, active tab
var Cyan = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#22D3EE"}

// Purple - Agent messages, selections
var Purple = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A78BFA"}

// Emerald - Success states, high relevance scores
var Emerald = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}

// Amber - Warnings, medium relevance scores
var Amber = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

// Rose - Errors
var Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

// Overlay - Borders, separators
var Overlay = lipgloss.AdaptiveColor{Light: "#E5E5E5", Dark: "#313244"}

// TextPrimary - Main body text
var TextPrimary = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#CDD6F4"}

// TextSecondary - Labels, less prominent text
var TextSecondary = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#A6ADC8"}

// TextMuted - Hints, timestamps
var TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6C7086"}

// TextInverse - Text on colored backgrounds
var TextInverse = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E2E"}

// =============================================================================
// SHARED STYLES
// =============================================================================

// TabActive styles the selected tab label.
var TabActive = lipgloss.NewStyle().
	Foreground(TextInverse).
	Background(Cyan).
	Bold(true).
	Padding(0, 2)

// TabInactive styles unselected tab labels.
var TabInactive = lipgloss.NewStyle().
	Foreground(TextSecondary).
	Padding(0, 2)

// Selected styles the cursor row in listings.
var Selected = lipgloss.NewStyle().
	Foreground(TextInverse).
	Background(Purple).
	Bold(true)

// ListRow styles unselected listing rows.
var ListRow = lipgloss.NewStyle().
	Foreground(TextPrimary)

// UserLabel styles the author tag of user messages.
var UserLabel = lipgloss.NewStyle().
	Foreground(Cyan).
	Bold(true)

// AgentLabel styles the author tag of agent messages.
var AgentLabel = lipgloss.NewStyle().
	Foreground(Purple).
	Bold(true)

// ErrorBanner styles the transient error line.
var ErrorBanner = lipgloss.NewStyle().
	Foreground(TextInverse).
	Background(Rose).
	Bold(true).
	Padding(0, 1)

// StatusBanner styles informational notices (e.g. upload acknowledgements).
var StatusBanner = lipgloss.NewStyle().
	Foreground(TextInverse).
	Background(Emerald).
	Padding(0, 1)

// StatusBar styles the bottom bar.
var StatusBar = lipgloss.NewStyle().
	Foreground(TextSecondary).
	BorderStyle(lipgloss.NormalBorder()).
	BorderTop(true).
	BorderForeground(Overlay)

// Hint styles key hints and muted annotations.
var Hint = lipgloss.NewStyle().
	Foreground(TextMuted)

// Pane styles the bordered detail pane.
var Pane = lipgloss.NewStyle().
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(Overlay).
	Padding(0, 1)

// PromptLabel styles the input prompt prefix.
var PromptLabel = lipgloss.NewStyle().
	Foreground(Cyan).
	Bold(true)

// =============================================================================
// SCORE STYLES
// =============================================================================

// ScoreStyle returns the style for a relevance score: emerald at or above
// 0.8, amber at or above 0.6, muted below.
func ScoreStyle(score float64) lipgloss.Style {
	switch {
	case score >= 0.8:
		return lipgloss.NewStyle().Foreground(Emerald).Bold(true)
	case score >= 0.6:
		return lipgloss.NewStyle().Foreground(Amber)
	default:
		return lipgloss.NewStyle().Foreground(TextMuted)
	}
}
