// Package views renders dashboard screens as styled terminal text.
package views

import (
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	brandStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB")).Bold(true)
	navStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Bold(true).Underline(true)
	badgeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f172a")).Background(lipgloss.Color("#34d399")).Padding(0, 1)
	guestStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f172a")).Background(lipgloss.Color("#9CA3AF")).Padding(0, 1)

	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#E5E7EB")).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
	amountStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD54A")).Bold(true)
	pillStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#818cf8"))
	linkStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#22d3ee")).Underline(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FBBF24"))
	avatarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f172a")).Background(lipgloss.Color("#87CEEB")).Bold(true).Padding(0, 1)

	cardStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#374151")).Padding(0, 1)
)

var titleCaser = cases.Title(language.English)
