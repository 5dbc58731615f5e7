// Package ui holds the lipgloss theme shared by the text output of the CLI
// and the board.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"questnotes/internal/model"
)

const (
	IconQuest   = "🗺️"
	IconSparkle = "✨"
	IconDone    = "✅"
	IconOpen    = "⬜"
	IconTrophy  = "🏆"
	IconLock    = "🔒"
	IconCastle  = "🏰"
	IconTree    = "🌲"
	IconSound   = "🔊"
	IconMute    = "🔇"
	IconScroll  = "📜"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold)
	Strike      = lipgloss.NewStyle().Strikethrough(true).Foreground(cMuted)

	BadgeLevelUp = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("LEVEL UP")
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// XPBar renders a fixed-width progress bar for percent (0..100).
func XPBar(percent, width int) string {
	if width < 4 {
		width = 4
	}
	percent = min(max(percent, 0), 100)
	filled := percent * width / 100
	return Gold.Render(strings.Repeat("█", filled)) + Muted.Render(strings.Repeat("░", width-filled))
}

func PriorityBadge(p model.Priority) string {
	info, ok := model.Priorities[p]
	if !ok {
		return Muted.Render(string(p))
	}
	label := fmt.Sprintf("%s %s +%dxp", info.Emoji, info.Label, info.XP)
	switch p {
	case model.PriorityDragon:
		return Bad.Render(label)
	case model.PriorityGoblin:
		return Warn.Render(label)
	default:
		return Good.Render(label)
	}
}

func CategoryBadge(c model.Category) string {
	info, ok := model.Categories[c]
	if !ok {
		return Muted.Render(string(c))
	}
	return H2.Render(info.Emoji + " " + info.Label)
}

func CompanionLabel(c model.Companion) string {
	info, ok := model.Companions[c]
	if !ok {
		return string(c)
	}
	return info.Emoji + " " + info.Label
}

// Truncate shortens s to width terminal cells, ANSI-aware.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if xansi.StringWidth(s) <= width {
		return s
	}
	return xansi.Truncate(s, width, "…")
}
