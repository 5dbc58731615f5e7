package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"questnotes/internal/leveling"
	"questnotes/internal/model"
	"questnotes/internal/ui"
	"questnotes/internal/view"
)

func (m boardModel) View() string {
	sections := []string{
		m.renderHeader(),
		m.renderDungeons(),
		m.renderQuests(),
		m.renderFooter(),
	}
	return strings.Join(sections, "\n\n")
}

func (m boardModel) renderHeader() string {
	c := m.st.Character
	sum := leveling.Summarize(c.XP)
	sound := ui.IconSound
	if !m.st.SoundEnabled {
		sound = ui.IconMute
	}
	mood := view.CompanionMood(m.st, m.now())

	line1 := fmt.Sprintf("%s  %s  %s",
		ui.Heading(ui.IconQuest, "QuestNotes"),
		ui.LabelValue(c.Name, fmt.Sprintf("Lv %d %s", c.Level, sum.Rank)),
		sound,
	)
	line2 := fmt.Sprintf("%s %d XP  %s",
		ui.XPBar(sum.Progress, 24), c.XP, ui.Muted.Render(fmt.Sprintf("%d to next", sum.ToNext)))
	line3 := fmt.Sprintf("%s  %s",
		ui.CompanionLabel(c.Companion),
		ui.Muted.Render(`"`+view.MoodMessage(mood, m.ticks)+`"`))
	return strings.Join([]string{line1, line2, line3}, "\n")
}

func (m boardModel) renderDungeons() string {
	counts := view.Counts(m.st)
	tab := func(label string, n int, active bool) string {
		s := fmt.Sprintf("%s (%d)", label, n)
		if active {
			return ui.SelectedRow.Render("[" + s + "]")
		}
		return ui.Muted.Render(" " + s + " ")
	}
	sel := m.st.SelectedDungeonID
	tabs := []string{
		tab("All", counts.All, sel == nil),
		tab(ui.IconTree+" Wilderness", counts.Wilderness, sel != nil && *sel == model.WildernessID),
	}
	for _, d := range m.st.Dungeons {
		tabs = append(tabs, tab(strings.TrimSpace(d.Icon+" "+d.Name), counts.Dungeons[d.ID], sel != nil && *sel == d.ID))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m boardModel) renderQuests() string {
	qs := m.quests()
	title := ui.H2.Render(fmt.Sprintf("%s · sorted by %s", view.SelectionLabel(m.st, m.st.SelectedDungeonID), m.order))
	lines := []string{title}
	if len(qs) == 0 {
		lines = append(lines, ui.Muted.Render("No quests here. Press a to add one."))
		return strings.Join(lines, "\n")
	}

	width := m.width - 4
	if width <= 0 {
		width = 80
	}
	for i, q := range qs {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		check := ui.IconOpen
		title := q.Title
		if q.Completed {
			check = ui.IconDone
			title = ui.Strike.Render(title)
		}
		info := model.Priorities[q.Priority]
		line := fmt.Sprintf("%s%s %s %s", cursor, check, info.Emoji, title)
		line = ui.Truncate(line, width)
		if i == m.selected {
			line = ui.SelectedRow.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m boardModel) renderFooter() string {
	var b strings.Builder
	if m.adding {
		b.WriteString(ui.Key.Render("New quest: "))
		b.WriteString(m.input.View())
		b.WriteString("\n")
		b.WriteString(m.help.View(inputKeyMap{m.keys}))
		return b.String()
	}
	b.WriteString(m.lastLog)
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}
