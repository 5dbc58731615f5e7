package cli

import (
	"fmt"
	"strings"
	"time"

	"questnotes/internal/achievements"
	"questnotes/internal/game"
	"questnotes/internal/leveling"
	"questnotes/internal/model"
	"questnotes/internal/ui"
	"questnotes/internal/view"
)

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func dungeonLabel(st model.GameState, id *string) string {
	if id == nil {
		return ui.IconTree + " Wilderness"
	}
	if d, _, ok := st.FindDungeon(*id); ok {
		return strings.TrimSpace(d.Icon + " " + d.Name)
	}
	return *id
}

func renderQuestLine(q model.Quest) string {
	check := ui.IconOpen
	title := q.Title
	if q.Completed {
		check = ui.IconDone
		title = ui.Strike.Render(title)
	}
	return fmt.Sprintf("%s %s %s %s  %s",
		check, ui.Muted.Render(shortID(q.ID)), model.Priorities[q.Priority].Emoji, title,
		ui.Muted.Render(model.Categories[q.Category].Label))
}

func renderQuestList(st model.GameState, heading string, qs []model.Quest) string {
	lines := []string{ui.Heading(ui.IconQuest, heading)}
	if len(qs) == 0 {
		lines = append(lines, ui.Muted.Render("No quests."))
	}
	for _, q := range qs {
		lines = append(lines, renderQuestLine(q))
	}
	active := len(view.ByStatus(qs, view.StatusActive))
	lines = append(lines, ui.Muted.Render(fmt.Sprintf("%d active / %d total", active, len(qs))))
	return strings.Join(lines, "\n")
}

func renderQuestDetail(st model.GameState, q model.Quest) string {
	status := ui.Warn.Render("open")
	if q.Completed && q.CompletedAt != nil {
		status = ui.Good.Render("completed " + q.CompletedAt.Local().Format(time.DateTime))
	}
	lines := []string{
		ui.Heading(model.Priorities[q.Priority].Emoji, q.Title),
		ui.LabelValue("ID", q.ID),
		ui.LabelValue("Status", status),
		ui.LabelValue("Priority", ui.PriorityBadge(q.Priority)),
		ui.LabelValue("Category", ui.CategoryBadge(q.Category)),
		ui.LabelValue("Dungeon", dungeonLabel(st, q.DungeonID)),
		ui.LabelValue("Created", q.CreatedAt.Local().Format(time.DateTime)),
		ui.LabelValue("Updated", q.UpdatedAt.Local().Format(time.DateTime)),
	}
	if body := ui.RenderMarkdown(q.Content, 80); body != "" {
		lines = append(lines, "", body)
	}
	return strings.Join(lines, "\n")
}

func renderOutcome(headline string, out game.Outcome) string {
	if !out.Changed {
		return ui.Muted.Render("Nothing changed.")
	}
	lines := []string{headline}
	switch {
	case out.XPDelta > 0:
		lines = append(lines, ui.Gold.Render(fmt.Sprintf("+%d XP", out.XPDelta)))
	case out.XPDelta < 0:
		lines = append(lines, ui.Warn.Render(fmt.Sprintf("%d XP", out.XPDelta)))
	}
	if out.LevelUp {
		lines = append(lines, fmt.Sprintf("%s Level %d → %d", ui.BadgeLevelUp, out.LevelBefore, out.LevelAfter))
	}
	for _, id := range out.NewAchievements {
		if a, ok := achievements.Details(id); ok {
			lines = append(lines, fmt.Sprintf("%s Achievement unlocked: %s %s", ui.IconTrophy, a.Emoji, a.Name))
		} else {
			lines = append(lines, fmt.Sprintf("%s Achievement unlocked: %s", ui.IconTrophy, id))
		}
	}
	return strings.Join(lines, "\n")
}

func renderStatus(s statusView) string {
	sum := s.Progress
	lines := []string{
		ui.Heading(ui.IconQuest, s.Character.Name),
		ui.LabelValue("Level", fmt.Sprintf("%d (%s)", sum.Level, sum.Rank)),
		ui.LabelValue("XP", fmt.Sprintf("%d  %s %d%%  %d to next", sum.XP, ui.XPBar(sum.Progress, 20), sum.Progress, sum.ToNext)),
		ui.LabelValue("Quests completed", s.Character.CompletedQuests),
		ui.LabelValue("Companion", fmt.Sprintf("%s (%s) %q", ui.CompanionLabel(s.Character.Companion), s.Mood, s.MoodMessage)),
		ui.LabelValue("Achievements", fmt.Sprintf("%d/%d", len(s.Character.Achievements), len(model.Achievements))),
		ui.LabelValue("Open quests", fmt.Sprintf("%d (wilderness %d)", s.Counts.All, s.Counts.Wilderness)),
		ui.LabelValue("Viewing", s.Viewing),
		ui.LabelValue("Sound", onOff(s.SoundEnabled)),
	}
	return strings.Join(lines, "\n")
}

func renderDungeons(st model.GameState, counts view.QuestCounts) string {
	lines := []string{ui.Heading(ui.IconCastle, "Dungeons")}
	lines = append(lines, fmt.Sprintf("%-8s %s (%d)", model.WildernessID, ui.IconTree+" Wilderness", counts.Wilderness))
	for _, d := range st.Dungeons {
		marker := " "
		if st.SelectedDungeonID != nil && *st.SelectedDungeonID == d.ID {
			marker = ui.Gold.Render("*")
		}
		lines = append(lines, fmt.Sprintf("%s %s (%d)%s", ui.Muted.Render(shortID(d.ID)), strings.TrimSpace(d.Icon+" "+d.Name), counts.Dungeons[d.ID], marker))
	}
	return strings.Join(lines, "\n")
}

func renderAchievements(list []achievements.Status) string {
	lines := []string{ui.Heading(ui.IconTrophy, "Achievements")}
	for _, a := range list {
		if a.Earned {
			lines = append(lines, fmt.Sprintf("%s %s  %s", a.Emoji, ui.Good.Render(a.Name), ui.Muted.Render(a.Description)))
			continue
		}
		lines = append(lines, fmt.Sprintf("%s %s  %s", ui.IconLock, ui.Muted.Render(a.Name), ui.Muted.Render(a.Description)))
	}
	return strings.Join(lines, "\n")
}

func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ui.Muted.Render("(none)")
	}
	return strings.Join(lines, "\n")
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// statusView is the character sheet printed by `status`.
type statusView struct {
	Character    model.Character  `json:"character" yaml:"character"`
	Progress     leveling.Summary `json:"progress" yaml:"progress"`
	Mood         view.Mood        `json:"mood" yaml:"mood"`
	MoodMessage  string           `json:"moodMessage" yaml:"moodMessage"`
	Counts       view.QuestCounts `json:"counts" yaml:"counts"`
	Viewing      string           `json:"viewing" yaml:"viewing"`
	SoundEnabled bool             `json:"soundEnabled" yaml:"soundEnabled"`
}

func newStatusView(st model.GameState, now time.Time) statusView {
	mood := view.CompanionMood(st, now)
	return statusView{
		Character:    st.Character,
		Progress:     leveling.Summarize(st.Character.XP),
		Mood:         mood,
		MoodMessage:  view.MoodMessage(mood, st.Character.CompletedQuests),
		Counts:       view.Counts(st),
		Viewing:      view.SelectionLabel(st, st.SelectedDungeonID),
		SoundEnabled: st.SoundEnabled,
	}
}
