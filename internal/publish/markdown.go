package publish

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"questnotes/internal/leveling"
	"questnotes/internal/model"
	"questnotes/internal/view"
)

type RenderOptions struct {
	IncludeCompleted bool
}

// RenderQuestMarkdown renders one quest as a standalone markdown page.
func RenderQuestMarkdown(st model.GameState, questID string, opt RenderOptions) (string, error) {
	q, _, ok := st.FindQuest(strings.TrimSpace(questID))
	if !ok {
		return "", fmt.Errorf("quest not found: %s", questID)
	}
	if q.Completed && !opt.IncludeCompleted {
		return "", fmt.Errorf("quest completed (use --include-completed): %s", q.ID)
	}

	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	writeLn("# " + strings.TrimSpace(q.Title))
	writeLn("")

	p := model.Priorities[q.Priority]
	c := model.Categories[q.Category]
	writeLn("## Meta")
	writeLn("")
	writeLn("- ID: " + q.ID)
	writeLn("- Dungeon: " + dungeonName(st, q.DungeonID))
	writeLn(fmt.Sprintf("- Priority: %s %s (+%d XP)", p.Emoji, p.Label, p.XP))
	writeLn(fmt.Sprintf("- Category: %s %s", c.Emoji, c.Label))
	writeLn("- Created: " + formatTime(q.CreatedAt))
	if q.Completed && q.CompletedAt != nil {
		writeLn("- Completed: " + formatTime(*q.CompletedAt))
	}
	writeLn("")

	if body := strings.TrimSpace(q.Content); body != "" {
		writeLn("## Notes")
		writeLn("")
		writeLn(body)
		writeLn("")
	}

	return buf.String(), nil
}

// RenderLogIndexMarkdown renders the quest log: the character line followed
// by one checklist per dungeon, wilderness first.
func RenderLogIndexMarkdown(st model.GameState, opt RenderOptions) string {
	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	ch := st.Character
	writeLn(fmt.Sprintf("# %s's Quest Log", strings.TrimSpace(ch.Name)))
	writeLn("")
	writeLn(fmt.Sprintf("Level %d %s, %d XP, %d quests completed.", ch.Level, leveling.RankTitle(ch.Level), ch.XP, ch.CompletedQuests))
	writeLn("")

	section := func(heading string, sel *string) {
		qs := view.Sort(view.BySelection(st, sel), view.SortNewest)
		lines := make([]string, 0, len(qs))
		for _, q := range qs {
			if q.Completed && !opt.IncludeCompleted {
				continue
			}
			lines = append(lines, questLine(q))
		}
		if len(lines) == 0 {
			return
		}
		writeLn("## " + heading)
		writeLn("")
		for _, l := range lines {
			writeLn(l)
		}
		writeLn("")
	}

	section("🌲 Wilderness", model.Ptr(model.WildernessID))
	for _, d := range st.Dungeons {
		section(strings.TrimSpace(d.Icon+" "+d.Name), model.Ptr(d.ID))
	}

	return buf.String()
}

func questLine(q model.Quest) string {
	box := " "
	if q.Completed {
		box = "x"
	}
	p := model.Priorities[q.Priority]
	return fmt.Sprintf("- [%s] [%s](quests/%s.md) %s", box, strings.TrimSpace(q.Title), q.ID, p.Emoji)
}

func dungeonName(st model.GameState, id *string) string {
	if id == nil {
		return "Wilderness"
	}
	if d, _, ok := st.FindDungeon(*id); ok {
		return strings.TrimSpace(d.Icon + " " + d.Name)
	}
	return *id
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
