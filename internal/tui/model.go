package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"questnotes/internal/achievements"
	"questnotes/internal/game"
	"questnotes/internal/model"
	"questnotes/internal/view"
)

type boardModel struct {
	ctx context.Context
	eng *game.Engine
	now func() time.Time

	width  int
	height int

	st       model.GameState
	order    view.SortOrder
	selected int

	adding bool
	input  textinput.Model

	keys keyMap
	help help.Model

	lastLog string
	ticks   int
}

type dispatchedMsg struct {
	state   model.GameState
	outcome game.Outcome
	note    string
}

func newBoardModel(ctx context.Context, eng *game.Engine, now func() time.Time) boardModel {
	if now == nil {
		now = time.Now
	}
	in := textinput.New()
	in.Placeholder = "Quest title"
	in.CharLimit = 200
	in.Width = 40

	return boardModel{
		ctx:     ctx,
		eng:     eng,
		now:     now,
		st:      eng.State(),
		order:   view.SortNewest,
		input:   in,
		keys:    defaultKeyMap(),
		help:    help.New(),
		lastLog: "Ready for adventure!",
	}
}

func (m boardModel) Init() tea.Cmd { return nil }

func (m boardModel) dispatch(a game.Action, note string) tea.Cmd {
	return func() tea.Msg {
		st, out := m.eng.Dispatch(m.ctx, a)
		return dispatchedMsg{state: st, outcome: out, note: note}
	}
}

// dispatchFrom derives the action from the engine's state at apply time
// rather than from the last rendered state.
func (m boardModel) dispatchFrom(build func(model.GameState) game.Action, note string) tea.Cmd {
	return func() tea.Msg {
		st, out := m.eng.DispatchWith(m.ctx, build)
		return dispatchedMsg{state: st, outcome: out, note: note}
	}
}

// quests returns the visible quests in display order.
func (m boardModel) quests() []model.Quest {
	return view.Sort(view.BySelection(m.st, m.st.SelectedDungeonID), m.order)
}

func (m boardModel) current() (model.Quest, bool) {
	qs := m.quests()
	if m.selected < 0 || m.selected >= len(qs) {
		return model.Quest{}, false
	}
	return qs[m.selected], true
}

// nextSelection cycles All → Wilderness → each dungeon → All.
func nextSelection(st model.GameState) *string {
	cycle := []*string{nil, model.Ptr(model.WildernessID)}
	for _, d := range st.Dungeons {
		cycle = append(cycle, model.Ptr(d.ID))
	}
	cur := 0
	if sel := st.SelectedDungeonID; sel != nil {
		for i := 1; i < len(cycle); i++ {
			if *cycle[i] == *sel {
				cur = i
				break
			}
		}
	}
	return cycle[(cur+1)%len(cycle)]
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case dispatchedMsg:
		m.st = msg.state
		m.ticks++
		m.lastLog = describe(msg)
		m.clampSelection()
		return m, nil

	case tea.KeyMsg:
		if m.adding {
			return m.updateInput(msg)
		}
		return m.updateBoard(msg)
	}
	return m, nil
}

func (m boardModel) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.quests())-1 {
			m.selected++
		}
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		q, ok := m.current()
		if !ok {
			m.lastLog = "No quest selected."
			return m, nil
		}
		if q.Completed {
			return m, m.dispatch(game.UncompleteQuest{ID: q.ID}, "Reopened "+q.Title)
		}
		return m, m.dispatch(game.CompleteQuest{ID: q.ID}, "Completed "+q.Title)

	case key.Matches(msg, m.keys.Delete):
		q, ok := m.current()
		if !ok {
			return m, nil
		}
		return m, m.dispatch(game.DeleteQuest{ID: q.ID}, "Abandoned "+q.Title)

	case key.Matches(msg, m.keys.Add):
		m.adding = true
		m.input.SetValue("")
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Sort):
		m.order = m.order.Next()
		m.selected = 0
		m.lastLog = "Sorted by " + string(m.order) + "."
		return m, nil

	case key.Matches(msg, m.keys.Sound):
		return m, m.dispatch(game.ToggleSound{}, "")

	case key.Matches(msg, m.keys.Dungeon):
		m.selected = 0
		return m, m.dispatchFrom(func(st model.GameState) game.Action {
			return game.SelectDungeon{Selection: nextSelection(st)}
		}, "")

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}
	return m, nil
}

func (m boardModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.adding = false
		m.input.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		title := m.input.Value()
		q, err := game.NewQuest(game.QuestDraft{Title: title, DungeonID: m.st.SelectedDungeonID}, m.now())
		if err != nil {
			m.lastLog = "Cannot add quest: " + err.Error()
			return m, nil
		}
		m.adding = false
		m.input.Blur()
		return m, m.dispatch(game.AddQuest{Quest: q}, "New quest: "+q.Title)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *boardModel) clampSelection() {
	n := len(m.quests())
	if m.selected >= n {
		m.selected = n - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func describe(msg dispatchedMsg) string {
	out := msg.outcome
	if !out.Changed {
		return "Nothing happened."
	}
	var parts []string
	if msg.note != "" {
		parts = append(parts, msg.note)
	}
	switch {
	case out.XPDelta > 0:
		parts = append(parts, fmt.Sprintf("+%d XP", out.XPDelta))
	case out.XPDelta < 0:
		parts = append(parts, fmt.Sprintf("%d XP", out.XPDelta))
	}
	if out.LevelUp {
		parts = append(parts, fmt.Sprintf("LEVEL UP! %d → %d", out.LevelBefore, out.LevelAfter))
	}
	for _, id := range out.NewAchievements {
		if a, ok := achievements.Details(id); ok {
			parts = append(parts, "Achievement unlocked: "+a.Emoji+" "+a.Name)
		}
	}
	if out.Action == (game.ToggleSound{}).Kind() {
		if msg.state.SoundEnabled {
			parts = append(parts, "Sound on.")
		} else {
			parts = append(parts, "Sound off.")
		}
	}
	if out.Action == (game.SelectDungeon{}).Kind() {
		parts = append(parts, "Viewing "+view.SelectionLabel(msg.state, msg.state.SelectedDungeonID)+".")
	}
	return strings.Join(parts, " · ")
}
