package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"

	"questnotes/internal/game"
	"questnotes/internal/model"
	"questnotes/internal/view"
)

var noon = time.Date(2024, 3, 14, 12, 0, 0, 0, time.Local)

func clock() time.Time { return noon }

func newTestBoard(t *testing.T, st model.GameState) boardModel {
	t.Helper()
	eng := game.New(st, nil, game.WithReducer(game.NewReducer(game.WithClock(clock))))
	m := newBoardModel(context.Background(), eng, clock)
	// A blinking cursor would make every key press wait on the blink timer.
	m.input.Cursor.SetMode(cursor.CursorStatic)
	return m
}

// send delivers msg and runs any resulting command to completion, feeding
// its message back in, the way the bubbletea runtime would.
func send(m boardModel, msg tea.Msg) boardModel {
	next, cmd := m.Update(msg)
	m = next.(boardModel)
	for cmd != nil {
		out := cmd()
		if out == nil {
			break
		}
		if _, ok := out.(tea.QuitMsg); ok {
			break
		}
		next, cmd = m.Update(out)
		m = next.(boardModel)
	}
	return m
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func stateWithQuests(ids ...string) model.GameState {
	st := model.InitialState()
	for i, id := range ids {
		created := noon.Add(time.Duration(i) * time.Minute)
		st.Quests = append(st.Quests, model.Quest{
			ID: id, Title: "quest " + id,
			Priority: model.PriorityDragon, Category: model.CategoryKnight,
			CreatedAt: created, UpdatedAt: created,
		})
	}
	return st
}

func TestToggleCompletesSelectedQuest(t *testing.T) {
	m := newTestBoard(t, stateWithQuests("a", "b"))

	// Newest first: b is on top.
	m = send(m, keyRunes("x"))
	q, _, _ := m.st.FindQuest("b")
	if !q.Completed {
		t.Fatalf("expected quest b completed")
	}
	if m.st.Character.XP != 50 {
		t.Fatalf("xp = %d, want 50", m.st.Character.XP)
	}
	if !strings.Contains(m.lastLog, "+50 XP") || !strings.Contains(m.lastLog, "Dragon Slayer") {
		t.Fatalf("lastLog = %q", m.lastLog)
	}

	// Completed quests sink, so the cursor now sits on a.
	m = send(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	q, _, _ = m.st.FindQuest("a")
	if !q.Completed {
		t.Fatalf("expected quest a completed")
	}
}

func TestToggleReopensCompletedQuest(t *testing.T) {
	m := newTestBoard(t, stateWithQuests("a"))
	m = send(m, keyRunes("x"))
	m = send(m, keyRunes("x"))
	q, _, _ := m.st.FindQuest("a")
	if q.Completed || m.st.Character.XP != 0 {
		t.Fatalf("expected quest reopened with xp 0, got completed=%v xp=%d", q.Completed, m.st.Character.XP)
	}
}

func TestMoveAndDelete(t *testing.T) {
	m := newTestBoard(t, stateWithQuests("a", "b", "c"))
	m = send(m, keyRunes("j"))
	m = send(m, keyRunes("j"))
	m = send(m, keyRunes("j"))
	if m.selected != 2 {
		t.Fatalf("selected = %d, want 2", m.selected)
	}
	m = send(m, keyRunes("k"))
	m = send(m, keyRunes("d"))
	if _, _, ok := m.st.FindQuest("b"); ok {
		t.Fatalf("expected quest b deleted")
	}
	if len(m.st.Quests) != 2 {
		t.Fatalf("quests = %d, want 2", len(m.st.Quests))
	}
}

func TestAddQuestThroughInput(t *testing.T) {
	m := newTestBoard(t, model.InitialState())
	m = send(m, keyRunes("a"))
	if !m.adding {
		t.Fatalf("expected input mode")
	}
	m = send(m, keyRunes("Feed the cat"))
	m = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.adding {
		t.Fatalf("expected input mode to close")
	}
	if len(m.st.Quests) != 1 || m.st.Quests[0].Title != "Feed the cat" {
		t.Fatalf("quests = %+v", m.st.Quests)
	}
}

func TestAddEmptyTitleKeepsInputOpen(t *testing.T) {
	m := newTestBoard(t, model.InitialState())
	m = send(m, keyRunes("a"))
	m = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.adding || !strings.Contains(m.lastLog, "title is required") {
		t.Fatalf("adding=%v lastLog=%q", m.adding, m.lastLog)
	}
	m = send(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.adding || len(m.st.Quests) != 0 {
		t.Fatalf("expected cancel without changes")
	}
}

func TestTabCyclesSelection(t *testing.T) {
	st := model.InitialState()
	st.Dungeons = []model.Dungeon{{ID: "d1", Name: "Work"}}
	m := newTestBoard(t, st)

	want := []*string{model.Ptr(model.WildernessID), model.Ptr("d1"), nil}
	for i, w := range want {
		m = send(m, tea.KeyMsg{Type: tea.KeyTab})
		got := m.st.SelectedDungeonID
		if (got == nil) != (w == nil) || (got != nil && *got != *w) {
			t.Fatalf("step %d: selection = %v, want %v", i, got, w)
		}
	}
}

func TestQueuedTabPressesEachAdvance(t *testing.T) {
	st := model.InitialState()
	st.Dungeons = []model.Dungeon{{ID: "d1", Name: "Work"}}
	m := newTestBoard(t, st)

	// Both presses are handled before either command runs.
	next, first := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(boardModel)
	next, second := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(boardModel)

	for _, cmd := range []tea.Cmd{first, second} {
		msg := cmd().(dispatchedMsg)
		if !msg.outcome.Changed {
			t.Fatalf("expected each tab press to change the selection")
		}
		next, _ = m.Update(msg)
		m = next.(boardModel)
	}
	if got := m.st.SelectedDungeonID; got == nil || *got != "d1" {
		t.Fatalf("selection = %v, want d1", got)
	}
}

func TestSortAndSoundKeys(t *testing.T) {
	m := newTestBoard(t, stateWithQuests("a"))
	m = send(m, keyRunes("s"))
	if m.order != view.SortOldest {
		t.Fatalf("order = %s", m.order)
	}
	m = send(m, keyRunes("m"))
	if m.st.SoundEnabled {
		t.Fatalf("expected sound off")
	}
	if !strings.Contains(m.lastLog, "Sound off.") {
		t.Fatalf("lastLog = %q", m.lastLog)
	}
}

func TestQuitReturnsQuitCmd(t *testing.T) {
	m := newTestBoard(t, model.InitialState())
	_, cmd := m.Update(keyRunes("q"))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestViewRendersBoard(t *testing.T) {
	st := stateWithQuests("a")
	st.Character.Name = "Rin"
	m := newTestBoard(t, st)
	out := m.View()
	for _, want := range []string{"QuestNotes", "Rin", "Lv 1", "All (1)", "quest a"} {
		if !strings.Contains(out, want) {
			t.Fatalf("view missing %q:\n%s", want, out)
		}
	}
}
