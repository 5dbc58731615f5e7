package game

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"questnotes/internal/leveling"
	"questnotes/internal/model"
)

var noon = time.Date(2024, 3, 14, 12, 0, 0, 0, time.Local)

func fixedReducer() Reducer {
	return NewReducer(WithClock(func() time.Time { return noon }))
}

func newQuest(id string, p model.Priority) model.Quest {
	created := noon.Add(-time.Hour)
	return model.Quest{
		ID:        id,
		Title:     "quest " + id,
		Priority:  p,
		Category:  model.CategoryKnight,
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func requireLevelInvariant(t *testing.T, st model.GameState) {
	t.Helper()
	require.GreaterOrEqual(t, st.Character.XP, 0)
	require.Equal(t, leveling.CalculateLevel(st.Character.XP), st.Character.Level)
}

func TestCompleteDragonQuestFromInitialState(t *testing.T) {
	r := fixedReducer()
	st := r.Apply(model.InitialState(), AddQuest{Quest: newQuest("q1", model.PriorityDragon)})
	st = r.Apply(st, CompleteQuest{ID: "q1"})

	require.Equal(t, 50, st.Character.XP)
	require.Equal(t, 1, st.Character.Level)
	require.Equal(t, 1, st.Character.CompletedQuests)
	require.Equal(t, []string{model.AchievementFirstQuest, model.AchievementFirstDragon}, st.Character.Achievements)

	q, _, ok := st.FindQuest("q1")
	require.True(t, ok)
	require.True(t, q.Completed)
	require.NotNil(t, q.CompletedAt)
	require.True(t, q.CompletedAt.Equal(noon))
	require.True(t, q.UpdatedAt.Equal(noon))
}

func TestTenSlimeCompletionsUnlockTenQuestsOnTheTenth(t *testing.T) {
	r := fixedReducer()
	st := model.InitialState()
	for i := 0; i < 10; i++ {
		st = r.Apply(st, AddQuest{Quest: newQuest(fmt.Sprintf("q%d", i), model.PrioritySlime)})
	}
	for i := 0; i < 10; i++ {
		require.False(t, st.Character.HasAchievement(model.AchievementTenQuests), "unlocked early at %d", i)
		st = r.Apply(st, CompleteQuest{ID: fmt.Sprintf("q%d", i)})
		requireLevelInvariant(t, st)
	}
	require.True(t, st.Character.HasAchievement(model.AchievementTenQuests))
	require.Equal(t, 100, st.Character.XP)
	require.Equal(t, 2, st.Character.Level)
	require.Equal(t, 10, st.Character.CompletedQuests)
}

func TestCompleteThenUncompleteRestoresProgress(t *testing.T) {
	r := fixedReducer()
	st := r.Apply(model.InitialState(), AddQuest{Quest: newQuest("q1", model.PriorityGoblin)})
	st = r.Apply(st, AddXP{Amount: 90})

	done := r.Apply(st, CompleteQuest{ID: "q1"})
	require.Equal(t, 115, done.Character.XP)
	require.Equal(t, 2, done.Character.Level)

	undone := r.Apply(done, UncompleteQuest{ID: "q1"})
	require.Equal(t, st.Character.XP, undone.Character.XP)
	require.Equal(t, st.Character.Level, undone.Character.Level)
	require.Equal(t, st.Character.CompletedQuests, undone.Character.CompletedQuests)

	q, _, _ := undone.FindQuest("q1")
	require.False(t, q.Completed)
	require.Nil(t, q.CompletedAt)

	// Achievements are never revoked.
	require.True(t, undone.Character.HasAchievement(model.AchievementFirstQuest))
}

func TestUncompleteFloorsXPAndCount(t *testing.T) {
	st := model.InitialState()
	q := newQuest("q1", model.PriorityDragon)
	q.Completed = true
	q.CompletedAt = model.Ptr(noon)
	st.Quests = append(st.Quests, q)
	st.Character.XP = 20

	next := fixedReducer().Apply(st, UncompleteQuest{ID: "q1"})
	require.Equal(t, 0, next.Character.XP)
	require.Equal(t, 0, next.Character.CompletedQuests)
	requireLevelInvariant(t, next)
}

func TestNoOpsReturnInputUnchanged(t *testing.T) {
	r := fixedReducer()
	st := r.Apply(model.InitialState(), AddQuest{Quest: newQuest("q1", model.PrioritySlime)})
	st = r.Apply(st, AddDungeon{Dungeon: model.Dungeon{ID: "d1", Name: "Work"}})
	done := r.Apply(st, CompleteQuest{ID: "q1"})

	cases := []struct {
		name string
		st   model.GameState
		a    Action
	}{
		{"complete unknown", st, CompleteQuest{ID: "nope"}},
		{"complete twice", done, CompleteQuest{ID: "q1"}},
		{"uncomplete open quest", st, UncompleteQuest{ID: "q1"}},
		{"update unknown quest", st, UpdateQuest{Quest: newQuest("nope", model.PrioritySlime)}},
		{"delete unknown quest", st, DeleteQuest{ID: "nope"}},
		{"duplicate quest id", st, AddQuest{Quest: newQuest("q1", model.PriorityDragon)}},
		{"duplicate dungeon id", st, AddDungeon{Dungeon: model.Dungeon{ID: "d1", Name: "Again"}}},
		{"update unknown dungeon", st, UpdateDungeon{Dungeon: model.Dungeon{ID: "nope"}}},
		{"delete unknown dungeon", st, DeleteDungeon{ID: "nope"}},
		{"select same", st, SelectDungeon{}},
		{"zero xp", st, AddXP{}},
		{"unlock held", done, UnlockAchievement{ID: model.AchievementFirstQuest}},
		{"same companion", st, SetCompanion{Companion: model.CompanionSlime}},
		{"same name", st, SetCharacterName{Name: "Adventurer"}},
		{"nil action", st, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			next, changed := r.Step(tc.st, tc.a)
			require.False(t, changed)
			require.Equal(t, tc.st, next)
		})
	}
}

func TestApplyNeverMutatesInput(t *testing.T) {
	r := fixedReducer()
	st := model.InitialState()
	st = r.Apply(st, AddDungeon{Dungeon: model.Dungeon{ID: "d1", Name: "Work"}})
	q := newQuest("q1", model.PriorityGoblin)
	q.DungeonID = model.Ptr("d1")
	st = r.Apply(st, AddQuest{Quest: q})
	st = r.Apply(st, SelectDungeon{Selection: model.Ptr("d1")})

	snapshot := st.Clone()
	actions := []Action{
		CompleteQuest{ID: "q1"},
		UpdateQuest{Quest: newQuest("q1", model.PriorityDragon)},
		DeleteQuest{ID: "q1"},
		DeleteDungeon{ID: "d1"},
		UpdateDungeon{Dungeon: model.Dungeon{ID: "d1", Name: "Renamed"}},
		SelectDungeon{Selection: model.Ptr(model.WildernessID)},
		AddXP{Amount: 500},
		UnlockAchievement{ID: "custom"},
		SetCompanion{Companion: model.CompanionCat},
		SetCharacterName{Name: "Rin"},
		ToggleSound{},
		ResetGame{},
	}
	for _, a := range actions {
		_ = r.Apply(st, a)
		require.Equal(t, snapshot, st, "input mutated by %s", a.Kind())
	}
}

func TestLevelInvariantHoldsAcrossActions(t *testing.T) {
	r := fixedReducer()
	st := model.InitialState()
	actions := []Action{
		AddQuest{Quest: newQuest("a", model.PriorityDragon)},
		AddQuest{Quest: newQuest("b", model.PriorityGoblin)},
		CompleteQuest{ID: "a"},
		AddXP{Amount: 400},
		CompleteQuest{ID: "b"},
		UncompleteQuest{ID: "a"},
		AddXP{Amount: -10000},
		CompleteQuest{ID: "a"},
		DeleteQuest{ID: "b"},
		ToggleSound{},
		LoadState{State: model.GameState{Character: model.Character{XP: 475, Level: 1}}},
		ResetGame{},
	}
	for _, a := range actions {
		st = r.Apply(st, a)
		requireLevelInvariant(t, st)
	}
}

func TestAddXPCrossesLevelsAndUnlocks(t *testing.T) {
	st := fixedReducer().Apply(model.InitialState(), AddXP{Amount: 2000})
	require.Equal(t, leveling.CalculateLevel(2000), st.Character.Level)
	require.GreaterOrEqual(t, st.Character.Level, 5)
	require.True(t, st.Character.HasAchievement(model.AchievementLevel5))

	st = fixedReducer().Apply(st, AddXP{Amount: -5000})
	require.Equal(t, 0, st.Character.XP)
	require.Equal(t, 1, st.Character.Level)
}

func TestDeleteDungeonMovesQuestsToWilderness(t *testing.T) {
	r := fixedReducer()
	st := model.InitialState()
	st = r.Apply(st, AddDungeon{Dungeon: model.Dungeon{ID: "d1", Name: "Work"}})
	st = r.Apply(st, AddDungeon{Dungeon: model.Dungeon{ID: "d2", Name: "Home"}})
	for i, d := range []string{"d1", "d1", "d2"} {
		q := newQuest(fmt.Sprintf("q%d", i), model.PrioritySlime)
		q.DungeonID = model.Ptr(d)
		st = r.Apply(st, AddQuest{Quest: q})
	}
	st = r.Apply(st, SelectDungeon{Selection: model.Ptr("d1")})

	next := r.Apply(st, DeleteDungeon{ID: "d1"})
	require.Len(t, next.Dungeons, 1)
	require.Equal(t, "d2", next.Dungeons[0].ID)
	require.Nil(t, next.SelectedDungeonID)
	require.Nil(t, next.Quests[0].DungeonID)
	require.Nil(t, next.Quests[1].DungeonID)
	require.True(t, next.Quests[0].UpdatedAt.Equal(noon))
	require.Equal(t, "d2", *next.Quests[2].DungeonID)
	require.Len(t, next.Quests, 3)
}

func TestDeleteOtherDungeonKeepsSelection(t *testing.T) {
	r := fixedReducer()
	st := r.Apply(model.InitialState(), AddDungeon{Dungeon: model.Dungeon{ID: "d1", Name: "Work"}})
	st = r.Apply(st, AddDungeon{Dungeon: model.Dungeon{ID: "d2", Name: "Home"}})
	st = r.Apply(st, SelectDungeon{Selection: model.Ptr("d2")})

	next := r.Apply(st, DeleteDungeon{ID: "d1"})
	require.NotNil(t, next.SelectedDungeonID)
	require.Equal(t, "d2", *next.SelectedDungeonID)
}

func TestAddDungeonUnlocksFirstDungeon(t *testing.T) {
	st := fixedReducer().Apply(model.InitialState(), AddDungeon{Dungeon: model.Dungeon{ID: "d1", Name: "Work"}})
	require.Equal(t, []string{model.AchievementFirstDungeon}, st.Character.Achievements)
}

func TestUpdateQuestReplacesWholeQuest(t *testing.T) {
	r := fixedReducer()
	st := r.Apply(model.InitialState(), AddQuest{Quest: newQuest("q1", model.PrioritySlime)})
	edited := newQuest("q1", model.PriorityDragon)
	edited.Title = "renamed"

	next := r.Apply(st, UpdateQuest{Quest: edited})
	q, _, _ := next.FindQuest("q1")
	require.Equal(t, "renamed", q.Title)
	require.Equal(t, model.PriorityDragon, q.Priority)
	require.Equal(t, 0, next.Character.XP)
}

func TestToggleSoundAndSettings(t *testing.T) {
	r := fixedReducer()
	st := r.Apply(model.InitialState(), ToggleSound{})
	require.False(t, st.SoundEnabled)
	st = r.Apply(st, ToggleSound{})
	require.True(t, st.SoundEnabled)

	st = r.Apply(st, SetCompanion{Companion: model.CompanionDragon})
	st = r.Apply(st, SetCharacterName{Name: "Rin"})
	st = r.Apply(st, UnlockAchievement{ID: "custom"})
	require.Equal(t, model.CompanionDragon, st.Character.Companion)
	require.Equal(t, "Rin", st.Character.Name)
	require.True(t, st.Character.HasAchievement("custom"))
}

func TestLoadStateNormalizesLevel(t *testing.T) {
	loaded := model.GameState{
		Character: model.Character{Name: "Rin", XP: 475, Level: 1, CompletedQuests: -3},
	}
	st := fixedReducer().Apply(model.InitialState(), LoadState{State: loaded})
	require.Equal(t, 4, st.Character.Level)
	require.Equal(t, 0, st.Character.CompletedQuests)
	require.NotNil(t, st.Quests)
	require.NotNil(t, st.Dungeons)
	require.NotNil(t, st.Character.Achievements)
}

func TestResetGameReturnsInitialState(t *testing.T) {
	st := fixedReducer().Apply(model.InitialState(), AddXP{Amount: 900})
	require.Equal(t, model.InitialState(), fixedReducer().Apply(st, ResetGame{}))
}

func TestDiffReportsLevelUpAndUnlocks(t *testing.T) {
	r := fixedReducer()
	st := r.Apply(model.InitialState(), AddQuest{Quest: newQuest("q1", model.PriorityDragon)})
	st = r.Apply(st, AddXP{Amount: 60})

	next := r.Apply(st, CompleteQuest{ID: "q1"})
	out := Diff(st, next)
	require.Equal(t, 50, out.XPDelta)
	require.Equal(t, 1, out.LevelBefore)
	require.Equal(t, 2, out.LevelAfter)
	require.True(t, out.LevelUp)
	require.Equal(t, []string{model.AchievementFirstQuest, model.AchievementFirstDragon}, out.NewAchievements)
}

func TestZeroXPUnlocksWhatLoadedStateQualifiesFor(t *testing.T) {
	r := fixedReducer()
	loaded := model.InitialState()
	loaded.Dungeons = []model.Dungeon{{ID: "d1", Name: "Work"}}
	st := r.Apply(model.InitialState(), LoadState{State: loaded})
	require.Empty(t, st.Character.Achievements)

	next, changed := r.Step(st, AddXP{})
	require.True(t, changed)
	require.Equal(t, []string{model.AchievementFirstDungeon}, next.Character.Achievements)
	require.Equal(t, 0, next.Character.XP)
	require.Empty(t, st.Character.Achievements)

	again, changed := r.Step(next, AddXP{})
	require.False(t, changed)
	require.Equal(t, next, again)
}
