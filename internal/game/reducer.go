// Package game holds the quest/dungeon/character state machine.
//
// The reducer is a pure transition function: it never mutates the state it
// is given and never performs I/O. Transitions that do not apply (unknown
// ids, completing a completed quest, ...) are no-ops that return the input
// unchanged.
package game

import (
	"time"

	"go.uber.org/zap"

	"questnotes/internal/achievements"
	"questnotes/internal/leveling"
	"questnotes/internal/model"
)

type Reducer struct {
	now func() time.Time
	log *zap.Logger
}

type ReducerOption func(*Reducer)

// WithClock overrides the clock used for completion and modification times.
func WithClock(now func() time.Time) ReducerOption {
	return func(r *Reducer) {
		if now != nil {
			r.now = now
		}
	}
}

// WithReducerLogger reports no-op transitions at debug level.
func WithReducerLogger(l *zap.Logger) ReducerOption {
	return func(r *Reducer) {
		if l != nil {
			r.log = l
		}
	}
}

func NewReducer(opts ...ReducerOption) Reducer {
	r := Reducer{now: time.Now, log: zap.NewNop()}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// Apply is a convenience for NewReducer().Apply.
func Apply(st model.GameState, a Action) model.GameState {
	return NewReducer().Apply(st, a)
}

func (r Reducer) Apply(st model.GameState, a Action) model.GameState {
	next, _ := r.Step(st, a)
	return next
}

// Step applies a and reports whether the state changed. When changed is
// false the returned state is st itself.
func (r Reducer) Step(st model.GameState, a Action) (model.GameState, bool) {
	if a == nil {
		return st, false
	}
	next, changed := r.step(st, a)
	if !changed {
		r.log.Debug("no-op transition", zap.String("action", a.Kind()))
		return st, false
	}
	return next, true
}

func (r Reducer) step(st model.GameState, a Action) (model.GameState, bool) {
	switch a := a.(type) {
	case AddQuest:
		if _, _, ok := st.FindQuest(a.Quest.ID); ok {
			return st, false
		}
		next := st.Clone()
		next.Quests = append(next.Quests, a.Quest.Clone())
		return next, true

	case UpdateQuest:
		_, idx, ok := st.FindQuest(a.Quest.ID)
		if !ok {
			return st, false
		}
		next := st.Clone()
		next.Quests[idx] = a.Quest.Clone()
		return next, true

	case DeleteQuest:
		_, idx, ok := st.FindQuest(a.ID)
		if !ok {
			return st, false
		}
		next := st.Clone()
		next.Quests = append(next.Quests[:idx], next.Quests[idx+1:]...)
		return next, true

	case CompleteQuest:
		q, idx, ok := st.FindQuest(a.ID)
		if !ok || q.Completed {
			return st, false
		}
		now := r.now()
		next := st.Clone()
		done := &next.Quests[idx]
		done.Completed = true
		done.CompletedAt = &now
		done.UpdatedAt = now
		next.Character = withXP(next.Character, next.Character.XP+model.XPFor(q.Priority))
		next.Character.CompletedQuests++
		return withNewAchievements(next), true

	case UncompleteQuest:
		q, idx, ok := st.FindQuest(a.ID)
		if !ok || !q.Completed {
			return st, false
		}
		next := st.Clone()
		undone := &next.Quests[idx]
		undone.Completed = false
		undone.CompletedAt = nil
		undone.UpdatedAt = r.now()
		next.Character = withXP(next.Character, next.Character.XP-model.XPFor(q.Priority))
		next.Character.CompletedQuests = max(0, next.Character.CompletedQuests-1)
		return next, true

	case AddDungeon:
		if _, _, ok := st.FindDungeon(a.Dungeon.ID); ok {
			return st, false
		}
		next := st.Clone()
		next.Dungeons = append(next.Dungeons, a.Dungeon)
		return withNewAchievements(next), true

	case UpdateDungeon:
		_, idx, ok := st.FindDungeon(a.Dungeon.ID)
		if !ok {
			return st, false
		}
		next := st.Clone()
		next.Dungeons[idx] = a.Dungeon
		return next, true

	case DeleteDungeon:
		_, idx, ok := st.FindDungeon(a.ID)
		if !ok {
			return st, false
		}
		now := r.now()
		next := st.Clone()
		next.Dungeons = append(next.Dungeons[:idx], next.Dungeons[idx+1:]...)
		for i := range next.Quests {
			if next.Quests[i].InDungeon(a.ID) {
				next.Quests[i].DungeonID = nil
				next.Quests[i].UpdatedAt = now
			}
		}
		if next.SelectedDungeonID != nil && *next.SelectedDungeonID == a.ID {
			next.SelectedDungeonID = nil
		}
		return next, true

	case SelectDungeon:
		if sameSelection(st.SelectedDungeonID, a.Selection) {
			return st, false
		}
		next := st.Clone()
		next.SelectedDungeonID = nil
		if a.Selection != nil {
			sel := *a.Selection
			next.SelectedDungeonID = &sel
		}
		return next, true

	case AddXP:
		if a.Amount == 0 {
			// Zero still runs the evaluator.
			if len(achievements.Evaluate(st)) == 0 {
				return st, false
			}
			return withNewAchievements(st.Clone()), true
		}
		next := st.Clone()
		next.Character = withXP(next.Character, next.Character.XP+a.Amount)
		return withNewAchievements(next), true

	case UnlockAchievement:
		if a.ID == "" || st.Character.HasAchievement(a.ID) {
			return st, false
		}
		next := st.Clone()
		next.Character.Achievements = append(next.Character.Achievements, a.ID)
		return next, true

	case SetCompanion:
		if st.Character.Companion == a.Companion {
			return st, false
		}
		next := st.Clone()
		next.Character.Companion = a.Companion
		return next, true

	case SetCharacterName:
		if st.Character.Name == a.Name {
			return st, false
		}
		next := st.Clone()
		next.Character.Name = a.Name
		return next, true

	case ToggleSound:
		next := st.Clone()
		next.SoundEnabled = !st.SoundEnabled
		return next, true

	case LoadState:
		return normalize(a.State.Clone()), true

	case ResetGame:
		return model.InitialState(), true

	default:
		return st, false
	}
}

// withXP is the only place experience changes; it keeps xp non-negative and
// level derived from xp.
func withXP(c model.Character, xp int) model.Character {
	c.XP = max(0, xp)
	c.Level = leveling.CalculateLevel(c.XP)
	return c
}

func withNewAchievements(st model.GameState) model.GameState {
	earned := achievements.Evaluate(st)
	if len(earned) == 0 {
		return st
	}
	st.Character.Achievements = append(st.Character.Achievements, earned...)
	return st
}

// normalize repairs a loaded state so the level invariant holds and
// collections are never nil.
func normalize(st model.GameState) model.GameState {
	if st.Quests == nil {
		st.Quests = []model.Quest{}
	}
	if st.Dungeons == nil {
		st.Dungeons = []model.Dungeon{}
	}
	if st.Character.Achievements == nil {
		st.Character.Achievements = []string{}
	}
	st.Character.CompletedQuests = max(0, st.Character.CompletedQuests)
	st.Character = withXP(st.Character, st.Character.XP)
	return st
}

func sameSelection(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
