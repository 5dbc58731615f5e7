// Package achievements decides which milestones a game state has earned.
package achievements

import (
	"time"

	"questnotes/internal/model"
)

type rule struct {
	id    string
	check func(st model.GameState, completed []model.Quest) bool
}

func completedAtLeast(n int) func(model.GameState, []model.Quest) bool {
	return func(_ model.GameState, completed []model.Quest) bool {
		return len(completed) >= n
	}
}

func levelAtLeast(n int) func(model.GameState, []model.Quest) bool {
	return func(st model.GameState, _ []model.Quest) bool {
		return st.Character.Level >= n
	}
}

func hourBetween(from, to int) func(model.GameState, []model.Quest) bool {
	return func(_ model.GameState, completed []model.Quest) bool {
		last, ok := mostRecentCompletion(completed)
		if !ok {
			return false
		}
		h := last.Local().Hour()
		return h >= from && h < to
	}
}

// rules are listed in catalog order so results are deterministic.
var rules = []rule{
	{id: model.AchievementFirstQuest, check: completedAtLeast(1)},
	{id: model.AchievementTenQuests, check: completedAtLeast(10)},
	{id: model.AchievementFiftyQuests, check: completedAtLeast(50)},
	{id: model.AchievementHundredQuests, check: completedAtLeast(100)},
	{id: model.AchievementFirstDragon, check: func(_ model.GameState, completed []model.Quest) bool {
		for _, q := range completed {
			if q.Priority == model.PriorityDragon {
				return true
			}
		}
		return false
	}},
	{id: model.AchievementFirstDungeon, check: func(st model.GameState, _ []model.Quest) bool {
		return len(st.Dungeons) >= 1
	}},
	{id: model.AchievementLevel5, check: levelAtLeast(5)},
	{id: model.AchievementLevel10, check: levelAtLeast(10)},
	{id: model.AchievementNightOwl, check: hourBetween(0, 5)},
	{id: model.AchievementEarlyBird, check: hourBetween(5, 7)},
}

// Evaluate returns the ids of achievements the state qualifies for that the
// character does not hold yet. It never revokes and is idempotent: feeding
// its result back into the character yields an empty result.
func Evaluate(st model.GameState) []string {
	completed := st.CompletedQuests()
	var out []string
	for _, r := range rules {
		if st.Character.HasAchievement(r.id) {
			continue
		}
		if r.check(st, completed) {
			out = append(out, r.id)
		}
	}
	return out
}

// mostRecentCompletion returns the completion time of the latest completed
// quest, falling back to its UpdatedAt when CompletedAt is missing. Only this
// single record drives the time-of-day achievements.
func mostRecentCompletion(completed []model.Quest) (time.Time, bool) {
	var (
		latest time.Time
		found  bool
	)
	for _, q := range completed {
		ts := q.UpdatedAt
		if q.CompletedAt != nil {
			ts = *q.CompletedAt
		}
		// Ties go to the later entry in the collection.
		if !found || !ts.Before(latest) {
			latest = ts
			found = true
		}
	}
	return latest, found
}

// Details looks up catalog metadata for id.
func Details(id string) (model.Achievement, bool) {
	for _, a := range model.Achievements {
		if a.ID == id {
			return a, true
		}
	}
	return model.Achievement{}, false
}

type Status struct {
	model.Achievement `yaml:",inline"`
	Earned            bool `json:"earned" yaml:"earned"`
}

// Progress lists the whole catalog with earned flags from the character.
// Ids unlocked through UnlockAchievement that are not in the catalog are
// appended at the end.
func Progress(st model.GameState) []Status {
	out := make([]Status, 0, len(model.Achievements))
	known := map[string]bool{}
	for _, a := range model.Achievements {
		known[a.ID] = true
		out = append(out, Status{Achievement: a, Earned: st.Character.HasAchievement(a.ID)})
	}
	for _, id := range st.Character.Achievements {
		if known[id] {
			continue
		}
		known[id] = true
		out = append(out, Status{Achievement: model.Achievement{ID: id, Name: id}, Earned: true})
	}
	return out
}
