package game

import "questnotes/internal/model"

// Outcome describes what a transition did to the character, for front ends
// that announce level-ups and unlocks.
type Outcome struct {
	Action          string   `json:"action" yaml:"action"`
	Changed         bool     `json:"changed" yaml:"changed"`
	XPDelta         int      `json:"xpDelta" yaml:"xpDelta"`
	LevelBefore     int      `json:"levelBefore" yaml:"levelBefore"`
	LevelAfter      int      `json:"levelAfter" yaml:"levelAfter"`
	LevelUp         bool     `json:"levelUp" yaml:"levelUp"`
	NewAchievements []string `json:"newAchievements,omitempty" yaml:"newAchievements,omitempty"`
}

// Diff compares the character before and after a transition.
func Diff(before, after model.GameState) Outcome {
	out := Outcome{
		XPDelta:     after.Character.XP - before.Character.XP,
		LevelBefore: before.Character.Level,
		LevelAfter:  after.Character.Level,
	}
	out.LevelUp = out.LevelAfter > out.LevelBefore
	for _, id := range after.Character.Achievements {
		if !before.Character.HasAchievement(id) {
			out.NewAchievements = append(out.NewAchievements, id)
		}
	}
	return out
}
