package view

import (
	"time"

	"questnotes/internal/model"
)

type Mood string

const (
	MoodIdle     Mood = "idle"
	MoodHappy    Mood = "happy"
	MoodSleeping Mood = "sleeping"
	MoodWorried  Mood = "worried"
)

const worriedDragonThreshold = 3

var moodMessages = map[Mood][]string{
	MoodIdle:     {"Ready for adventure!", "What quest awaits?", "Let's do this!", "*bounces excitedly*"},
	MoodHappy:    {"Great job, hero!", "Quest complete! ★", "You're amazing!", "*happy dance*"},
	MoodSleeping: {"Zzz... *snore*", "*yawns* ...back yet?", "Waiting for you...", "*sleepy eyes*"},
	MoodWorried:  {"So many quests...", "Need help, hero?", "*nervous bouncing*", "Dragons everywhere!"},
}

// CompanionMood reacts to the player's recent activity.
func CompanionMood(st model.GameState, now time.Time) Mood {
	openDragons := 0
	for _, q := range st.Quests {
		if !q.Completed && q.Priority == model.PriorityDragon {
			openDragons++
		}
	}
	if openDragons > worriedDragonThreshold {
		return MoodWorried
	}

	var last time.Time
	for _, q := range st.Quests {
		if q.Completed && q.CompletedAt != nil && q.CompletedAt.After(last) {
			last = *q.CompletedAt
		}
	}
	if last.IsZero() {
		return MoodIdle
	}

	since := now.Sub(last)
	switch {
	case since > 24*time.Hour:
		return MoodSleeping
	case since < time.Hour:
		return MoodHappy
	}
	return MoodIdle
}

// MoodMessage picks one of the mood's lines; n selects which, so callers can
// rotate through them.
func MoodMessage(m Mood, n int) string {
	lines, ok := moodMessages[m]
	if !ok {
		lines = moodMessages[MoodIdle]
	}
	return lines[((n%len(lines))+len(lines))%len(lines)]
}
