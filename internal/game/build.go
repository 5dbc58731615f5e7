package game

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"questnotes/internal/model"
)

// QuestDraft is user input for a new quest. Zero priority and category fall
// back to slime and knight.
type QuestDraft struct {
	Title     string
	Content   string
	Priority  model.Priority
	Category  model.Category
	DungeonID *string
}

// NewQuest builds a validated, open quest with a fresh id.
func NewQuest(d QuestDraft, now time.Time) (model.Quest, error) {
	q := model.Quest{
		ID:        uuid.NewString(),
		Title:     strings.TrimSpace(d.Title),
		Content:   d.Content,
		Priority:  d.Priority,
		Category:  d.Category,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if q.Priority == "" {
		q.Priority = model.PrioritySlime
	}
	if q.Category == "" {
		q.Category = model.CategoryKnight
	}
	if d.DungeonID != nil && *d.DungeonID != model.WildernessID {
		id := *d.DungeonID
		q.DungeonID = &id
	}
	if err := model.Validate(q); err != nil {
		return model.Quest{}, err
	}
	return q, nil
}

// NewDungeon builds a validated dungeon with a fresh id.
func NewDungeon(name, icon string, now time.Time) (model.Dungeon, error) {
	d := model.Dungeon{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(name),
		Icon:      strings.TrimSpace(icon),
		CreatedAt: now,
	}
	if d.Icon == "" {
		d.Icon = "🏰"
	}
	if err := model.Validate(d); err != nil {
		return model.Dungeon{}, err
	}
	return d, nil
}
