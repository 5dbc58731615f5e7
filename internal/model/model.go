package model

import "time"

type Priority string

const (
	PrioritySlime  Priority = "slime"
	PriorityGoblin Priority = "goblin"
	PriorityDragon Priority = "dragon"
)

type Category string

const (
	CategoryKnight Category = "knight"
	CategoryMage   Category = "mage"
	CategoryBard   Category = "bard"
	CategoryRogue  Category = "rogue"
)

type Companion string

const (
	CompanionCat    Companion = "cat"
	CompanionDog    Companion = "dog"
	CompanionDragon Companion = "dragon"
	CompanionSlime  Companion = "slime"
)

// WildernessID is the selection sentinel for quests that belong to no dungeon.
const WildernessID = "wilderness"

type Quest struct {
	ID        string   `json:"id" yaml:"id"`
	Title     string   `json:"title" yaml:"title" validate:"required,max=200"`
	Content   string   `json:"content" yaml:"content"`
	DungeonID *string  `json:"dungeonId" yaml:"dungeonId"`
	Priority  Priority `json:"priority" yaml:"priority" validate:"required,oneof=slime goblin dragon"`
	Category  Category `json:"category" yaml:"category" validate:"required,oneof=knight mage bard rogue"`
	Completed bool     `json:"completed" yaml:"completed"`

	// CompletedAt is set iff Completed is true.
	CompletedAt *time.Time `json:"completedAt" yaml:"completedAt"`
	CreatedAt   time.Time  `json:"createdAt" yaml:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt" yaml:"updatedAt"`
}

// InDungeon reports whether q is filed under dungeonID.
func (q Quest) InDungeon(dungeonID string) bool {
	return q.DungeonID != nil && *q.DungeonID == dungeonID
}

type Dungeon struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name" validate:"required,max=60"`
	Icon      string    `json:"icon" yaml:"icon"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
}

type Character struct {
	Name  string `json:"name" yaml:"name" validate:"required,max=40"`
	Level int    `json:"level" yaml:"level"`
	XP    int    `json:"xp" yaml:"xp"`

	Companion       Companion `json:"companion" yaml:"companion" validate:"oneof=cat dog dragon slime"`
	CompletedQuests int       `json:"completedQuests" yaml:"completedQuests"`
	Achievements    []string  `json:"achievements" yaml:"achievements"`
}

// HasAchievement reports whether id is already unlocked.
func (c Character) HasAchievement(id string) bool {
	for _, a := range c.Achievements {
		if a == id {
			return true
		}
	}
	return false
}

type GameState struct {
	Quests    []Quest   `json:"quests" yaml:"quests"`
	Dungeons  []Dungeon `json:"dungeons" yaml:"dungeons"`
	Character Character `json:"character" yaml:"character"`

	// SelectedDungeonID is nil for "all", WildernessID for unfiled quests,
	// or a dungeon id.
	SelectedDungeonID *string `json:"selectedDungeonId" yaml:"selectedDungeonId"`
	SoundEnabled      bool    `json:"soundEnabled" yaml:"soundEnabled"`
}

func DefaultCharacter() Character {
	return Character{
		Name:         "Adventurer",
		Level:        1,
		XP:           0,
		Companion:    CompanionSlime,
		Achievements: []string{},
	}
}

// InitialState is the canonical empty game.
func InitialState() GameState {
	return GameState{
		Quests:       []Quest{},
		Dungeons:     []Dungeon{},
		Character:    DefaultCharacter(),
		SoundEnabled: true,
	}
}

func (s GameState) FindQuest(id string) (Quest, int, bool) {
	for i := range s.Quests {
		if s.Quests[i].ID == id {
			return s.Quests[i], i, true
		}
	}
	return Quest{}, -1, false
}

func (s GameState) FindDungeon(id string) (Dungeon, int, bool) {
	for i := range s.Dungeons {
		if s.Dungeons[i].ID == id {
			return s.Dungeons[i], i, true
		}
	}
	return Dungeon{}, -1, false
}

// CompletedQuests returns completed quests in collection order.
func (s GameState) CompletedQuests() []Quest {
	var out []Quest
	for _, q := range s.Quests {
		if q.Completed {
			out = append(out, q)
		}
	}
	return out
}

// Clone returns a deep copy; the reducer never shares slices or pointers
// with the state it was given.
func (s GameState) Clone() GameState {
	out := s
	out.Quests = make([]Quest, len(s.Quests))
	for i, q := range s.Quests {
		out.Quests[i] = q.Clone()
	}
	out.Dungeons = append([]Dungeon(nil), s.Dungeons...)
	if out.Dungeons == nil {
		out.Dungeons = []Dungeon{}
	}
	out.Character.Achievements = append([]string{}, s.Character.Achievements...)
	out.SelectedDungeonID = clonePtr(s.SelectedDungeonID)
	return out
}

func (q Quest) Clone() Quest {
	out := q
	out.DungeonID = clonePtr(q.DungeonID)
	out.CompletedAt = clonePtr(q.CompletedAt)
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Ptr is a small helper for optional fields.
func Ptr[T any](v T) *T { return &v }
