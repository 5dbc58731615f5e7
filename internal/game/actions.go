package game

import "questnotes/internal/model"

// Action is a request to change the game state. Kind names the action for
// logs and CLI output.
type Action interface {
	Kind() string
}

type AddQuest struct{ Quest model.Quest }
type UpdateQuest struct{ Quest model.Quest }
type DeleteQuest struct{ ID string }
type CompleteQuest struct{ ID string }
type UncompleteQuest struct{ ID string }

type AddDungeon struct{ Dungeon model.Dungeon }
type UpdateDungeon struct{ Dungeon model.Dungeon }
type DeleteDungeon struct{ ID string }

// SelectDungeon sets the quest filter: nil for all quests,
// model.WildernessID for unfiled quests, or a dungeon id.
type SelectDungeon struct{ Selection *string }

// AddXP grants (or, when negative, removes) experience not tied to a quest.
type AddXP struct{ Amount int }

type UnlockAchievement struct{ ID string }
type SetCompanion struct{ Companion model.Companion }
type SetCharacterName struct{ Name string }
type ToggleSound struct{}

// LoadState replaces the whole state, typically after reading it from storage.
type LoadState struct{ State model.GameState }

// ResetGame replaces the state with model.InitialState.
type ResetGame struct{}

func (AddQuest) Kind() string          { return "quest.add" }
func (UpdateQuest) Kind() string       { return "quest.update" }
func (DeleteQuest) Kind() string       { return "quest.delete" }
func (CompleteQuest) Kind() string     { return "quest.complete" }
func (UncompleteQuest) Kind() string   { return "quest.uncomplete" }
func (AddDungeon) Kind() string        { return "dungeon.add" }
func (UpdateDungeon) Kind() string     { return "dungeon.update" }
func (DeleteDungeon) Kind() string     { return "dungeon.delete" }
func (SelectDungeon) Kind() string     { return "dungeon.select" }
func (AddXP) Kind() string             { return "character.add_xp" }
func (UnlockAchievement) Kind() string { return "character.unlock_achievement" }
func (SetCompanion) Kind() string      { return "character.set_companion" }
func (SetCharacterName) Kind() string  { return "character.set_name" }
func (ToggleSound) Kind() string       { return "settings.toggle_sound" }
func (LoadState) Kind() string         { return "state.load" }
func (ResetGame) Kind() string         { return "state.reset" }
