package model

import (
	"fmt"
	"strings"
)

type PriorityInfo struct {
	Label string `json:"label"`
	XP    int    `json:"xp"`
	Emoji string `json:"emoji"`
	// Rank orders priorities for display; lower sorts first.
	Rank int `json:"-"`
}

type CategoryInfo struct {
	Label string `json:"label"`
	Emoji string `json:"emoji"`
	Rank  int    `json:"-"`
}

type CompanionInfo struct {
	Label string `json:"label"`
	Emoji string `json:"emoji"`
}

type Achievement struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Emoji       string `json:"emoji" yaml:"emoji"`
}

var Priorities = map[Priority]PriorityInfo{
	PrioritySlime:  {Label: "Easy", XP: 10, Emoji: "🟢", Rank: 2},
	PriorityGoblin: {Label: "Medium", XP: 25, Emoji: "🟡", Rank: 1},
	PriorityDragon: {Label: "Hard", XP: 50, Emoji: "🔴", Rank: 0},
}

var Categories = map[Category]CategoryInfo{
	CategoryKnight: {Label: "Tasks", Emoji: "⚔️", Rank: 0},
	CategoryMage:   {Label: "Ideas", Emoji: "✨", Rank: 1},
	CategoryBard:   {Label: "Journal", Emoji: "📜", Rank: 2},
	CategoryRogue:  {Label: "Secrets", Emoji: "🗝️", Rank: 3},
}

var Companions = map[Companion]CompanionInfo{
	CompanionCat:    {Label: "Pixel Cat", Emoji: "🐱"},
	CompanionDog:    {Label: "Quest Pup", Emoji: "🐕"},
	CompanionDragon: {Label: "Baby Dragon", Emoji: "🐲"},
	CompanionSlime:  {Label: "Friendly Slime", Emoji: "🟢"},
}

const (
	AchievementFirstQuest    = "first_quest"
	AchievementTenQuests     = "ten_quests"
	AchievementFiftyQuests   = "fifty_quests"
	AchievementHundredQuests = "hundred_quests"
	AchievementFirstDragon   = "first_dragon"
	AchievementFirstDungeon  = "first_dungeon"
	AchievementLevel5        = "level_5"
	AchievementLevel10       = "level_10"
	AchievementNightOwl      = "night_owl"
	AchievementEarlyBird     = "early_bird"
)

// Achievements is the catalog in display order.
var Achievements = []Achievement{
	{ID: AchievementFirstQuest, Name: "Humble Beginnings", Description: "Complete your first quest", Emoji: "🌟"},
	{ID: AchievementTenQuests, Name: "Adventurer", Description: "Complete 10 quests", Emoji: "⚔️"},
	{ID: AchievementFiftyQuests, Name: "Veteran", Description: "Complete 50 quests", Emoji: "🛡️"},
	{ID: AchievementHundredQuests, Name: "Legend", Description: "Complete 100 quests", Emoji: "👑"},
	{ID: AchievementFirstDragon, Name: "Dragon Slayer", Description: "Complete a dragon-tier quest", Emoji: "🐉"},
	{ID: AchievementFirstDungeon, Name: "Dungeon Master", Description: "Create your first dungeon", Emoji: "🏰"},
	{ID: AchievementLevel5, Name: "Rising Star", Description: "Reach level 5", Emoji: "⭐"},
	{ID: AchievementLevel10, Name: "Hero", Description: "Reach level 10", Emoji: "🦸"},
	{ID: AchievementNightOwl, Name: "Night Owl", Description: "Complete a quest after midnight", Emoji: "🦉"},
	{ID: AchievementEarlyBird, Name: "Early Bird", Description: "Complete a quest before 7 AM", Emoji: "🐦"},
}

// XPFor returns the experience granted for completing a quest of priority p.
// Unknown priorities grant nothing.
func XPFor(p Priority) int {
	return Priorities[p].XP
}

func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "slime", "easy", "low":
		return PrioritySlime, nil
	case "goblin", "medium", "med":
		return PriorityGoblin, nil
	case "dragon", "hard", "high":
		return PriorityDragon, nil
	default:
		return "", fmt.Errorf("invalid priority: %q (expected slime|goblin|dragon)", s)
	}
}

func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "knight", "task", "tasks":
		return CategoryKnight, nil
	case "mage", "idea", "ideas":
		return CategoryMage, nil
	case "bard", "journal":
		return CategoryBard, nil
	case "rogue", "secret", "secrets":
		return CategoryRogue, nil
	default:
		return "", fmt.Errorf("invalid category: %q (expected knight|mage|bard|rogue)", s)
	}
}

func ParseCompanion(s string) (Companion, error) {
	switch c := Companion(strings.ToLower(strings.TrimSpace(s))); c {
	case CompanionCat, CompanionDog, CompanionDragon, CompanionSlime:
		return c, nil
	default:
		return "", fmt.Errorf("invalid companion: %q (expected cat|dog|dragon|slime)", s)
	}
}
