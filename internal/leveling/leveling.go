// Package leveling maps accumulated experience to levels.
//
// Each level costs more than the last: stepping from level n to n+1 costs
// floor(BaseXP * GrowthRate^(n-1)). All functions are total over ints;
// negative input is treated as zero.
package leveling

import "math"

const (
	BaseXP     = 100
	GrowthRate = 1.5

	// MaxLevel caps CalculateLevel regardless of experience.
	MaxLevel = 99
)

// XPForLevel returns the experience required to advance from level to level+1.
func XPForLevel(level int) int {
	if level < 1 {
		return 0
	}
	f := math.Floor(BaseXP * math.Pow(GrowthRate, float64(level-1)))
	if f >= math.MaxInt64 {
		return math.MaxInt
	}
	return int(f)
}

// TotalXPForLevel returns the cumulative experience needed to reach level
// from level 1. TotalXPForLevel(1) == 0.
func TotalXPForLevel(level int) int {
	total := 0
	for i := 1; i < level; i++ {
		total = addSat(total, XPForLevel(i))
	}
	return total
}

// CalculateLevel returns the level reached with totalXP, capped at MaxLevel.
func CalculateLevel(totalXP int) int {
	totalXP = clampNonNeg(totalXP)

	level := 1
	needed := 0
	for level < MaxLevel {
		next := addSat(needed, XPForLevel(level))
		if next > totalXP {
			break
		}
		needed = next
		level++
	}
	return level
}

// LevelProgress returns how far totalXP is into the current level, as a
// percentage in [0, 100].
func LevelProgress(totalXP int) int {
	totalXP = clampNonNeg(totalXP)
	level := CalculateLevel(totalXP)
	step := XPForLevel(level)
	if step == 0 {
		return 100
	}
	into := totalXP - TotalXPForLevel(level)
	pct := int(math.Floor(float64(into) / float64(step) * 100))
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}

// XPToNextLevel returns the experience still missing for the next level.
func XPToNextLevel(totalXP int) int {
	totalXP = clampNonNeg(totalXP)
	level := CalculateLevel(totalXP)
	into := totalXP - TotalXPForLevel(level)
	return max(0, XPForLevel(level)-into)
}

// RankTitle names the tier a level belongs to.
func RankTitle(level int) string {
	switch {
	case level >= 50:
		return "Legendary Scribe"
	case level >= 40:
		return "Master Chronicler"
	case level >= 30:
		return "Grand Archivist"
	case level >= 25:
		return "Royal Scribe"
	case level >= 20:
		return "Elder Sage"
	case level >= 15:
		return "Wise Scholar"
	case level >= 10:
		return "Journeyman"
	case level >= 7:
		return "Apprentice"
	case level >= 5:
		return "Initiate"
	case level >= 3:
		return "Novice"
	default:
		return "Peasant"
	}
}

// Summary bundles the derived progression numbers for display.
type Summary struct {
	Level    int    `json:"level" yaml:"level"`
	XP       int    `json:"xp" yaml:"xp"`
	Progress int    `json:"progress" yaml:"progress"`
	ToNext   int    `json:"toNext" yaml:"toNext"`
	Rank     string `json:"rank" yaml:"rank"`
}

func Summarize(totalXP int) Summary {
	totalXP = clampNonNeg(totalXP)
	level := CalculateLevel(totalXP)
	return Summary{
		Level:    level,
		XP:       totalXP,
		Progress: LevelProgress(totalXP),
		ToNext:   XPToNextLevel(totalXP),
		Rank:     RankTitle(level),
	}
}

func clampNonNeg(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// addSat adds two non-negative ints, saturating at math.MaxInt.
func addSat(a, b int) int {
	if a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}
