// Package view holds read-only queries front ends use to present a game
// state: filtering by dungeon and status, sorting, counts, and the
// companion's mood.
package view

import (
	"fmt"
	"slices"
	"strings"

	"questnotes/internal/model"
)

type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusActive    StatusFilter = "active"
	StatusCompleted StatusFilter = "completed"
)

type SortOrder string

const (
	SortNewest   SortOrder = "newest"
	SortOldest   SortOrder = "oldest"
	SortPriority SortOrder = "priority"
	SortCategory SortOrder = "category"
)

// SortOrders lists the orders in the sequence a front end cycles through them.
var SortOrders = []SortOrder{SortNewest, SortOldest, SortPriority, SortCategory}

func ParseStatusFilter(s string) (StatusFilter, error) {
	switch f := StatusFilter(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return StatusAll, nil
	case StatusAll, StatusActive, StatusCompleted:
		return f, nil
	}
	return "", fmt.Errorf("invalid status filter %q (expected all, active or completed)", s)
}

func ParseSortOrder(s string) (SortOrder, error) {
	o := SortOrder(strings.ToLower(strings.TrimSpace(s)))
	if o == "" {
		return SortNewest, nil
	}
	if slices.Contains(SortOrders, o) {
		return o, nil
	}
	return "", fmt.Errorf("invalid sort order %q (expected newest, oldest, priority or category)", s)
}

// Next returns the order after o, wrapping around.
func (o SortOrder) Next() SortOrder {
	i := slices.Index(SortOrders, o)
	return SortOrders[(i+1)%len(SortOrders)]
}

// BySelection returns the quests visible under sel: every quest for nil,
// unfiled quests for model.WildernessID, otherwise the quests of one dungeon.
func BySelection(st model.GameState, sel *string) []model.Quest {
	if sel == nil {
		return slices.Clone(st.Quests)
	}
	out := []model.Quest{}
	for _, q := range st.Quests {
		switch {
		case *sel == model.WildernessID && q.DungeonID == nil:
			out = append(out, q)
		case q.InDungeon(*sel):
			out = append(out, q)
		}
	}
	return out
}

func ByStatus(quests []model.Quest, f StatusFilter) []model.Quest {
	out := []model.Quest{}
	for _, q := range quests {
		switch f {
		case StatusActive:
			if q.Completed {
				continue
			}
		case StatusCompleted:
			if !q.Completed {
				continue
			}
		}
		out = append(out, q)
	}
	return out
}

// Sort returns a sorted copy. Completed quests always sink below open ones;
// ties keep their collection order.
func Sort(quests []model.Quest, order SortOrder) []model.Quest {
	out := slices.Clone(quests)
	slices.SortStableFunc(out, func(a, b model.Quest) int {
		if a.Completed != b.Completed {
			if a.Completed {
				return 1
			}
			return -1
		}
		switch order {
		case SortOldest:
			return a.CreatedAt.Compare(b.CreatedAt)
		case SortPriority:
			return model.Priorities[a.Priority].Rank - model.Priorities[b.Priority].Rank
		case SortCategory:
			return model.Categories[a.Category].Rank - model.Categories[b.Category].Rank
		default:
			return b.CreatedAt.Compare(a.CreatedAt)
		}
	})
	return out
}

// QuestCounts holds the number of open quests under each selection.
type QuestCounts struct {
	All        int            `json:"all" yaml:"all"`
	Wilderness int            `json:"wilderness" yaml:"wilderness"`
	Dungeons   map[string]int `json:"dungeons" yaml:"dungeons"`
}

func Counts(st model.GameState) QuestCounts {
	c := QuestCounts{Dungeons: make(map[string]int, len(st.Dungeons))}
	for _, d := range st.Dungeons {
		c.Dungeons[d.ID] = 0
	}
	for _, q := range st.Quests {
		if q.Completed {
			continue
		}
		c.All++
		if q.DungeonID == nil {
			c.Wilderness++
			continue
		}
		if _, ok := c.Dungeons[*q.DungeonID]; ok {
			c.Dungeons[*q.DungeonID]++
		}
	}
	return c
}

// SelectionLabel names sel for headings.
func SelectionLabel(st model.GameState, sel *string) string {
	switch {
	case sel == nil:
		return "All Quests"
	case *sel == model.WildernessID:
		return "Wilderness"
	}
	if d, _, ok := st.FindDungeon(*sel); ok {
		return strings.TrimSpace(d.Icon + " " + d.Name)
	}
	return *sel
}
