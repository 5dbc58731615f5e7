package cli

import (
	"fmt"
	"strings"

	"questnotes/internal/model"
)

// NotFoundError reports a quest or dungeon reference that matched nothing.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

func errNotFound(kind, id string) error {
	return NotFoundError{Kind: kind, ID: id}
}

type ambiguousError struct {
	kind    string
	ref     string
	matches []string
}

func (e ambiguousError) Error() string {
	return fmt.Sprintf("%s reference %q is ambiguous: %s", e.kind, e.ref, strings.Join(e.matches, ", "))
}

// resolveQuest finds a quest by exact id or unique id prefix.
func resolveQuest(st model.GameState, ref string) (model.Quest, error) {
	ref = strings.TrimSpace(ref)
	if q, _, ok := st.FindQuest(ref); ok {
		return q, nil
	}
	var hits []model.Quest
	if ref != "" {
		for _, q := range st.Quests {
			if strings.HasPrefix(q.ID, ref) {
				hits = append(hits, q)
			}
		}
	}
	switch len(hits) {
	case 0:
		return model.Quest{}, errNotFound("quest", ref)
	case 1:
		return hits[0], nil
	}
	ids := make([]string, 0, len(hits))
	for _, q := range hits {
		ids = append(ids, q.ID)
	}
	return model.Quest{}, ambiguousError{kind: "quest", ref: ref, matches: ids}
}

// resolveDungeon finds a dungeon by exact id, unique id prefix, or
// case-insensitive name.
func resolveDungeon(st model.GameState, ref string) (model.Dungeon, error) {
	ref = strings.TrimSpace(ref)
	if d, _, ok := st.FindDungeon(ref); ok {
		return d, nil
	}
	var hits []model.Dungeon
	if ref != "" {
		for _, d := range st.Dungeons {
			if strings.HasPrefix(d.ID, ref) || strings.EqualFold(d.Name, ref) {
				hits = append(hits, d)
			}
		}
	}
	switch len(hits) {
	case 0:
		return model.Dungeon{}, errNotFound("dungeon", ref)
	case 1:
		return hits[0], nil
	}
	ids := make([]string, 0, len(hits))
	for _, d := range hits {
		ids = append(ids, d.ID)
	}
	return model.Dungeon{}, ambiguousError{kind: "dungeon", ref: ref, matches: ids}
}

// resolveSelection maps "all", "wilderness", or a dungeon reference to a
// selection value.
func resolveSelection(st model.GameState, ref string) (*string, error) {
	switch strings.ToLower(strings.TrimSpace(ref)) {
	case "", "all":
		return nil, nil
	case model.WildernessID:
		return model.Ptr(model.WildernessID), nil
	}
	d, err := resolveDungeon(st, ref)
	if err != nil {
		return nil, err
	}
	return model.Ptr(d.ID), nil
}
