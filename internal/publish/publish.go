// Package publish writes the quest log as plain markdown files.
package publish

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"questnotes/internal/model"
	"questnotes/internal/store"
)

type WriteOptions struct {
	IncludeCompleted bool
	Overwrite        bool
}

type WriteResult struct {
	Written []string `json:"written" yaml:"written"`
}

// WriteQuest writes <toDir>/quests/<id>.md.
func WriteQuest(st model.GameState, questID string, toDir string, opt WriteOptions) (WriteResult, error) {
	questID = strings.TrimSpace(questID)
	if questID == "" {
		return WriteResult{}, errors.New("missing quest id")
	}
	toDir = strings.TrimSpace(toDir)
	if toDir == "" {
		return WriteResult{}, errors.New("missing --to")
	}
	toDir = filepath.Clean(toDir)

	md, err := RenderQuestMarkdown(st, questID, RenderOptions{IncludeCompleted: opt.IncludeCompleted})
	if err != nil {
		return WriteResult{}, err
	}
	p := filepath.Join(toDir, "quests", questID+".md")
	if err := writeFile(p, []byte(md), opt.Overwrite); err != nil {
		return WriteResult{}, err
	}
	return WriteResult{Written: []string{p}}, nil
}

// WriteLog writes <toDir>/index.md and one page per quest under
// <toDir>/quests. It stops on the first error.
func WriteLog(st model.GameState, toDir string, opt WriteOptions) (WriteResult, error) {
	toDir = strings.TrimSpace(toDir)
	if toDir == "" {
		return WriteResult{}, errors.New("missing --to")
	}
	toDir = filepath.Clean(toDir)
	ropt := RenderOptions{IncludeCompleted: opt.IncludeCompleted}

	indexPath := filepath.Join(toDir, "index.md")
	if err := writeFile(indexPath, []byte(RenderLogIndexMarkdown(st, ropt)), opt.Overwrite); err != nil {
		return WriteResult{}, err
	}

	written := []string{indexPath}
	for _, q := range st.Quests {
		if q.Completed && !opt.IncludeCompleted {
			continue
		}
		md, err := RenderQuestMarkdown(st, q.ID, ropt)
		if err != nil {
			return WriteResult{}, err
		}
		p := filepath.Join(toDir, "quests", q.ID+".md")
		if err := writeFile(p, []byte(md), opt.Overwrite); err != nil {
			return WriteResult{}, err
		}
		written = append(written, p)
	}

	return WriteResult{Written: written}, nil
}

func writeFile(path string, b []byte, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.New("file exists (use --overwrite): " + path)
		}
	}
	return store.WriteFileAtomic(path, b, 0o644)
}
