package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"questnotes/internal/model"
)

// savedAtLayout is ISO-8601 with milliseconds in UTC.
const savedAtLayout = "2006-01-02T15:04:05.000Z07:00"

type Envelope struct {
	Version int             `json:"version"`
	Data    json.RawMessage `json:"data"`
	SavedAt string          `json:"savedAt"`
}

func encodeEnvelope(st model.GameState, now time.Time) ([]byte, error) {
	data, err := json.Marshal(st)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{
		Version: SaveVersion,
		Data:    data,
		SavedAt: now.UTC().Format(savedAtLayout),
	})
}

// parseEnvelope checks the shape of a stored or imported save: a JSON object
// whose data.quests is an array, and, when requireDungeons is set, whose
// data.dungeons is an array too.
func parseEnvelope(b []byte, requireDungeons bool) (*Envelope, error) {
	if len(bytes.TrimSpace(b)) == 0 {
		return nil, errors.New("empty input")
	}
	var env Envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, fmt.Errorf("not a save envelope: %w", err)
	}
	var data map[string]json.RawMessage
	if len(env.Data) == 0 || json.Unmarshal(env.Data, &data) != nil || data == nil {
		return nil, errors.New("missing data object")
	}
	if !isArray(data["quests"]) {
		return nil, errors.New("data.quests must be an array")
	}
	if requireDungeons && !isArray(data["dungeons"]) {
		return nil, errors.New("data.dungeons must be an array")
	}
	return &env, nil
}

func isArray(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '['
}

func (e Envelope) savedAtOr(fallback time.Time) time.Time {
	if t, err := time.Parse(time.RFC3339Nano, e.SavedAt); err == nil {
		return t
	}
	return fallback
}
