// Package store persists the game state as a versioned JSON envelope
// ({version, data, savedAt}) under a single storage key.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"questnotes/internal/model"
)

const (
	// SaveVersion is the envelope version written by this build.
	SaveVersion = 1
	DefaultKey  = "questnotes_save"
)

var (
	ErrCorrupted     = errors.New("saved game is corrupted")
	ErrInvalidBackup = errors.New("invalid backup")
)

// Backend stores raw envelope bytes by key. Get returns (nil, nil) when the
// key is absent.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, rec Record) error
	Delete(ctx context.Context, key string) error
}

// Record is one stored envelope plus the columns indexed beside it.
type Record struct {
	Envelope []byte
	Version  int
	SavedAt  time.Time
}

// Gateway implements load/save/export/import/clear over a Backend.
type Gateway struct {
	backend Backend
	key     string
	log     *zap.Logger
	now     func() time.Time
}

type Option func(*Gateway)

func WithKey(key string) Option {
	return func(g *Gateway) {
		if k := strings.TrimSpace(key); k != "" {
			g.key = k
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(g *Gateway) {
		if l != nil {
			g.log = l
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(g *Gateway) {
		if now != nil {
			g.now = now
		}
	}
}

func New(b Backend, opts ...Option) *Gateway {
	g := &Gateway{backend: b, key: DefaultKey, log: zap.NewNop(), now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Open returns a gateway over the SQLite database in dir.
func Open(dir string, opts ...Option) *Gateway {
	return New(&SQLite{Dir: dir}, opts...)
}

// NewMemory returns a gateway that keeps everything in memory.
func NewMemory(opts ...Option) *Gateway {
	return New(&Memory{}, opts...)
}

func (g *Gateway) Key() string { return g.key }

// Save writes st under the storage key.
func (g *Gateway) Save(ctx context.Context, st model.GameState) error {
	now := g.now().UTC()
	b, err := encodeEnvelope(st, now)
	if err != nil {
		return fmt.Errorf("encode save: %w", err)
	}
	if err := g.backend.Put(ctx, g.key, Record{Envelope: b, Version: SaveVersion, SavedAt: now}); err != nil {
		return fmt.Errorf("write save: %w", err)
	}
	return nil
}

// Load returns the stored state, (nil, nil) when nothing is stored, or
// ErrCorrupted when the stored bytes do not look like a save.
func (g *Gateway) Load(ctx context.Context) (*model.GameState, error) {
	b, err := g.backend.Get(ctx, g.key)
	if err != nil {
		return nil, fmt.Errorf("read save: %w", err)
	}
	if b == nil {
		return nil, nil
	}

	env, err := parseEnvelope(b, true)
	if err != nil {
		g.log.Warn("stored save failed validation", zap.String("key", g.key), zap.Error(err))
		return nil, ErrCorrupted
	}
	if env.Version != SaveVersion {
		g.log.Warn("save version mismatch; loading anyway",
			zap.Int("stored", env.Version), zap.Int("expected", SaveVersion))
	}

	var st model.GameState
	if err := json.Unmarshal(env.Data, &st); err != nil {
		g.log.Warn("stored save could not be decoded", zap.String("key", g.key), zap.Error(err))
		return nil, ErrCorrupted
	}
	return &st, nil
}

// Export returns the stored envelope bytes unmodified, or nil when nothing
// is stored.
func (g *Gateway) Export(ctx context.Context) ([]byte, error) {
	b, err := g.backend.Get(ctx, g.key)
	if err != nil {
		return nil, fmt.Errorf("read save: %w", err)
	}
	return b, nil
}

// Import stores b verbatim after checking it has the shape Load accepts.
// Invalid input returns an error wrapping ErrInvalidBackup and leaves
// storage as it was.
func (g *Gateway) Import(ctx context.Context, b []byte) error {
	env, err := parseEnvelope(b, true)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	if env.Version != SaveVersion {
		g.log.Warn("importing backup from a different save version",
			zap.Int("backup", env.Version), zap.Int("expected", SaveVersion))
	}
	rec := Record{Envelope: append([]byte(nil), b...), Version: env.Version, SavedAt: env.savedAtOr(g.now().UTC())}
	if err := g.backend.Put(ctx, g.key, rec); err != nil {
		return fmt.Errorf("write save: %w", err)
	}
	return nil
}

// Clear deletes the stored save.
func (g *Gateway) Clear(ctx context.Context) error {
	if err := g.backend.Delete(ctx, g.key); err != nil {
		return fmt.Errorf("clear save: %w", err)
	}
	return nil
}
