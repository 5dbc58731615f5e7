package game

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"questnotes/internal/model"
)

// Gateway persists snapshots of the game state.
//
// Load returns (nil, nil) when nothing has been saved yet; any error means
// the stored data is unusable and the caller should start fresh.
type Gateway interface {
	Load(ctx context.Context) (*model.GameState, error)
	Save(ctx context.Context, st model.GameState) error
}

// Engine owns the single current-state cell. Dispatches are serialized so
// concurrent callers observe one state evolution path, and every transition
// that changes state is persisted afterwards. Save failures are logged and
// kept for diagnostics; they never reach the dispatcher.
type Engine struct {
	mu      sync.Mutex
	state   model.GameState
	reducer *Reducer
	gw      Gateway
	saver   *DebouncedSaver
	log     *zap.Logger

	errMu   sync.Mutex
	saveErr error
}

type EngineOption func(*Engine)

func WithLogger(l *zap.Logger) EngineOption {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

func WithReducer(r Reducer) EngineOption {
	return func(e *Engine) { e.reducer = &r }
}

// WithDebouncedSave persists in the background, coalescing transitions
// that happen within d of each other. Call Flush before exiting.
func WithDebouncedSave(d time.Duration) EngineOption {
	return func(e *Engine) {
		if e.gw == nil {
			return
		}
		e.saver = NewDebouncedSaver(e.gw, d, e.recordSave)
	}
}

func newEngine(st model.GameState, gw Gateway, opts ...EngineOption) *Engine {
	e := &Engine{
		state: st,
		gw:    gw,
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.reducer == nil {
		r := NewReducer(WithReducerLogger(e.log))
		e.reducer = &r
	}
	return e
}

// New returns an engine starting from st.
func New(st model.GameState, gw Gateway, opts ...EngineOption) *Engine {
	return newEngine(normalize(st.Clone()), gw, opts...)
}

// Open loads the saved state from gw, falling back to the initial state when
// nothing is stored or the stored data is unusable.
func Open(ctx context.Context, gw Gateway, opts ...EngineOption) *Engine {
	e := newEngine(model.InitialState(), gw, opts...)
	if gw == nil {
		return e
	}
	st, err := gw.Load(ctx)
	switch {
	case err != nil:
		e.log.Warn("stored game unusable; starting a new game", zap.Error(err))
	case st == nil:
		e.log.Debug("no saved game; starting a new game")
	default:
		e.state = e.reducer.Apply(e.state, LoadState{State: *st})
	}
	return e
}

// State returns a copy of the current state.
func (e *Engine) State() model.GameState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone()
}

// Dispatch applies a to the current state, replaces it, and persists the
// result. It returns a copy of the new state and what changed.
func (e *Engine) Dispatch(ctx context.Context, a Action) (model.GameState, Outcome) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dispatchLocked(ctx, a)
}

// DispatchWith builds the action from the current state and applies it in
// one step, so no other dispatch can run in between.
func (e *Engine) DispatchWith(ctx context.Context, build func(model.GameState) Action) (model.GameState, Outcome) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dispatchLocked(ctx, build(e.state.Clone()))
}

func (e *Engine) dispatchLocked(ctx context.Context, a Action) (model.GameState, Outcome) {
	before := e.state
	next, changed := e.reducer.Step(before, a)
	e.state = next

	out := Diff(before, next)
	out.Changed = changed
	if a != nil {
		out.Action = a.Kind()
	}
	if changed {
		e.persist(ctx, next)
	}
	return next.Clone(), out
}

func (e *Engine) persist(ctx context.Context, st model.GameState) {
	if e.gw == nil {
		return
	}
	if e.saver != nil {
		e.saver.Notify(st)
		return
	}
	e.recordSave(e.gw.Save(ctx, st))
}

func (e *Engine) recordSave(err error) {
	if err != nil {
		e.log.Error("failed to save game state", zap.Error(err))
	}
	e.errMu.Lock()
	e.saveErr = err
	e.errMu.Unlock()
}

// SaveErr returns the result of the most recent save attempt.
func (e *Engine) SaveErr() error {
	e.errMu.Lock()
	defer e.errMu.Unlock()
	return e.saveErr
}

// Flush writes any state still pending in the background saver.
func (e *Engine) Flush(ctx context.Context) error {
	if e.saver == nil {
		return e.SaveErr()
	}
	if err := e.saver.Flush(ctx); err != nil {
		return err
	}
	return e.SaveErr()
}
