package game

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"questnotes/internal/model"
)

type fakeGateway struct {
	mu      sync.Mutex
	loaded  *model.GameState
	loadErr error
	saveErr error
	saves   []model.GameState
}

func (g *fakeGateway) Load(context.Context) (*model.GameState, error) {
	if g.loadErr != nil {
		return nil, g.loadErr
	}
	if g.loaded == nil {
		return nil, nil
	}
	st := g.loaded.Clone()
	return &st, nil
}

func (g *fakeGateway) Save(_ context.Context, st model.GameState) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.saveErr != nil {
		return g.saveErr
	}
	g.saves = append(g.saves, st.Clone())
	return nil
}

func (g *fakeGateway) saveCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.saves)
}

func (g *fakeGateway) last() model.GameState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.saves[len(g.saves)-1]
}

func TestOpenFallsBackToInitialState(t *testing.T) {
	ctx := context.Background()

	e := Open(ctx, &fakeGateway{})
	require.Equal(t, model.InitialState(), e.State())

	core, logs := observer.New(zap.WarnLevel)
	e = Open(ctx, &fakeGateway{loadErr: errors.New("corrupted")}, WithLogger(zap.New(core)))
	require.Equal(t, model.InitialState(), e.State())
	require.Equal(t, 1, logs.Len())
}

func TestOpenNormalizesLoadedState(t *testing.T) {
	saved := model.InitialState()
	saved.Character.XP = 250
	saved.Character.Level = 1

	e := Open(context.Background(), &fakeGateway{loaded: &saved})
	require.Equal(t, 3, e.State().Character.Level)
}

func TestDispatchPersistsOnlyChanges(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{}
	e := Open(ctx, gw, WithReducer(fixedReducer()))

	st, out := e.Dispatch(ctx, AddQuest{Quest: newQuest("q1", model.PriorityDragon)})
	require.True(t, out.Changed)
	require.Equal(t, "quest.add", out.Action)
	require.Len(t, st.Quests, 1)
	require.Equal(t, 1, gw.saveCount())

	_, out = e.Dispatch(ctx, CompleteQuest{ID: "missing"})
	require.False(t, out.Changed)
	require.Equal(t, 1, gw.saveCount())

	_, out = e.Dispatch(ctx, CompleteQuest{ID: "q1"})
	require.True(t, out.Changed)
	require.Equal(t, 50, out.XPDelta)
	require.Equal(t, 2, gw.saveCount())
	require.Equal(t, 50, gw.last().Character.XP)
	require.NoError(t, e.SaveErr())
}

func TestDispatchSwallowsSaveErrors(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zap.ErrorLevel)
	gw := &fakeGateway{saveErr: errors.New("disk full")}
	e := Open(ctx, gw, WithLogger(zap.New(core)))

	st, out := e.Dispatch(ctx, AddXP{Amount: 10})
	require.True(t, out.Changed)
	require.Equal(t, 10, st.Character.XP)
	require.Equal(t, 10, e.State().Character.XP)
	require.EqualError(t, e.SaveErr(), "disk full")
	require.Equal(t, 1, logs.Len())
}

func TestStateReturnsCopy(t *testing.T) {
	ctx := context.Background()
	e := New(model.InitialState(), nil)
	e.Dispatch(ctx, AddQuest{Quest: newQuest("q1", model.PrioritySlime)})

	st := e.State()
	st.Quests[0].Title = "changed"
	st.Character.Achievements = append(st.Character.Achievements, "x")

	again := e.State()
	require.Equal(t, "quest q1", again.Quests[0].Title)
	require.Empty(t, again.Character.Achievements)
}

func TestConcurrentDispatchIsSerialized(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{}
	e := Open(ctx, gw)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e.Dispatch(ctx, AddXP{Amount: 10})
		}()
	}
	wg.Wait()

	st := e.State()
	require.Equal(t, 500, st.Character.XP)
	require.Equal(t, 50, gw.saveCount())
	require.Equal(t, 500, gw.last().Character.XP)
}

func TestDebouncedSaveCoalesces(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{}
	e := Open(ctx, gw, WithDebouncedSave(time.Hour))

	for i := 0; i < 5; i++ {
		e.Dispatch(ctx, AddXP{Amount: 10})
	}
	require.Equal(t, 0, gw.saveCount())

	require.NoError(t, e.Flush(ctx))
	require.Equal(t, 1, gw.saveCount())
	require.Equal(t, 50, gw.last().Character.XP)

	require.NoError(t, e.Flush(ctx))
	require.Equal(t, 1, gw.saveCount())
}

func TestWithLoggerReportsNoOpTransitions(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zap.DebugLevel)
	e := New(model.InitialState(), nil, WithLogger(zap.New(core)))

	_, out := e.Dispatch(ctx, CompleteQuest{ID: "missing"})
	require.False(t, out.Changed)

	entries := logs.FilterMessage("no-op transition").All()
	require.Len(t, entries, 1)
	require.Equal(t, "quest.complete", entries[0].ContextMap()["action"])
}

func TestWithReducerKeepsCustomReducer(t *testing.T) {
	ctx := context.Background()
	e := New(model.InitialState(), nil, WithReducer(fixedReducer()))
	e.Dispatch(ctx, AddQuest{Quest: newQuest("q1", model.PrioritySlime)})

	st, _ := e.Dispatch(ctx, CompleteQuest{ID: "q1"})
	require.Equal(t, noon, *st.Quests[0].CompletedAt)
}

func TestDispatchWithSeesEarlierDispatches(t *testing.T) {
	ctx := context.Background()
	e := New(model.InitialState(), nil)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e.DispatchWith(ctx, func(st model.GameState) Action {
				return AddXP{Amount: st.Character.XP + 1}
			})
		}()
	}
	wg.Wait()

	// Each build doubles the xp it saw, plus one.
	require.Equal(t, 1023, e.State().Character.XP)
}
