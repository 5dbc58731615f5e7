package game

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"questnotes/internal/model"
)

func TestDebouncedSaverWritesAfterQuietPeriod(t *testing.T) {
	gw := &fakeGateway{}
	results := make(chan error, 4)
	s := NewDebouncedSaver(gw, 20*time.Millisecond, func(err error) { results <- err })

	st := model.InitialState()
	for i := 1; i <= 3; i++ {
		st.Character.XP = i
		s.Notify(st)
	}

	select {
	case err := <-results:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for save")
	}
	require.Equal(t, 1, gw.saveCount())
	require.Equal(t, 3, gw.last().Character.XP)
}

func TestDebouncedSaverFlushReportsErrors(t *testing.T) {
	gw := &fakeGateway{saveErr: errors.New("read-only")}
	var reported error
	s := NewDebouncedSaver(gw, time.Hour, func(err error) { reported = err })

	s.Notify(model.InitialState())
	err := s.Flush(context.Background())
	require.EqualError(t, err, "read-only")
	require.EqualError(t, reported, "read-only")
}

func TestDebouncedSaverNilIsSafe(t *testing.T) {
	var s *DebouncedSaver
	s.Notify(model.InitialState())
	require.NoError(t, s.Flush(context.Background()))
}
