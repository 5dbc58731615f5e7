package game

import (
	"context"
	"sync"
	"time"

	"questnotes/internal/model"
)

// DebouncedSaver coalesces bursts of transitions into one save of the
// latest state. Interactive front ends use it so a key press never waits on
// storage.
type DebouncedSaver struct {
	gw       Gateway
	debounce time.Duration
	report   func(error)

	// saveMu serializes writes; a snapshot is taken while holding it, so the
	// last write is always the newest state.
	saveMu sync.Mutex

	mu      sync.Mutex
	timer   *time.Timer
	pending *model.GameState
}

// NewDebouncedSaver returns a saver writing to gw. report, when non-nil,
// receives the result of every write.
func NewDebouncedSaver(gw Gateway, debounce time.Duration, report func(error)) *DebouncedSaver {
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	if report == nil {
		report = func(error) {}
	}
	return &DebouncedSaver{gw: gw, debounce: debounce, report: report}
}

// Notify schedules st to be saved once no newer state arrives for the
// debounce interval.
func (d *DebouncedSaver) Notify(st model.GameState) {
	if d == nil {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.pending = &st
	if d.timer == nil {
		d.timer = time.AfterFunc(d.debounce, d.onTimer)
		return
	}
	d.timer.Reset(d.debounce)
}

func (d *DebouncedSaver) onTimer() {
	_ = d.save(context.Background())
}

// Flush writes any pending state now.
func (d *DebouncedSaver) Flush(ctx context.Context) error {
	if d == nil {
		return nil
	}
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.mu.Unlock()
	return d.save(ctx)
}

func (d *DebouncedSaver) save(ctx context.Context) error {
	d.saveMu.Lock()
	defer d.saveMu.Unlock()

	d.mu.Lock()
	st := d.pending
	d.pending = nil
	d.mu.Unlock()
	if st == nil {
		return nil
	}

	err := d.gw.Save(ctx, *st)
	d.report(err)
	return err
}
