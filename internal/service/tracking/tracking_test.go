package tracking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/garrettladley/weightrack/internal/storage"
	"github.com/garrettladley/weightrack/internal/tracker"
	"github.com/garrettladley/weightrack/internal/xslog"
)

type countingObserver struct {
	mu  sync.Mutex
	ops []string
}

func (c *countingObserver) Edited(op string) {
	c.mu.Lock()
	c.ops = append(c.ops, op)
	c.mu.Unlock()
}

var fixedNow = time.Date(2020, time.November, 14, 12, 0, 0, 0, time.UTC)

func newTestService(kv tracker.KV) (*Tracker, *countingObserver) {
	obs := &countingObserver{}
	store := tracker.NewStore(kv, xslog.Discard())
	return New(store, WithClock(func() time.Time { return fixedNow }), WithObserver(obs)), obs
}

func TestTrackerEdits(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	svc, obs := newTestService(storage.NewMemoryStore())

	snap, err := svc.Get(ctx)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if diff := cmp.Diff(tracker.Default(), snap.State); diff != "" {
		t.Errorf("Get() on empty store mismatch (-want +got):\n%s", diff)
	}

	if _, err := svc.SetField(ctx, tracker.FieldStartingWeight, "180"); err != nil {
		t.Fatalf("SetField() error = %v", err)
	}
	snap, err = svc.SetCell(ctx, 0, tracker.KindWeights, tracker.Sunday, "182")
	if err != nil {
		t.Fatalf("SetCell() error = %v", err)
	}
	if snap.Stats.CurrentWeight != 182 || snap.Stats.WeightDelta != 2 {
		t.Errorf("stats = %+v", snap.Stats)
	}

	snap, err = svc.AddWeek(ctx)
	if err != nil {
		t.Fatalf("AddWeek() error = %v", err)
	}
	if len(snap.State.Weeks) != tracker.DefaultWeeks+1 {
		t.Errorf("len(Weeks) = %d", len(snap.State.Weeks))
	}

	again, err := svc.Get(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(snap, again); diff != "" {
		t.Errorf("Get() after edits mismatch (-want +got):\n%s", diff)
	}

	if _, err := svc.SetCell(ctx, -1, tracker.KindWeights, tracker.Sunday, "1"); !errors.Is(err, tracker.ErrWeekOutOfRange) {
		t.Errorf("SetCell(-1) error = %v", err)
	}

	want := []string{opSetField, opSetCell, opAddWeek}
	if diff := cmp.Diff(want, obs.ops); diff != "" {
		t.Errorf("observed ops mismatch (-want +got):\n%s", diff)
	}
}

func TestTrackerConcurrentEditsAreSerialized(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	svc, _ := newTestService(storage.NewMemoryStore())

	var wg sync.WaitGroup
	for d := range tracker.DaysPerWeek {
		wg.Go(func() {
			if _, err := svc.SetCell(ctx, 1, tracker.KindCalories, tracker.Day(d), "2000"); err != nil {
				t.Errorf("SetCell(%d) error = %v", d, err)
			}
		})
	}
	wg.Wait()

	snap, err := svc.Get(ctx)
	if err != nil {
		t.Fatal(err)
	}
	for d, c := range snap.State.Weeks[1].Calories {
		if c != tracker.Some(2000) {
			t.Errorf("day %d = %+v, edit lost", d, c)
		}
	}
}

type brokenKV struct{ raw string }

func (b *brokenKV) Get(context.Context, string) (string, error) { return b.raw, nil }
func (b *brokenKV) Set(_ context.Context, _ string, v string) error {
	b.raw = v
	return nil
}

func TestTrackerCorruptBlob(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	kv := &brokenKV{raw: "{corrupt"}
	svc, _ := newTestService(kv)

	if _, err := svc.SetField(ctx, tracker.FieldTDEE, "2500"); err == nil {
		t.Fatal("SetField() over corrupt blob succeeded")
	}
	if kv.raw != "{corrupt" {
		t.Fatal("corrupt blob overwritten by failed edit")
	}

	if _, err := svc.Reset(ctx); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	snap, err := svc.Get(ctx)
	if err != nil {
		t.Fatalf("Get() after Reset error = %v", err)
	}
	if len(snap.State.Weeks) != tracker.DefaultWeeks {
		t.Errorf("len(Weeks) = %d", len(snap.State.Weeks))
	}
}

func TestTrackerExportImport(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	src, _ := newTestService(storage.NewMemoryStore())
	if _, err := src.SetField(ctx, tracker.FieldGoalWeight, "190"); err != nil {
		t.Fatal(err)
	}
	raw, err := src.Export(ctx)
	if err != nil {
		t.Fatal(err)
	}

	dst, obs := newTestService(&brokenKV{raw: "garbage"})
	snap, err := dst.Import(ctx, []byte(raw))
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if snap.State.Inputs.GoalWeight != 190 {
		t.Errorf("GoalWeight = %v", snap.State.Inputs.GoalWeight)
	}
	if diff := cmp.Diff([]string{opImport}, obs.ops); diff != "" {
		t.Errorf("observed ops mismatch (-want +got):\n%s", diff)
	}
}
