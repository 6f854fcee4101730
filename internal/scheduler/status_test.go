package scheduler

import (
	"context"
	"testing"

	"boolevald/pkg/types"
)

func TestStatusBeforeAndAfterRun(t *testing.T) {
	f := newFakeBackend()
	tasks := []types.Task{
		task("X?", true, ""),
		task("Y?", false, ""),
	}
	s := New(f, f, tasks, Config{Capacity: 1})

	snap := s.Status()
	if snap.QueueDepth != 2 || snap.Active != 0 || snap.Correct != 0 || snap.Incorrect != 0 {
		t.Fatalf("unexpected initial snapshot: %+v", snap)
	}
	if snap.Utilization != f.utilization {
		t.Fatalf("utilization not sourced from backend: %v", snap.Utilization)
	}

	if _, err := s.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	snap = s.Status()
	if snap.QueueDepth != 0 || snap.Active != 0 {
		t.Fatalf("run left work behind: %+v", snap)
	}
	if snap.Correct+snap.Incorrect != 2 {
		t.Fatalf("snapshot totals drifted from resolved count: %+v", snap)
	}
}

func TestReadyRequiresContext(t *testing.T) {
	f := newFakeBackend()
	s := New(f, f, nil, Config{Capacity: 1})
	if !s.Ready() {
		t.Fatalf("scheduler with a context should be ready")
	}
}
