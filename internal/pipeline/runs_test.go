package pipeline

import (
	"errors"
	"testing"
	"time"
)

func TestRunLifecycle(t *testing.T) {
	run := NewRun(42)

	if run.ID == "" {
		t.Fatal("expected a run id")
	}
	if len(run.ID) != 26 {
		t.Errorf("expected a 26-character id, got %d: %q", len(run.ID), run.ID)
	}

	snap := run.Snapshot()
	if snap.State != StateReceived {
		t.Errorf("expected initial state %q, got %q", StateReceived, snap.State)
	}
	if snap.DocumentID != 42 {
		t.Errorf("expected document id 42, got %d", snap.DocumentID)
	}

	run.SetState(StateValidated)
	run.SetState(StateDownloaded)
	run.SetResult("user-1", "markdown", 1234, 3, 400)
	run.SetState(StateDone)

	snap = run.Snapshot()
	if snap.State != StateDone {
		t.Errorf("expected state %q, got %q", StateDone, snap.State)
	}
	if snap.User != "user-1" || snap.FileType != "markdown" {
		t.Errorf("unexpected result fields: %+v", snap)
	}
	if snap.FileSize != 1234 || snap.TotalSections != 3 || snap.EstTokens != 400 {
		t.Errorf("unexpected result counters: %+v", snap)
	}
	if snap.Error != "" {
		t.Errorf("expected no error on a successful run, got %q", snap.Error)
	}
}

func TestRunFail(t *testing.T) {
	run := NewRun(1)
	run.Fail(errors.New("download failed"))

	snap := run.Snapshot()
	if snap.State != StateFailed {
		t.Errorf("expected state %q, got %q", StateFailed, snap.State)
	}
	if snap.Error != "download failed" {
		t.Errorf("expected error message recorded, got %q", snap.Error)
	}
}

func TestRunIDsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := newRunID()
		if seen[id] {
			t.Fatalf("duplicate id after %d draws: %q", i, id)
		}
		seen[id] = true
	}
}

func TestRunStore(t *testing.T) {
	s := NewRunStore(time.Hour)
	run := NewRun(5)
	s.Put(run)

	if got := s.Get(run.ID); got != run {
		t.Errorf("expected stored run back, got %v", got)
	}
	if got := s.Get("nope"); got != nil {
		t.Errorf("expected nil for unknown id, got %v", got)
	}
}

func TestRunStoreCleanup(t *testing.T) {
	s := NewRunStore(10 * time.Millisecond)

	stale := NewRun(1)
	s.Put(stale)

	time.Sleep(25 * time.Millisecond)

	fresh := NewRun(2)
	s.Put(fresh)
	s.Cleanup()

	if got := s.Get(stale.ID); got != nil {
		t.Errorf("expected stale run evicted, got %v", got)
	}
	if got := s.Get(fresh.ID); got != fresh {
		t.Errorf("expected fresh run retained, got %v", got)
	}
}
