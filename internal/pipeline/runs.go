package pipeline

import (
	"sync"
	"time"
)

// RunState is the position of an ingestion run in its lifecycle.
type RunState string

const (
	StateReceived   RunState = "received"
	StateValidated  RunState = "validated"
	StateDownloaded RunState = "downloaded"
	StateExtracted  RunState = "extracted"
	StatePersisted  RunState = "persisted"
	StateDone       RunState = "done"
	StateFailed     RunState = "failed"
)

// Run tracks one ingestion invocation. The pipeline itself is
// synchronous; the run exists so state transitions and outcomes stay
// observable after the response is gone.
type Run struct {
	mu sync.Mutex

	ID         string   `json:"run_id"`
	DocumentID int64    `json:"document_id"`
	State      RunState `json:"state"`

	User          string `json:"user,omitempty"`
	FileType      string `json:"file_type,omitempty"`
	FileSize      int64  `json:"file_size,omitempty"`
	TotalSections int    `json:"total_sections,omitempty"`
	EstTokens     int    `json:"est_tokens,omitempty"`
	Error         string `json:"error,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewRun(documentID int64) *Run {
	now := time.Now()
	return &Run{
		ID:         newRunID(),
		DocumentID: documentID,
		State:      StateReceived,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// SetState advances the run atomically.
func (r *Run) SetState(state RunState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.State = state
	r.UpdatedAt = time.Now()
}

// Fail marks the run failed with its terminal error.
func (r *Run) Fail(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.State = StateFailed
	if err != nil {
		r.Error = err.Error()
	}
	r.UpdatedAt = time.Now()
}

// SetResult records what extraction produced.
func (r *Run) SetResult(user, fileType string, fileSize int64, totalSections, estTokens int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.User = user
	r.FileType = fileType
	r.FileSize = fileSize
	r.TotalSections = totalSections
	r.EstTokens = estTokens
	r.UpdatedAt = time.Now()
}

// RunSnapshot is a read-only, JSON-safe copy of run state.
type RunSnapshot struct {
	ID            string   `json:"run_id"`
	DocumentID    int64    `json:"document_id"`
	State         RunState `json:"state"`
	User          string   `json:"user,omitempty"`
	FileType      string   `json:"file_type,omitempty"`
	FileSize      int64    `json:"file_size,omitempty"`
	TotalSections int      `json:"total_sections"`
	EstTokens     int      `json:"est_tokens"`
	Error         string   `json:"error,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (r *Run) Snapshot() RunSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return RunSnapshot{
		ID:            r.ID,
		DocumentID:    r.DocumentID,
		State:         r.State,
		User:          r.User,
		FileType:      r.FileType,
		FileSize:      r.FileSize,
		TotalSections: r.TotalSections,
		EstTokens:     r.EstTokens,
		Error:         r.Error,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

// RunStore is a thread-safe in-memory run registry with TTL eviction.
type RunStore struct {
	mu   sync.Mutex
	runs map[string]*Run
	ttl  time.Duration
}

func NewRunStore(ttl time.Duration) *RunStore {
	return &RunStore{
		runs: make(map[string]*Run),
		ttl:  ttl,
	}
}

func (s *RunStore) Put(run *Run) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.ID] = run
}

func (s *RunStore) Get(id string) *Run {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runs[id]
}

// Cleanup removes runs not updated within the TTL.
func (s *RunStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, run := range s.runs {
		run.mu.Lock()
		updated := run.UpdatedAt
		run.mu.Unlock()
		if now.Sub(updated) > s.ttl {
			delete(s.runs, id)
		}
	}
}
