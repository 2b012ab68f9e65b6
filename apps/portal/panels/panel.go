// Package panels holds the feature-panel controllers: self-contained
// fetch/render/interact units embedded in a dashboard shell's tab. All panels
// share one lifecycle: Idle → Loading → (Ready | Failed), re-entering Loading
// on every re-fetch.
package panels

import "sync"

type State int

const (
	Idle State = iota
	Loading
	Ready
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// lifecycle implements the shared panel state machine. Each fetch records a
// generation; a resolution carrying a stale generation is discarded, so a
// late response never overwrites state from a newer fetch.
type lifecycle struct {
	mu      sync.Mutex
	state   State
	gen     uint64
	failure string
}

func (l *lifecycle) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Failure returns the user-facing message of the last failed fetch.
func (l *lifecycle) Failure() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.failure
}

// begin enters Loading and returns the generation of this fetch.
func (l *lifecycle) begin() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.gen++
	l.state = Loading
	return l.gen
}

// commit resolves the fetch started at gen. apply runs under the lock, only
// when the generation is still current and err is nil. Returns whether the
// resolution was applied.
func (l *lifecycle) commit(gen uint64, err error, failMsg string, apply func()) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.gen {
		return false
	}
	if err != nil {
		l.state = Failed
		l.failure = failMsg
		return false
	}
	if apply != nil {
		apply()
	}
	l.state = Ready
	l.failure = ""
	return true
}

// read runs fn under the panel lock, for snapshot accessors.
func (l *lifecycle) read(fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn()
}
