package portal

import (
	"context"
	"sync"

	"github.com/everyedu/portal/core/session"
)

// Shell is a role dashboard: a set of named tabs over a group of panels.
// Mount runs the fetches the dashboard needs up front; tabs whose data is
// not shown on the default tab load lazily on first activation.
type Shell interface {
	Kind() ShellKind
	Title() string
	Username() string
	Tabs() []string
	ActiveTab() string
	// Activate switches to the named tab, triggering its first-time fetches.
	// Unknown tab names are ignored.
	Activate(ctx context.Context, tab string)
	Mount(ctx context.Context)
	Unmount()
}

// baseShell carries the tab bookkeeping shared by every dashboard.
type baseShell struct {
	sess session.Session
	tabs []string

	mu        sync.Mutex
	active    string
	activated map[string]bool
}

func newBaseShell(sess session.Session, tabs []string) baseShell {
	return baseShell{
		sess:      sess,
		tabs:      tabs,
		active:    tabs[0],
		activated: map[string]bool{tabs[0]: true},
	}
}

func (s *baseShell) Username() string { return s.sess.Username }

func (s *baseShell) Tabs() []string { return s.tabs }

func (s *baseShell) ActiveTab() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// setActive records the switch and reports whether this is the tab's first
// activation. ok is false for tab names the shell does not have.
func (s *baseShell) setActive(tab string) (first, ok bool) {
	for _, t := range s.tabs {
		if t == tab {
			ok = true
			break
		}
	}
	if !ok {
		return false, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = tab
	first = !s.activated[tab]
	s.activated[tab] = true
	return first, true
}
