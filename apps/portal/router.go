// Package portal implements the client-side navigation model: the session
// lifecycle, the role-routing state machine and the role dashboards.
package portal

import (
	"context"
	"sync"

	"github.com/everyedu/portal/core"
	"github.com/everyedu/portal/core/session"
	apisvc "github.com/everyedu/portal/services/api"
)

// State of the role router. The machine cycles indefinitely across
// login/logout; no state is terminal.
type State int

const (
	// StateLoading is the initial state, before durable storage has been
	// consulted.
	StateLoading State = iota
	StateAnonymous
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	}
	return "unknown"
}

// Top-level paths.
const (
	PathRoot      = "/"
	PathRegister  = "/register"
	PathDashboard = "/dashboard"
)

// ShellKind identifies a dashboard variant.
type ShellKind int

const (
	ShellStaff ShellKind = iota
	ShellStudent
	ShellCourseLead
	ShellWellbeingOfficer
)

// DashboardFor maps a role to its dashboard. Total over all strings: any
// unrecognized role (including the empty one) lands on the generic staff
// dashboard. That fallback is a deliberate default, not an error path.
func DashboardFor(role string) ShellKind {
	switch role {
	case session.RoleStudent:
		return ShellStudent
	case session.RoleCourseLead:
		return ShellCourseLead
	case session.RoleWellbeingOfficer:
		return ShellWellbeingOfficer
	default:
		return ShellStaff
	}
}

// Router owns the session-driven navigation state. It is handed the session
// store explicitly; shells and panels read the session through it rather
// than from ambient storage.
type Router struct {
	conf     *core.Config
	sessions *session.Store
	client   *apisvc.Client
	log      core.Logger

	mu    sync.Mutex
	state State
	shell Shell
}

func NewRouter(conf *core.Config, sessions *session.Store, client *apisvc.Client, log core.Logger) *Router {
	r := &Router{
		conf:     conf,
		sessions: sessions,
		client:   client,
		log:      log,
		state:    StateLoading,
	}
	// Single 401 interception point: any authorization failure tears the
	// session down and reroutes to anonymous, regardless of which panel's
	// call hit it.
	client.OnUnauthorized(r.forceAnonymous)
	return r
}

// Start consults durable storage exactly once and leaves Loading. When a
// valid session is found the role dashboard is mounted.
func (r *Router) Start(ctx context.Context) {
	sess := r.sessions.Restore()

	r.mu.Lock()
	if sess.IsAnonymous() {
		r.state = StateAnonymous
		r.mu.Unlock()
		return
	}
	r.state = StateAuthenticated
	shell := r.newShell(sess)
	r.shell = shell
	r.mu.Unlock()

	shell.Mount(ctx)
}

func (r *Router) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Shell returns the mounted dashboard, nil unless Authenticated.
func (r *Router) Shell() Shell {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.shell
}

// Resolve maps a requested path to the one actually rendered for the current
// state: anonymous never reaches the dashboard, authenticated never reaches
// login/register, anything unrecognized goes to the root path.
func (r *Router) Resolve(path string) string {
	authed := r.State() == StateAuthenticated
	switch path {
	case PathRoot, PathRegister:
		if authed {
			return PathDashboard
		}
		return path
	case PathDashboard:
		if authed {
			return PathDashboard
		}
		return PathRoot
	default:
		return PathRoot
	}
}

// Logout clears the session and reroutes to anonymous: the only global
// teardown path. There is no server-side invalidation call to make.
func (r *Router) Logout() {
	r.sessions.Clear()

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.shell != nil {
		r.shell.Unmount()
	}
	r.shell = nil
	r.state = StateAnonymous
}

// forceAnonymous is fired by the API client after a 401 has cleared the
// session store.
func (r *Router) forceAnonymous() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.shell != nil {
		r.shell.Unmount()
	}
	r.shell = nil
	r.state = StateAnonymous
}

// authenticate installs a fresh session and mounts its dashboard.
func (r *Router) authenticate(ctx context.Context, sess session.Session) {
	r.sessions.Set(sess)

	r.mu.Lock()
	r.state = StateAuthenticated
	shell := r.newShell(sess)
	r.shell = shell
	r.mu.Unlock()

	shell.Mount(ctx)
}

func (r *Router) newShell(sess session.Session) Shell {
	switch DashboardFor(sess.Role) {
	case ShellStudent:
		return NewStudentShell(r.conf, r.client, r.log, sess)
	case ShellCourseLead:
		return NewCourseLeadShell(r.conf, r.client, r.log, sess)
	case ShellWellbeingOfficer:
		return NewWellbeingOfficerShell(r.conf, r.client, r.log, sess)
	default:
		return NewStaffShell(r.conf, r.client, r.log, sess)
	}
}
