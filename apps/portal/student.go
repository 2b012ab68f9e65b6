package portal

import (
	"context"

	"github.com/everyedu/portal/apps/portal/panels"
	"github.com/everyedu/portal/core"
	"github.com/everyedu/portal/core/session"
	apisvc "github.com/everyedu/portal/services/api"
)

// Student tabs.
const (
	TabCheckin   = "checkin"
	TabHistory   = "history"
	TabResources = "resources"
)

// StudentShell is the student dashboard: the daily wellbeing check-in, the
// personal history charts and a static resources tab.
type StudentShell struct {
	baseShell

	Survey  *panels.SurveyPanel
	History *panels.HistoryPanel
}

func NewStudentShell(conf *core.Config, client *apisvc.Client, log core.Logger, sess session.Session) *StudentShell {
	return &StudentShell{
		baseShell: newBaseShell(sess, []string{TabCheckin, TabHistory, TabResources}),
		Survey:    panels.NewSurveyPanel(client, log, sess.UserID),
		History:   panels.NewHistoryPanel(client, sess.UserID, conf.Portal.HistoryDays),
	}
}

func (s *StudentShell) Kind() ShellKind { return ShellStudent }

func (s *StudentShell) Title() string { return "Student Dashboard" }

// Mount is a no-op: the default check-in tab is a blank form and fetches
// nothing.
func (s *StudentShell) Mount(ctx context.Context) {}

func (s *StudentShell) Activate(ctx context.Context, tab string) {
	first, ok := s.setActive(tab)
	if !ok || !first {
		return
	}
	if tab == TabHistory {
		s.History.Refresh(ctx)
	}
}

func (s *StudentShell) Unmount() {}
