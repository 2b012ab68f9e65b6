package portal

import (
	"context"

	"github.com/everyedu/portal/apps/portal/panels"
	"github.com/everyedu/portal/core"
	"github.com/everyedu/portal/core/session"
	apisvc "github.com/everyedu/portal/services/api"
)

// Course lead tabs.
const (
	TabOverview   = "overview"
	TabAttendance = "attendance"
	TabAnalytics  = "analytics"
	TabAlerts     = "alerts"
)

// CourseLeadShell is the course lead dashboard: an attendance summary, the
// low-attendance follow-up list, the attendance/grades correlation chart and
// attendance alerts.
type CourseLeadShell struct {
	baseShell

	Summary     *panels.SummaryPanel
	Alerts      *panels.AlertsPanel
	Absentees   *panels.AbsenteesPanel
	Correlation *panels.CorrelationPanel
}

func NewCourseLeadShell(conf *core.Config, client *apisvc.Client, log core.Logger, sess session.Session) *CourseLeadShell {
	return &CourseLeadShell{
		baseShell:   newBaseShell(sess, []string{TabOverview, TabAttendance, TabAnalytics, TabAlerts}),
		Summary:     panels.NewSummaryPanel(client),
		Alerts:      panels.NewAlertsPanel(client, log, panels.FilterAttendance),
		Absentees:   panels.NewAbsenteesPanel(client, log, conf.Portal.AbsenceDays, conf.Portal.AbsenceRate),
		Correlation: panels.NewCorrelationPanel(client, conf.Portal.HistoryDays),
	}
}

func (s *CourseLeadShell) Kind() ShellKind { return ShellCourseLead }

func (s *CourseLeadShell) Title() string { return "Course Lead Dashboard" }

// Mount loads the overview summary and the alert list; the alert count badge
// in the header needs the latter even while another tab is active.
func (s *CourseLeadShell) Mount(ctx context.Context) {
	s.Summary.Refresh(ctx)
	s.Alerts.Refresh(ctx)
}

// AlertCount backs the header badge.
func (s *CourseLeadShell) AlertCount() int { return len(s.Alerts.Alerts()) }

func (s *CourseLeadShell) Activate(ctx context.Context, tab string) {
	first, ok := s.setActive(tab)
	if !ok || !first {
		return
	}
	switch tab {
	case TabAttendance:
		s.Absentees.Refresh(ctx)
	case TabAnalytics:
		s.Correlation.Refresh(ctx)
	}
}

func (s *CourseLeadShell) Unmount() {}
