package portal

import (
	"context"

	"github.com/everyedu/portal/apps/portal/panels"
	"github.com/everyedu/portal/core"
	"github.com/everyedu/portal/core/session"
	apisvc "github.com/everyedu/portal/services/api"
)

// StaffShell is the generic staff dashboard, also the fallback for roles
// without a dedicated one. It unions the read-only views: attendance
// summary, cohort wellbeing charts, absentee list, correlation chart and
// the unfiltered alert feed.
type StaffShell struct {
	baseShell

	Summary     *panels.SummaryPanel
	Alerts      *panels.AlertsPanel
	Heatmap     *panels.HeatmapPanel
	Stress      *panels.StressPanel
	Absentees   *panels.AbsenteesPanel
	Correlation *panels.CorrelationPanel
}

func NewStaffShell(conf *core.Config, client *apisvc.Client, log core.Logger, sess session.Session) *StaffShell {
	return &StaffShell{
		baseShell:   newBaseShell(sess, []string{TabOverview, TabWellbeing, TabAttendance, TabAnalytics, TabAlerts}),
		Summary:     panels.NewSummaryPanel(client),
		Alerts:      panels.NewAlertsPanel(client, log, panels.FilterNone),
		Heatmap:     panels.NewHeatmapPanel(client),
		Stress:      panels.NewStressPanel(client, 0, conf.Portal.HistoryDays),
		Absentees:   panels.NewAbsenteesPanel(client, log, conf.Portal.AbsenceDays, conf.Portal.AbsenceRate),
		Correlation: panels.NewCorrelationPanel(client, conf.Portal.HistoryDays),
	}
}

func (s *StaffShell) Kind() ShellKind { return ShellStaff }

func (s *StaffShell) Title() string { return "Staff Dashboard" }

func (s *StaffShell) Mount(ctx context.Context) {
	s.Summary.Refresh(ctx)
	s.Alerts.Refresh(ctx)
}

func (s *StaffShell) AlertCount() int { return len(s.Alerts.Alerts()) }

func (s *StaffShell) Activate(ctx context.Context, tab string) {
	first, ok := s.setActive(tab)
	if !ok || !first {
		return
	}
	switch tab {
	case TabWellbeing:
		s.Heatmap.Refresh(ctx)
		s.Stress.Refresh(ctx)
	case TabAttendance:
		s.Absentees.Refresh(ctx)
	case TabAnalytics:
		s.Correlation.Refresh(ctx)
	}
}

func (s *StaffShell) Unmount() {}
