package portal

import (
	"context"

	"github.com/everyedu/portal/apps/portal/panels"
	"github.com/everyedu/portal/core"
	"github.com/everyedu/portal/core/session"
	apisvc "github.com/everyedu/portal/services/api"
)

// Wellbeing officer tabs.
const (
	TabStudents  = "students"
	TabWellbeing = "wellbeing"
	TabSendHelp  = "sendhelp"
)

// WellbeingOfficerShell is the wellbeing officer dashboard: the searchable
// student roster, the cohort stress charts, the help outreach panel and
// wellbeing alerts.
type WellbeingOfficerShell struct {
	baseShell

	Search   *panels.SearchPanel
	Heatmap  *panels.HeatmapPanel
	Stress   *panels.StressPanel
	SendHelp *panels.SendHelpPanel
	Alerts   *panels.AlertsPanel
}

func NewWellbeingOfficerShell(conf *core.Config, client *apisvc.Client, log core.Logger, sess session.Session) *WellbeingOfficerShell {
	return &WellbeingOfficerShell{
		baseShell: newBaseShell(sess, []string{TabStudents, TabWellbeing, TabSendHelp, TabAlerts}),
		Search:    panels.NewSearchPanel(client, log, conf.Portal.SearchDebounce, conf.Portal.RosterPageSize, conf.Portal.HistoryDays),
		Heatmap:   panels.NewHeatmapPanel(client),
		// studentID 0 aggregates stress across the whole cohort.
		Stress:   panels.NewStressPanel(client, 0, conf.Portal.HistoryDays),
		SendHelp: panels.NewSendHelpPanel(client, log, conf.Portal.HighStressLevel, conf.Portal.RosterPageSize),
		Alerts:   panels.NewAlertsPanel(client, log, panels.FilterWellbeing),
	}
}

func (s *WellbeingOfficerShell) Kind() ShellKind { return ShellWellbeingOfficer }

func (s *WellbeingOfficerShell) Title() string { return "Wellbeing Officer Dashboard" }

// Mount loads the default students tab and the alert list for the header
// badge.
func (s *WellbeingOfficerShell) Mount(ctx context.Context) {
	s.Search.Refresh(ctx)
	s.Alerts.Refresh(ctx)
}

func (s *WellbeingOfficerShell) AlertCount() int { return len(s.Alerts.Alerts()) }

func (s *WellbeingOfficerShell) Activate(ctx context.Context, tab string) {
	first, ok := s.setActive(tab)
	if !ok || !first {
		return
	}
	switch tab {
	case TabWellbeing:
		s.Heatmap.Refresh(ctx)
		s.Stress.Refresh(ctx)
	case TabSendHelp:
		s.SendHelp.Refresh(ctx)
	}
}

func (s *WellbeingOfficerShell) Unmount() {
	s.Search.Close()
}
