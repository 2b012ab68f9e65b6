package main

import (
	"context"
	"fmt"

	"github.com/everyedu/portal/apps/portal"
	"github.com/everyedu/portal/apps/portal/panels"
	apisvc "github.com/everyedu/portal/services/api"
)

// Static items on the student resources tab.
var resources = []string{
	"Talk to the wellbeing team: wellbeing@everyedu.example",
	"Out-of-hours listening service: 116 123",
	"Study skills and time management guides on the intranet",
}

func (cli *commandLine) dashboard(ctx context.Context, tab string) error {
	shell, err := cli.mounted(ctx)
	if err != nil {
		return err
	}
	if tab == "" {
		tab = shell.ActiveTab()
	}
	shell.Activate(ctx, tab)
	if shell.ActiveTab() != tab {
		return fmt.Errorf("%s has no %q tab", shell.Title(), tab)
	}
	defer shell.Unmount()

	fmt.Printf("%s - %s\n", shell.Title(), shell.Username())
	fmt.Printf("tabs: %v  (active: %s)\n\n", shell.Tabs(), tab)

	switch s := shell.(type) {
	case *portal.StudentShell:
		cli.renderStudent(s, tab)
	case *portal.CourseLeadShell:
		cli.renderCourseLead(s, tab)
	case *portal.WellbeingOfficerShell:
		cli.renderOfficer(s, tab)
	case *portal.StaffShell:
		cli.renderStaff(s, tab)
	}
	return nil
}

func (cli *commandLine) renderStudent(s *portal.StudentShell, tab string) {
	switch tab {
	case portal.TabCheckin:
		if s.Survey.Submitted() {
			fmt.Println("Thank you! Your check-in was recorded.")
			return
		}
		fmt.Println("Submit today's check-in with:")
		fmt.Println("  checkin -sleep N -stress N -mood MOOD [-comments TEXT] [-requests TEXT]")
		fmt.Printf("moods: %v\n", panels.Moods)
	case portal.TabHistory:
		if !ready(s.History) {
			return
		}
		for _, rec := range s.History.Records() {
			fmt.Printf("  %s  sleep %d  stress %d  mood %s\n",
				rec.RecordedDate, rec.SleepLevel, rec.StressLevel, rec.Mood)
		}
	case portal.TabResources:
		for _, r := range resources {
			fmt.Println("  - " + r)
		}
	}
}

func (cli *commandLine) renderCourseLead(s *portal.CourseLeadShell, tab string) {
	switch tab {
	case portal.TabOverview:
		renderSummary(s.Summary)
		fmt.Printf("unread attendance alerts: %d\n", s.AlertCount())
	case portal.TabAttendance:
		renderAbsentees(s.Absentees)
	case portal.TabAnalytics:
		renderCorrelation(s.Correlation)
	case portal.TabAlerts:
		renderAlerts(s.Alerts)
	}
}

func (cli *commandLine) renderOfficer(s *portal.WellbeingOfficerShell, tab string) {
	switch tab {
	case portal.TabStudents:
		if !ready(s.Search) {
			return
		}
		roster := s.Search.Roster()
		fmt.Printf("students (page %d of %d, %d total):\n", roster.Page, roster.TotalPages, roster.Total)
		for _, st := range s.Search.Students() {
			renderStatus(st)
		}
	case portal.TabWellbeing:
		renderWellbeingCharts(s.Heatmap, s.Stress)
	case portal.TabSendHelp:
		if !ready(s.SendHelp) {
			return
		}
		fmt.Println("students flagged for support:")
		for _, st := range s.SendHelp.Students() {
			renderStatus(st)
			if s.SendHelp.Notified(st.ID) {
				fmt.Println("      help offered")
			}
		}
	case portal.TabAlerts:
		renderAlerts(s.Alerts)
	}
}

func (cli *commandLine) renderStaff(s *portal.StaffShell, tab string) {
	switch tab {
	case portal.TabOverview:
		renderSummary(s.Summary)
		fmt.Printf("unread alerts: %d\n", s.AlertCount())
	case portal.TabWellbeing:
		renderWellbeingCharts(s.Heatmap, s.Stress)
	case portal.TabAttendance:
		renderAbsentees(s.Absentees)
	case portal.TabAnalytics:
		renderCorrelation(s.Correlation)
	case portal.TabAlerts:
		renderAlerts(s.Alerts)
	}
}

// statePanel is the common read surface of every panel.
type statePanel interface {
	State() panels.State
	Failure() string
}

// ready reports whether the panel reached Ready, printing the failure
// otherwise.
func ready(p statePanel) bool {
	switch p.State() {
	case panels.Ready:
		return true
	case panels.Failed:
		fmt.Println("  " + p.Failure())
	}
	return false
}

func renderSummary(p *panels.SummaryPanel) {
	if !ready(p) {
		return
	}
	sum := p.Summary()
	fmt.Printf("attendance: %d students, %d present / %d absent, %.1f%% overall\n",
		sum.TotalStudents, sum.TotalPresent, sum.TotalAbsent, sum.OverallAttendanceRate*100)
}

func renderAlerts(p *panels.AlertsPanel) {
	if !ready(p) {
		return
	}
	alerts := p.Alerts()
	if len(alerts) == 0 {
		fmt.Println("no unread alerts")
		return
	}
	for _, a := range alerts {
		fmt.Printf("  [%d] %s  %s %s: %s\n", a.ID, a.Kind, a.FirstName, a.LastName, a.Message)
	}
}

func renderAbsentees(p *panels.AbsenteesPanel) {
	if !ready(p) {
		return
	}
	students := p.Students()
	if len(students) == 0 {
		fmt.Println("no students below the attendance threshold")
		return
	}
	for _, st := range students {
		fmt.Printf("  [%d] %s %s (%s)  %d/%d classes, %.0f%%\n",
			st.ID, st.FirstName, st.LastName, st.StudentID,
			st.PresentCount, st.TotalClasses, st.AttendanceRate*100)
		if p.Notified(st.ID) {
			fmt.Println("      notified")
		}
	}
}

func renderCorrelation(p *panels.CorrelationPanel) {
	if !ready(p) {
		return
	}
	for _, pt := range p.Points() {
		fmt.Printf("  %-10s  attendance %.0f%%  avg grade %.1f\n", pt.Name, pt.AttendancePct, pt.AverageGrade)
	}
}

func renderWellbeingCharts(heatmap *panels.HeatmapPanel, stress *panels.StressPanel) {
	if ready(heatmap) {
		for _, cell := range heatmap.Cells() {
			avg := "-"
			if cell.AvgStress != nil {
				avg = fmt.Sprintf("%.1f (%s)", *cell.AvgStress, panels.StressBand(*cell.AvgStress))
			}
			fmt.Printf("  %s %s  avg stress %s  records %d\n", cell.FirstName, cell.LastName, avg, cell.RecordCount)
		}
	}
	if ready(stress) {
		fmt.Println("stress over time:")
		for _, pt := range stress.Points() {
			fmt.Printf("  %s  %.1f\n", pt.Date, pt.Level)
		}
	}
}

func renderStatus(st apisvc.StudentStatus) {
	filled := "not filled today"
	if st.FilledToday() {
		filled = "filled today"
	}
	detail := ""
	if st.LatestStress != nil {
		detail = fmt.Sprintf("  stress %d", *st.LatestStress)
	}
	if st.LatestMood != nil {
		detail += "  mood " + *st.LatestMood
	}
	fmt.Printf("  [%d] %s %s (%s)  %s%s\n", st.ID, st.FirstName, st.LastName, st.StudentID, filled, detail)
}

func panelsSurveyForm(sleep, stress int, mood, comments, requests string) panels.SurveyForm {
	return panels.SurveyForm{
		SleepLevel:  sleep,
		StressLevel: stress,
		Mood:        mood,
		Comments:    comments,
		Requests:    requests,
	}
}

// alertsPanel returns the shell's alert feed when the role has one.
func alertsPanel(shell portal.Shell) *panels.AlertsPanel {
	switch s := shell.(type) {
	case *portal.CourseLeadShell:
		return s.Alerts
	case *portal.WellbeingOfficerShell:
		return s.Alerts
	case *portal.StaffShell:
		return s.Alerts
	}
	return nil
}

// absenteesPanel returns the shell's attendance follow-up list when the role
// has one.
func absenteesPanel(shell portal.Shell) *panels.AbsenteesPanel {
	switch s := shell.(type) {
	case *portal.CourseLeadShell:
		return s.Absentees
	case *portal.StaffShell:
		return s.Absentees
	}
	return nil
}
