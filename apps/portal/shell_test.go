package portal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/everyedu/portal/apps/portal"
	apisvc "github.com/everyedu/portal/services/api"
	"github.com/everyedu/portal/tests"
)

func login(t *testing.T, backend *testutil.Backend, role string) *portal.Router {
	t.Helper()
	backend.Login = apisvc.LoginResponse{AccessToken: "tok", UserID: 7, Username: "alice", Role: role}
	router, _ := newRouter(backend)
	router.Start(ctx)
	if err := router.Login(ctx, portal.LoginForm{Username: "alice", Password: "secret1"}); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	return router
}

func TestStudentShell_lazyHistory(t *testing.T) {
	backend := testutil.NewBackend()
	defer backend.Close()
	backend.Records[7] = []apisvc.WellbeingRecord{
		{ID: 1, StudentID: 7, SleepLevel: 6, StressLevel: 3, Mood: "calm", RecordedDate: "2026-08-27"},
	}

	router := login(t, backend, "student")
	shell := router.Shell().(*portal.StudentShell)

	// mounting the check-in tab fetches nothing
	assert.Equal(t, portal.TabCheckin, shell.ActiveTab())
	assert.Equal(t, 0, backend.Calls("GET /api/wellbeing/records/:id"))

	shell.Activate(ctx, portal.TabHistory)
	assert.Equal(t, portal.TabHistory, shell.ActiveTab())
	assert.Equal(t, 1, backend.Calls("GET /api/wellbeing/records/:id"))
	assert.Len(t, shell.History.Records(), 1)

	// revisiting the tab reuses the loaded data
	shell.Activate(ctx, portal.TabCheckin)
	shell.Activate(ctx, portal.TabHistory)
	assert.Equal(t, 1, backend.Calls("GET /api/wellbeing/records/:id"))

	// unknown tabs are ignored
	shell.Activate(ctx, "grades")
	assert.Equal(t, portal.TabHistory, shell.ActiveTab())
}

func TestCourseLeadShell_mountAndTabs(t *testing.T) {
	backend := testutil.NewBackend()
	defer backend.Close()
	backend.Summary = apisvc.AttendanceSummary{TotalStudents: 20, TotalPresent: 150, TotalAbsent: 50, OverallAttendanceRate: 0.75}
	backend.Unread = []apisvc.Alert{
		{ID: 1, StudentID: 1, Kind: apisvc.AlertLowAttendance, Message: "Low attendance"},
		{ID: 2, StudentID: 2, Kind: apisvc.AlertHighStress, Message: "High stress"},
	}

	router := login(t, backend, "course_lead")
	shell := router.Shell().(*portal.CourseLeadShell)

	// mount fetched the overview summary and the alert feed for the badge
	assert.Equal(t, 1, backend.Calls("GET /api/attendance/summary"))
	assert.Equal(t, 1, backend.Calls("GET /api/alerts/unread"))
	assert.Equal(t, 20, shell.Summary.Summary().TotalStudents)

	// the feed is attendance-filtered, and so is the badge
	assert.Equal(t, 1, shell.AlertCount())

	// attendance and analytics load on first activation only
	assert.Equal(t, 0, backend.Calls("GET /api/attendance/absent-students"))
	shell.Activate(ctx, portal.TabAttendance)
	shell.Activate(ctx, portal.TabAnalytics)
	shell.Activate(ctx, portal.TabAttendance)
	assert.Equal(t, 1, backend.Calls("GET /api/attendance/absent-students"))
	assert.Equal(t, 1, backend.Calls("GET /api/attendance/attendance-grades-correlation"))
}

func TestWellbeingOfficerShell_mountAndTabs(t *testing.T) {
	backend := testutil.NewBackend()
	defer backend.Close()
	backend.Roster = apisvc.RosterPage{
		Students: []apisvc.StudentStatus{{ID: 1, FirstName: "Ann", LastName: "Lee", HasFilledToday: 1}},
		Total:    1, Page: 1, PerPage: 50, TotalPages: 1,
	}
	backend.Unread = []apisvc.Alert{
		{ID: 1, StudentID: 1, Kind: apisvc.AlertLowAttendance, Message: "Low attendance"},
		{ID: 2, StudentID: 2, Kind: apisvc.AlertHighStress, Message: "High stress"},
	}

	router := login(t, backend, "wellbeing_officer")
	shell := router.Shell().(*portal.WellbeingOfficerShell)
	defer shell.Unmount()

	// the default students tab loads at mount
	assert.Equal(t, portal.TabStudents, shell.ActiveTab())
	assert.Equal(t, 1, backend.Calls("GET /api/wellbeing/students-status"))
	assert.Len(t, shell.Search.Students(), 1)

	// wellbeing-filtered feed
	assert.Equal(t, 1, shell.AlertCount())

	assert.Equal(t, 0, backend.Calls("GET /api/wellbeing/heatmap-data"))
	shell.Activate(ctx, portal.TabWellbeing)
	assert.Equal(t, 1, backend.Calls("GET /api/wellbeing/heatmap-data"))
	assert.Equal(t, 1, backend.Calls("GET /api/wellbeing/stress-over-time"))

	shell.Activate(ctx, portal.TabSendHelp)
	assert.Equal(t, 2, backend.Calls("GET /api/wellbeing/students-status"))
}

func TestStaffShell_unfilteredAlerts(t *testing.T) {
	backend := testutil.NewBackend()
	defer backend.Close()
	backend.Unread = []apisvc.Alert{
		{ID: 1, StudentID: 1, Kind: apisvc.AlertLowAttendance, Message: "Low attendance"},
		{ID: 2, StudentID: 2, Kind: apisvc.AlertHighStress, Message: "High stress"},
		{ID: 3, StudentID: 3, Kind: "other", Message: "Note"},
	}

	router := login(t, backend, "staff")
	shell := router.Shell().(*portal.StaffShell)

	assert.Equal(t, []string{"overview", "wellbeing", "attendance", "analytics", "alerts"}, shell.Tabs())
	assert.Equal(t, 3, shell.AlertCount())

	shell.Activate(ctx, portal.TabAttendance)
	assert.Equal(t, 1, backend.Calls("GET /api/attendance/absent-students"))
}
