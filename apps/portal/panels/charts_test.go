package panels_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/everyedu/portal/apps/portal/panels"
	apisvc "github.com/everyedu/portal/services/api"
	"github.com/everyedu/portal/tests"
)

func TestStressBand(t *testing.T) {
	tests := []struct {
		avg  float64
		want string
	}{
		{avg: 9.2, want: "very high"},
		{avg: 8, want: "very high"},
		{avg: 6.5, want: "high"},
		{avg: 4, want: "medium"},
		{avg: 2.1, want: "low"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, panels.StressBand(tt.avg), "StressBand(%v)", tt.avg)
	}
}

func TestStressPanel_normalizesBothShapes(t *testing.T) {
	backend := testutil.NewBackend()
	defer backend.Close()
	// aggregate rows use {date, avg_stress}; per-student rows use
	// {recorded_date, stress_level}
	backend.Stress = []apisvc.StressPoint{
		{Date: "2026-08-25", AvgStress: fltPtr(5.5)},
		{RecordedDate: "2026-08-26", StressLevel: fltPtr(7)},
	}
	client, _ := testutil.NewClient(backend)

	panel := panels.NewStressPanel(client, 0, 30)
	panel.Refresh(ctx)
	assert.Equal(t, panels.Ready, panel.State())

	points := panel.Points()
	if assert.Len(t, points, 2) {
		assert.Equal(t, panels.TrendPoint{Date: "2026-08-25", Level: 5.5}, points[0])
		assert.Equal(t, panels.TrendPoint{Date: "2026-08-26", Level: 7}, points[1])
	}
}

func TestCorrelationPanel_points(t *testing.T) {
	backend := testutil.NewBackend()
	defer backend.Close()
	backend.Correlation = []apisvc.CorrelationRow{
		{ID: 1, FirstName: "Annabelle", LastName: "Richardson", AttendanceRate: 0.9, AvgGrade: fltPtr(71.5)},
		{ID: 2, FirstName: "Ben", LastName: "Cole", AttendanceRate: 0.4}, // no grades yet
	}
	client, _ := testutil.NewClient(backend)

	panel := panels.NewCorrelationPanel(client, 30)
	panel.Refresh(ctx)
	assert.Equal(t, panels.Ready, panel.State())

	points := panel.Points()
	if assert.Len(t, points, 2) {
		// long names are truncated for axis labels
		assert.Equal(t, "Annabelle ", points[0].Name)
		assert.Equal(t, 90.0, points[0].AttendancePct)
		assert.Equal(t, 71.5, points[0].AverageGrade)

		assert.Equal(t, 40.0, points[1].AttendancePct)
		assert.Equal(t, 0.0, points[1].AverageGrade)
	}
}

func TestHistoryPanel_records(t *testing.T) {
	backend := testutil.NewBackend()
	defer backend.Close()
	backend.Records[7] = []apisvc.WellbeingRecord{
		{ID: 1, StudentID: 7, SleepLevel: 6, StressLevel: 3, Mood: "calm", RecordedDate: "2026-08-26"},
		{ID: 2, StudentID: 7, SleepLevel: 4, StressLevel: 8, Mood: "anxious", RecordedDate: "2026-08-27"},
	}
	client, _ := testutil.NewClient(backend)

	panel := panels.NewHistoryPanel(client, "7", 30)
	panel.Refresh(ctx)
	assert.Equal(t, panels.Ready, panel.State())
	assert.Len(t, panel.Records(), 2)
}
