package panels

import (
	"context"
	"strconv"

	apisvc "github.com/everyedu/portal/services/api"
)

// HeatmapPanel holds the per-student aggregate stress snapshot.
type HeatmapPanel struct {
	lifecycle
	client *apisvc.Client
	cells  []apisvc.HeatmapCell
}

func NewHeatmapPanel(client *apisvc.Client) *HeatmapPanel {
	return &HeatmapPanel{client: client}
}

func (p *HeatmapPanel) Refresh(ctx context.Context) {
	gen := p.begin()
	cells, err := p.client.Wellbeing.HeatmapData(ctx)
	p.commit(gen, err, "Failed to load heatmap data", func() {
		p.cells = cells
	})
}

func (p *HeatmapPanel) Cells() []apisvc.HeatmapCell {
	var out []apisvc.HeatmapCell
	p.read(func() { out = append(out, p.cells...) })
	return out
}

// StressBand labels an average stress level for display.
func StressBand(avgStress float64) string {
	switch {
	case avgStress >= 8:
		return "very high"
	case avgStress >= 6:
		return "high"
	case avgStress >= 4:
		return "medium"
	default:
		return "low"
	}
}

// TrendPoint is one normalized point of a time series.
type TrendPoint struct {
	Date  string
	Level float64
}

// StressPanel holds the stress-over-time series: one student's raw readings,
// or the all-student daily average when studentID is zero.
type StressPanel struct {
	lifecycle
	client    *apisvc.Client
	studentID int
	days      int
	points    []TrendPoint
}

func NewStressPanel(client *apisvc.Client, studentID, days int) *StressPanel {
	return &StressPanel{client: client, studentID: studentID, days: days}
}

func (p *StressPanel) Refresh(ctx context.Context) {
	gen := p.begin()
	raw, err := p.client.Wellbeing.StressOverTime(ctx, p.studentID, p.days)
	p.commit(gen, err, "Failed to load stress data", func() {
		points := make([]TrendPoint, 0, len(raw))
		for _, pt := range raw {
			points = append(points, TrendPoint{Date: pt.When(), Level: pt.Level()})
		}
		p.points = points
	})
}

func (p *StressPanel) Points() []TrendPoint {
	var out []TrendPoint
	p.read(func() { out = append(out, p.points...) })
	return out
}

// CorrelationPoint is one row of the attendance/grades comparison, shaped
// for display: rate as a percentage, a missing average grade as zero.
type CorrelationPoint struct {
	Name          string
	AttendancePct float64
	AverageGrade  float64
}

// CorrelationPanel holds the joined attendance/grade rows.
type CorrelationPanel struct {
	lifecycle
	client *apisvc.Client
	days   int
	points []CorrelationPoint
}

func NewCorrelationPanel(client *apisvc.Client, days int) *CorrelationPanel {
	return &CorrelationPanel{client: client, days: days}
}

func (p *CorrelationPanel) Refresh(ctx context.Context) {
	gen := p.begin()
	rows, err := p.client.Attendance.GradesCorrelation(ctx, p.days)
	p.commit(gen, err, "Failed to load attendance and grades data", func() {
		points := make([]CorrelationPoint, 0, len(rows))
		for _, row := range rows {
			pt := CorrelationPoint{
				Name:          truncate(row.FirstName+" "+row.LastName, 10),
				AttendancePct: row.AttendanceRate * 100,
			}
			if row.AvgGrade != nil {
				pt.AverageGrade = *row.AvgGrade
			}
			points = append(points, pt)
		}
		p.points = points
	})
}

func (p *CorrelationPanel) Points() []CorrelationPoint {
	var out []CorrelationPoint
	p.read(func() { out = append(out, p.points...) })
	return out
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// SummaryPanel holds the institution-wide attendance counts shown on staff
// overview tabs.
type SummaryPanel struct {
	lifecycle
	client  *apisvc.Client
	summary apisvc.AttendanceSummary
}

func NewSummaryPanel(client *apisvc.Client) *SummaryPanel {
	return &SummaryPanel{client: client}
}

func (p *SummaryPanel) Refresh(ctx context.Context) {
	gen := p.begin()
	summary, err := p.client.Attendance.Summary(ctx)
	p.commit(gen, err, "Failed to load summary", func() {
		p.summary = summary
	})
}

func (p *SummaryPanel) Summary() apisvc.AttendanceSummary {
	var out apisvc.AttendanceSummary
	p.read(func() { out = p.summary })
	return out
}

// HistoryPanel holds the authenticated student's own recent check-ins.
type HistoryPanel struct {
	lifecycle
	client    *apisvc.Client
	studentID int
	days      int
	records   []apisvc.WellbeingRecord
}

func NewHistoryPanel(client *apisvc.Client, userID string, days int) *HistoryPanel {
	id, _ := strconv.Atoi(userID)
	return &HistoryPanel{client: client, studentID: id, days: days}
}

func (p *HistoryPanel) Refresh(ctx context.Context) {
	gen := p.begin()
	records, err := p.client.Wellbeing.StudentRecords(ctx, p.studentID, p.days)
	p.commit(gen, err, "Failed to load your wellbeing history", func() {
		p.records = records
	})
}

func (p *HistoryPanel) Records() []apisvc.WellbeingRecord {
	var out []apisvc.WellbeingRecord
	p.read(func() { out = append(out, p.records...) })
	return out
}
