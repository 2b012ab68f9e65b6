package apisvc

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

type WellbeingAPI struct {
	c *Client
}

// Record submits a daily self-report for a student.
func (w WellbeingAPI) Record(ctx context.Context, rec NewWellbeingRecord) error {
	return w.c.post(ctx, "/wellbeing/record", rec, nil)
}

// StudentRecords returns one student's self-reports over the last days.
func (w WellbeingAPI) StudentRecords(ctx context.Context, studentID, days int) ([]WellbeingRecord, error) {
	q := url.Values{"days": {strconv.Itoa(days)}}
	var records []WellbeingRecord
	err := w.c.get(ctx, fmt.Sprintf("/wellbeing/records/%d", studentID), q, &records)
	return records, err
}

// StressOverTime returns the stress series for one student, or the daily
// all-student average when studentID is zero.
func (w WellbeingAPI) StressOverTime(ctx context.Context, studentID, days int) ([]StressPoint, error) {
	q := url.Values{"days": {strconv.Itoa(days)}}
	if studentID != 0 {
		q.Set("student_id", strconv.Itoa(studentID))
	}
	var points []StressPoint
	err := w.c.get(ctx, "/wellbeing/stress-over-time", q, &points)
	return points, err
}

// HeatmapData returns the per-student aggregate stress snapshot.
func (w WellbeingAPI) HeatmapData(ctx context.Context) ([]HeatmapCell, error) {
	var cells []HeatmapCell
	err := w.c.get(ctx, "/wellbeing/heatmap-data", nil, &cells)
	return cells, err
}

// StudentsStatus returns the paginated roster with today's fill status.
func (w WellbeingAPI) StudentsStatus(ctx context.Context, search string, page, perPage int) (RosterPage, error) {
	q := url.Values{
		"search":   {search},
		"page":     {strconv.Itoa(page)},
		"per_page": {strconv.Itoa(perPage)},
	}
	var roster RosterPage
	err := w.c.get(ctx, "/wellbeing/students-status", q, &roster)
	return roster, err
}
