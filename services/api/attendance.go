package apisvc

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

type AttendanceAPI struct {
	c *Client
}

// Record marks one class attendance.
func (a AttendanceAPI) Record(ctx context.Context, studentID int, classDate string, present bool) error {
	body := map[string]interface{}{
		"student_id": studentID,
		"class_date": classDate,
		"present":    present,
	}
	return a.c.post(ctx, "/attendance/record", body, nil)
}

// StudentAttendance returns one student's attendance window.
func (a AttendanceAPI) StudentAttendance(ctx context.Context, studentID, days int) ([]AttendanceRecord, error) {
	q := url.Values{"days": {strconv.Itoa(days)}}
	var records []AttendanceRecord
	err := a.c.get(ctx, fmt.Sprintf("/attendance/student/%d", studentID), q, &records)
	return records, err
}

// AbsentStudents returns the roster under an attendance-rate threshold.
func (a AttendanceAPI) AbsentStudents(ctx context.Context, days int, threshold float64) ([]AbsentStudent, error) {
	q := url.Values{
		"days":      {strconv.Itoa(days)},
		"threshold": {strconv.FormatFloat(threshold, 'f', -1, 64)},
	}
	var students []AbsentStudent
	err := a.c.get(ctx, "/attendance/absent-students", q, &students)
	return students, err
}

// GradesCorrelation returns joined attendance/grade rows.
func (a AttendanceAPI) GradesCorrelation(ctx context.Context, days int) ([]CorrelationRow, error) {
	q := url.Values{"days": {strconv.Itoa(days)}}
	var rows []CorrelationRow
	err := a.c.get(ctx, "/attendance/attendance-grades-correlation", q, &rows)
	return rows, err
}

// Summary returns institution-wide attendance counts.
func (a AttendanceAPI) Summary(ctx context.Context) (AttendanceSummary, error) {
	var summary AttendanceSummary
	err := a.c.get(ctx, "/attendance/summary", nil, &summary)
	return summary, err
}
