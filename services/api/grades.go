package apisvc

import (
	"context"
	"fmt"
)

type GradesAPI struct {
	c *Client
}

func (g GradesAPI) Record(ctx context.Context, studentID, assignmentID int, grade float64, feedback string) error {
	body := map[string]interface{}{
		"student_id":    studentID,
		"assignment_id": assignmentID,
		"grade":         grade,
		"feedback":      feedback,
	}
	return g.c.post(ctx, "/grades/record", body, nil)
}

func (g GradesAPI) StudentGrades(ctx context.Context, studentID int) ([]Grade, error) {
	var grades []Grade
	err := g.c.get(ctx, fmt.Sprintf("/grades/student/%d", studentID), nil, &grades)
	return grades, err
}

func (g GradesAPI) AssignmentGrades(ctx context.Context, assignmentID int) ([]AssignmentGrade, error) {
	var grades []AssignmentGrade
	err := g.c.get(ctx, fmt.Sprintf("/grades/assignment/%d", assignmentID), nil, &grades)
	return grades, err
}

func (g GradesAPI) Statistics(ctx context.Context) (GradeStatistics, error) {
	var stats GradeStatistics
	err := g.c.get(ctx, "/grades/statistics", nil, &stats)
	return stats, err
}

func (g GradesAPI) PerformanceByAttendance(ctx context.Context) ([]PerformanceRow, error) {
	var rows []PerformanceRow
	err := g.c.get(ctx, "/grades/performance-by-attendance", nil, &rows)
	return rows, err
}
