package apisvc

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

type AlertsAPI struct {
	c *Client
}

// Create raises an alert against a student.
func (a AlertsAPI) Create(ctx context.Context, studentID int, kind, message string) error {
	body := map[string]interface{}{
		"student_id": studentID,
		"alert_type": kind,
		"message":    message,
	}
	return a.c.post(ctx, "/alerts/create", body, nil)
}

func (a AlertsAPI) StudentAlerts(ctx context.Context, studentID int, includeRead bool) ([]Alert, error) {
	q := url.Values{"include_read": {strconv.FormatBool(includeRead)}}
	var alerts []Alert
	err := a.c.get(ctx, fmt.Sprintf("/alerts/student/%d", studentID), q, &alerts)
	return alerts, err
}

func (a AlertsAPI) Unread(ctx context.Context) ([]Alert, error) {
	var alerts []Alert
	err := a.c.get(ctx, "/alerts/unread", nil, &alerts)
	return alerts, err
}

// MarkRead flips an alert's read flag. One-way: there is no un-dismiss.
func (a AlertsAPI) MarkRead(ctx context.Context, alertID int) error {
	return a.c.put(ctx, fmt.Sprintf("/alerts/mark-read/%d", alertID), nil, nil)
}

// CheckWellbeing asks the backend to evaluate its wellbeing alert rules now.
func (a AlertsAPI) CheckWellbeing(ctx context.Context) (CheckWellbeingResult, error) {
	var result CheckWellbeingResult
	err := a.c.post(ctx, "/alerts/check-wellbeing", nil, &result)
	return result, err
}
