package panels

import (
	"context"
	"strings"

	"github.com/everyedu/portal/core"
	apisvc "github.com/everyedu/portal/services/api"
)

// AlertFilter selects which slice of the unread feed a panel shows. The
// filters are mutually exclusive and applied client-side to a single fetch.
type AlertFilter int

const (
	FilterNone AlertFilter = iota
	FilterWellbeing
	FilterAttendance
)

// AlertsPanel owns the unread-alerts feed. Dismissing an alert marks it read
// server-side then drops it locally; the read flag is one-way so no re-fetch
// is needed.
type AlertsPanel struct {
	lifecycle
	client *apisvc.Client
	log    core.Logger
	filter AlertFilter
	alerts []apisvc.Alert
}

func NewAlertsPanel(client *apisvc.Client, log core.Logger, filter AlertFilter) *AlertsPanel {
	return &AlertsPanel{client: client, log: log, filter: filter}
}

func (p *AlertsPanel) Refresh(ctx context.Context) {
	gen := p.begin()
	alerts, err := p.client.Alerts.Unread(ctx)
	p.commit(gen, err, "Failed to load alerts", func() {
		p.alerts = filterAlerts(alerts, p.filter)
	})
}

// Alerts returns the current filtered feed.
func (p *AlertsPanel) Alerts() []apisvc.Alert {
	var out []apisvc.Alert
	p.read(func() {
		out = append(out, p.alerts...)
	})
	return out
}

// Dismiss marks the alert read and removes it from the local list. On
// failure the list is left unchanged and the error is returned for a
// transient notice; there is no automatic retry.
func (p *AlertsPanel) Dismiss(ctx context.Context, alertID int) error {
	if err := p.client.Alerts.MarkRead(ctx, alertID); err != nil {
		p.log.Warn("failed to mark alert as read", err)
		return err
	}
	p.read(func() {
		kept := p.alerts[:0]
		for _, a := range p.alerts {
			if a.ID != alertID {
				kept = append(kept, a)
			}
		}
		p.alerts = kept
	})
	return nil
}

func filterAlerts(alerts []apisvc.Alert, filter AlertFilter) []apisvc.Alert {
	if filter == FilterNone {
		return alerts
	}
	out := make([]apisvc.Alert, 0, len(alerts))
	for _, a := range alerts {
		switch filter {
		case FilterWellbeing:
			if a.Kind == apisvc.AlertHighStress || a.Kind == apisvc.AlertLowSleep || a.Kind == apisvc.AlertWellbeing {
				out = append(out, a)
			}
		case FilterAttendance:
			msg := strings.ToLower(a.Message)
			if a.Kind == apisvc.AlertLowAttendance || a.Kind == apisvc.AlertAttendance ||
				strings.Contains(msg, "attendance") || strings.Contains(msg, "absent") {
				out = append(out, a)
			}
		}
	}
	return out
}
