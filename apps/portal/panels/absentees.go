package panels

import (
	"context"

	"github.com/everyedu/portal/core"
	apisvc "github.com/everyedu/portal/services/api"
)

const lowAttendanceMessage = "You have been absent from recent classes. Please contact your course lead for support."

// AbsenteesPanel lists students below the attendance-rate threshold and lets
// staff raise a low_attendance alert per student.
type AbsenteesPanel struct {
	lifecycle
	client    *apisvc.Client
	log       core.Logger
	days      int
	threshold float64
	students  []apisvc.AbsentStudent
	notified  map[int]bool
}

func NewAbsenteesPanel(client *apisvc.Client, log core.Logger, days int, threshold float64) *AbsenteesPanel {
	return &AbsenteesPanel{
		client:    client,
		log:       log,
		days:      days,
		threshold: threshold,
		notified:  make(map[int]bool),
	}
}

func (p *AbsenteesPanel) Refresh(ctx context.Context) {
	gen := p.begin()
	students, err := p.client.Attendance.AbsentStudents(ctx, p.days, p.threshold)
	p.commit(gen, err, "Failed to load absent students", func() {
		p.students = students
	})
}

func (p *AbsenteesPanel) Students() []apisvc.AbsentStudent {
	var out []apisvc.AbsentStudent
	p.read(func() { out = append(out, p.students...) })
	return out
}

func (p *AbsenteesPanel) Notified(studentID int) bool {
	var out bool
	p.read(func() { out = p.notified[studentID] })
	return out
}

// Notify raises a low_attendance alert for the student and marks the row
// notified only after the call succeeds.
func (p *AbsenteesPanel) Notify(ctx context.Context, studentID int) error {
	if err := p.client.Alerts.Create(ctx, studentID, apisvc.AlertLowAttendance, lowAttendanceMessage); err != nil {
		p.log.Warn("failed to send attendance notification", err)
		return err
	}
	p.read(func() { p.notified[studentID] = true })
	return nil
}
