package panels

import (
	"context"
	"fmt"
	"strings"

	"github.com/everyedu/portal/core"
	apisvc "github.com/everyedu/portal/services/api"
)

// Moods that flag a student for outreach regardless of stress level.
var concerningMoods = map[string]bool{"anxious": true, "stressed": true, "sad": true}

func helpMessage(firstName string) string {
	return fmt.Sprintf("Hi %s, we noticed you may be feeling stressed. Do you need help? "+
		"Our wellbeing team is here to support you. Please reach out if you'd like to talk.", firstName)
}

// SendHelpPanel surfaces students who may need support (stress at or above
// the threshold, or a concerning mood) and sends wellbeing_support alerts,
// one per recipient.
type SendHelpPanel struct {
	lifecycle
	client     *apisvc.Client
	log        core.Logger
	highStress int
	perPage    int
	students   []apisvc.StudentStatus
	notified   map[int]bool
}

func NewSendHelpPanel(client *apisvc.Client, log core.Logger, highStress, perPage int) *SendHelpPanel {
	return &SendHelpPanel{
		client:     client,
		log:        log,
		highStress: highStress,
		perPage:    perPage,
		notified:   make(map[int]bool),
	}
}

func (p *SendHelpPanel) Refresh(ctx context.Context) {
	gen := p.begin()
	roster, err := p.client.Wellbeing.StudentsStatus(ctx, "", 1, p.perPage)
	p.commit(gen, err, "Failed to load stressed students", func() {
		p.students = p.needsSupport(roster.Students)
	})
}

func (p *SendHelpPanel) needsSupport(students []apisvc.StudentStatus) []apisvc.StudentStatus {
	out := make([]apisvc.StudentStatus, 0)
	for _, s := range students {
		highStress := s.LatestStress != nil && *s.LatestStress >= p.highStress
		badMood := s.LatestMood != nil && concerningMoods[strings.ToLower(*s.LatestMood)]
		if highStress || badMood {
			out = append(out, s)
		}
	}
	return out
}

func (p *SendHelpPanel) Students() []apisvc.StudentStatus {
	var out []apisvc.StudentStatus
	p.read(func() { out = append(out, p.students...) })
	return out
}

func (p *SendHelpPanel) Notified(studentID int) bool {
	var out bool
	p.read(func() { out = p.notified[studentID] })
	return out
}

// SendHelp posts a support alert to one student.
func (p *SendHelpPanel) SendHelp(ctx context.Context, student apisvc.StudentStatus) error {
	if err := p.client.Alerts.Create(ctx, student.ID, apisvc.AlertWellbeingSupport, helpMessage(student.FirstName)); err != nil {
		p.log.Warn("failed to send support message", err)
		return err
	}
	p.read(func() { p.notified[student.ID] = true })
	return nil
}

// BroadcastHelp messages every not-yet-notified student in the current
// subset, sequentially. A per-recipient failure is logged and skipped; it
// does not abort the remaining recipients. Returns how many were sent.
func (p *SendHelpPanel) BroadcastHelp(ctx context.Context) int {
	var pending []apisvc.StudentStatus
	p.read(func() {
		for _, s := range p.students {
			if !p.notified[s.ID] {
				pending = append(pending, s)
			}
		}
	})

	sent := 0
	for _, student := range pending {
		if err := p.client.Alerts.Create(ctx, student.ID, apisvc.AlertWellbeingSupport, helpMessage(student.FirstName)); err != nil {
			p.log.Warn(fmt.Sprintf("failed to notify %s %s", student.FirstName, student.LastName), err)
			continue
		}
		p.read(func() { p.notified[student.ID] = true })
		sent++
	}
	return sent
}
