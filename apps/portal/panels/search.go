package panels

import (
	"context"
	"time"

	"github.com/everyedu/portal/core"
	apisvc "github.com/everyedu/portal/services/api"
)

// FilledFilter is the local (client-side) roster filter on today's form
// completion.
type FilledFilter int

const (
	FilledAll FilledFilter = iota
	FilledOnly
	NotFilledOnly
)

// SearchPanel is the wellbeing-officer roster: debounced search, server-side
// pagination, a local filled-today filter, and a per-student detail
// drill-down with its own fetch lifecycle.
type SearchPanel struct {
	lifecycle
	client      *apisvc.Client
	log         core.Logger
	debounce    *debouncer
	perPage     int
	historyDays int

	search string
	page   int
	filter FilledFilter
	roster apisvc.RosterPage

	detail   lifecycle
	selected *apisvc.StudentStatus
	history  []apisvc.WellbeingRecord
}

func NewSearchPanel(client *apisvc.Client, log core.Logger, window time.Duration, perPage, historyDays int) *SearchPanel {
	return &SearchPanel{
		client:      client,
		log:         log,
		debounce:    newDebouncer(window),
		perPage:     perPage,
		historyDays: historyDays,
		page:        1,
	}
}

// Refresh fetches the page for the current (search, page, per_page) key.
func (p *SearchPanel) Refresh(ctx context.Context) {
	var search string
	var page int
	p.read(func() { search, page = p.search, p.page })

	gen := p.begin()
	roster, err := p.client.Wellbeing.StudentsStatus(ctx, search, page, p.perPage)
	p.commit(gen, err, "Failed to load students", func() {
		p.roster = roster
	})
}

// SetSearch records new search text and schedules a page-1 re-fetch after
// the quiescence window; typing within the window coalesces into one fetch
// keyed on the final text.
func (p *SearchPanel) SetSearch(ctx context.Context, text string) {
	p.read(func() {
		p.search = text
		p.page = 1
	})
	p.debounce.trigger(func() { p.Refresh(ctx) })
}

// SetPage switches pages immediately; the in-flight page, if any, is
// superseded by generation.
func (p *SearchPanel) SetPage(ctx context.Context, page int) {
	changed := false
	p.read(func() {
		if page >= 1 && (p.roster.TotalPages == 0 || page <= p.roster.TotalPages) && page != p.page {
			p.page = page
			changed = true
		}
	})
	if changed {
		p.Refresh(ctx)
	}
}

func (p *SearchPanel) SetFilter(filter FilledFilter) {
	p.read(func() { p.filter = filter })
}

func (p *SearchPanel) Roster() apisvc.RosterPage {
	var out apisvc.RosterPage
	p.read(func() { out = p.roster })
	return out
}

// Students returns the current page with the local filled-today filter
// applied.
func (p *SearchPanel) Students() []apisvc.StudentStatus {
	var out []apisvc.StudentStatus
	p.read(func() {
		for _, s := range p.roster.Students {
			switch p.filter {
			case FilledOnly:
				if !s.FilledToday() {
					continue
				}
			case NotFilledOnly:
				if s.FilledToday() {
					continue
				}
			}
			out = append(out, s)
		}
	})
	return out
}

// Select drills into one student, fetching their recent wellbeing history.
func (p *SearchPanel) Select(ctx context.Context, student apisvc.StudentStatus) {
	p.read(func() { p.selected = &student })

	gen := p.detail.begin()
	records, err := p.client.Wellbeing.StudentRecords(ctx, student.ID, p.historyDays)
	p.detail.commit(gen, err, "Failed to load student details", func() {
		p.read(func() { p.history = records })
	})
}

func (p *SearchPanel) DetailState() State    { return p.detail.State() }
func (p *SearchPanel) DetailFailure() string { return p.detail.Failure() }

func (p *SearchPanel) Selected() *apisvc.StudentStatus {
	var out *apisvc.StudentStatus
	p.read(func() { out = p.selected })
	return out
}

func (p *SearchPanel) History() []apisvc.WellbeingRecord {
	var out []apisvc.WellbeingRecord
	p.read(func() { out = append(out, p.history...) })
	return out
}

// Close stops the pending debounce timer, if any.
func (p *SearchPanel) Close() {
	p.debounce.stop()
}
