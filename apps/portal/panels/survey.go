package panels

import (
	"context"
	"strconv"

	"github.com/pkg/errors"

	"github.com/everyedu/portal/core"
	apisvc "github.com/everyedu/portal/services/api"
)

// Moods selectable on the daily check-in.
var Moods = []string{"happy", "calm", "neutral", "sad", "anxious", "frustrated", "tired", "unwell"}

// SurveyForm is the daily check-in input. Comments and requests are optional.
type SurveyForm struct {
	SleepLevel  int    `json:"sleep_level" validate:"required,min=1,max=10"`
	StressLevel int    `json:"stress_level" validate:"required,min=1,max=10"`
	Mood        string `json:"mood" validate:"required,oneof=happy calm neutral sad anxious frustrated tired unwell"`
	Comments    string `json:"comments"`
	Requests    string `json:"requests"`
}

// Validate checks the form locally; no network call happens on failure.
func (f SurveyForm) Validate() error {
	if f.Mood == "" {
		return core.NewValidationError(errors.New("invalid input"),
			core.FieldError{Field: "mood", Error: "Please select your current mood"})
	}
	if err := core.Validate.Struct(f); err != nil {
		return core.NewValidationError(errors.New("invalid input"), core.TranslateValidationErrors(err)...)
	}
	return nil
}

// SurveyPanel submits the authenticated student's own daily check-in. The
// record is immutable after creation from the client's perspective.
type SurveyPanel struct {
	lifecycle
	client    *apisvc.Client
	log       core.Logger
	studentID int
	submitted bool
}

func NewSurveyPanel(client *apisvc.Client, log core.Logger, userID string) *SurveyPanel {
	id, _ := strconv.Atoi(userID)
	return &SurveyPanel{client: client, log: log, studentID: id}
}

func (p *SurveyPanel) Submit(ctx context.Context, form SurveyForm) error {
	if err := form.Validate(); err != nil {
		return err
	}
	err := p.client.Wellbeing.Record(ctx, apisvc.NewWellbeingRecord{
		StudentID:   p.studentID,
		SleepLevel:  form.SleepLevel,
		StressLevel: form.StressLevel,
		Mood:        form.Mood,
		Comments:    form.Comments,
		Requests:    form.Requests,
	})
	if err != nil {
		return errors.Wrap(err, "submitting check-in")
	}
	p.read(func() { p.submitted = true })
	return nil
}

func (p *SurveyPanel) Submitted() bool {
	var out bool
	p.read(func() { out = p.submitted })
	return out
}

// Reset allows submitting another response.
func (p *SurveyPanel) Reset() {
	p.read(func() { p.submitted = false })
}
