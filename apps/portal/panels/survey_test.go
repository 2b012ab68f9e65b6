package panels_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/everyedu/portal/apps/portal/panels"
	"github.com/everyedu/portal/core"
	"github.com/everyedu/portal/tests"
)

func TestSurveyForm_validate(t *testing.T) {
	tests := []struct {
		name      string
		form      panels.SurveyForm
		wantField string
		wantMsg   string
	}{
		{
			name: "valid",
			form: panels.SurveyForm{SleepLevel: 7, StressLevel: 4, Mood: "calm"},
		},
		{
			name:      "missing mood",
			form:      panels.SurveyForm{SleepLevel: 7, StressLevel: 4},
			wantField: "mood",
			wantMsg:   "Please select your current mood",
		},
		{
			name:      "unknown mood",
			form:      panels.SurveyForm{SleepLevel: 7, StressLevel: 4, Mood: "exultant"},
			wantField: "mood",
		},
		{
			name:      "stress out of range",
			form:      panels.SurveyForm{SleepLevel: 7, StressLevel: 11, Mood: "calm"},
			wantField: "stress_level",
		},
		{
			name:      "sleep missing",
			form:      panels.SurveyForm{StressLevel: 4, Mood: "calm"},
			wantField: "sleep_level",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.form.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var vErr *core.ValidationError
			if assert.True(t, errors.As(err, &vErr)) && assert.NotEmpty(t, vErr.Fields) {
				assert.Equal(t, tt.wantField, vErr.Fields[0].Field)
				if tt.wantMsg != "" {
					assert.Equal(t, tt.wantMsg, vErr.Fields[0].Error)
				}
			}
		})
	}
}

func TestSurveyPanel_submit(t *testing.T) {
	backend := testutil.NewBackend()
	defer backend.Close()
	client, _ := testutil.NewClient(backend)

	panel := panels.NewSurveyPanel(client, testutil.NewLogger(), "7")
	assert.False(t, panel.Submitted())

	// a locally invalid form never reaches the network
	err := panel.Submit(ctx, panels.SurveyForm{SleepLevel: 7, StressLevel: 4})
	assert.Error(t, err)
	assert.Equal(t, 0, backend.Calls("POST /api/wellbeing/record"))
	assert.False(t, panel.Submitted())

	err = panel.Submit(ctx, panels.SurveyForm{SleepLevel: 7, StressLevel: 4, Mood: "calm", Comments: "ok"})
	assert.NoError(t, err)
	assert.Equal(t, 1, backend.Calls("POST /api/wellbeing/record"))
	assert.True(t, panel.Submitted())

	panel.Reset()
	assert.False(t, panel.Submitted())
}
