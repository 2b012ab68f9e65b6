package panels_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/everyedu/portal/apps/portal/panels"
	apisvc "github.com/everyedu/portal/services/api"
	"github.com/everyedu/portal/tests"
)

func supportRoster() apisvc.RosterPage {
	return apisvc.RosterPage{
		Students: []apisvc.StudentStatus{
			{ID: 1, FirstName: "Ann", LastName: "Lee", LatestStress: intPtr(9)},                               // high stress
			{ID: 2, FirstName: "Ben", LastName: "Cole", LatestStress: intPtr(2), LatestMood: strPtr("Sad")},   // concerning mood
			{ID: 3, FirstName: "Cam", LastName: "Diaz", LatestStress: intPtr(7)},                              // at threshold
			{ID: 4, FirstName: "Dee", LastName: "Ng", LatestStress: intPtr(3), LatestMood: strPtr("happy")},   // fine
			{ID: 5, FirstName: "Ed", LastName: "Kim", LatestMood: strPtr("anxious")},                          // no stress reading
			{ID: 6, FirstName: "Fay", LastName: "Wu"},                                                         // no data
		},
		Total: 6, Page: 1, PerPage: 50, TotalPages: 1,
	}
}

func newSendHelpPanel(backend *testutil.Backend) *panels.SendHelpPanel {
	client, _ := testutil.NewClient(backend)
	conf := testutil.NewConfig(backend.URL())
	return panels.NewSendHelpPanel(client, testutil.NewLogger(), conf.Portal.HighStressLevel, conf.Portal.RosterPageSize)
}

func TestSendHelpPanel_supportSubset(t *testing.T) {
	backend := testutil.NewBackend()
	defer backend.Close()
	backend.Roster = supportRoster()

	panel := newSendHelpPanel(backend)
	panel.Refresh(ctx)
	assert.Equal(t, panels.Ready, panel.State())

	ids := make([]int, 0)
	for _, s := range panel.Students() {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []int{1, 2, 3, 5}, ids)
}

func TestSendHelpPanel_sendOne(t *testing.T) {
	backend := testutil.NewBackend()
	defer backend.Close()
	backend.Roster = supportRoster()

	panel := newSendHelpPanel(backend)
	panel.Refresh(ctx)

	student := panel.Students()[0]
	assert.NoError(t, panel.SendHelp(ctx, student))
	assert.True(t, panel.Notified(student.ID))

	if assert.Len(t, backend.Created, 1) {
		created := backend.Created[0]
		assert.Equal(t, 1, created.StudentID)
		assert.Equal(t, apisvc.AlertWellbeingSupport, created.Kind)
		assert.Contains(t, created.Message, "Hi Ann, we noticed you may be feeling stressed.")
	}
}

func TestSendHelpPanel_broadcast(t *testing.T) {
	backend := testutil.NewBackend()
	defer backend.Close()
	backend.Roster = supportRoster()
	// one recipient fails; the rest still go out
	backend.CreateStatus = func(studentID int) int {
		if studentID == 3 {
			return 500
		}
		return 0
	}

	panel := newSendHelpPanel(backend)
	panel.Refresh(ctx)

	sent := panel.BroadcastHelp(ctx)
	assert.Equal(t, 3, sent)
	assert.True(t, panel.Notified(1))
	assert.True(t, panel.Notified(2))
	assert.False(t, panel.Notified(3))
	assert.True(t, panel.Notified(5))

	// a second broadcast only retries the failed recipient
	backend.CreateStatus = nil
	assert.Equal(t, 1, panel.BroadcastHelp(ctx))
	assert.True(t, panel.Notified(3))
}
