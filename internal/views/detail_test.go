package views_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitcrm/fitcrm/internal/events"
	"github.com/fitcrm/fitcrm/internal/models"
	"github.com/fitcrm/fitcrm/internal/session"
	"github.com/fitcrm/fitcrm/internal/store"
	"github.com/fitcrm/fitcrm/internal/views"
)

// stubEnricher returns a fixed suggestion set and records whether it ran.
type stubEnricher struct {
	set      models.SuggestionSet
	called   bool
	clientID string
}

func (s *stubEnricher) Suggest(ctx context.Context) models.SuggestionSet {
	s.called = true
	s.clientID = events.GetClientID(ctx)
	return s.set
}

func newDetailFixture(t *testing.T, en views.Enricher) (*views.DetailController, *store.MockStore, *session.MemoryChannel) {
	t.Helper()
	st := store.NewMockStore()
	ch := session.NewMemoryChannel()
	return views.NewDetailController(st, ch, en, testLogger()), st, ch
}

func TestDetailLoad(t *testing.T) {
	en := &stubEnricher{set: models.SuggestionSet{
		Items: []models.Suggestion{{Name: "Squat", Description: "Keep the bar over mid-foot."}},
	}}
	ctrl, st, ch := newDetailFixture(t, en)

	rec := mustCreate(t, st, "Ann Lee")
	require.NoError(t, ch.SetSelected(rec.ID))

	view, err := ctrl.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, view.Record)
	assert.Equal(t, "Ann Lee", view.Record.FullName)
	require.Len(t, view.Suggestions.Items, 1)
	assert.Equal(t, "Squat", view.Suggestions.Items[0].Name)

	// Enrichment ran with the selected client tagged on the context
	assert.True(t, en.called)
	assert.Equal(t, rec.ID, en.clientID)
}

func TestDetailLoadNoSelection(t *testing.T) {
	en := &stubEnricher{}
	ctrl, _, _ := newDetailFixture(t, en)

	view, err := ctrl.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, view.Record)
	assert.False(t, en.called)
}

func TestDetailLoadStaleSelection(t *testing.T) {
	en := &stubEnricher{}
	ctrl, st, ch := newDetailFixture(t, en)

	rec := mustCreate(t, st, "Ann Lee")
	require.NoError(t, ch.SetSelected(rec.ID))
	require.NoError(t, st.Delete(rec.ID))

	view, err := ctrl.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, view.Record)
	assert.False(t, en.called)
}

func TestDetailLoadNilEnricher(t *testing.T) {
	ctrl, st, ch := newDetailFixture(t, nil)

	rec := mustCreate(t, st, "Ann Lee")
	require.NoError(t, ch.SetSelected(rec.ID))

	view, err := ctrl.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, view.Record)
	assert.True(t, view.Suggestions.Unavailable)
}

func TestDetailLoadUnavailableSuggestions(t *testing.T) {
	en := &stubEnricher{set: models.SuggestionSet{Unavailable: true}}
	ctrl, st, ch := newDetailFixture(t, en)

	rec := mustCreate(t, st, "Ann Lee")
	require.NoError(t, ch.SetSelected(rec.ID))

	// An unavailable suggestion set never blocks the record itself
	view, err := ctrl.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, view.Record)
	assert.True(t, view.Suggestions.Unavailable)
}

func TestDetailRequestEdit(t *testing.T) {
	ctrl, st, ch := newDetailFixture(t, nil)

	rec := mustCreate(t, st, "Ann Lee")
	require.NoError(t, ch.SetSelected(rec.ID))

	id, err := ctrl.RequestEdit()
	require.NoError(t, err)
	assert.Equal(t, rec.ID, id)

	pending, err := ch.ConsumeEditRequest()
	require.NoError(t, err)
	assert.Equal(t, rec.ID, pending)

	// The selection itself survives the signal
	sel, err := ch.Selected()
	require.NoError(t, err)
	assert.Equal(t, rec.ID, sel)
}

func TestDetailRequestEditNoSelection(t *testing.T) {
	ctrl, _, _ := newDetailFixture(t, nil)

	_, err := ctrl.RequestEdit()
	assert.ErrorIs(t, err, models.ErrNoSelection)
}
