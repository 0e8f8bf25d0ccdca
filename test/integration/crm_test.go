package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitcrm/fitcrm/internal/client"
	"github.com/fitcrm/fitcrm/internal/config"
	"github.com/fitcrm/fitcrm/internal/events"
	"github.com/fitcrm/fitcrm/internal/models"
)

func newTestClient(t *testing.T, dataDir, baseURL string) *client.Client {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Storage.DataDir = dataDir
	cfg.Enrichment.BaseURL = baseURL
	require.NoError(t, cfg.EnsureDirectories())

	var buf bytes.Buffer
	logger := events.NewTestLogger(events.DebugLevel, "json", &buf)

	app, err := client.New(cfg, logger)
	require.NoError(t, err)
	t.Cleanup(func() { app.Close() })
	return app
}

func newExerciseServer(t *testing.T) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]any{
			"results": []models.Exercise{
				{Name: "Squat", Description: "<p>Keep the bar over mid-foot.</p>"},
				{Name: "Deadlift", Description: "Hinge at the hips."},
				{Name: "Bench Press", Description: "Feet planted, slight arch."},
				{Name: "Overhead Press", Description: "Brace before the drive."},
				{Name: "Row", Description: "Pull to the lower chest."},
				{Name: "Lunge", Description: "Step long, torso tall."},
			},
		}
		require.NoError(t, json.NewEncoder(w).Encode(payload))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func clientFields(name string) models.ClientFields {
	return models.ClientFields{
		FullName:  name,
		Age:       "34",
		Gender:    "female",
		Email:     "jane@example.com",
		Phone:     "5551234",
		Goal:      "Run a half marathon",
		StartDate: "2024-03-01",
	}
}

func TestCreateAndList(t *testing.T) {
	srv := newExerciseServer(t)
	app := newTestClient(t, t.TempDir(), srv.URL)

	rec, fieldErrs, err := app.Create.Submit(clientFields("Jane Doe"))
	require.NoError(t, err)
	require.Empty(t, fieldErrs)

	view, err := app.List.Load("")
	require.NoError(t, err)
	require.Len(t, view.Records, 1)
	assert.Equal(t, "Jane Doe", view.Records[0].FullName)
	assert.Empty(t, view.Records[0].History)
	assert.Equal(t, rec.ID, view.HighlightID)
}

func TestNewestFirstOrdering(t *testing.T) {
	srv := newExerciseServer(t)
	app := newTestClient(t, t.TempDir(), srv.URL)

	_, _, err := app.Create.Submit(clientFields("Client A"))
	require.NoError(t, err)
	_, _, err = app.Create.Submit(clientFields("Client B"))
	require.NoError(t, err)

	view, err := app.List.Load("")
	require.NoError(t, err)
	require.Len(t, view.Records, 2)
	assert.Equal(t, "Client B", view.Records[0].FullName)
	assert.Equal(t, "Client A", view.Records[1].FullName)
}

func TestDetailToEditHandoff(t *testing.T) {
	srv := newExerciseServer(t)
	app := newTestClient(t, t.TempDir(), srv.URL)

	rec, _, err := app.Create.Submit(clientFields("Jane Doe"))
	require.NoError(t, err)

	// The create highlight is unrelated to this flow; drain it
	_, err = app.List.Load("")
	require.NoError(t, err)

	require.NoError(t, app.List.Select(rec.ID))

	detail, err := app.Detail.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, detail.Record)
	assert.Equal(t, "Jane Doe", detail.Record.FullName)
	require.False(t, detail.Suggestions.Unavailable)
	assert.Len(t, detail.Suggestions.Items, 5)

	id, err := app.Detail.RequestEdit()
	require.NoError(t, err)
	assert.Equal(t, rec.ID, id)

	view, err := app.List.Load("")
	require.NoError(t, err)
	require.Equal(t, rec.ID, view.AutoEditID)

	form, err := app.List.BeginEdit(view.AutoEditID)
	require.NoError(t, err)
	form.Fields.Goal = "Finish a full marathon"

	updated, fieldErrs, err := app.List.SubmitEdit(form.ID, form.Fields)
	require.NoError(t, err)
	require.Empty(t, fieldErrs)
	assert.Equal(t, "Finish a full marathon", updated.Goal)
	assert.Equal(t, rec.ID, updated.ID)
}

func TestStatePersistsAcrossReopen(t *testing.T) {
	srv := newExerciseServer(t)
	dataDir := t.TempDir()

	app := newTestClient(t, dataDir, srv.URL)
	rec, _, err := app.Create.Submit(clientFields("Jane Doe"))
	require.NoError(t, err)
	require.NoError(t, app.List.Select(rec.ID))
	require.NoError(t, app.Close())

	reopened := newTestClient(t, dataDir, srv.URL)

	view, err := reopened.List.Load("")
	require.NoError(t, err)
	require.Len(t, view.Records, 1)
	assert.Equal(t, rec.ID, view.Records[0].ID)

	detail, err := reopened.Detail.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, detail.Record)
	assert.Equal(t, "Jane Doe", detail.Record.FullName)
}

func TestEnrichmentFailureDoesNotBlockDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	app := newTestClient(t, t.TempDir(), srv.URL)

	rec, _, err := app.Create.Submit(clientFields("Jane Doe"))
	require.NoError(t, err)
	require.NoError(t, app.List.Select(rec.ID))

	detail, err := app.Detail.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, detail.Record)
	assert.True(t, detail.Suggestions.Unavailable)
	assert.Empty(t, detail.Suggestions.Items)
}
