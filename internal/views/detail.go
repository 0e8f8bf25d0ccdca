package views

import (
	"context"
	"errors"
	"fmt"

	"github.com/fitcrm/fitcrm/internal/events"
	"github.com/fitcrm/fitcrm/internal/models"
	"github.com/fitcrm/fitcrm/internal/session"
	"github.com/fitcrm/fitcrm/internal/store"
)

// Enricher supplies exercise suggestions for the detail view.
type Enricher interface {
	Suggest(ctx context.Context) models.SuggestionSet
}

// DetailController handles the single-client screen.
type DetailController struct {
	store    store.Store
	channel  session.Channel
	enricher Enricher
	logger   *events.Logger
}

// NewDetailController wires the detail screen. The enricher may be nil;
// suggestions then simply stay unavailable.
func NewDetailController(st store.Store, ch session.Channel, en Enricher, logger *events.Logger) *DetailController {
	return &DetailController{
		store:    st,
		channel:  ch,
		enricher: en,
		logger:   logger.WithField("view", "detail"),
	}
}

// DetailView is the data for one load of the detail screen. A nil Record
// means the selection was absent or stale and the renderer shows the
// not-found state; suggestions are skipped in that case.
type DetailView struct {
	Record      *models.ClientRecord
	Suggestions models.SuggestionSet
}

// Load resolves the current selection and, when the record exists,
// triggers the exercise enrichment.
func (c *DetailController) Load(ctx context.Context) (*DetailView, error) {
	id, err := c.channel.Selected()
	if err != nil {
		return nil, fmt.Errorf("read selection: %w", err)
	}
	if id == "" {
		return &DetailView{}, nil
	}

	rec, err := c.store.FindByID(id)
	if errors.Is(err, models.ErrClientNotFound) {
		c.logger.WithField("client_id", id).Debug("Selected client no longer exists")
		return &DetailView{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find client: %w", err)
	}

	view := &DetailView{Record: rec}

	if c.enricher != nil {
		ctx = events.WithClientID(ctx, rec.ID)
		view.Suggestions = c.enricher.Suggest(ctx)
	} else {
		view.Suggestions = models.SuggestionSet{Unavailable: true}
	}

	return view, nil
}

// RequestEdit signals the list view to open the edit form for the
// currently selected client; the caller then navigates to the list. The
// detail view never edits directly.
func (c *DetailController) RequestEdit() (string, error) {
	id, err := c.channel.Selected()
	if err != nil {
		return "", fmt.Errorf("read selection: %w", err)
	}
	if id == "" {
		return "", models.ErrNoSelection
	}

	if err := c.channel.SignalEditRequest(id); err != nil {
		return "", fmt.Errorf("signal edit request: %w", err)
	}

	return id, nil
}
