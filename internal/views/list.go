package views

import (
	"errors"
	"fmt"

	"github.com/fitcrm/fitcrm/internal/events"
	"github.com/fitcrm/fitcrm/internal/models"
	"github.com/fitcrm/fitcrm/internal/session"
	"github.com/fitcrm/fitcrm/internal/store"
	"github.com/fitcrm/fitcrm/internal/validate"
)

// ListController handles the list-and-search screen, including the
// auto-edit handoff from the detail view.
type ListController struct {
	store   store.Store
	channel session.Channel
	logger  *events.Logger
}

// NewListController wires the list screen.
func NewListController(st store.Store, ch session.Channel, logger *events.Logger) *ListController {
	return &ListController{
		store:   st,
		channel: ch,
		logger:  logger.WithField("view", "list"),
	}
}

// ListView is the data a renderer needs for one load of the list screen.
type ListView struct {
	Records []models.ClientRecord
	Query   string

	// HighlightID marks the just-created row, one shot.
	HighlightID string

	// AutoEditID, when set, is a consumed edit request whose record still
	// exists: the renderer must open the edit form for it immediately,
	// the same path a manual edit click takes.
	AutoEditID string
}

// EditForm is the inline edit dialog prefilled from a stored record.
type EditForm struct {
	ID     string
	Fields models.ClientFields
}

// Load reads the collection (filtered by query) and consumes any pending
// handoff signals. A pending edit for a record deleted since the signal
// was set is dropped silently.
func (c *ListController) Load(query string) (*ListView, error) {
	records, err := c.store.Search(query)
	if err != nil {
		return nil, fmt.Errorf("search clients: %w", err)
	}

	view := &ListView{
		Records: records,
		Query:   query,
	}

	if id, err := c.channel.ConsumeJustCreated(); err == nil && id != "" {
		view.HighlightID = id
	}

	if id, err := c.channel.ConsumeEditRequest(); err == nil && id != "" {
		if _, err := c.store.FindByID(id); err == nil {
			view.AutoEditID = id
		} else {
			// Stale signal: the record went away between pages
			c.logger.WithField("client_id", id).Debug("Dropping stale edit request")
		}
	}

	return view, nil
}

// Select records the client for detail viewing; the caller then navigates
// to the detail screen.
func (c *ListController) Select(id string) error {
	return c.channel.SetSelected(id)
}

// BeginEdit returns the edit form prefilled from the stored record.
func (c *ListController) BeginEdit(id string) (*EditForm, error) {
	rec, err := c.store.FindByID(id)
	if err != nil {
		return nil, err
	}

	return &EditForm{
		ID: rec.ID,
		Fields: models.ClientFields{
			FullName:  rec.FullName,
			Age:       rec.Age,
			Gender:    rec.Gender,
			Email:     rec.Email,
			Phone:     rec.Phone,
			Goal:      rec.Goal,
			StartDate: rec.StartDate,
		},
	}, nil
}

// SubmitEdit validates the edited fields and merges them over the stored
// record. Id and history are never touched.
func (c *ListController) SubmitEdit(id string, fields models.ClientFields) (*models.ClientRecord, validate.Errors, error) {
	if errs := validate.Check(fields); len(errs) > 0 {
		return nil, errs, nil
	}

	rec, err := c.store.Update(id, models.UpdateFrom(fields))
	if err != nil {
		return nil, nil, err
	}

	return rec, nil, nil
}

// Delete removes a client. The caller must have obtained confirmed intent
// first; an unconfirmed call is rejected without touching the store. A
// missing id means the list was stale, so it is logged and absorbed — the
// re-render corrects the view.
func (c *ListController) Delete(id string, confirmed bool) error {
	if !confirmed {
		return models.ErrDeleteNotConfirmed
	}

	if err := c.store.Delete(id); err != nil {
		if errors.Is(err, models.ErrClientNotFound) {
			c.logger.WithField("client_id", id).Debug("Delete targeted a missing client")
			return nil
		}
		return fmt.Errorf("delete client: %w", err)
	}

	return nil
}
