// Package views implements the screen controllers. Each controller takes
// the store, validator and handoff channel it needs and returns plain
// view-model data; rendering belongs to the caller.
package views

import (
	"fmt"

	"github.com/fitcrm/fitcrm/internal/events"
	"github.com/fitcrm/fitcrm/internal/models"
	"github.com/fitcrm/fitcrm/internal/session"
	"github.com/fitcrm/fitcrm/internal/store"
	"github.com/fitcrm/fitcrm/internal/validate"
)

// CreateController handles the new-client screen.
type CreateController struct {
	store   store.Store
	channel session.Channel
	logger  *events.Logger
}

// NewCreateController wires the create screen.
func NewCreateController(st store.Store, ch session.Channel, logger *events.Logger) *CreateController {
	return &CreateController{
		store:   st,
		channel: ch,
		logger:  logger.WithField("view", "create"),
	}
}

// Submit validates the collected fields and, on success, stores the new
// record and signals the just-created highlight. On validation failure the
// per-field errors come back and nothing is written.
func (c *CreateController) Submit(fields models.ClientFields) (*models.ClientRecord, validate.Errors, error) {
	if errs := validate.Check(fields); len(errs) > 0 {
		c.logger.WithField("fields", len(errs)).Debug("Rejected invalid submission")
		return nil, errs, nil
	}

	rec, err := c.store.Create(fields)
	if err != nil {
		return nil, nil, fmt.Errorf("create client: %w", err)
	}

	if err := c.channel.SignalJustCreated(rec.ID); err != nil {
		// The highlight is cosmetic; losing the signal is not a failure
		c.logger.WithError(err).Warn("Failed to signal just-created")
	}

	return rec, nil, nil
}
