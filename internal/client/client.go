// Package client wires the configured store backend, handoff channel,
// enrichment client and view controllers into one entry point.
package client

import (
	"fmt"

	"github.com/fitcrm/fitcrm/internal/config"
	"github.com/fitcrm/fitcrm/internal/enrichment"
	"github.com/fitcrm/fitcrm/internal/events"
	"github.com/fitcrm/fitcrm/internal/session"
	"github.com/fitcrm/fitcrm/internal/store"
	"github.com/fitcrm/fitcrm/internal/views"
)

// Client provides the high-level API for FitCRM operations.
type Client struct {
	Create *views.CreateController
	List   *views.ListController
	Detail *views.DetailController

	Store   store.Store
	Channel session.Channel

	config *config.Config
	logger *events.Logger
}

// New creates a FitCRM client from configuration.
func New(cfg *config.Config, logger *events.Logger) (*Client, error) {
	recordStore, err := newStore(cfg, logger)
	if err != nil {
		return nil, err
	}

	channel, err := session.NewFileChannel(cfg.Storage.DataDir, logger)
	if err != nil {
		recordStore.Close()
		return nil, err
	}

	enricher := enrichment.NewClient(&cfg.Enrichment, logger)

	return &Client{
		Create:  views.NewCreateController(recordStore, channel, logger),
		List:    views.NewListController(recordStore, channel, logger),
		Detail:  views.NewDetailController(recordStore, channel, enricher, logger),
		Store:   recordStore,
		Channel: channel,
		config:  cfg,
		logger:  logger,
	}, nil
}

// Close releases the store.
func (c *Client) Close() error {
	return c.Store.Close()
}

func newStore(cfg *config.Config, logger *events.Logger) (store.Store, error) {
	switch cfg.Storage.Backend {
	case "sqlite":
		return store.NewSQLiteStore(cfg.Storage.DataDir, cfg.Storage.Slot, logger)
	case "json":
		return store.NewJSONStore(cfg.Storage.DataDir, cfg.Storage.Slot, logger)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Storage.Backend)
	}
}
