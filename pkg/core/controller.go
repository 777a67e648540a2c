package core

import (
	"io"
	"log/slog"
)

// Controller routes UI actions to the selected record.
// Selection is held here explicitly rather than derived from rendered output.
type Controller struct {
	store     *Store
	presenter Presenter
	logger    *slog.Logger
	selected  *ID
}

// NewController wires a store to a presenter. Nil presenter and logger are allowed.
func NewController(store *Store, presenter Presenter, logger *slog.Logger) *Controller {
	if store == nil {
		store = NewStore("")
	}
	if presenter == nil {
		presenter = nopPresenter{}
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Controller{
		store:     store,
		presenter: presenter,
		logger:    logger,
	}
}

// AddRecord creates an empty record and hands it to the presenter.
func (c *Controller) AddRecord() *Record {
	rec := c.store.Add()
	c.presenter.RecordAdded(rec)
	c.logger.Debug("record added", "id", rec.ID())
	return rec
}

// Select makes id the target of save, reset and remove.
func (c *Controller) Select(id ID) error {
	rec, ok := c.store.Get(id)
	if !ok {
		return ErrRecordNotFound
	}
	c.selected = &id
	c.presenter.RecordSelected(rec)
	c.logger.Debug("record selected", "id", id)
	return nil
}

// SelectAt selects the record at display position i.
func (c *Controller) SelectAt(i int) error {
	rec, ok := c.store.At(i)
	if !ok {
		return ErrRecordNotFound
	}
	return c.Select(rec.ID())
}

// ClearSelection drops the selection without touching any record. The presenter
// is told only when something was selected.
func (c *Controller) ClearSelection() {
	if c.selected == nil {
		return
	}
	id := *c.selected
	c.selected = nil
	c.presenter.RecordDeselected()
	c.logger.Debug("selection cleared", "id", id)
}

// Selected resolves the selection against the store.
func (c *Controller) Selected() (*Record, bool) {
	if c.selected == nil {
		return nil, false
	}
	return c.store.Get(*c.selected)
}

// Records returns all records in display order.
func (c *Controller) Records() []*Record {
	return c.store.List()
}

// Store exposes the underlying store.
func (c *Controller) Store() *Store {
	return c.store
}

// SaveSelected commits every field of the selected record.
func (c *Controller) SaveSelected() error {
	rec, ok := c.Selected()
	if !ok {
		return ErrNoSelection
	}
	rec.Save()
	c.presenter.RecordCommitted(rec.ID())
	c.logger.Debug("record saved", "id", rec.ID())
	return nil
}

// ResetSelected discards the provisional edits of the selected record.
func (c *Controller) ResetSelected() error {
	rec, ok := c.Selected()
	if !ok {
		return ErrNoSelection
	}
	rec.Reset()
	c.presenter.RecordCommitted(rec.ID())
	c.logger.Debug("record reset", "id", rec.ID())
	return nil
}

// RemoveSelected removes the selected record and clears the selection.
func (c *Controller) RemoveSelected() error {
	if c.selected == nil {
		return ErrNoSelection
	}
	return c.RemoveRecord(*c.selected)
}

// RemoveRecord removes id from the store. The record is forgotten; references
// held elsewhere stay valid but are no longer reachable through the controller.
func (c *Controller) RemoveRecord(id ID) error {
	if !c.store.Remove(id) {
		return ErrRecordNotFound
	}
	if c.selected != nil && *c.selected == id {
		c.selected = nil
	}
	c.presenter.RecordRemoved(id)
	c.logger.Debug("record removed", "id", id)
	return nil
}
