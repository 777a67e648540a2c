// Package view is a headless presentation layer for the roster: a table with one
// row per record and a detail form bound to the active row.
//
// It only consumes field notifications and produces provisional writes, so the
// same controller can drive it, a test double, or a real UI.
package view

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/aretw0/roster/pkg/core"
)

// Row is the rendered state of a record.
type Row struct {
	id       core.ID
	cells    map[core.Field]string
	modified map[core.Field]bool
	dirty    bool
}

// RowView is an exported snapshot of a row.
type RowView struct {
	ID       core.ID               `json:"id" yaml:"id"`
	Cells    map[core.Field]string `json:"cells" yaml:"cells"`
	Modified []core.Field          `json:"modified,omitempty" yaml:"modified,omitempty"`
	Dirty    bool                  `json:"dirty" yaml:"dirty"`
	Active   bool                  `json:"active" yaml:"active"`
}

// Table implements core.Presenter.
type Table struct {
	rows   []*Row
	active *Row
	form   *Form
}

// NewTable creates an empty table with a hidden form.
func NewTable() *Table {
	return &Table{form: &Form{}}
}

// Form returns the detail form.
func (t *Table) Form() *Form { return t.form }

// RecordAdded appends a row and binds its cells to the record's fields.
func (t *Table) RecordAdded(rec *core.Record) {
	row := &Row{
		id:       rec.ID(),
		cells:    make(map[core.Field]string, len(core.Fields)),
		modified: make(map[core.Field]bool),
	}
	for _, f := range core.Fields {
		row.cells[f] = rec.Display(f)
	}
	t.rows = append(t.rows, row)
	for _, f := range core.Fields {
		rec.Observe(f, t.updateCell(rec, f))
	}
}

// updateCell builds the listener for one cell. Like a row that is not focused,
// an inactive row ignores notifications.
func (t *Table) updateCell(rec *core.Record, f core.Field) func() {
	return func() {
		if t.active == nil || t.active.id != rec.ID() {
			return
		}
		t.active.cells[f] = rec.Display(f)
		t.active.modified[f] = true
		t.active.dirty = true
	}
}

// RecordSelected activates the record's row and binds the form to it.
func (t *Table) RecordSelected(rec *core.Record) {
	t.active = t.row(rec.ID())
	t.form.bind(rec)
}

// RecordDeselected deactivates the row and hides the form, so further input is
// rejected with ErrNoRecordBound.
func (t *Table) RecordDeselected() {
	t.active = nil
	t.form.reset()
}

// RecordCommitted clears the modified marks of the row and refreshes the form
// if it shows that record.
func (t *Table) RecordCommitted(id core.ID) {
	row := t.row(id)
	if row == nil {
		return
	}
	clear(row.modified)
	row.dirty = false
	if rec := t.form.rec; rec != nil && rec.ID() == id {
		t.form.bind(rec)
	}
}

// RecordRemoved drops the row and hides the form if it was bound to it.
func (t *Table) RecordRemoved(id core.ID) {
	t.rows = slices.DeleteFunc(t.rows, func(r *Row) bool { return r.id == id })
	if t.active != nil && t.active.id == id {
		t.active = nil
		t.form.reset()
	}
}

// Rows returns snapshots in display order.
func (t *Table) Rows() []RowView {
	out := make([]RowView, 0, len(t.rows))
	for _, r := range t.rows {
		v := RowView{
			ID:     r.id,
			Cells:  make(map[core.Field]string, len(r.cells)),
			Dirty:  r.dirty,
			Active: r == t.active,
		}
		for _, f := range core.Fields {
			v.Cells[f] = r.cells[f]
			if r.modified[f] {
				v.Modified = append(v.Modified, f)
			}
		}
		out = append(out, v)
	}
	return out
}

// Render writes the table. The first column marks the active row with '>' and
// dirty rows with '*'. Modified cells get a trailing quote.
func (t *Table) Render(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	header := make([]string, 0, len(core.Fields)+2)
	header = append(header, "", "ID")
	for _, f := range core.Fields {
		header = append(header, strings.ToUpper(string(f)))
	}
	if _, err := fmt.Fprintln(tw, strings.Join(header, "\t")); err != nil {
		return err
	}
	for _, r := range t.rows {
		mark := ""
		if r == t.active {
			mark += ">"
		}
		if r.dirty {
			mark += "*"
		}
		line := []string{mark, string(r.id)}
		for _, f := range core.Fields {
			cell := r.cells[f]
			if r.modified[f] {
				cell += "'"
			}
			line = append(line, cell)
		}
		if _, err := fmt.Fprintln(tw, strings.Join(line, "\t")); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func (t *Table) row(id core.ID) *Row {
	i := slices.IndexFunc(t.rows, func(r *Row) bool { return r.id == id })
	if i < 0 {
		return nil
	}
	return t.rows[i]
}
