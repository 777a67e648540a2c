package view

import (
	"errors"

	"github.com/aretw0/roster/pkg/core"
)

// ErrNoRecordBound is returned by Form.Input while the form is hidden.
var ErrNoRecordBound = errors.New("form is not bound to a record")

// Form is the detail editor of the active row.
type Form struct {
	rec    *core.Record
	inputs map[core.Field]string
}

// Visible reports whether the form is bound to a record.
func (f *Form) Visible() bool { return f.rec != nil }

// Record returns the bound record, if any.
func (f *Form) Record() (*core.Record, bool) {
	return f.rec, f.rec != nil
}

// Value returns the input text of a field.
func (f *Form) Value(field core.Field) string {
	return f.inputs[field]
}

// Input simulates a change event on an input: the value is written into the bound
// record as a provisional edit.
func (f *Form) Input(field core.Field, raw string) error {
	if f.rec == nil {
		return ErrNoRecordBound
	}
	if err := f.rec.Edit(field, raw); err != nil {
		return err
	}
	f.inputs[field] = f.rec.Display(field)
	return nil
}

func (f *Form) bind(rec *core.Record) {
	f.rec = rec
	f.inputs = make(map[core.Field]string, len(core.Fields))
	for _, field := range core.Fields {
		f.inputs[field] = rec.Display(field)
	}
}

func (f *Form) reset() {
	f.rec = nil
	f.inputs = nil
}
