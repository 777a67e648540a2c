// Package core holds the roster domain: records built from observable fields, the
// store that owns them and the controller that routes UI actions to the selection.
package core

import "fmt"

// ID identifies a record. It is assigned once by the store and never reused.
type ID string

// DefaultIDPrefix is prepended to the sequence number of every new record.
const DefaultIDPrefix = "person-id-"

// Field names one of the editable columns of a record.
type Field string

const (
	FieldFirstName Field = "firstname"
	FieldLastName  Field = "lastname"
	FieldRole      Field = "role"
	FieldAvailable Field = "available"
)

// Fields lists every field in display order.
var Fields = []Field{FieldFirstName, FieldLastName, FieldRole, FieldAvailable}

// ParseField resolves a user-supplied field name.
func ParseField(name string) (Field, error) {
	for _, f := range Fields {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// Person is a plain copy of a record's current values.
type Person struct {
	ID        ID     `json:"id" yaml:"id"`
	FirstName string `json:"firstname" yaml:"firstname"`
	LastName  string `json:"lastname" yaml:"lastname"`
	Role      string `json:"role" yaml:"role"`
	Available bool   `json:"available" yaml:"available"`
}

// Presenter is the rendering side of the controller. It is told about structural
// changes; value changes reach it through field subscriptions.
type Presenter interface {
	RecordAdded(rec *Record)
	RecordSelected(rec *Record)
	RecordDeselected()
	RecordCommitted(id ID)
	RecordRemoved(id ID)
}

type nopPresenter struct{}

func (nopPresenter) RecordAdded(*Record)    {}
func (nopPresenter) RecordSelected(*Record) {}
func (nopPresenter) RecordDeselected()      {}
func (nopPresenter) RecordCommitted(ID)     {}
func (nopPresenter) RecordRemoved(ID)       {}
