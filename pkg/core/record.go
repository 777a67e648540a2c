package core

import (
	"fmt"
	"strconv"

	"github.com/aretw0/roster/pkg/observable"
)

// Record is one person row. It exclusively owns its four fields.
type Record struct {
	id        ID
	firstName *observable.Value[string]
	lastName  *observable.Value[string]
	role      *observable.Value[string]
	available *observable.Value[bool]
}

// NewRecord creates a record with empty text fields and available=false.
func NewRecord(id ID) *Record {
	return &Record{
		id:        id,
		firstName: observable.New(""),
		lastName:  observable.New(""),
		role:      observable.New(""),
		available: observable.New(false),
	}
}

// ID returns the identifier assigned by the store.
func (r *Record) ID() ID { return r.id }

// FirstName returns the handle of the first name field.
func (r *Record) FirstName() *observable.Value[string] { return r.firstName }

// LastName returns the handle of the last name field.
func (r *Record) LastName() *observable.Value[string] { return r.lastName }

// Role returns the handle of the role field.
func (r *Record) Role() *observable.Value[string] { return r.role }

// Available returns the handle of the availability flag.
func (r *Record) Available() *observable.Value[bool] { return r.available }

// Save re-commits the current value of every field, turning provisional edits
// into the new baseline.
func (r *Record) Save() {
	r.firstName.Set(r.firstName.Get())
	r.lastName.Set(r.lastName.Get())
	r.role.Set(r.role.Get())
	r.available.Set(r.available.Get())
}

// Reset rolls back every field.
func (r *Record) Reset() {
	r.firstName.Rollback()
	r.lastName.Rollback()
	r.role.Rollback()
	r.available.Rollback()
}

// IsDirty reports whether any field holds a provisional edit.
func (r *Record) IsDirty() bool {
	return r.firstName.IsDirty() ||
		r.lastName.IsDirty() ||
		r.role.IsDirty() ||
		r.available.IsDirty()
}

// text returns the handle of a string field, or nil.
func (r *Record) text(f Field) *observable.Value[string] {
	switch f {
	case FieldFirstName:
		return r.firstName
	case FieldLastName:
		return r.lastName
	case FieldRole:
		return r.role
	}
	return nil
}

// Display renders the current value of f. Asking for a field that does not exist
// is a programming error and panics.
func (r *Record) Display(f Field) string {
	if f == FieldAvailable {
		return strconv.FormatBool(r.available.Get())
	}
	v := r.text(f)
	if v == nil {
		panic(fmt.Sprintf("core: record %s has no field %q", r.id, f))
	}
	return v.Get()
}

// FieldDirty reports whether f holds a provisional edit. Panics like Display.
func (r *Record) FieldDirty(f Field) bool {
	if f == FieldAvailable {
		return r.available.IsDirty()
	}
	v := r.text(f)
	if v == nil {
		panic(fmt.Sprintf("core: record %s has no field %q", r.id, f))
	}
	return v.IsDirty()
}

// Edit writes raw into f as a provisional value. The available field accepts
// anything strconv.ParseBool does.
func (r *Record) Edit(f Field, raw string) error {
	if f == FieldAvailable {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("field %s: %w", f, err)
		}
		r.available.SetProvisional(b)
		return nil
	}
	v := r.text(f)
	if v == nil {
		return fmt.Errorf("%w: %q", ErrUnknownField, f)
	}
	v.SetProvisional(raw)
	return nil
}

// Observe subscribes fn to f, rendering values with Display semantics. It is
// what a presenter uses to bind a cell without caring about the field's type.
func (r *Record) Observe(f Field, fn func()) {
	if f == FieldAvailable {
		r.available.Subscribe(func(bool, bool) { fn() })
		return
	}
	v := r.text(f)
	if v == nil {
		panic(fmt.Sprintf("core: record %s has no field %q", r.id, f))
	}
	v.Subscribe(func(string, string) { fn() })
}

// Snapshot copies the current values.
func (r *Record) Snapshot() Person {
	return Person{
		ID:        r.id,
		FirstName: r.firstName.Get(),
		LastName:  r.lastName.Get(),
		Role:      r.role.Get(),
		Available: r.available.Get(),
	}
}
