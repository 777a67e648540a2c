package core

import (
	"fmt"
	"slices"
)

// Store owns the records in insertion order and hands out sequential ids.
type Store struct {
	prefix  string
	next    int
	records []*Record
}

// NewStore creates an empty store. An empty prefix falls back to DefaultIDPrefix.
func NewStore(prefix string) *Store {
	if prefix == "" {
		prefix = DefaultIDPrefix
	}
	return &Store{prefix: prefix}
}

// Add allocates the next id and appends a fresh record.
func (s *Store) Add() *Record {
	id := ID(fmt.Sprintf("%s%d", s.prefix, s.next))
	s.next++
	rec := NewRecord(id)
	s.records = append(s.records, rec)
	return rec
}

// Remove drops the record with the given id. It reports whether anything was removed.
func (s *Store) Remove(id ID) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.records = slices.Delete(s.records, i, i+1)
	return true
}

// Get looks up a record by id.
func (s *Store) Get(id ID) (*Record, bool) {
	i := s.index(id)
	if i < 0 {
		return nil, false
	}
	return s.records[i], true
}

// At returns the record at display position i.
func (s *Store) At(i int) (*Record, bool) {
	if i < 0 || i >= len(s.records) {
		return nil, false
	}
	return s.records[i], true
}

// List returns the records in display order. The slice is a copy.
func (s *Store) List() []*Record {
	return slices.Clone(s.records)
}

func (s *Store) Len() int { return len(s.records) }

// NextID is the sequence number the next Add will use.
func (s *Store) NextID() int { return s.next }

func (s *Store) index(id ID) int {
	return slices.IndexFunc(s.records, func(r *Record) bool { return r.id == id })
}
