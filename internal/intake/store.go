package intake

import (
	"errors"
	"fmt"

	"compliance-bot/internal/catalog"
)

// ErrFrozen is returned when a write reaches a store that has already
// passed the completion gate.
var ErrFrozen = errors.New("answer store is frozen")

// Record is one question with its current answer. The store always holds
// exactly one record per catalog question, in catalog order, even before
// any answer is supplied.
type Record struct {
	Question catalog.Question
	Raw      string
	Value    Value
	Valid    bool
}

// Store is the mutable answer record for one intake session.
type Store struct {
	catalog *catalog.Catalog
	records []Record
	frozen  bool
}

// NewStore creates a store with one empty record per catalog question.
func NewStore(cat *catalog.Catalog) *Store {
	s := &Store{catalog: cat}
	s.initialize()
	return s
}

func (s *Store) initialize() {
	records := make([]Record, 0, s.catalog.Len())
	for _, q := range s.catalog.Questions() {
		records = append(records, Record{Question: q})
	}
	s.records = records
	s.frozen = false
}

// SetAnswer validates raw input against the question's shape and stores
// the typed value. Empty input clears the record back to unanswered.
// A *ValidationError leaves the record unchanged.
func (s *Store) SetAnswer(questionID int, raw string) error {
	if s.frozen {
		return ErrFrozen
	}

	q, ok := s.catalog.Question(questionID)
	if !ok {
		return fmt.Errorf("unknown question ID %d", questionID)
	}
	rec := &s.records[questionID-1]

	// A cleared field is not an error, just an unanswered question.
	if isBlank(raw) {
		rec.Raw = ""
		rec.Value = Value{}
		rec.Valid = false
		return nil
	}

	value, err := ParseValue(q, raw)
	if err != nil {
		return err
	}

	rec.Raw = raw
	rec.Value = value
	rec.Valid = true
	return nil
}

// IsComplete reports whether every record holds a non-empty, shape-valid
// answer. Questions allowing "unsure" are satisfied by that value.
func (s *Store) IsComplete() bool {
	for _, rec := range s.records {
		if !rec.Valid {
			return false
		}
	}
	return true
}

// Answered returns how many records hold a valid answer.
func (s *Store) Answered() int {
	n := 0
	for _, rec := range s.records {
		if rec.Valid {
			n++
		}
	}
	return n
}

// Snapshot returns an immutable copy of all records, safe to hand to the
// analysis step without risk of concurrent mutation.
func (s *Store) Snapshot() []Record {
	cp := make([]Record, len(s.records))
	copy(cp, s.records)
	for i := range cp {
		// Records embed the question's options slice; copy it so the
		// snapshot shares no memory with the store.
		if len(cp[i].Question.Options) > 0 {
			opts := make([]string, len(cp[i].Question.Options))
			copy(opts, cp[i].Question.Options)
			cp[i].Question.Options = opts
		}
	}
	return cp
}

// Freeze makes the store read-only. Called once the completion gate
// fires; only Reset lifts it.
func (s *Store) Freeze() {
	s.frozen = true
}

// Frozen reports whether the store is read-only.
func (s *Store) Frozen() bool {
	return s.frozen
}

// Reset discards all answers and returns the store to its initial state.
func (s *Store) Reset() {
	s.initialize()
}

func isBlank(raw string) bool {
	for _, r := range raw {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}
