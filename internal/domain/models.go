// Package domain defines the question entity served by the API and its
// identifier type. These types carry no transport or storage concerns; the
// repository owns the live records and only hands out copies.
package domain

import (
	"errors"
	"slices"
)

// ErrEmptyQuestionID is returned when an identifier is built from "".
var ErrEmptyQuestionID = errors.New("question id must not be empty")

// QuestionID is the opaque identifier of a Question. It is comparable and
// safe to use as a map key; two ids are equal iff their strings are equal.
//
// The zero value is the empty id and is never stored by the repository.
type QuestionID struct {
	value string
}

// NewQuestionID validates s and wraps it as a QuestionID.
func NewQuestionID(s string) (QuestionID, error) {
	if s == "" {
		return QuestionID{}, ErrEmptyQuestionID
	}
	return QuestionID{value: s}, nil
}

// MustQuestionID is NewQuestionID for static ids (seed data, tests).
func MustQuestionID(s string) QuestionID {
	id, err := NewQuestionID(s)
	if err != nil {
		panic(err)
	}
	return id
}

// String returns the underlying identifier.
func (id QuestionID) String() string { return id.value }

// IsZero reports whether id is the empty identifier.
func (id QuestionID) IsZero() bool { return id.value == "" }

// MarshalText encodes the id as its bare string. Used by encoding/json for
// both values and map keys.
func (id QuestionID) MarshalText() ([]byte, error) {
	return []byte(id.value), nil
}

// UnmarshalText decodes a bare string id, rejecting the empty string.
func (id *QuestionID) UnmarshalText(b []byte) error {
	v, err := NewQuestionID(string(b))
	if err != nil {
		return err
	}
	*id = v
	return nil
}

// Question is a single question record.
//
// Fields:
//   - ID: stable identifier, also the repository key.
//   - Title / Content: required free text.
//   - Tags: optional. A nil slice encodes as JSON null and an empty, non-nil
//     slice as []; the two states are kept distinct end to end.
type Question struct {
	ID      QuestionID `json:"id"`
	Title   string     `json:"title"`
	Content string     `json:"content"`
	Tags    []string   `json:"tags"`
}

// Clone returns a deep copy of q. Nil and empty Tags are preserved as-is.
func (q Question) Clone() Question {
	out := q
	if q.Tags != nil {
		out.Tags = slices.Clone(q.Tags)
	}
	return out
}
