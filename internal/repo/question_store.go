// Package repo implements the storage layer for questions.
//
// QuestionStore is the single shared, process-lifetime mapping from
// QuestionID to Question. It is guarded by a sync.RWMutex: any number of
// readers (List, Len, Snapshot) may run together, while Insert, Update and
// Delete each hold the write lock for the whole mutation. Every mutation is a
// single map operation, so there is nothing to roll back on failure.
//
// Records are cloned on the way in and on the way out; callers never hold a
// reference into the store's state.
//
// Iteration order: List returns records sorted by id (byte-wise string
// comparison), which keeps pagination stable across calls.
package repo

import (
	"sort"
	"sync"

	"github.com/tbourn/go-qa-backend/internal/domain"
)

// QuestionStore is a concurrency-safe in-memory question repository.
// The zero value is not usable; construct with NewQuestionStore.
type QuestionStore struct {
	mu        sync.RWMutex
	questions map[domain.QuestionID]domain.Question
	revision  uint64
}

// NewQuestionStore returns a store initialized with a copy of seed.
// A nil seed yields an empty store.
func NewQuestionStore(seed map[domain.QuestionID]domain.Question) *QuestionStore {
	m := make(map[domain.QuestionID]domain.Question, len(seed))
	for id, q := range seed {
		m[id] = q.Clone()
	}
	return &QuestionStore{questions: m}
}

// List returns a snapshot of all questions, sorted by id.
func (s *QuestionStore) List() []domain.Question {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listLocked()
}

// Snapshot returns the same result as List together with the store revision
// observed under the same read lock. The revision increases on every
// successful mutation.
func (s *QuestionStore) Snapshot() ([]domain.Question, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listLocked(), s.revision
}

// Len returns the number of stored questions.
func (s *QuestionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.questions)
}

// Insert stores q under q.ID, replacing any existing record with that id.
func (s *QuestionStore) Insert(q domain.Question) {
	q = q.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.questions[q.ID] = q
	s.revision++
}

// Update replaces the record stored under id. It never inserts: when id is
// absent it returns domain.ErrQuestionNotFound and leaves the store as is.
func (s *QuestionStore) Update(id domain.QuestionID, q domain.Question) error {
	q = q.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.questions[id]; !ok {
		return domain.ErrQuestionNotFound
	}
	s.questions[id] = q
	s.revision++
	return nil
}

// Delete removes the record stored under id, or returns
// domain.ErrQuestionNotFound when there is none.
func (s *QuestionStore) Delete(id domain.QuestionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.questions[id]; !ok {
		return domain.ErrQuestionNotFound
	}
	delete(s.questions, id)
	s.revision++
	return nil
}

// listLocked must be called with s.mu held.
func (s *QuestionStore) listLocked() []domain.Question {
	out := make([]domain.Question, 0, len(s.questions))
	for _, q := range s.questions {
		out = append(out, q.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}
