// SPDX-License-Identifier: MIT

// Package memstore is a reference, in-memory matrix store that speaks the
// matrix protocol. It exists for local development and for exercising the
// client end to end in tests; it keeps nothing on disk.
//
// The store is the id authority. A proposed id is kept when it is positive
// and unused; otherwise the matrix is stored under 1 + the largest id in
// use. Matrices holding NaN or ±Inf are refused.
package memstore

import (
	"math"
	"sort"
	"sync"

	"github.com/katalvlaran/matrixlink/sparse"
)

// Store is a concurrency-safe id→matrix map. Stored matrices are sealed and
// handed out as-is; readers must not (and cannot) mutate them.
type Store struct {
	mu       sync.RWMutex
	matrices map[int]*sparse.Matrix
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{matrices: make(map[int]*sparse.Matrix)}
}

// All returns every matrix in ascending id order.
func (s *Store) All() []*sparse.Matrix {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*sparse.Matrix, 0, len(s.matrices))
	for _, m := range s.matrices {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

// Get returns the matrix stored under id.
func (s *Store) Get(id int) (*sparse.Matrix, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.matrices[id]

	return m, ok
}

// Len returns the number of stored matrices.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.matrices)
}

// Put stores a copy of m and returns the id it was stored under. ok is false
// when the matrix is refused (nil, or holding a non-finite value).
func (s *Store) Put(m *sparse.Matrix) (id int, ok bool) {
	if m == nil || !finite(m) {
		return 0, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id = m.ID
	if _, taken := s.matrices[id]; taken || id < 1 {
		id = s.nextIDLocked()
	}
	stored := m.Clone()
	stored.ID = id
	stored.Seal()
	s.matrices[id] = stored

	return id, true
}

// nextIDLocked is 1 + the largest id in use. Caller holds mu.
func (s *Store) nextIDLocked() int {
	ids := make([]int, 0, len(s.matrices))
	for id := range s.matrices {
		ids = append(ids, id)
	}

	return sparse.NextIDFrom(ids)
}

func finite(m *sparse.Matrix) bool {
	for _, v := range m.Elements() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}

	return true
}
