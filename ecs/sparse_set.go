package ecs

import "slices"

// componentStore is the type-erased view of a SparseSet the world needs to
// clean up destroyed entities and intersect queries.
type componentStore interface {
	Has(id entityID) bool
	Remove(id entityID) bool
	IDs() []entityID
	Len() int
}

// SparseSet stores one component type densely, indexed by entity id.
// sparse holds dense index+1 so the zero value means absent.
type SparseSet[T any] struct {
	dense  []entityID
	values []*T
	sparse []int
}

func newSparseSet[T any]() *SparseSet[T] {
	return &SparseSet[T]{}
}

func (s *SparseSet[T]) Has(id entityID) bool {
	if s == nil || id == 0 || int(id) > len(s.sparse) {
		return false
	}
	return s.sparse[id-1] != 0
}

func (s *SparseSet[T]) Get(id entityID) *T {
	if !s.Has(id) {
		return nil
	}
	return s.values[s.sparse[id-1]-1]
}

// Set inserts or replaces the component stored for id.
func (s *SparseSet[T]) Set(id entityID, v *T) {
	if s == nil || id == 0 {
		return
	}
	if int(id) > len(s.sparse) {
		s.sparse = append(s.sparse, make([]int, int(id)-len(s.sparse))...)
	}
	if idx := s.sparse[id-1]; idx != 0 {
		s.values[idx-1] = v
		return
	}
	s.dense = append(s.dense, id)
	s.values = append(s.values, v)
	s.sparse[id-1] = len(s.dense)
}

// Remove swaps the last element into the removed slot.
func (s *SparseSet[T]) Remove(id entityID) bool {
	if !s.Has(id) {
		return false
	}
	idx := s.sparse[id-1] - 1
	last := len(s.dense) - 1
	lastID := s.dense[last]

	s.dense[idx] = lastID
	s.values[idx] = s.values[last]
	s.sparse[lastID-1] = idx + 1

	s.values[last] = nil
	s.dense = s.dense[:last]
	s.values = s.values[:last]
	s.sparse[id-1] = 0
	return true
}

// IDs returns a sorted copy of the stored ids, safe to hold across mutation.
func (s *SparseSet[T]) IDs() []entityID {
	if s == nil || len(s.dense) == 0 {
		return nil
	}
	out := slices.Clone(s.dense)
	slices.Sort(out)
	return out
}

func (s *SparseSet[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.dense)
}
