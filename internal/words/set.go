package words

import "sort"

// Set is an immutable collection of distinct words sharing one length.
type Set struct {
	length int
	index  map[string]struct{}
	sorted []string
}

// NewSet normalizes and dedupes list, dropping entries that are not
// length letters long.
func NewSet(length int, list []string) *Set {
	s := &Set{length: length, index: make(map[string]struct{}, len(list))}
	for _, w := range list {
		w = Normalize(w)
		if len(w) != length || !IsAlpha(w) {
			continue
		}
		if _, dup := s.index[w]; dup {
			continue
		}
		s.index[w] = struct{}{}
		s.sorted = append(s.sorted, w)
	}
	sort.Strings(s.sorted)
	return s
}

// Length is the shared word length.
func (s *Set) Length() int { return s.length }

// Len is the number of words.
func (s *Set) Len() int { return len(s.sorted) }

// Contains expects an already normalized word.
func (s *Set) Contains(w string) bool {
	_, ok := s.index[w]
	return ok
}

// Words returns the words in ascending order. Callers must not modify it.
func (s *Set) Words() []string { return s.sorted }
