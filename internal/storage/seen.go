package storage

import "sort"

// SeenSet is the in-memory set of listing ids already alerted on.
// It is owned by a single run and is not safe for concurrent use.
type SeenSet struct {
	ids   map[string]struct{}
	added []string
}

// NewSeenSet returns a set holding ids.
func NewSeenSet(ids ...string) *SeenSet {
	s := &SeenSet{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		if id != "" {
			s.ids[id] = struct{}{}
		}
	}
	return s
}

// Contains reports whether id has been seen.
func (s *SeenSet) Contains(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Mark adds id to the set. It reports whether id was new.
func (s *SeenSet) Mark(id string) bool {
	if id == "" || s.Contains(id) {
		return false
	}
	s.ids[id] = struct{}{}
	s.added = append(s.added, id)
	return true
}

// Len returns the number of ids in the set.
func (s *SeenSet) Len() int {
	return len(s.ids)
}

// IDs returns every id, sorted.
func (s *SeenSet) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Added returns the ids marked since the set was created, in marking order.
func (s *SeenSet) Added() []string {
	out := make([]string, len(s.added))
	copy(out, s.added)
	return out
}
