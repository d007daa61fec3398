package model1

import "slices"

// IDSet represents a set of row ids.
type IDSet map[string]struct{}

// NewIDSet returns a set holding ids.
func NewIDSet(ids ...string) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has returns true if id is in the set.
func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Sorted returns the ids in ascending order.
func (s IDSet) Sorted() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (s IDSet) Clone() IDSet {
	out := make(IDSet, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

// ReconcileSelection returns current without the ids that no longer appear
// in data. current is left untouched; the caller owns the result.
func ReconcileSelection[R any](current IDSet, data []R, getID IDFunc[R]) IDSet {
	present := make(IDSet, len(data))
	for _, o := range data {
		present[getID(o)] = struct{}{}
	}

	return current.Intersect(present)
}

// Intersect returns the ids of s that are also in other.
func (s IDSet) Intersect(other IDSet) IDSet {
	out := make(IDSet, len(s))
	for id := range s {
		if other.Has(id) {
			out[id] = struct{}{}
		}
	}
	return out
}

// Store tracks per-row expansion and selection. Expansion entries for ids
// that disappeared are stale but never read. Selection is pruned on every
// data change.
type Store struct {
	expanded map[string]bool
	selected IDSet
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		expanded: make(map[string]bool),
		selected: make(IDSet),
	}
}

// ToggleExpand flips the expansion of id and returns the new value. An
// unknown id counts as collapsed, so the first toggle always opens.
func (s *Store) ToggleExpand(id string) bool {
	open := !s.expanded[id]
	s.expanded[id] = open
	return open
}

// IsExpanded returns true if id's detail panel is open.
func (s *Store) IsExpanded(id string) bool {
	return s.expanded[id]
}

// Expanded returns the ids of the open detail panels.
func (s *Store) Expanded() []string {
	ids := make([]string, 0, len(s.expanded))
	for id, open := range s.expanded {
		if open {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

// CollapseAll closes every detail panel.
func (s *Store) CollapseAll() {
	clear(s.expanded)
}

// Select adds or removes id from the selection.
func (s *Store) Select(id string, selected bool) {
	if selected {
		s.selected[id] = struct{}{}
		return
	}
	delete(s.selected, id)
}

// IsSelected returns true if id is selected.
func (s *Store) IsSelected(id string) bool {
	return s.selected.Has(id)
}

// Selected returns a copy of the selection.
func (s *Store) Selected() IDSet {
	return s.selected.Clone()
}

// SetSelected replaces the selection.
func (s *Store) SetSelected(ids IDSet) {
	s.selected = ids.Clone()
}

// ClearSelection drops every selected id.
func (s *Store) ClearSelection() {
	clear(s.selected)
}

// Prune keeps only the selected ids that are present and returns the
// removed ones.
func (s *Store) Prune(present IDSet) []string {
	var gone []string
	for id := range s.selected {
		if !present.Has(id) {
			gone = append(gone, id)
		}
	}
	s.selected = s.selected.Intersect(present)
	slices.Sort(gone)
	return gone
}
