package model1

// RowEvent tracks how a row changed since the previous refresh.
type RowEvent struct {
	Kind   ResEvent
	ID     string
	Fields Fields
	Deltas DeltaRow
}

func NewRowEvent(kind ResEvent, id string, ff Fields) RowEvent {
	return RowEvent{
		Kind:   kind,
		ID:     id,
		Fields: ff,
	}
}

func NewRowEventWithDeltas(id string, ff Fields, delta DeltaRow) RowEvent {
	return RowEvent{
		Kind:   EventUpdate,
		ID:     id,
		Fields: ff,
		Deltas: delta,
	}
}

func (r RowEvent) Clone() RowEvent {
	return RowEvent{
		Kind:   r.Kind,
		ID:     r.ID,
		Fields: r.Fields.Clone(),
		Deltas: r.Deltas.Clone(),
	}
}

// RowEvents a collection of row events
type RowEvents struct {
	events []RowEvent
	index  map[string]int
}

func NewRowEvents(size int) *RowEvents {
	return &RowEvents{
		events: make([]RowEvent, 0, size),
		index:  make(map[string]int, size),
	}
}

// DiffRows classifies rows against the events of the previous refresh and
// returns the new events along with the ids that disappeared. Without a
// previous refresh every row is unchanged.
func DiffRows[R any](prev *RowEvents, rows Rows[R]) (*RowEvents, []string) {
	out := NewRowEvents(len(rows))
	for _, r := range rows {
		ff := r.Fields()
		if prev == nil {
			out.Add(NewRowEvent(EventUnchanged, r.ID, ff))
			continue
		}
		old, ok := prev.Get(r.ID)
		if !ok {
			out.Add(NewRowEvent(EventAdd, r.ID, ff))
			continue
		}
		if d := NewDeltaRow(old.Fields, ff); !d.IsBlank() || len(old.Fields) != len(ff) {
			out.Add(NewRowEventWithDeltas(r.ID, ff, d))
			continue
		}
		out.Add(NewRowEvent(EventUnchanged, r.ID, ff))
	}
	if prev == nil {
		return out, nil
	}

	var gone []string
	prev.Range(func(_ int, re RowEvent) bool {
		if _, ok := out.FindIndex(re.ID); !ok {
			gone = append(gone, re.ID)
		}
		return true
	})

	return out, gone
}

func (r *RowEvents) At(i int) (RowEvent, bool) {
	if i < 0 || i >= len(r.events) {
		return RowEvent{}, false
	}
	return r.events[i], true
}

func (r *RowEvents) Add(re RowEvent) {
	r.events = append(r.events, re)
	r.index[re.ID] = len(r.events) - 1
}

func (r *RowEvents) Len() int {
	return len(r.events)
}

func (r *RowEvents) Empty() bool {
	return len(r.events) == 0
}

func (r *RowEvents) Get(id string) (RowEvent, bool) {
	i, ok := r.index[id]
	if !ok {
		return RowEvent{}, false
	}
	return r.At(i)
}

func (r *RowEvents) FindIndex(id string) (int, bool) {
	i, ok := r.index[id]
	return i, ok
}

// Count returns the number of events of the given kinds.
func (r *RowEvents) Count(kinds ResEvent) int {
	var n int
	for _, e := range r.events {
		if e.Kind&kinds != 0 {
			n++
		}
	}
	return n
}

func (r *RowEvents) Clone() *RowEvents {
	out := NewRowEvents(len(r.events))
	for _, e := range r.events {
		out.Add(e.Clone())
	}
	return out
}

func (r *RowEvents) Range(f func(int, RowEvent) bool) {
	for i, e := range r.events {
		if !f(i, e) {
			return
		}
	}
}
