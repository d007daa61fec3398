package massaction

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyTemplate is returned when no template was entered.
	ErrEmptyTemplate = errors.New("template is required")

	// ErrNothingToApply is returned when every selected entity was skipped.
	ErrNothingToApply = errors.New("no selected entity can be changed")

	// ErrEmptyValue is returned when an explicit value is blank.
	ErrEmptyValue = errors.New("value is required")

	// ErrDuplicateID is returned when an entity is selected more than once.
	ErrDuplicateID = errors.New("entity selected more than once")
)

// CheckFunc reports whether an entity is eligible for an action, and why
// not when it is not.
type CheckFunc[R any] func(R) (bool, string)

// Candidate is one selected entity and the value the action would give it.
type Candidate[R any] struct {
	ID      string
	Obj     R
	Current string
	New     string
	Skip    bool
	Reason  string
}

// Plan lists the candidates of a mass rename in selection order.
type Plan[R any] struct {
	Template   string
	Candidates []Candidate[R]

	// Explicit plans carry one value per entity instead of a template.
	Explicit bool
}

// PlanRename computes the new value of each selected entity. The counter
// starts at 1 and only advances on eligible entities; ineligible ones are
// kept in the plan with their reason.
func PlanRename[R any](selected []R, tpl string, canAct CheckFunc[R], getID func(R) string, current func(R) string) Plan[R] {
	p := Plan[R]{Template: tpl, Candidates: make([]Candidate[R], 0, len(selected))}
	n := 1
	for _, o := range selected {
		c := Candidate[R]{ID: getID(o), Obj: o, Current: current(o)}
		if ok, reason := canAct(o); !ok {
			c.Skip, c.Reason = true, reason
		} else {
			c.New = ApplyTemplate(tpl, n)
			n++
		}
		p.Candidates = append(p.Candidates, c)
	}

	return p
}

// PlanValues plans explicit new values keyed by entity id, as produced by
// editing a document. Entities without a value are left out.
func PlanValues[R any](selected []R, values map[string]string, canAct CheckFunc[R], getID func(R) string, current func(R) string) Plan[R] {
	p := Plan[R]{Explicit: true, Candidates: make([]Candidate[R], 0, len(values))}
	for _, o := range selected {
		v, ok := values[getID(o)]
		if !ok {
			continue
		}
		c := Candidate[R]{ID: getID(o), Obj: o, Current: current(o), New: v}
		if ok, reason := canAct(o); !ok {
			c.Skip, c.Reason = true, reason
		}
		p.Candidates = append(p.Candidates, c)
	}

	return p
}

// PlanAction lists the selected entities for an action that takes no
// value, such as a delete.
func PlanAction[R any](selected []R, canAct CheckFunc[R], getID func(R) string) Plan[R] {
	p := Plan[R]{Candidates: make([]Candidate[R], 0, len(selected))}
	for _, o := range selected {
		c := Candidate[R]{ID: getID(o), Obj: o}
		if ok, reason := canAct(o); !ok {
			c.Skip, c.Reason = true, reason
		}
		p.Candidates = append(p.Candidates, c)
	}

	return p
}

// Eligible returns the candidates that will be applied.
func (p Plan[R]) Eligible() []Candidate[R] {
	out := make([]Candidate[R], 0, len(p.Candidates))
	for _, c := range p.Candidates {
		if !c.Skip {
			out = append(out, c)
		}
	}
	return out
}

// Skipped returns the number of candidates left untouched.
func (p Plan[R]) Skipped() int {
	return len(p.Candidates) - len(p.Eligible())
}

// Items turns the eligible candidates into runner items.
func (p Plan[R]) Items() []Item[R] {
	cc := p.Eligible()
	items := make([]Item[R], 0, len(cc))
	for _, c := range cc {
		items = append(items, Item[R]{ID: c.ID, Obj: c.Obj, Value: c.New})
	}
	return items
}

// CollisionError reports a new value that is not unique.
type CollisionError struct {
	Value string
	IDs   []string
	InUse bool
}

func (e *CollisionError) Error() string {
	if e.InUse {
		return fmt.Sprintf("%q is already used by another entity", e.Value)
	}
	return fmt.Sprintf("%q would be given to %s", e.Value, strings.Join(e.IDs, ", "))
}

// Validate checks the whole plan before anything is applied. New values
// must be unique among themselves and must not match a value in inUse.
func (p Plan[R]) Validate(inUse map[string]struct{}) error {
	if err := p.CheckIDs(); err != nil {
		return err
	}
	if !p.Explicit && isBlank(p.Template) {
		return ErrEmptyTemplate
	}
	cc := p.Eligible()
	if len(cc) == 0 {
		return ErrNothingToApply
	}
	for _, c := range cc {
		if isBlank(c.New) {
			return fmt.Errorf("%w: %s", ErrEmptyValue, c.ID)
		}
	}

	owners := make(map[string][]string, len(cc))
	for _, c := range cc {
		owners[c.New] = append(owners[c.New], c.ID)
	}
	for _, c := range cc {
		if _, ok := inUse[c.New]; ok {
			return &CollisionError{Value: c.New, IDs: []string{c.ID}, InUse: true}
		}
		if ids := owners[c.New]; len(ids) > 1 {
			return &CollisionError{Value: c.New, IDs: ids}
		}
	}

	return nil
}

// CheckIDs rejects a plan naming the same entity twice, skipped
// candidates included.
func (p Plan[R]) CheckIDs() error {
	seen := make(map[string]struct{}, len(p.Candidates))
	for _, c := range p.Candidates {
		if _, ok := seen[c.ID]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateID, c.ID)
		}
		seen[c.ID] = struct{}{}
	}
	return nil
}

// UsedValues returns the current values of the entities that are not
// selected. Empty values are ignored.
func UsedValues[R any](all []R, selected map[string]struct{}, getID func(R) string, current func(R) string) map[string]struct{} {
	used := make(map[string]struct{}, len(all))
	for _, o := range all {
		if _, ok := selected[getID(o)]; ok {
			continue
		}
		if v := current(o); v != "" {
			used[v] = struct{}{}
		}
	}
	return used
}
