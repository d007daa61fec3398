package massaction_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aic/aic/internal/massaction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type node struct {
	id       string
	hostname string
	locked   bool
}

func nodeID(n node) string       { return n.id }
func nodeHostname(n node) string { return n.hostname }

func canRename(n node) (bool, string) {
	if n.locked {
		return false, "locked"
	}
	return true, ""
}

func TestApplyTemplate(t *testing.T) {
	uu := map[string]struct {
		tpl string
		n   int
		e   string
	}{
		"single":   {tpl: "host-{{n}}", n: 3, e: "host-3"},
		"wide":     {tpl: "host-{{nnn}}", n: 12, e: "host-12"},
		"repeated": {tpl: "{{n}}-w-{{n}}", n: 2, e: "2-w-2"},
		"none":     {tpl: "worker", n: 5, e: "worker"},
		"broken":   {tpl: "host-{{m}}", n: 1, e: "host-{{m}}"},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			assert.Equal(t, u.e, massaction.ApplyTemplate(u.tpl, u.n))
		})
	}
	assert.True(t, massaction.HasCounter("a{{nn}}"))
	assert.False(t, massaction.HasCounter("a{n}"))
}

func TestPlanRenameCounterSkip(t *testing.T) {
	selected := []node{{id: "h1"}, {id: "h2", locked: true}, {id: "h3"}}

	p := massaction.PlanRename(selected, "host-{{n}}", canRename, nodeID, nodeHostname)

	require.Len(t, p.Candidates, 3)
	assert.Equal(t, "host-1", p.Candidates[0].New)
	assert.True(t, p.Candidates[1].Skip)
	assert.Equal(t, "locked", p.Candidates[1].Reason)
	assert.Empty(t, p.Candidates[1].New)
	assert.Equal(t, "host-2", p.Candidates[2].New)
	assert.Equal(t, 1, p.Skipped())

	items := p.Items()
	require.Len(t, items, 2)
	assert.Equal(t, massaction.Item[node]{ID: "h3", Obj: selected[2], Value: "host-2"}, items[1])
}

func TestPlanValidate(t *testing.T) {
	all := []node{
		{id: "h1", hostname: "a"},
		{id: "h2", hostname: "b"},
		{id: "h3", hostname: "host-2"},
		{id: "h4", hostname: "c", locked: true},
	}
	selected := all[:2]
	inUse := massaction.UsedValues(all, map[string]struct{}{"h1": {}, "h2": {}}, nodeID, nodeHostname)
	assert.Equal(t, map[string]struct{}{"host-2": {}, "c": {}}, inUse)

	uu := map[string]struct {
		tpl   string
		err   error
		inUse bool
	}{
		"ok":        {tpl: "node-{{n}}"},
		"empty":     {tpl: "  ", err: massaction.ErrEmptyTemplate},
		"collapses": {tpl: "host"},
		"in-use":    {tpl: "host-{{n}}", inUse: true},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			err := massaction.PlanRename(selected, u.tpl, canRename, nodeID, nodeHostname).Validate(inUse)
			switch k {
			case "ok":
				assert.NoError(t, err)
			case "empty":
				assert.ErrorIs(t, err, u.err)
			default:
				var ce *massaction.CollisionError
				require.True(t, errors.As(err, &ce), "got %v", err)
				assert.Equal(t, u.inUse, ce.InUse)
			}
		})
	}
}

func TestPlanValidateCollisionBeforeApply(t *testing.T) {
	selected := []node{{id: "h1"}, {id: "h2"}}
	var calls int
	apply := func(context.Context, node, string) error { calls++; return nil }

	p := massaction.PlanRename(selected, "host-1", canRename, nodeID, nodeHostname)
	assert.Equal(t, "host-1", p.Candidates[0].New)
	assert.Equal(t, "host-1", p.Candidates[1].New)

	err := p.Validate(nil)
	if err == nil {
		err = massaction.NewRunner(p.Items(), apply).Run(context.Background())
	}

	var ce *massaction.CollisionError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, []string{"h1", "h2"}, ce.IDs)
	assert.Zero(t, calls)
}

func TestPlanValidateDuplicateIDs(t *testing.T) {
	h := node{id: "h1", hostname: "a"}
	var applied []string
	apply := func(_ context.Context, n node, v string) error {
		applied = append(applied, n.id+"="+v)
		return nil
	}

	p := massaction.PlanRename([]node{h, h}, "host-{{n}}", canRename, nodeID, nodeHostname)
	err := p.Validate(nil)
	if err == nil {
		err = massaction.NewRunner(p.Items(), apply).Run(context.Background())
	}

	assert.ErrorIs(t, err, massaction.ErrDuplicateID)
	assert.Empty(t, applied)
}

func TestPlanCheckIDs(t *testing.T) {
	uu := map[string]struct {
		selected []node
		err      error
	}{
		"unique":  {selected: []node{{id: "h1"}, {id: "h2"}}},
		"dup":     {selected: []node{{id: "h1"}, {id: "h2"}, {id: "h1"}}, err: massaction.ErrDuplicateID},
		"skipped": {selected: []node{{id: "h1", locked: true}, {id: "h1"}}, err: massaction.ErrDuplicateID},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			err := massaction.PlanAction(u.selected, canRename, nodeID).CheckIDs()
			if u.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, u.err)
		})
	}
}

func TestPlanValidateNothingEligible(t *testing.T) {
	p := massaction.PlanRename([]node{{id: "h1", locked: true}}, "host-{{n}}", canRename, nodeID, nodeHostname)
	assert.ErrorIs(t, p.Validate(nil), massaction.ErrNothingToApply)
}

func TestPlanAction(t *testing.T) {
	p := massaction.PlanAction([]node{{id: "h1"}, {id: "h2", locked: true}}, canRename, nodeID)

	assert.Equal(t, 1, p.Skipped())
	items := p.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "h1", items[0].ID)
	assert.Empty(t, items[0].Value)
}

func TestPlanValues(t *testing.T) {
	selected := []node{{id: "h1", hostname: "a"}, {id: "h2", hostname: "b", locked: true}, {id: "h3", hostname: "c"}}

	p := massaction.PlanValues(selected, map[string]string{"h2": "x", "h3": "y"}, canRename, nodeID, nodeHostname)
	require.Len(t, p.Candidates, 2)
	assert.True(t, p.Candidates[0].Skip)
	assert.Equal(t, "c", p.Candidates[1].Current)
	assert.NoError(t, p.Validate(map[string]struct{}{"a": {}}))

	err := massaction.PlanValues(selected, map[string]string{"h3": "a"}, canRename, nodeID, nodeHostname).
		Validate(map[string]struct{}{"a": {}})
	var ce *massaction.CollisionError
	require.ErrorAs(t, err, &ce)
	assert.True(t, ce.InUse)

	err = massaction.PlanValues(selected, map[string]string{"h1": " "}, canRename, nodeID, nodeHostname).Validate(nil)
	assert.ErrorIs(t, err, massaction.ErrEmptyValue)
}
