package render_test

import (
	"testing"
	"time"

	"github.com/aic/aic/internal/dao"
	"github.com/aic/aic/internal/model1"
	"github.com/aic/aic/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func host(id, name, status string, cpu int, mem int64, created time.Time) *dao.Host {
	return &dao.Host{
		BaseObject: dao.BaseObject{ID: id, Status: status, CreatedAt: &created},
		ClusterID:  "c1",
		Inventory: &dao.Inventory{
			Hostname: name,
			CPU:      dao.CPU{Count: cpu},
			Memory:   dao.Memory{PhysicalBytes: mem},
		},
	}
}

func TestClusterTableDefaultSort(t *testing.T) {
	r := new(render.Cluster)
	tbl := render.NewTable[*dao.Cluster](r, render.Options[*dao.Cluster](r, nil, 20, nil, true))

	now := time.Now()
	cc := []*dao.Cluster{
		{BaseObject: dao.BaseObject{ID: "3", Name: "ocp-10", CreatedAt: &now}},
		{BaseObject: dao.BaseObject{ID: "1", Name: "ocp-2", CreatedAt: &now}},
		{BaseObject: dao.BaseObject{ID: "2", Name: "dev", CreatedAt: &now}},
	}
	require.NoError(t, tbl.SetData(cc))

	v := tbl.View()
	assert.Equal(t, []string{"2", "1", "3"}, model1.Rows[*dao.Cluster](rowsOf(v)).IDs())
	assert.Equal(t, model1.SortState{Column: 0, Direction: model1.Ascending}, v.Sort)
	assert.Len(t, v.Header, 6)
	assert.Equal(t, len(v.Header), v.Rows[0].Len())
}

func TestHostColumnsSortByNumber(t *testing.T) {
	r := new(render.Host)
	saved := model1.SortState{Column: 4, Direction: model1.Descending}
	tbl := render.NewTable[*dao.Host](r, render.Options[*dao.Host](r, &saved, 20, nil, true))

	now := time.Now()
	hh := []*dao.Host{
		host("a", "host-1", dao.HostKnown, 4, 8<<30, now),
		host("b", "host-2", dao.HostKnown, 16, 64<<30, now),
		host("c", "host-10", dao.HostKnown, 8, 16<<30, now),
		{BaseObject: dao.BaseObject{ID: "d", Status: dao.HostDiscovering}},
	}
	require.NoError(t, tbl.SetData(hh))

	v := tbl.View()
	assert.Equal(t, "CPU", v.Header[v.Sort.Column].Name)
	assert.Equal(t, []string{"b", "c", "a", "d"}, model1.Rows[*dao.Host](rowsOf(v)).IDs())
	assert.Equal(t, "64.0 GiB", v.Rows[0].Cells[5].Display)
	assert.Equal(t, render.NAValue, v.Rows[3].Cells[0].Display)
	assert.Equal(t, render.NAValue, v.Rows[3].Cells[4].Display)

	require.NoError(t, tbl.Sort(0, model1.Ascending))
	assert.Equal(t, []string{"a", "b", "c", "d"}, model1.Rows[*dao.Host](rowsOf(tbl.View())).IDs())
}

func TestHostColorer(t *testing.T) {
	r := new(render.Host)
	h := r.Columns().Header()
	status, ok := h.IndexOf("STATUS", true)
	require.True(t, ok)

	ff := make(model1.Fields, len(h))
	ff[status] = dao.HostError
	assert.Equal(t, model1.ErrColor, r.ColorerFunc()(h, model1.NewRowEvent(model1.EventUnchanged, "a", ff)))

	ff[status] = dao.HostInstalled
	assert.Equal(t, model1.CompletedColor, r.ColorerFunc()(h, model1.NewRowEvent(model1.EventUpdate, "a", ff)))

	assert.Equal(t, model1.AddColor, r.ColorerFunc()(h, model1.NewRowEvent(model1.EventAdd, "a", ff)))
}

func TestDiskColumns(t *testing.T) {
	r := new(render.Disk)
	rows, err := model1.Project([]*dao.Disk{
		{BaseObject: dao.BaseObject{ID: "/dev/sdb", Name: "sdb"}, Path: "/dev/sdb", SizeBytes: 500, Bootable: true},
	}, r.Columns(), r.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, model1.Fields{"sdb", "/dev/sdb", render.NAValue, "500 B", "Yes", "No", ""}, rows[0].Fields())
}

func TestHelpers(t *testing.T) {
	uu := map[string]struct {
		n int64
		e string
	}{
		"bytes": {n: 512, e: "512 B"},
		"kib":   {n: 2048, e: "2.0 KiB"},
		"gib":   {n: 3 << 30, e: "3.0 GiB"},
	}
	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			assert.Equal(t, u.e, render.FormatSize(u.n))
		})
	}

	assert.Equal(t, "Pending for input", render.Humanize("pending-for-input"))
	assert.Equal(t, "3d", render.HumanDuration(72*time.Hour+time.Minute))
	assert.Equal(t, render.UnknownValue, render.Age(nil).Display)
	assert.Equal(t, "ab...", render.Truncate("abcdefgh", 5))
}

func rowsOf[R any](s model1.Snapshot[R]) []model1.Row[R] {
	rr := make([]model1.Row[R], len(s.Rows))
	for i, r := range s.Rows {
		rr[i] = r.Row
	}
	return rr
}
