package dao_test

import (
	"context"
	"testing"

	"github.com/aic/aic/internal/client"
	"github.com/aic/aic/internal/dao"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func accessor[T dao.Accessor](t *testing.T, f dao.Factory, rid *dao.ResourceID) T {
	t.Helper()
	a, err := dao.AccessorFor(f, rid)
	require.NoError(t, err)
	acc, ok := a.(T)
	require.True(t, ok)
	return acc
}

func TestListAccessors(t *testing.T) {
	var ss []string
	for _, rid := range dao.ListAccessors() {
		ss = append(ss, rid.String())
	}
	assert.Equal(t, []string{"installer/cluster", "installer/disk", "installer/host"}, ss)
}

func TestResourceIDParse(t *testing.T) {
	var rid dao.ResourceID
	require.NoError(t, rid.Parse("installer/host"))
	assert.Equal(t, dao.HostRID, rid)
	assert.Error(t, rid.Parse("installer"))
	assert.Error(t, rid.Parse("/host"))
}

func TestClusterList(t *testing.T) {
	conn := newFakeConn()
	f := dao.NewFactory(conn)
	a := accessor[*dao.ClusterAccessor](t, f, &dao.ClusterRID)

	oo, err := a.List(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, oo, 1)
	c := oo[0].(*dao.Cluster)
	assert.Equal(t, "prod", c.GetName())
	assert.Equal(t, 2, c.HostCount)

	_, err = a.List(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 1, conn.count("ListClusters"))

	require.NoError(t, a.Delete(context.Background(), cid))
	_, err = a.List(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 2, conn.count("ListClusters"))
}

func TestHostList(t *testing.T) {
	f := dao.NewFactory(newFakeConn())
	a := accessor[*dao.HostAccessor](t, f, &dao.HostRID)

	oo, err := a.List(context.Background(), cid)
	require.NoError(t, err)
	require.Len(t, oo, 2)

	h1, h2 := oo[0].(*dao.Host), oo[1].(*dao.Host)
	assert.Equal(t, "node-a", h1.Hostname())
	assert.Equal(t, cid, h1.ClusterID)
	require.NotNil(t, h1.Inventory)
	assert.Equal(t, 8, h1.Inventory.CPU.Count)
	assert.Equal(t, "node-b", h2.Hostname())
	assert.Nil(t, h2.Inventory)
	assert.Empty(t, h2.Disks())
}

func TestHostGet(t *testing.T) {
	f := dao.NewFactory(newFakeConn())
	a := accessor[*dao.HostAccessor](t, f, &dao.HostRID)

	o, err := a.Get(context.Background(), cid+"/"+hid2)
	require.NoError(t, err)
	assert.Equal(t, hid2, o.GetID())

	_, err = a.Get(context.Background(), cid+"/nope")
	assert.ErrorIs(t, err, client.ErrNotFound)

	_, err = a.Get(context.Background(), cid)
	assert.Error(t, err)
}

func TestHostRenameInvalidatesCache(t *testing.T) {
	conn := newFakeConn()
	f := dao.NewFactory(conn)
	a := accessor[*dao.HostAccessor](t, f, &dao.HostRID)

	oo, err := a.List(context.Background(), cid)
	require.NoError(t, err)
	require.NoError(t, a.Rename(context.Background(), oo[0].(*dao.Host), "node-x"))

	oo, err = a.List(context.Background(), cid)
	require.NoError(t, err)
	assert.Equal(t, "node-x", oo[0].(*dao.Host).Hostname())
	assert.Equal(t, 2, conn.count("ListHosts"))
}

func TestHostDescribe(t *testing.T) {
	f := dao.NewFactory(newFakeConn())
	a := accessor[*dao.HostAccessor](t, f, &dao.HostRID)

	s, err := a.Describe(context.Background(), cid+"/"+hid1)
	require.NoError(t, err)
	assert.Contains(t, s, "Hostname: node-a")
	assert.Contains(t, s, "CPU Cores: 8")
}

func TestDiskList(t *testing.T) {
	f := dao.NewFactory(newFakeConn())
	a := accessor[*dao.DiskAccessor](t, f, &dao.DiskRID)

	oo, err := a.List(context.Background(), cid+"/"+hid1)
	require.NoError(t, err)
	require.Len(t, oo, 1)
	d := oo[0].(*dao.Disk)
	assert.Equal(t, "/dev/sda", d.Path)
	assert.True(t, d.Bootable)
	assert.True(t, d.Eligible)
	assert.Equal(t, hid1, d.HostID)

	o, err := a.Get(context.Background(), cid+"/"+hid1+"//dev/disk/by-id/a")
	require.NoError(t, err)
	assert.Equal(t, "sda", o.GetName())
}

func TestSetEndpointClearsCache(t *testing.T) {
	conn := newFakeConn()
	f := dao.NewFactory(conn)
	a := accessor[*dao.ClusterAccessor](t, f, &dao.ClusterRID)

	_, err := a.List(context.Background(), "")
	require.NoError(t, err)
	require.NoError(t, f.SetEndpoint("lab"))
	assert.Equal(t, "lab", f.Endpoint())
	_, err = a.List(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 2, conn.count("ListClusters"))

	assert.Error(t, f.SetEndpoint("nope"))
}

func TestChecks(t *testing.T) {
	uu := map[string]struct {
		status          string
		rename, del bool
	}{
		"known":      {status: dao.HostKnown, rename: true, del: true},
		"installing": {status: dao.HostInstalling},
		"installed":  {status: dao.HostInstalled, del: true},
		"error":      {status: dao.HostError, del: true},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			h := dao.Host{BaseObject: dao.BaseObject{Status: u.status}}
			ok, reason := dao.CanChangeHostname(&h).Result()
			assert.Equal(t, u.rename, ok)
			assert.Equal(t, ok, reason == "")
			assert.Equal(t, u.del, dao.CanDelete(&h).Allowed)
		})
	}

	assert.False(t, dao.CanChangeHostname(nil).Allowed)
	assert.True(t, dao.CanInstall(&dao.Cluster{BaseObject: dao.BaseObject{Status: dao.ClusterReady}}).Allowed)
	assert.False(t, dao.CanDeleteCluster(&dao.Cluster{BaseObject: dao.BaseObject{Status: dao.ClusterInstalling}}).Allowed)
}

func TestHostnameChanges(t *testing.T) {
	orig := map[string]string{"c/1": "a", "c/2": "b", "c/3": "c"}

	rr, err := dao.HostnameChanges(orig, map[string]string{"c/1": "x", "c/2": "b", "c/3": "y"})
	require.NoError(t, err)
	assert.Equal(t, []dao.Rename{{Path: "c/1", Hostname: "x"}, {Path: "c/3", Hostname: "y"}}, rr)

	_, err = dao.HostnameChanges(orig, orig)
	assert.ErrorIs(t, err, dao.ErrNoChanges)

	_, err = dao.HostnameChanges(orig, map[string]string{"c/1": "a", "c/2": "b"})
	assert.Error(t, err)
}

func TestParseInventory(t *testing.T) {
	inv, err := dao.ParseInventory("")
	require.NoError(t, err)
	assert.Nil(t, inv)

	_, err = dao.ParseInventory("{")
	assert.Error(t, err)
}
