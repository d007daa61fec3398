package dao_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/aic/aic/internal/client"
)

const (
	cid  = "5a6b1c8e-7a5c-4c69-9d4b-000000000001"
	hid1 = "0f2d3e4c-1111-4c69-9d4b-000000000001"
	hid2 = "0f2d3e4c-1111-4c69-9d4b-000000000002"
)

type fakeConn struct {
	mx        sync.Mutex
	clusters  []client.Cluster
	hosts     map[string][]client.Host
	calls     map[string]int
	renameErr error
	endpoint  string
}

var _ client.Connection = (*fakeConn)(nil)

func newFakeConn() *fakeConn {
	return &fakeConn{
		clusters: []client.Cluster{{ID: cid, Name: "prod", Status: "ready", TotalHostCount: 2}},
		hosts: map[string][]client.Host{
			cid: {
				{ID: hid1, Status: "known", Role: "master", Inventory: `{"hostname":"node-a","cpu":{"count":8},"memory":{"physical_bytes":17179869184},"disks":[{"id":"/dev/disk/by-id/a","name":"sda","path":"/dev/sda","drive_type":"SSD","size_bytes":120000000000,"bootable":true,"installation_eligibility":{"eligible":true}}]}`},
				{ID: hid2, Status: "installing", RequestedHostname: "node-b", Inventory: "{broken"},
			},
		},
		calls:    make(map[string]int),
		endpoint: "default",
	}
}

func (f *fakeConn) hit(name string) {
	f.mx.Lock()
	defer f.mx.Unlock()
	f.calls[name]++
}

func (f *fakeConn) count(name string) int {
	f.mx.Lock()
	defer f.mx.Unlock()
	return f.calls[name]
}

func (f *fakeConn) Config() *client.ClientConfig          { return &client.ClientConfig{} }
func (f *fakeConn) ConnectionOK() bool                    { return true }
func (f *fakeConn) CheckConnectivity(context.Context) bool { return true }
func (f *fakeConn) ActiveEndpoint() string                { return f.endpoint }
func (f *fakeConn) EndpointNames() []string               { return []string{"default", "lab"} }

func (f *fakeConn) SwitchEndpoint(name string) error {
	if name != "default" && name != "lab" {
		return errors.New("unknown endpoint")
	}
	f.endpoint = name
	return nil
}

func (f *fakeConn) ListClusters(context.Context) ([]client.Cluster, error) {
	f.hit("ListClusters")
	return f.clusters, nil
}

func (f *fakeConn) GetCluster(_ context.Context, id string) (*client.Cluster, error) {
	f.hit("GetCluster")
	for i := range f.clusters {
		if f.clusters[i].ID == id {
			return &f.clusters[i], nil
		}
	}
	return nil, client.ErrNotFound
}

func (f *fakeConn) DeleteCluster(context.Context, string) error {
	f.hit("DeleteCluster")
	return nil
}

func (f *fakeConn) InstallCluster(_ context.Context, id string) (*client.Cluster, error) {
	f.hit("InstallCluster")
	return &client.Cluster{ID: id, Status: "preparing-for-installation"}, nil
}

func (f *fakeConn) ListHosts(_ context.Context, clusterID string) ([]client.Host, error) {
	f.hit("ListHosts")
	return f.hosts[clusterID], nil
}

func (f *fakeConn) UpdateHostname(_ context.Context, clusterID, hostID, hostname string) (*client.Cluster, error) {
	f.hit("UpdateHostname")
	if f.renameErr != nil {
		return nil, f.renameErr
	}
	hh := f.hosts[clusterID]
	for i := range hh {
		if hh[i].ID == hostID {
			hh[i].RequestedHostname = hostname
		}
	}
	return &f.clusters[0], nil
}

func (f *fakeConn) DeleteHost(context.Context, string, string) error {
	f.hit("DeleteHost")
	return nil
}

func (f *fakeConn) DownloadLogs(context.Context, string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader("logs")), nil
}
