package view

import (
	"github.com/aic/aic/internal/client"
	"github.com/aic/aic/internal/dao"
)

func newHost(id, hostname, status string) *dao.Host {
	return dao.NewHost(&client.Host{
		ID:                id,
		ClusterID:         "c1",
		RequestedHostname: hostname,
		Status:            status,
	})
}
