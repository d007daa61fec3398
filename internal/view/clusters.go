// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of aic

package view

import (
	"context"
	"fmt"
	"time"

	"github.com/aic/aic/internal/client"
	"github.com/aic/aic/internal/dao"
	"github.com/aic/aic/internal/export"
	"github.com/aic/aic/internal/render"
	"github.com/aic/aic/internal/ui"
	"github.com/derailed/tcell/v2"
)

const exportTimeout = 10 * time.Minute

// Clusters lists the clusters of the active endpoint.
type Clusters struct {
	*Browser[*dao.Cluster]
}

// NewClusters returns a new cluster view.
func NewClusters(app *App) *Clusters {
	return &Clusters{
		Browser: NewBrowser(app, &dao.ClusterRID, clustersView, "", &render.Cluster{}),
	}
}

// Init initializes the cluster view.
func (c *Clusters) Init(ctx context.Context) error {
	if err := c.Browser.Init(ctx); err != nil {
		return err
	}
	c.SetDetailFunc(clusterDetails)
	c.bindKeys(c.Actions())

	return nil
}

func (c *Clusters) bindKeys(aa *ui.KeyActions) {
	aa.Add(tcell.KeyEnter, ui.NewKeyAction("Hosts", c.hostsCmd, true))
	if c.app.Gates().LogExport {
		aa.Add(ui.KeyL, ui.NewKeyAction("Export Logs", c.exportCmd, true))
	}
}

func (c *Clusters) hostsCmd(*tcell.EventKey) *tcell.EventKey {
	cl, ok := c.CurrentObject()
	if !ok {
		return nil
	}
	if err := c.app.inject(NewHosts(c.app, cl.ID), false); err != nil {
		c.app.Flash().Err(err)
	}

	return nil
}

func (c *Clusters) exportCmd(*tcell.EventKey) *tcell.EventKey {
	cl, ok := c.CurrentObject()
	if !ok {
		return nil
	}
	cfg := c.app.config.Aic.ExportConfig()
	if cfg.Bucket == "" {
		c.app.Flash().Warn("No export bucket configured")
		return nil
	}

	conn := c.app.Factory().Client()
	c.app.Flash().Infof("Exporting logs of %s...", cl.Name)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
		defer cancel()

		key, err := exportLogs(ctx, conn, cfg, cl)
		if err != nil {
			c.app.Flash().Errf("Log export of %s failed: %v", cl.Name, err)
			return
		}
		c.app.Flash().Infof("Logs of %s exported to s3://%s/%s", cl.Name, cfg.Bucket, key)
	}()

	return nil
}

func exportLogs(ctx context.Context, conn client.Connection, cfg export.Config, cl *dao.Cluster) (string, error) {
	s3c, err := export.NewS3Client(ctx, cfg)
	if err != nil {
		return "", err
	}
	e, err := export.NewLogExporter(conn, s3c, cfg)
	if err != nil {
		return "", err
	}

	return e.Export(ctx, cl)
}

func clusterDetails(c *dao.Cluster) []string {
	ll := make([]string, 0, 4)
	if c.StatusInfo != "" {
		ll = append(ll, c.StatusInfo)
	}
	if c.BaseDNSDomain != "" {
		ll = append(ll, "Domain: "+c.BaseDNSDomain)
	}
	ll = append(ll, fmt.Sprintf("Mode: %s, %d host(s)", render.Missing(c.HighAvailabilityMode), c.HostCount))
	if c.InstallCompletedAt != nil {
		ll = append(ll, "Installed: "+c.InstallCompletedAt.Format(time.RFC3339))
	}

	return ll
}
