// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of aic

package view

import (
	"context"
	"strings"

	"github.com/aic/aic/internal/dao"
	"github.com/aic/aic/internal/render"
)

// Storage lists the disks of a host.
type Storage struct {
	*Browser[*dao.Disk]
}

// NewStorage returns the storage view of the host at "clusterID/hostID".
func NewStorage(app *App, hostPath string) *Storage {
	return &Storage{
		Browser: NewBrowser(app, &dao.DiskRID, storageView, hostPath, &render.Disk{}),
	}
}

// Init initializes the storage view.
func (s *Storage) Init(ctx context.Context) error {
	if err := s.Browser.Init(ctx); err != nil {
		return err
	}
	s.SetDetailFunc(diskDetails)

	return nil
}

func diskDetails(d *dao.Disk) []string {
	if d.Eligible {
		return []string{"Eligible for installation"}
	}
	if len(d.NotEligibleReasons) == 0 {
		return []string{"Not eligible"}
	}
	return []string{"Not eligible: " + strings.Join(d.NotEligibleReasons, "; ")}
}
