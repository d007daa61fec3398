// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of aic

package ui

import (
	"context"
	"fmt"

	"github.com/aic/aic/internal/dao"
	"github.com/derailed/tcell/v2"
)

func init() {
	RegisterActions(dao.ClusterRID.String(), []ResourceAction{
		{
			Key:         KeyShiftI,
			Name:        "Install",
			Description: "Start the installation of cluster %s?",
			Check: func(o dao.Object) (bool, string) {
				c, _ := o.(*dao.Cluster)
				return dao.CanInstall(c).Result()
			},
			Handler: func(ctx context.Context, f dao.Factory, path string) error {
				acc, err := clusterAccessor(f)
				if err != nil {
					return err
				}
				_, err = acc.Install(ctx, path)
				return err
			},
		},
		{
			Key:         tcell.KeyCtrlD,
			Name:        "Delete",
			Description: "Delete cluster %s and all its hosts?",
			Dangerous:   true,
			Check: func(o dao.Object) (bool, string) {
				c, _ := o.(*dao.Cluster)
				return dao.CanDeleteCluster(c).Result()
			},
			Handler: func(ctx context.Context, f dao.Factory, path string) error {
				acc, err := clusterAccessor(f)
				if err != nil {
					return err
				}
				return acc.Delete(ctx, path)
			},
		},
	})
}

func clusterAccessor(f dao.Factory) (*dao.ClusterAccessor, error) {
	acc, err := dao.AccessorFor(f, &dao.ClusterRID)
	if err != nil {
		return nil, err
	}
	c, ok := acc.(*dao.ClusterAccessor)
	if !ok {
		return nil, fmt.Errorf("unexpected accessor %T for %s", acc, dao.ClusterRID)
	}
	return c, nil
}
