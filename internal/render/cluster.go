package render

import (
	"github.com/aic/aic/internal/dao"
	"github.com/aic/aic/internal/model1"
)

// Cluster renders clusters.
type Cluster struct {
	Base
}

var _ Renderer[*dao.Cluster] = (*Cluster)(nil)

func (*Cluster) ID(c *dao.Cluster) string {
	return c.ID
}

// DefaultSort sorts by NAME, ascending.
func (*Cluster) DefaultSort() model1.SortState {
	return model1.SortState{Column: 0, Direction: model1.Ascending}
}

// Columns returns the cluster columns.
func (*Cluster) Columns() model1.Columns[*dao.Cluster] {
	return model1.Columns[*dao.Cluster]{
		{
			Header: model1.HeaderColumn{Name: "NAME", Attrs: model1.Attrs{Sortable: true, Kind: model1.KindNatural}},
			Cell:   func(c *dao.Cluster) (model1.Cell, error) { return Text(c.Name), nil },
		},
		{
			Header: model1.HeaderColumn{Name: "ID", Attrs: model1.Attrs{Wide: true}},
			Cell:   func(c *dao.Cluster) (model1.Cell, error) { return Text(c.ID), nil },
		},
		{
			Header: model1.HeaderColumn{Name: "VERSION", Attrs: model1.Attrs{Sortable: true, Kind: model1.KindNatural}},
			Cell:   func(c *dao.Cluster) (model1.Cell, error) { return Text(NA(c.OpenshiftVersion)), nil },
		},
		{
			Header: model1.HeaderColumn{Name: "STATUS", Attrs: model1.Attrs{Sortable: true, Kind: model1.KindString}},
			Cell:   func(c *dao.Cluster) (model1.Cell, error) { return Text(c.Status), nil },
		},
		{
			Header: model1.HeaderColumn{Name: "HOSTS", Attrs: model1.Attrs{Sortable: true, Kind: model1.KindNumber}},
			Cell:   func(c *dao.Cluster) (model1.Cell, error) { return Count(c.HostCount), nil },
		},
		{
			Header: model1.HeaderColumn{Name: "CREATED", Attrs: model1.Attrs{Sortable: true, Kind: model1.KindTime}},
			Cell:   func(c *dao.Cluster) (model1.Cell, error) { return Age(c.CreatedAt), nil },
		},
		{Header: model1.HeaderColumn{Name: ActionsColumn}},
	}
}

// ColorerFunc colors clusters by status.
func (*Cluster) ColorerFunc() model1.ColorerFunc {
	return statusColorer(map[string]colorKind{
		dao.ClusterPendingForInput:         colorWarn,
		dao.ClusterInsufficient:            colorWarn,
		dao.ClusterReady:                   colorOK,
		dao.ClusterPreparingInstallation:   colorBusy,
		dao.ClusterInstalling:              colorBusy,
		dao.ClusterInstallingPendingAction: colorWarn,
		dao.ClusterFinalizing:              colorBusy,
		dao.ClusterAddingHosts:             colorBusy,
		dao.ClusterCancelled:               colorOff,
		dao.ClusterError:                   colorError,
		dao.ClusterInstalled:               colorDone,
	})
}
