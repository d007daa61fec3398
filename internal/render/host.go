package render

import (
	"github.com/aic/aic/internal/dao"
	"github.com/aic/aic/internal/model1"
)

// Host renders the hosts of a cluster.
type Host struct {
	Base
}

var _ Renderer[*dao.Host] = (*Host)(nil)

func (*Host) ID(h *dao.Host) string {
	return h.ID
}

// Columns returns the host columns. Hardware columns show n/a until the
// host reports an inventory.
func (*Host) Columns() model1.Columns[*dao.Host] {
	return model1.Columns[*dao.Host]{
		{
			Header: model1.HeaderColumn{Name: "HOSTNAME", Attrs: model1.Attrs{Sortable: true, Kind: model1.KindNatural}},
			Cell:   func(h *dao.Host) (model1.Cell, error) { return Text(NA(h.Hostname())), nil },
		},
		{
			Header: model1.HeaderColumn{Name: "ROLE", Attrs: model1.Attrs{Sortable: true, Kind: model1.KindString}},
			Cell:   func(h *dao.Host) (model1.Cell, error) { return Text(hostRole(h.Role)), nil },
		},
		{
			Header: model1.HeaderColumn{Name: "STATUS", Attrs: model1.Attrs{Sortable: true, Kind: model1.KindString}},
			Cell:   func(h *dao.Host) (model1.Cell, error) { return Text(h.Status), nil },
		},
		{
			Header: model1.HeaderColumn{Name: "DISCOVERED", Attrs: model1.Attrs{Sortable: true, Kind: model1.KindTime}},
			Cell:   func(h *dao.Host) (model1.Cell, error) { return Age(h.CreatedAt), nil },
		},
		{
			Header: model1.HeaderColumn{Name: "CPU", Attrs: model1.Attrs{Sortable: true, Kind: model1.KindNumber}},
			Cell: func(h *dao.Host) (model1.Cell, error) {
				if h.Inventory == nil {
					return model1.Cell{Display: NAValue, Key: 0}, nil
				}
				return Count(h.Inventory.CPU.Count), nil
			},
		},
		{
			Header: model1.HeaderColumn{Name: "MEMORY", Attrs: model1.Attrs{Sortable: true, Kind: model1.KindNumber}},
			Cell: func(h *dao.Host) (model1.Cell, error) {
				if h.Inventory == nil {
					return Bytes(0), nil
				}
				return Bytes(h.Inventory.Memory.PhysicalBytes), nil
			},
		},
		{
			Header: model1.HeaderColumn{Name: "DISKS", Attrs: model1.Attrs{Sortable: true, Kind: model1.KindNumber}},
			Cell: func(h *dao.Host) (model1.Cell, error) {
				if h.Inventory == nil {
					return model1.Cell{Display: NAValue, Key: 0}, nil
				}
				return Count(len(h.Inventory.Disks)), nil
			},
		},
		{
			Header: model1.HeaderColumn{Name: "STAGE", Attrs: model1.Attrs{Wide: true}},
			Cell:   func(h *dao.Host) (model1.Cell, error) { return Text(h.Stage), nil },
		},
		{Header: model1.HeaderColumn{Name: ActionsColumn}},
	}
}

// ColorerFunc colors hosts by status.
func (*Host) ColorerFunc() model1.ColorerFunc {
	return statusColorer(map[string]colorKind{
		dao.HostDiscovering:             colorBusy,
		dao.HostKnown:                   colorOK,
		dao.HostDisconnected:            colorError,
		dao.HostInsufficient:            colorWarn,
		dao.HostDisabled:                colorOff,
		dao.HostPendingForInput:         colorWarn,
		dao.HostPreparingInstallation:   colorBusy,
		dao.HostPreparingSuccessful:     colorBusy,
		dao.HostInstalling:              colorBusy,
		dao.HostInstallingInProgress:    colorBusy,
		dao.HostInstallingPendingAction: colorWarn,
		dao.HostInstalled:               colorDone,
		dao.HostAddedToExistingCluster:  colorDone,
		dao.HostError:                   colorError,
		dao.HostResetting:               colorBusy,
	})
}

func hostRole(r string) string {
	switch r {
	case "", "auto-assign":
		return "Auto-assign"
	case "master":
		return "Control plane node"
	case "worker":
		return "Worker"
	case "bootstrap":
		return "Bootstrap"
	default:
		return r
	}
}
