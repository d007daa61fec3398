package render

import (
	"strings"

	"github.com/aic/aic/internal/dao"
	"github.com/aic/aic/internal/model1"
)

// Disk renders the storage of a host.
type Disk struct {
	Base
}

var _ Renderer[*dao.Disk] = (*Disk)(nil)

func (*Disk) ID(d *dao.Disk) string {
	return d.ID
}

func (*Disk) Columns() model1.Columns[*dao.Disk] {
	return model1.Columns[*dao.Disk]{
		{
			Header: model1.HeaderColumn{Name: "NAME", Attrs: model1.Attrs{Sortable: true, Kind: model1.KindNatural}},
			Cell:   func(d *dao.Disk) (model1.Cell, error) { return Text(NA(d.Name)), nil },
		},
		{
			Header: model1.HeaderColumn{Name: "PATH", Attrs: model1.Attrs{Sortable: true, Kind: model1.KindNatural}},
			Cell:   func(d *dao.Disk) (model1.Cell, error) { return Text(NA(d.Path)), nil },
		},
		{
			Header: model1.HeaderColumn{Name: "TYPE", Attrs: model1.Attrs{Sortable: true, Kind: model1.KindString}},
			Cell:   func(d *dao.Disk) (model1.Cell, error) { return Text(NA(d.DriveType)), nil },
		},
		{
			Header: model1.HeaderColumn{Name: "SIZE", Attrs: model1.Attrs{Sortable: true, Kind: model1.KindNumber}},
			Cell:   func(d *dao.Disk) (model1.Cell, error) { return Bytes(d.SizeBytes), nil },
		},
		{
			Header: model1.HeaderColumn{Name: "BOOTABLE", Attrs: model1.Attrs{Sortable: true, Kind: model1.KindString}},
			Cell:   func(d *dao.Disk) (model1.Cell, error) { return Text(BoolToYesNo(d.Bootable)), nil },
		},
		{
			Header: model1.HeaderColumn{Name: "ELIGIBLE", Attrs: model1.Attrs{Sortable: true, Kind: model1.KindString}},
			Cell:   func(d *dao.Disk) (model1.Cell, error) { return Text(BoolToYesNo(d.Eligible)), nil },
		},
		{
			Header: model1.HeaderColumn{Name: "REASONS", Attrs: model1.Attrs{Wide: true}},
			Cell: func(d *dao.Disk) (model1.Cell, error) {
				return Text(strings.Join(d.NotEligibleReasons, "; ")), nil
			},
		},
	}
}
