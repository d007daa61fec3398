package dao

import (
	"context"
	"fmt"
	"strings"

	"github.com/aic/aic/internal/client"
)

func init() {
	RegisterAccessor(&DiskRID, func() Accessor { return &DiskAccessor{} })
}

// Disk is a storage device of a host.
type Disk struct {
	BaseObject
	ClusterID          string
	HostID             string
	Path               string
	DriveType          string
	SizeBytes          int64
	Bootable           bool
	Eligible           bool
	NotEligibleReasons []string
}

// NewDisk wraps an inventory disk of h.
func NewDisk(h *Host, d InventoryDisk) *Disk {
	id := d.ID
	if id == "" {
		id = d.Path
	}
	return &Disk{
		BaseObject: BaseObject{
			ID:        id,
			Name:      d.Name,
			CreatedAt: h.CreatedAt,
			Raw:       d,
		},
		ClusterID:          h.ClusterID,
		HostID:             h.ID,
		Path:               d.Path,
		DriveType:          d.DriveType,
		SizeBytes:          d.SizeBytes,
		Bootable:           d.Bootable,
		Eligible:           d.InstallationEligibility.Eligible,
		NotEligibleReasons: d.InstallationEligibility.NotEligibleReasons,
	}
}

// DiskAccessor lists disks from the host inventories.
type DiskAccessor struct {
	Resource
}

func (a *DiskAccessor) hosts() *HostAccessor {
	var h HostAccessor
	h.Init(a.Factory, &HostRID)
	h.SetCache(a.getCache())
	return &h
}

// List returns the disks of the host at "clusterID/hostID".
func (a *DiskAccessor) List(ctx context.Context, hostPath string) ([]Object, error) {
	o, err := a.hosts().Get(ctx, hostPath)
	if err != nil {
		return nil, err
	}
	h, ok := o.(*Host)
	if !ok {
		return nil, fmt.Errorf("invalid host object")
	}
	dd := h.Disks()
	oo := make([]Object, 0, len(dd))
	for _, d := range dd {
		oo = append(oo, d)
	}

	return oo, nil
}

// Get returns the disk at "clusterID/hostID/diskID". Disk ids may hold
// slashes.
func (a *DiskAccessor) Get(ctx context.Context, path string) (Object, error) {
	tokens := strings.SplitN(path, "/", 3)
	if len(tokens) != 3 || tokens[2] == "" {
		return nil, fmt.Errorf("invalid disk path %q", path)
	}
	oo, err := a.List(ctx, tokens[0]+"/"+tokens[1])
	if err != nil {
		return nil, err
	}
	for _, o := range oo {
		if o.GetID() == tokens[2] {
			return o, nil
		}
	}

	return nil, fmt.Errorf("disk %s: %w", path, client.ErrNotFound)
}
