package dao

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aic/aic/internal/client"
	log "github.com/sirupsen/logrus"
)

func init() {
	RegisterAccessor(&HostRID, func() Accessor { return &HostAccessor{} })
}

// Inventory is the hardware report of a host.
type Inventory struct {
	Hostname string          `json:"hostname"`
	CPU      CPU             `json:"cpu"`
	Memory   Memory          `json:"memory"`
	Disks    []InventoryDisk `json:"disks"`
}

type CPU struct {
	Count int `json:"count"`
}

type Memory struct {
	PhysicalBytes int64 `json:"physical_bytes"`
}

type InventoryDisk struct {
	ID                      string      `json:"id"`
	Name                    string      `json:"name"`
	Path                    string      `json:"path"`
	DriveType               string      `json:"drive_type"`
	SizeBytes               int64       `json:"size_bytes"`
	Bootable                bool        `json:"bootable"`
	InstallationEligibility Eligibility `json:"installation_eligibility"`
}

type Eligibility struct {
	Eligible           bool     `json:"eligible"`
	NotEligibleReasons []string `json:"not_eligible_reasons"`
}

// ParseInventory decodes the inventory document a host reports. An empty
// document yields nil.
func ParseInventory(raw string) (*Inventory, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var inv Inventory
	if err := json.Unmarshal([]byte(raw), &inv); err != nil {
		return nil, fmt.Errorf("invalid inventory: %w", err)
	}
	return &inv, nil
}

// Host is a machine discovered for a cluster.
type Host struct {
	BaseObject
	ClusterID         string
	RequestedHostname string
	Role              string
	StatusInfo        string
	Stage             string
	Inventory         *Inventory
}

// NewHost wraps a backend host. A broken inventory is logged and dropped.
func NewHost(h *client.Host) *Host {
	created := h.CreatedAt
	host := Host{
		BaseObject: BaseObject{
			ID:        h.ID,
			Status:    h.Status,
			CreatedAt: &created,
			Raw:       h,
		},
		ClusterID:         h.ClusterID,
		RequestedHostname: h.RequestedHostname,
		Role:              h.Role,
		StatusInfo:        h.StatusInfo,
	}
	if h.Progress != nil {
		host.Stage = h.Progress.CurrentStage
	}
	inv, err := ParseInventory(h.Inventory)
	if err != nil {
		log.WithField("host", h.ID).Warn(err)
	}
	host.Inventory = inv
	host.Name = host.Hostname()

	return &host
}

// Hostname returns the requested hostname, or the one the host reported.
func (h *Host) Hostname() string {
	if h.RequestedHostname != "" {
		return h.RequestedHostname
	}
	if h.Inventory != nil {
		return h.Inventory.Hostname
	}
	return ""
}

// Path returns the "clusterID/hostID" path of the host.
func (h *Host) Path() string {
	return h.ClusterID + "/" + h.ID
}

// Disks returns the host disks, empty until an inventory is reported.
func (h *Host) Disks() []*Disk {
	if h.Inventory == nil {
		return nil
	}
	dd := make([]*Disk, 0, len(h.Inventory.Disks))
	for _, d := range h.Inventory.Disks {
		dd = append(dd, NewDisk(h, d))
	}
	return dd
}

// HostAccessor is the DAO for the hosts of a cluster.
type HostAccessor struct {
	Resource
}

// List returns the hosts of cluster clusterID.
func (a *HostAccessor) List(ctx context.Context, clusterID string) ([]Object, error) {
	if oo := a.cached(clusterID); oo != nil {
		return oo, nil
	}
	hh, err := a.Client().ListHosts(ctx, clusterID)
	if err != nil {
		return nil, err
	}
	oo := make([]Object, 0, len(hh))
	for i := range hh {
		if hh[i].ClusterID == "" {
			hh[i].ClusterID = clusterID
		}
		oo = append(oo, NewHost(&hh[i]))
	}
	a.store(clusterID, oo)

	return oo, nil
}

// Get returns the host at "clusterID/hostID".
func (a *HostAccessor) Get(ctx context.Context, path string) (Object, error) {
	clusterID, hostID, err := splitPath(path)
	if err != nil {
		return nil, err
	}
	oo, err := a.List(ctx, clusterID)
	if err != nil {
		return nil, err
	}
	for _, o := range oo {
		if o.GetID() == hostID {
			return o, nil
		}
	}

	return nil, fmt.Errorf("host %s: %w", path, client.ErrNotFound)
}

// Rename sets the requested hostname of a host.
func (a *HostAccessor) Rename(ctx context.Context, h *Host, hostname string) error {
	defer a.invalidate(h.ClusterID)
	if _, err := a.Client().UpdateHostname(ctx, h.ClusterID, h.ID, hostname); err != nil {
		return err
	}
	log.WithField("host", h.ID).Infof("renamed %q to %q", h.Hostname(), hostname)

	return nil
}

// Delete removes the host at "clusterID/hostID".
func (a *HostAccessor) Delete(ctx context.Context, path string) error {
	clusterID, hostID, err := splitPath(path)
	if err != nil {
		return err
	}
	defer a.invalidate(clusterID)

	return a.Client().DeleteHost(ctx, clusterID, hostID)
}

// Describe returns a formatted description of the host.
func (a *HostAccessor) Describe(ctx context.Context, path string) (string, error) {
	o, err := a.Get(ctx, path)
	if err != nil {
		return "", err
	}
	h, ok := o.(*Host)
	if !ok {
		return "", fmt.Errorf("invalid host object")
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Hostname: %s\n", h.Hostname())
	fmt.Fprintf(&sb, "ID: %s\n", h.ID)
	fmt.Fprintf(&sb, "Role: %s\n", h.Role)
	fmt.Fprintf(&sb, "Status: %s\n", h.Status)
	if h.StatusInfo != "" {
		fmt.Fprintf(&sb, "Status Info: %s\n", h.StatusInfo)
	}
	if h.Stage != "" {
		fmt.Fprintf(&sb, "Stage: %s\n", h.Stage)
	}
	if inv := h.Inventory; inv != nil {
		fmt.Fprintf(&sb, "CPU Cores: %d\n", inv.CPU.Count)
		fmt.Fprintf(&sb, "Memory: %d bytes\n", inv.Memory.PhysicalBytes)
		fmt.Fprintf(&sb, "Disks: %d\n", len(inv.Disks))
	}

	return sb.String(), nil
}
