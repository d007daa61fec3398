package dao

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aic/aic/internal/client"
)

func init() {
	RegisterAccessor(&ClusterRID, func() Accessor { return &ClusterAccessor{} })
}

// Cluster is an installation target.
type Cluster struct {
	BaseObject
	OpenshiftVersion     string
	StatusInfo           string
	HighAvailabilityMode string
	BaseDNSDomain        string
	InstallCompletedAt   *time.Time
	Progress             int
	HostCount            int
}

// NewCluster wraps a backend cluster.
func NewCluster(c *client.Cluster) *Cluster {
	created := c.CreatedAt
	cl := Cluster{
		BaseObject: BaseObject{
			ID:        c.ID,
			Name:      c.Name,
			Status:    c.Status,
			CreatedAt: &created,
			Raw:       c,
		},
		OpenshiftVersion:     c.OpenshiftVersion,
		StatusInfo:           c.StatusInfo,
		HighAvailabilityMode: c.HighAvailabilityMode,
		BaseDNSDomain:        c.BaseDNSDomain,
		InstallCompletedAt:   c.InstallCompletedAt,
		HostCount:            c.TotalHostCount,
	}
	if c.Progress != nil {
		cl.Progress = c.Progress.TotalPercentage
	}
	if cl.HostCount == 0 {
		cl.HostCount = len(c.Hosts)
	}

	return &cl
}

// IsSNO returns true for single node clusters.
func (c *Cluster) IsSNO() bool {
	return c.HighAvailabilityMode == "None"
}

// ClusterAccessor is the DAO for clusters.
type ClusterAccessor struct {
	Resource
}

// List returns every cluster. The scope is ignored.
func (a *ClusterAccessor) List(ctx context.Context, _ string) ([]Object, error) {
	if oo := a.cached(""); oo != nil {
		return oo, nil
	}
	cc, err := a.Client().ListClusters(ctx)
	if err != nil {
		return nil, err
	}
	oo := make([]Object, 0, len(cc))
	for i := range cc {
		oo = append(oo, NewCluster(&cc[i]))
	}
	a.store("", oo)

	return oo, nil
}

// Get returns the cluster with the given id.
func (a *ClusterAccessor) Get(ctx context.Context, id string) (Object, error) {
	c, err := a.Client().GetCluster(ctx, id)
	if err != nil {
		return nil, err
	}
	return NewCluster(c), nil
}

// Delete removes the cluster with the given id.
func (a *ClusterAccessor) Delete(ctx context.Context, id string) error {
	defer a.invalidate("")
	return a.Client().DeleteCluster(ctx, id)
}

// Install starts the installation of a cluster.
func (a *ClusterAccessor) Install(ctx context.Context, id string) (*Cluster, error) {
	defer a.invalidate("")
	c, err := a.Client().InstallCluster(ctx, id)
	if err != nil {
		return nil, err
	}
	return NewCluster(c), nil
}

// Describe returns a formatted description of the cluster.
func (a *ClusterAccessor) Describe(ctx context.Context, id string) (string, error) {
	o, err := a.Get(ctx, id)
	if err != nil {
		return "", err
	}
	c, ok := o.(*Cluster)
	if !ok {
		return "", fmt.Errorf("invalid cluster object")
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Name: %s\n", c.Name)
	fmt.Fprintf(&sb, "ID: %s\n", c.ID)
	fmt.Fprintf(&sb, "Version: %s\n", c.OpenshiftVersion)
	fmt.Fprintf(&sb, "Status: %s\n", c.Status)
	if c.StatusInfo != "" {
		fmt.Fprintf(&sb, "Status Info: %s\n", c.StatusInfo)
	}
	fmt.Fprintf(&sb, "Base Domain: %s\n", c.BaseDNSDomain)
	fmt.Fprintf(&sb, "Availability: %s\n", c.HighAvailabilityMode)
	fmt.Fprintf(&sb, "Hosts: %d\n", c.HostCount)
	fmt.Fprintf(&sb, "Progress: %d%%\n", c.Progress)
	if c.InstallCompletedAt != nil {
		fmt.Fprintf(&sb, "Installed: %s\n", c.InstallCompletedAt.Format(time.RFC3339))
	}

	return sb.String(), nil
}
