package dao

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aic/aic/internal/client"
)

// ResourceID identifies a resource kind of the assisted installer.
type ResourceID struct {
	Service  string // e.g., "installer"
	Resource string // e.g., "cluster", "host", "disk"
}

// String returns a string representation in the form "service/resource".
func (r ResourceID) String() string {
	return fmt.Sprintf("%s/%s", r.Service, r.Resource)
}

// Parse parses a string in the form "service/resource" into a ResourceID.
func (r *ResourceID) Parse(s string) error {
	service, resource, ok := strings.Cut(s, "/")
	if !ok || service == "" || resource == "" {
		return fmt.Errorf("invalid resource ID format: %s (expected service/resource)", s)
	}
	r.Service, r.Resource = service, resource
	return nil
}

var (
	ClusterRID = ResourceID{Service: "installer", Resource: "cluster"}
	HostRID    = ResourceID{Service: "installer", Resource: "host"}
	DiskRID    = ResourceID{Service: "installer", Resource: "disk"}
)

// Object represents a resource listed by an accessor.
type Object interface {
	GetID() string
	GetName() string
	GetStatus() string
	GetCreatedAt() *time.Time
	GetRaw() any
}

// Factory provides the backend connection.
type Factory interface {
	Client() client.Connection
	Endpoint() string
	SetEndpoint(name string) error
}

// Getter retrieves a single resource by path.
type Getter interface {
	Get(ctx context.Context, path string) (Object, error)
}

// Lister retrieves the resources under a scope. Clusters ignore the scope,
// hosts are scoped by cluster id and disks by "clusterID/hostID".
type Lister interface {
	List(ctx context.Context, scope string) ([]Object, error)
}

// Accessor combines getting and listing capabilities with initialization.
type Accessor interface {
	Getter
	Lister
	Init(Factory, *ResourceID)
	ResourceID() *ResourceID
}

// Nuker deletes resources by path.
type Nuker interface {
	Delete(ctx context.Context, path string) error
}

// Describer renders a resource for the detail view.
type Describer interface {
	Describe(ctx context.Context, path string) (string, error)
}

// splitPath splits "parent/child" paths.
func splitPath(path string) (string, string, error) {
	parent, child, ok := strings.Cut(path, "/")
	if !ok || parent == "" || child == "" {
		return "", "", fmt.Errorf("invalid path %q (expected parent/child)", path)
	}
	return parent, child, nil
}
