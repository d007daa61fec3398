package dao

import "fmt"

// Host statuses reported by the backend.
const (
	HostDiscovering             = "discovering"
	HostKnown                   = "known"
	HostDisconnected            = "disconnected"
	HostInsufficient            = "insufficient"
	HostDisabled                = "disabled"
	HostPendingForInput         = "pending-for-input"
	HostPreparingInstallation   = "preparing-for-installation"
	HostPreparingSuccessful     = "preparing-successful"
	HostInstalling              = "installing"
	HostInstallingInProgress    = "installing-in-progress"
	HostInstallingPendingAction = "installing-pending-user-action"
	HostInstalled               = "installed"
	HostError                   = "error"
	HostResetting               = "resetting"
	HostAddedToExistingCluster  = "added-to-existing-cluster"
)

// Cluster statuses reported by the backend.
const (
	ClusterPendingForInput         = "pending-for-input"
	ClusterInsufficient            = "insufficient"
	ClusterReady                   = "ready"
	ClusterPreparingInstallation   = "preparing-for-installation"
	ClusterInstalling              = "installing"
	ClusterInstallingPendingAction = "installing-pending-user-action"
	ClusterFinalizing              = "finalizing"
	ClusterCancelled               = "cancelled"
	ClusterError                   = "error"
	ClusterInstalled               = "installed"
	ClusterAddingHosts             = "adding-hosts"
)

// ActionCheck tells whether an action is allowed on a resource.
type ActionCheck struct {
	Allowed bool
	Reason  string
}

// Allow returns a passing check.
func Allow() ActionCheck {
	return ActionCheck{Allowed: true}
}

// Deny returns a failing check with a reason.
func Deny(format string, args ...any) ActionCheck {
	return ActionCheck{Reason: fmt.Sprintf(format, args...)}
}

// Result splits the check for callers taking (allowed, reason) pairs.
func (a ActionCheck) Result() (bool, string) {
	return a.Allowed, a.Reason
}

var hostnameEditable = map[string]struct{}{
	HostDiscovering:     {},
	HostKnown:           {},
	HostDisconnected:    {},
	HostInsufficient:    {},
	HostPendingForInput: {},
}

var hostBusy = map[string]struct{}{
	HostPreparingInstallation:   {},
	HostPreparingSuccessful:     {},
	HostInstalling:              {},
	HostInstallingInProgress:    {},
	HostInstallingPendingAction: {},
	HostResetting:               {},
}

var clusterBusy = map[string]struct{}{
	ClusterPreparingInstallation:   {},
	ClusterInstalling:              {},
	ClusterInstallingPendingAction: {},
	ClusterFinalizing:              {},
}

// CanChangeHostname allows renames before the installation starts.
func CanChangeHostname(h *Host) ActionCheck {
	if h == nil {
		return Deny("unknown host")
	}
	if _, ok := hostnameEditable[h.Status]; !ok {
		return Deny("hostname cannot be changed while the host is %s", h.Status)
	}
	return Allow()
}

// CanDelete allows removing hosts that are not being installed.
func CanDelete(h *Host) ActionCheck {
	if h == nil {
		return Deny("unknown host")
	}
	if _, ok := hostBusy[h.Status]; ok {
		return Deny("host cannot be deleted while %s", h.Status)
	}
	return Allow()
}

// CanDeleteCluster allows removing clusters that are not being installed.
func CanDeleteCluster(c *Cluster) ActionCheck {
	if c == nil {
		return Deny("unknown cluster")
	}
	if _, ok := clusterBusy[c.Status]; ok {
		return Deny("cluster cannot be deleted while %s", c.Status)
	}
	return Allow()
}

// CanInstall allows starting the installation of a ready cluster.
func CanInstall(c *Cluster) ActionCheck {
	if c == nil {
		return Deny("unknown cluster")
	}
	if c.Status != ClusterReady {
		return Deny("cluster is %s, not ready", c.Status)
	}
	return Allow()
}
