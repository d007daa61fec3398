package client

import "time"

// Cluster is the backend cluster resource.
type Cluster struct {
	ID                   string           `json:"id"`
	Name                 string           `json:"name"`
	OpenshiftVersion     string           `json:"openshift_version"`
	Status               string           `json:"status"`
	StatusInfo           string           `json:"status_info"`
	HighAvailabilityMode string           `json:"high_availability_mode"`
	BaseDNSDomain        string           `json:"base_dns_domain"`
	CreatedAt            time.Time        `json:"created_at"`
	InstallCompletedAt   *time.Time       `json:"install_completed_at,omitempty"`
	Progress             *ClusterProgress `json:"progress,omitempty"`
	Hosts                []Host           `json:"hosts,omitempty"`
	TotalHostCount       int              `json:"total_host_count"`
}

type ClusterProgress struct {
	TotalPercentage int `json:"total_percentage"`
}

// Host is the backend host resource. Inventory is a JSON document encoded
// as a string.
type Host struct {
	ID                string        `json:"id"`
	ClusterID         string        `json:"cluster_id"`
	RequestedHostname string        `json:"requested_hostname"`
	Role              string        `json:"role"`
	Status            string        `json:"status"`
	StatusInfo        string        `json:"status_info"`
	Inventory         string        `json:"inventory"`
	CreatedAt         time.Time     `json:"created_at"`
	Progress          *HostProgress `json:"progress,omitempty"`
}

type HostProgress struct {
	CurrentStage string `json:"current_stage"`
	ProgressInfo string `json:"progress_info"`
}

type HostnameUpdate struct {
	ID       string `json:"id"`
	Hostname string `json:"hostname"`
}

// ClusterUpdateParams is the body of a cluster patch.
type ClusterUpdateParams struct {
	HostsNames []HostnameUpdate `json:"hosts_names,omitempty"`
}
