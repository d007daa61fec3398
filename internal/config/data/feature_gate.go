package data

// FeatureGates controls optional features
type FeatureGates struct {
	// BulkEdit enables renaming hosts from a document opened in $EDITOR.
	BulkEdit bool `yaml:"bulkEdit"`

	// LogExport enables uploading installation logs to S3.
	LogExport bool `yaml:"logExport"`
}

// NewFeatureGates creates FeatureGates with default settings (all disabled)
func NewFeatureGates() FeatureGates {
	return FeatureGates{}
}

// Merge overlays another FeatureGates on top of this one
// Only enabled features in other will be applied
func (f *FeatureGates) Merge(other FeatureGates) {
	if other.BulkEdit {
		f.BulkEdit = true
	}
	if other.LogExport {
		f.LogExport = true
	}
}
