package config

import (
	"github.com/aic/aic/internal/config/data"
)

// DefaultRefreshRate is the default data refresh interval in seconds.
const DefaultRefreshRate = 5.0

// DefaultLogLevel is the default logging level.
const DefaultLogLevel = "info"

// NewFlags creates a new Flags instance. Unset flags leave the config
// file values alone.
func NewFlags() *data.Flags {
	return data.NewFlags()
}

// IsBoolSet returns true if a bool pointer is non-nil and true.
func IsBoolSet(b *bool) bool {
	return b != nil && *b
}

// IsStringSet returns true if a string pointer is non-nil and non-empty.
func IsStringSet(s *string) bool {
	return s != nil && *s != ""
}
