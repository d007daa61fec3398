// Package data provides configuration data types and file helpers.
package data

// Flags represents CLI command-line flags.
type Flags struct {
	RefreshRate *float32 // Refresh rate in seconds
	LogLevel    *string  // Log level (e.g., debug, info, warn, error)
	LogFile     *string  // Path to log file
	Command     *string  // View to open on start
	ReadOnly    *bool    // Run in read-only mode
	Write       *bool    // Enable write operations
	Endpoint    *string  // Endpoint profile to use
	APIURL      *string  // Backend URL, overrides the endpoint URL
	PageSize    *int     // Rows per page
}

// UI represents user interface configuration settings.
type UI struct {
	EnableMouse bool `yaml:"enableMouse"`
	Logoless    bool `yaml:"logoless"`
	Crumbsless  bool `yaml:"crumbsless"`
}

// Logger represents logging configuration settings.
type Logger struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Table configures the tabular views.
type Table struct {
	PageSize        int   `yaml:"pageSize"`
	PageSizeOptions []int `yaml:"pageSizeOptions"`
	ShowPagination  *bool `yaml:"showPagination,omitempty"`
}

// Retry configures how idempotent backend reads are retried.
type Retry struct {
	Attempts uint   `yaml:"attempts"`
	Delay    string `yaml:"delay"`
}

// Export locates the bucket receiving exported installation logs.
type Export struct {
	Bucket  string `yaml:"bucket"`
	Prefix  string `yaml:"prefix"`
	Region  string `yaml:"region"`
	Profile string `yaml:"profile"`
}

// Default table and retry settings.
const (
	DefaultPageSize      = 20
	DefaultRetryAttempts = 3
	DefaultRetryDelay    = "500ms"
)

// DefaultPageSizeOptions are the page sizes offered by the pager.
var DefaultPageSizeOptions = []int{10, 20, 50, 100}

// Validate fills unset table settings with defaults.
func (t *Table) Validate() {
	if t.PageSize <= 0 {
		t.PageSize = DefaultPageSize
	}
	if len(t.PageSizeOptions) == 0 {
		t.PageSizeOptions = append([]int(nil), DefaultPageSizeOptions...)
	}
	if t.ShowPagination == nil {
		show := true
		t.ShowPagination = &show
	}
}

// Paged reports whether the pager is shown.
func (t *Table) Paged() bool {
	return t.ShowPagination == nil || *t.ShowPagination
}

// NewFlags creates a new Flags instance with all pointer fields initialized.
// All pointers are allocated but their values are not set.
func NewFlags() *Flags {
	return &Flags{
		RefreshRate: new(float32),
		LogLevel:    new(string),
		LogFile:     new(string),
		Command:     new(string),
		ReadOnly:    new(bool),
		Write:       new(bool),
		Endpoint:    new(string),
		APIURL:      new(string),
		PageSize:    new(int),
	}
}
