package data

import "strings"

// DefaultView is the default resource view when starting the app
const DefaultView = "clusters"

// SortSpec is a saved table sort.
type SortSpec struct {
	Column string `yaml:"column"`
	Desc   bool   `yaml:"desc,omitempty"`
}

// View represents the active view state and the sort of every view.
type View struct {
	Active string              `yaml:"active"`
	Sort   map[string]SortSpec `yaml:"sort,omitempty"`
}

// NewView creates a View with default settings
func NewView() *View {
	return &View{
		Active: DefaultView,
		Sort:   make(map[string]SortSpec),
	}
}

// Validate ensures the View has valid settings
func (v *View) Validate() {
	if v.Active == "" {
		v.Active = DefaultView
	}
	if v.Sort == nil {
		v.Sort = make(map[string]SortSpec)
	}
}

// SortFor returns the saved sort of view, if any.
func (v *View) SortFor(view string) (SortSpec, bool) {
	s, ok := v.Sort[strings.ToLower(view)]
	return s, ok && s.Column != ""
}

// SetSort records the sort of view.
func (v *View) SetSort(view string, s SortSpec) {
	if v.Sort == nil {
		v.Sort = make(map[string]SortSpec)
	}
	v.Sort[strings.ToLower(view)] = s
}
