// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of aic

package view

import (
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

// EndpointState is what the header shows about the active backend.
type EndpointState struct {
	Name     string
	URL      string
	Online   bool
	ReadOnly bool
	Version  string
}

// EndpointInfo displays the active endpoint in the header.
type EndpointInfo struct {
	*tview.Table

	state EndpointState
}

// NewEndpointInfo returns an empty endpoint panel.
func NewEndpointInfo() *EndpointInfo {
	e := EndpointInfo{Table: tview.NewTable()}
	e.SetBorder(true)
	e.SetBorderColor(tcell.ColorDarkCyan)
	e.SetBorderPadding(0, 0, 1, 1)
	e.SetSelectable(false, false)
	e.SetBackgroundColor(tcell.ColorDefault)

	return &e
}

// SetInfo updates the displayed endpoint.
func (e *EndpointInfo) SetInfo(s EndpointState) {
	e.state = s
	e.refresh()
}

func (e *EndpointInfo) refresh() {
	e.Clear()
	for row, line := range e.state.Lines() {
		e.SetCell(row, 0, tview.NewTableCell(line).
			SetTextColor(tcell.ColorWhite).
			SetAlign(tview.AlignLeft).
			SetSelectable(false))
	}
}

// Lines returns the panel content, one entry per row.
func (s EndpointState) Lines() []string {
	name := s.Name
	if name == "" {
		name = "default"
	}
	status := "[red::]offline[-::]"
	if s.Online {
		status = "[green::]online[-::]"
	}
	mode := "[green::]rw[-::]"
	if s.ReadOnly {
		mode = "[orange::b]read-only[-::-]"
	}
	url := s.URL
	if url == "" {
		url = "..."
	}

	return []string{
		"[darkcyan::b]" + tview.Escape(name) + "[-::-] " + status,
		"[gray::]" + tview.Escape(url) + "[-::]",
		"Mode: " + mode,
		"[gray::]aic v" + tview.Escape(s.Version) + "[-::]",
	}
}
