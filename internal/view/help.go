// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of aic

package view

import (
	"context"

	"github.com/aic/aic/internal/ui"
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

// HelpBind represents a single keybinding.
type HelpBind struct {
	Key  string
	Desc string
}

var helpHeaders = []string{"COMMANDS", "GENERAL", "VIEW", "NAVIGATION"}

// Help lists the commands, the general keys and the keys of the view it
// was opened from.
type Help struct {
	*tview.Table

	app   *App
	hints ui.MenuHints
}

// NewHelp returns a help view for a view with hints hh.
func NewHelp(app *App, hh ui.MenuHints) *Help {
	return &Help{
		Table: tview.NewTable(),
		app:   app,
		hints: hh,
	}
}

// Init builds the help table.
func (h *Help) Init(context.Context) error {
	h.SetBorder(true)
	h.SetTitle(" Help ")
	h.SetTitleAlign(tview.AlignCenter)
	h.SetBorderColor(tcell.ColorYellow)
	h.SetBackgroundColor(tcell.ColorDefault)
	h.SetSelectable(false, false)
	h.SetInputCapture(h.keyboard)
	h.populate(HelpColumns(h.hints))

	return nil
}

// Start implements ui.Component.
func (*Help) Start() {}

// Stop implements ui.Component.
func (*Help) Stop() {}

// Name returns the view name.
func (*Help) Name() string {
	return helpView
}

// Hints returns menu hints.
func (*Help) Hints() ui.MenuHints {
	return ui.MenuHints{
		{Mnemonic: "esc", Description: "Back", Visible: true},
	}
}

func (h *Help) keyboard(evt *tcell.EventKey) *tcell.EventKey {
	if evt.Key() == tcell.KeyEnter {
		h.app.Content.Pop()
		return nil
	}
	return evt
}

// HelpColumns returns the help entries, one slice per column. Only the
// visible hints of the view are listed.
func HelpColumns(hh ui.MenuHints) [][]HelpBind {
	commands := []HelpBind{
		{":clusters", "Clusters"},
		{":hosts <cluster>", "Hosts"},
		{":storage <cluster>/<host>", "Disks"},
		{":endpoints [name]", "Endpoints"},
		{":help", "Help"},
		{":quit", "Quit"},
	}
	general := []HelpBind{
		{"<:>", "Command"},
		{"</>", "Filter"},
		{"<?>", "Help"},
		{"<esc>", "Back"},
		{"<q>", "Quit"},
	}
	nav := []HelpBind{
		{"<up>", "Up"},
		{"<down>", "Down"},
		{"<pgup>", "Page Up"},
		{"<pgdn>", "Page Down"},
		{"<home>", "Top"},
		{"<end>", "Bottom"},
	}
	view := make([]HelpBind, 0, len(hh))
	for _, hint := range hh {
		if !hint.Visible || hint.IsBlank() {
			continue
		}
		view = append(view, HelpBind{Key: "<" + hint.Mnemonic + ">", Desc: hint.Description})
	}

	return [][]HelpBind{commands, general, view, nav}
}

// populate lays the columns out k9s style, a key and a description cell
// per entry with a spacer between columns.
func (h *Help) populate(columns [][]HelpBind) {
	maxRows := 0
	for _, col := range columns {
		maxRows = max(maxRows, len(col))
	}

	const colWidth = 3
	for colIdx, col := range columns {
		baseCol := colIdx * colWidth
		h.SetCell(0, baseCol, tview.NewTableCell(helpHeaders[colIdx]).
			SetTextColor(tcell.ColorAqua).
			SetAttributes(tcell.AttrBold).
			SetSelectable(false))

		for rowIdx, bind := range col {
			row := rowIdx + 1
			h.SetCell(row, baseCol, tview.NewTableCell(bind.Key).
				SetTextColor(tcell.ColorYellow).
				SetSelectable(false))
			h.SetCell(row, baseCol+1, tview.NewTableCell(bind.Desc).
				SetTextColor(tcell.ColorWhite).
				SetSelectable(false).
				SetExpansion(1))
		}

		if colIdx < len(columns)-1 {
			for row := 0; row <= maxRows; row++ {
				h.SetCell(row, baseCol+2, tview.NewTableCell("").
					SetSelectable(false).
					SetExpansion(1))
			}
		}
	}

	h.SetCell(maxRows+2, 0, tview.NewTableCell("<esc> to close").
		SetTextColor(tcell.ColorGray).
		SetSelectable(false))
}
