// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of aic

package view

import (
	"context"
	"fmt"

	"github.com/aic/aic/internal/ui"
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

// Endpoints lists the configured backends and switches between them.
type Endpoints struct {
	*tview.Table

	app     *App
	names   []string
	current string
}

// NewEndpoints returns the endpoint switcher.
func NewEndpoints(app *App) *Endpoints {
	e := Endpoints{
		Table: tview.NewTable(),
		app:   app,
	}
	e.SetBorder(true)
	e.SetTitleAlign(tview.AlignCenter)
	e.SetBorderColor(tcell.ColorAqua)
	e.SetBackgroundColor(tcell.ColorDefault)
	e.SetSelectable(true, false)
	e.SetFixed(1, 0)

	return &e
}

// Init initializes the endpoint switcher.
func (e *Endpoints) Init(context.Context) error {
	e.SetInputCapture(e.keyboard)
	return nil
}

// Start lists the endpoints.
func (e *Endpoints) Start() {
	e.load()
}

// Stop implements ui.Component.
func (*Endpoints) Stop() {}

// Name returns the view name.
func (*Endpoints) Name() string {
	return endpointsView
}

// Hints returns menu hints.
func (*Endpoints) Hints() ui.MenuHints {
	return ui.MenuHints{
		{Mnemonic: "enter", Description: "Switch", Visible: true},
		{Mnemonic: "esc", Description: "Back", Visible: true},
	}
}

func (e *Endpoints) keyboard(evt *tcell.EventKey) *tcell.EventKey {
	if evt.Key() == tcell.KeyEnter {
		e.switchCmd()
		return nil
	}
	return evt
}

func (e *Endpoints) load() {
	e.Clear()
	for col, h := range []string{"", "ENDPOINT", "URL"} {
		e.SetCell(0, col, tview.NewTableCell(h).
			SetTextColor(tcell.ColorYellow).
			SetSelectable(false).
			SetExpansion(1))
	}

	conn := e.app.Factory().Client()
	if conn == nil {
		e.showNoData("No connection")
		return
	}
	e.current = conn.ActiveEndpoint()
	e.names = conn.EndpointNames()
	if len(e.names) == 0 {
		e.showNoData("No endpoints found")
		return
	}

	for i, name := range e.names {
		row := i + 1
		marker, color, url := "", tcell.ColorWhite, ""
		if name == e.current {
			marker, color = "●", tcell.ColorGreen
			if cfg := conn.Config(); cfg != nil {
				url = cfg.URL
			}
		}
		e.SetCell(row, 0, tview.NewTableCell(marker).
			SetTextColor(tcell.ColorGreen).
			SetAlign(tview.AlignCenter))
		e.SetCell(row, 1, tview.NewTableCell(name).
			SetTextColor(color).
			SetExpansion(1).
			SetReference(name))
		e.SetCell(row, 2, tview.NewTableCell(url).
			SetTextColor(tcell.ColorWhite).
			SetExpansion(2))
	}
	e.SetTitle(fmt.Sprintf(" Endpoints [%d] ", len(e.names)))
	e.Select(1, 0)
}

func (e *Endpoints) showNoData(msg string) {
	e.SetCell(1, 0, tview.NewTableCell(msg).
		SetTextColor(tcell.ColorGray).
		SetAlign(tview.AlignCenter).
		SetSelectable(false))
}

func (e *Endpoints) switchCmd() {
	row, _ := e.GetSelection()
	if row == 0 || row > len(e.names) {
		return
	}
	name := e.names[row-1]
	if name == e.current {
		e.app.Flash().Infof("Already using endpoint %s", name)
		return
	}
	if err := e.app.SwitchEndpoint(name); err != nil {
		e.app.Flash().Err(err)
		return
	}
	e.app.Flash().Infof("Switched to endpoint %s", name)
}
