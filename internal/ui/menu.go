// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of aic

package ui

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/aic/aic/internal/model"
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

const (
	menuIndexFmt  = " [fuchsia::b]<%d>[white::-] %s "
	menuPlainFmt  = " [dodgerblue::b]<%s>[white::-] %s "
	menuDangerFmt = " [red::b]<%s>[white::-] %s "
	maxRows       = 6
)

// Menu presents the key bindings of the top component.
type Menu struct {
	*tview.Table
}

// NewMenu returns a new menu.
func NewMenu() *Menu {
	m := &Menu{
		Table: tview.NewTable(),
	}
	m.SetBackgroundColor(tcell.ColorDefault)
	m.SetBorderPadding(0, 0, 1, 1)

	return m
}

// HydrateMenu populate menu ui from hints.
func (m *Menu) HydrateMenu(hh MenuHints) {
	m.Clear()
	for row, cols := range MenuLayout(hh) {
		for col, text := range cols {
			c := tview.NewTableCell(text)
			c.SetBackgroundColor(tcell.ColorDefault)
			m.SetCell(row, col, c)
		}
	}
}

// MenuLayout lays the visible hints out in columns of at most maxRows.
func MenuLayout(hh MenuHints) [][]string {
	visible := make(MenuHints, 0, len(hh))
	for _, h := range hh {
		if h.Visible && !h.IsBlank() {
			visible = append(visible, h)
		}
	}
	sort.Sort(visible)

	rows := min(len(visible), maxRows)
	out := make([][]string, rows)
	for i, h := range visible {
		out[i%maxRows] = append(out[i%maxRows], formatMenu(h))
	}

	return out
}

func formatMenu(h MenuHint) string {
	if h.Mnemonic == "" || h.Description == "" {
		return ""
	}
	if i, err := strconv.Atoi(h.Mnemonic); err == nil {
		return fmt.Sprintf(menuIndexFmt, i, h.Description)
	}
	if h.Dangerous {
		return fmt.Sprintf(menuDangerFmt, h.Mnemonic, h.Description)
	}

	return fmt.Sprintf(menuPlainFmt, h.Mnemonic, h.Description)
}

// StackPushed notifies a component was added.
func (m *Menu) StackPushed(c model.Component) {
	if h, ok := c.(Hinter); ok {
		m.HydrateMenu(h.Hints())
	}
}

// StackPopped notifies a component was removed.
func (m *Menu) StackPopped(_, top model.Component) {
	if top == nil {
		m.Clear()
		return
	}
	if h, ok := top.(Hinter); ok {
		m.HydrateMenu(h.Hints())
	}
}

// StackTop notifies the top component.
func (m *Menu) StackTop(t model.Component) {
	if h, ok := t.(Hinter); ok {
		m.HydrateMenu(h.Hints())
	}
}
