// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of aic

package ui

import (
	"fmt"

	"github.com/aic/aic/internal/massaction"
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

// DialogCallback is called when dialog is dismissed.
type DialogCallback func()

// Dialog represents a modal dialog with a single OK button.
type Dialog struct {
	*tview.Modal
	pages  *Pages
	pageID string
	onDone DialogCallback
}

// NewDialog creates a new dialog.
func NewDialog(pages *Pages, pageID string) *Dialog {
	d := &Dialog{
		Modal:  tview.NewModal(),
		pages:  pages,
		pageID: pageID,
	}
	d.SetBackgroundColor(tcell.ColorDefault)
	d.SetTextColor(tcell.ColorWhite)
	d.AddButtons([]string{"OK"})
	d.SetDoneFunc(func(int, string) { d.Dismiss() })

	return d
}

// SetMessage sets the dialog body under its title.
func (d *Dialog) SetMessage(title, msg string) *Dialog {
	d.SetText(fmt.Sprintf("%s\n\n%s", title, msg))
	return d
}

// SetDoneCallback sets the callback for when dialog closes.
func (d *Dialog) SetDoneCallback(fn DialogCallback) *Dialog {
	d.onDone = fn
	return d
}

// SetColors configures dialog colors.
func (d *Dialog) SetColors(text, btnBg, btnText tcell.Color) *Dialog {
	d.SetTextColor(text)
	d.SetButtonBackgroundColor(btnBg)
	d.SetButtonTextColor(btnText)
	return d
}

// Show displays the dialog as a modal overlay.
func (d *Dialog) Show() {
	if d.pages != nil {
		d.pages.ShowModal(d.pageID, d)
	}
}

// Dismiss removes the dialog from display.
func (d *Dialog) Dismiss() {
	if d.pages != nil {
		d.pages.DismissModal(d.pageID)
	}
	if d.onDone != nil {
		d.onDone()
	}
}

// PageID returns the dialog's page identifier.
func (d *Dialog) PageID() string {
	return d.pageID
}

// InfoDialog creates a simple info dialog.
func InfoDialog(pages *Pages, title, message string) *Dialog {
	return NewDialog(pages, "info-dialog").
		SetMessage(title, message)
}

// ErrorDialog creates a styled error dialog.
func ErrorDialog(pages *Pages, title, message string) *Dialog {
	return NewDialog(pages, "error-dialog").
		SetMessage(title, message).
		SetColors(tcell.ColorRed, tcell.ColorRed, tcell.ColorWhite)
}

// FailureDialog reports where a mass action stopped. Changes applied
// before the failing item are kept.
func FailureDialog(pages *Pages, f *massaction.Failure) *Dialog {
	msg := fmt.Sprintf("%s: %s", f.ID, f.Message)
	if f.Index > 0 {
		msg += fmt.Sprintf("\n\nThe first %d change(s) were applied.", f.Index)
	}

	return NewDialog(pages, "failure-dialog").
		SetMessage(f.Title, msg).
		SetColors(tcell.ColorRed, tcell.ColorRed, tcell.ColorWhite)
}
