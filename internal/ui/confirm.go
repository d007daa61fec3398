// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of aic

package ui

import (
	"fmt"
	"strings"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

const (
	confirmPageID = "confirm-dialog"
	maxTargets    = 8
)

// ConfirmFunc is called when user confirms action.
type ConfirmFunc func()

// Confirm asks the user to approve an action on one or more resources.
type Confirm struct {
	*tview.Modal

	question  string
	targets   []string
	dangerous bool
	onConfirm ConfirmFunc
	onCancel  func()
	pages     *Pages
}

// NewConfirm creates a new confirmation dialog.
func NewConfirm(pages *Pages) *Confirm {
	c := &Confirm{
		Modal: tview.NewModal(),
		pages: pages,
	}
	c.SetBackgroundColor(tcell.ColorDefault)
	c.AddButtons([]string{"Yes", "No"})
	c.SetDoneFunc(c.handleButton)
	c.updateStyle()

	return c
}

// SetQuestion sets the question asked.
func (c *Confirm) SetQuestion(q string) *Confirm {
	c.question = q
	c.SetText(c.Message())
	return c
}

// SetTargets lists the resources the action applies to.
func (c *Confirm) SetTargets(names []string) *Confirm {
	c.targets = names
	c.SetText(c.Message())
	return c
}

// Message returns the dialog body. Long target lists are elided.
func (c *Confirm) Message() string {
	if len(c.targets) == 0 {
		return c.question
	}
	shown := c.targets
	if len(shown) > maxTargets {
		shown = shown[:maxTargets]
	}
	var sb strings.Builder
	sb.WriteString(c.question)
	sb.WriteString("\n\n")
	sb.WriteString(strings.Join(shown, "\n"))
	if more := len(c.targets) - len(shown); more > 0 {
		fmt.Fprintf(&sb, "\n... and %d more", more)
	}

	return sb.String()
}

// SetDangerous styles the dialog for dangerous operations.
func (c *Confirm) SetDangerous(dangerous bool) *Confirm {
	c.dangerous = dangerous
	c.updateStyle()
	return c
}

// SetOnConfirm sets the callback for when user confirms.
func (c *Confirm) SetOnConfirm(fn ConfirmFunc) *Confirm {
	c.onConfirm = fn
	return c
}

// SetOnCancel sets the callback for when user cancels.
func (c *Confirm) SetOnCancel(fn func()) *Confirm {
	c.onCancel = fn
	return c
}

// Show displays the dialog.
func (c *Confirm) Show() {
	if c.pages != nil {
		c.pages.ShowModal(confirmPageID, c)
	}
}

// Dismiss removes the dialog.
func (c *Confirm) Dismiss() {
	if c.pages != nil {
		c.pages.DismissModal(confirmPageID)
	}
}

func (c *Confirm) handleButton(idx int, _ string) {
	c.Dismiss()

	switch idx {
	case 0:
		if c.onConfirm != nil {
			c.onConfirm()
		}
	default:
		if c.onCancel != nil {
			c.onCancel()
		}
	}
}

func (c *Confirm) updateStyle() {
	if c.dangerous {
		c.SetTextColor(tcell.ColorRed)
		c.SetButtonBackgroundColor(tcell.ColorRed)
		c.SetButtonTextColor(tcell.ColorWhite)
		return
	}
	c.SetTextColor(tcell.ColorWhite)
	c.SetButtonBackgroundColor(tcell.ColorBlue)
	c.SetButtonTextColor(tcell.ColorWhite)
}
