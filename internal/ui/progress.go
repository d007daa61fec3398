// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of aic

package ui

import (
	"fmt"
	"strings"

	"github.com/aic/aic/internal/massaction"
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

const (
	progressPageID = "progress"
	barWidth       = 40
)

// Progress shows how far a mass action went.
type Progress struct {
	*tview.TextView

	title string
	pages *Pages
}

// NewProgress returns a progress modal.
func NewProgress(pages *Pages, title string) *Progress {
	p := &Progress{
		TextView: tview.NewTextView(),
		title:    title,
		pages:    pages,
	}
	p.SetDynamicColors(true)
	p.SetTextAlign(tview.AlignCenter)
	p.SetBorder(true)
	p.SetTitle(" " + title + " ")
	p.SetBorderColor(tcell.ColorOrange)
	p.SetBackgroundColor(tcell.ColorDefault)
	p.Update(massaction.Progress{})

	return p
}

// Update redraws the bar.
func (p *Progress) Update(pr massaction.Progress) {
	p.SetText(ProgressBar(pr))
}

// ProgressBar renders a progress snapshot as text.
func ProgressBar(pr massaction.Progress) string {
	pct := pr.Percent()
	fill := barWidth * pct / 100
	current := min(pr.Index+1, pr.Total)
	if pr.State.IsTerminal() {
		current = pr.Done
	}

	return fmt.Sprintf("\n[orange::b]%s[gray::-]%s[-::-] %3d%%\n\n%d of %d",
		strings.Repeat("█", fill),
		strings.Repeat("░", barWidth-fill),
		pct, current, pr.Total,
	)
}

// Show displays the modal.
func (p *Progress) Show() {
	if p.pages != nil {
		p.pages.ShowModal(progressPageID, Centered(p, barWidth+14, 7))
	}
}

// Dismiss removes the modal.
func (p *Progress) Dismiss() {
	if p.pages != nil {
		p.pages.DismissModal(progressPageID)
	}
}
