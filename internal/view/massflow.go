// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of aic

package view

import (
	"context"
	"errors"
	"fmt"

	"github.com/aic/aic/internal/client"
	"github.com/aic/aic/internal/dao"
	"github.com/aic/aic/internal/massaction"
	"github.com/aic/aic/internal/ui"
	log "github.com/sirupsen/logrus"
)

const maxPreviewLines = 10

// massAction is a mass change about to run on the rows of a browser.
type massAction[R dao.Object] struct {
	title   string
	failure string
	done    string
	plan    massaction.Plan[R]
	apply   massaction.ApplyFunc[R]
}

// runMassAction applies the plan one row at a time. The table refuses
// edits until the runner stops.
func runMassAction[R dao.Object](b *Browser[R], m massAction[R]) {
	items := m.plan.Items()
	if len(items) == 0 {
		b.app.Flash().Warn(massaction.ErrNothingToApply.Error())
		return
	}

	b.Lock(true)
	b.app.RefreshMenu()
	prog := ui.NewProgress(b.app.Content, m.title)
	prog.Show()

	r := massaction.NewRunner(items, m.apply,
		massaction.WithTitle(m.failure),
		massaction.WithMessage(client.Message),
		massaction.WithProgress(func(p massaction.Progress) {
			b.app.QueueUpdateDraw(func() { prog.Update(p) })
		}),
	)
	skipped := m.plan.Skipped()

	go func() {
		err := r.Run(context.Background())
		b.app.QueueUpdateDraw(func() {
			prog.Dismiss()
			b.Lock(false)
			b.app.RefreshMenu()
			b.app.SetFocus(b)
			reportMassAction(b.app, m.done, r.Progress(), skipped, err)
			b.Model().ClearSelection()
			b.Refresh()
		})
	}()
}

func reportMassAction(app *App, done string, p massaction.Progress, skipped int, err error) {
	var f *massaction.Failure
	switch {
	case errors.As(err, &f):
		ui.FailureDialog(app.Content, f).Show()
	case err != nil:
		app.Flash().Err(err)
	default:
		msg := fmt.Sprintf("%s %d of %d", done, p.Done, p.Total)
		if skipped > 0 {
			msg += fmt.Sprintf(", %d skipped", skipped)
		}
		log.Info(msg)
		app.Flash().Info(msg)
	}
}

// renamePreview lists what a rename plan does, skipped entries included.
func renamePreview[R any](p massaction.Plan[R]) []string {
	ll := make([]string, 0, min(len(p.Candidates), maxPreviewLines)+1)
	for i, c := range p.Candidates {
		if i == maxPreviewLines {
			ll = append(ll, fmt.Sprintf("[gray]... and %d more[-]", len(p.Candidates)-i))
			break
		}
		if c.Skip {
			ll = append(ll, fmt.Sprintf("[gray]%s: skipped (%s)[-]", previewName(c.Current, c.ID), c.Reason))
			continue
		}
		ll = append(ll, fmt.Sprintf("%s [aqua]->[-] %s", previewName(c.Current, c.ID), c.New))
	}

	return ll
}

func previewName(current, id string) string {
	if current == "" {
		return id
	}
	return current
}

// targetNames returns the display names of the candidates that will run.
func targetNames[R any](p massaction.Plan[R]) []string {
	cc := p.Eligible()
	nn := make([]string, 0, len(cc))
	for _, c := range cc {
		nn = append(nn, previewName(c.Current, c.ID))
	}
	return nn
}
