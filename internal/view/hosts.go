// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of aic

package view

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aic/aic/internal/dao"
	"github.com/aic/aic/internal/massaction"
	"github.com/aic/aic/internal/render"
	"github.com/aic/aic/internal/ui"
	"github.com/derailed/tcell/v2"
)

const (
	applyTimeout = 30 * time.Second

	renameTitle  = "Change hostname"
	renameFailed = "Failed to update host"
	deleteTitle  = "Delete hosts"
	deleteFailed = "Failed to delete host"
)

// Hosts lists the hosts of a cluster and runs mass actions on them.
type Hosts struct {
	*Browser[*dao.Host]
}

// NewHosts returns the host view of cluster clusterID.
func NewHosts(app *App, clusterID string) *Hosts {
	return &Hosts{
		Browser: NewBrowser(app, &dao.HostRID, hostsView, clusterID, &render.Host{}),
	}
}

// Init initializes the host view.
func (h *Hosts) Init(ctx context.Context) error {
	if err := h.Browser.Init(ctx); err != nil {
		return err
	}
	h.SetDetailFunc(hostDetails)
	h.bindKeys(h.Actions())

	return nil
}

func (h *Hosts) bindKeys(aa *ui.KeyActions) {
	aa.Bulk(ui.KeyMap{
		tcell.KeyEnter: ui.NewKeyAction("Storage", h.storageCmd, true),
		ui.KeyR:        ui.NewEditKeyAction("Rename", h.renameCmd, false),
		tcell.KeyCtrlD: ui.NewEditKeyAction("Delete", h.deleteCmd, true),
	})
	if h.app.Gates().BulkEdit {
		aa.Add(ui.KeyShiftE, ui.NewEditKeyAction("Bulk Edit", h.bulkEditCmd, false))
	}
}

func (h *Hosts) storageCmd(*tcell.EventKey) *tcell.EventKey {
	o, ok := h.CurrentObject()
	if !ok {
		return nil
	}
	if err := h.app.inject(NewStorage(h.app, o.Path()), false); err != nil {
		h.app.Flash().Err(err)
	}

	return nil
}

func (h *Hosts) renameCmd(*tcell.EventKey) *tcell.EventKey {
	targets := h.Targets()
	if len(targets) == 0 {
		return nil
	}
	inUse := h.inUse(targets)

	var plan massaction.Plan[*dao.Host]
	label := "Template"
	if len(targets) == 1 {
		label = "Hostname"
	}
	p := ui.NewPrompt(h.app.Content, renameTitle, label)
	p.SetPreviewFn(func(tpl string) ([]string, error) {
		plan = PlanHostRename(targets, tpl)
		if err := plan.Validate(inUse); err != nil {
			return nil, err
		}
		return renamePreview(plan), nil
	})
	p.SetSubmitFn(func(string) {
		runMassAction(h.Browser, h.renameAction(plan))
	})
	p.SetCancelFn(func() { h.app.SetFocus(h) })
	if len(targets) == 1 {
		p.SetText(targets[0].Hostname())
	} else {
		p.SetText("host-{{n}}")
	}
	p.Show()

	return nil
}

func (h *Hosts) inUse(targets []*dao.Host) map[string]struct{} {
	ids := make(map[string]struct{}, len(targets))
	for _, t := range targets {
		ids[t.ID] = struct{}{}
	}
	return massaction.UsedValues(h.Last(), ids, hostID, (*dao.Host).Hostname)
}

func (h *Hosts) renameAction(plan massaction.Plan[*dao.Host]) massAction[*dao.Host] {
	return massAction[*dao.Host]{
		title:   renameTitle,
		failure: renameFailed,
		done:    "Renamed",
		plan:    plan,
		apply:   h.applyRename,
	}
}

func (h *Hosts) applyRename(ctx context.Context, o *dao.Host, name string) error {
	acc, err := h.hostAccessor()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, applyTimeout)
	defer cancel()

	return acc.Rename(ctx, o, name)
}

func (h *Hosts) deleteCmd(*tcell.EventKey) *tcell.EventKey {
	targets := h.Targets()
	if len(targets) == 0 {
		return nil
	}
	plan := PlanHostDelete(targets)
	if err := plan.CheckIDs(); err != nil {
		h.app.Flash().Err(err)
		return nil
	}
	if len(plan.Eligible()) == 0 {
		c := plan.Candidates[0]
		h.app.Flash().Warnf("%s: %s", previewName(c.Current, c.ID), c.Reason)
		return nil
	}

	q := fmt.Sprintf("Delete %d host(s)?", len(plan.Eligible()))
	if n := plan.Skipped(); n > 0 {
		q = fmt.Sprintf("Delete %d host(s)? %d cannot be deleted and will be skipped.", len(plan.Eligible()), n)
	}
	ui.NewConfirm(h.app.Content).
		SetQuestion(q).
		SetTargets(targetNames(plan)).
		SetDangerous(true).
		SetOnConfirm(func() {
			h.app.SetFocus(h)
			runMassAction(h.Browser, massAction[*dao.Host]{
				title:   deleteTitle,
				failure: deleteFailed,
				done:    "Deleted",
				plan:    plan,
				apply:   h.applyDelete,
			})
		}).
		SetOnCancel(func() { h.app.SetFocus(h) }).
		Show()

	return nil
}

func (h *Hosts) applyDelete(ctx context.Context, o *dao.Host, _ string) error {
	acc, err := h.hostAccessor()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, applyTimeout)
	defer cancel()

	return acc.Delete(ctx, o.Path())
}

func (h *Hosts) bulkEditCmd(*tcell.EventKey) *tcell.EventKey {
	targets := h.Targets()
	if len(targets) == 0 {
		return nil
	}
	plan, err := h.editHostnames(targets)
	switch {
	case errors.Is(err, errEditAborted):
		return nil
	case errors.Is(err, dao.ErrNoChanges):
		h.app.Flash().Info("No hostname changed")
		return nil
	case err != nil:
		h.app.Flash().Err(err)
		return nil
	}
	runMassAction(h.Browser, h.renameAction(plan))

	return nil
}

func (h *Hosts) hostAccessor() (*dao.HostAccessor, error) {
	acc, ok := h.accessor.(*dao.HostAccessor)
	if !ok {
		return nil, fmt.Errorf("unexpected accessor %T for %s", h.accessor, dao.HostRID)
	}
	return acc, nil
}

// PlanHostRename plans renaming hosts with a counter template.
func PlanHostRename(hh []*dao.Host, tpl string) massaction.Plan[*dao.Host] {
	return massaction.PlanRename(hh, tpl, canChangeHostname, hostID, (*dao.Host).Hostname)
}

// PlanHostDelete plans deleting hosts.
func PlanHostDelete(hh []*dao.Host) massaction.Plan[*dao.Host] {
	p := massaction.PlanAction(hh, canDelete, hostID)
	for i := range p.Candidates {
		p.Candidates[i].Current = p.Candidates[i].Obj.Hostname()
	}
	return p
}

func hostID(h *dao.Host) string { return h.ID }

func canChangeHostname(h *dao.Host) (bool, string) {
	return dao.CanChangeHostname(h).Result()
}

func canDelete(h *dao.Host) (bool, string) {
	return dao.CanDelete(h).Result()
}

func hostDetails(h *dao.Host) []string {
	ll := make([]string, 0, 4)
	ll = append(ll, "ID: "+h.ID)
	if h.StatusInfo != "" {
		ll = append(ll, h.StatusInfo)
	}
	if h.Stage != "" {
		ll = append(ll, "Stage: "+h.Stage)
	}
	dd := h.Disks()
	if len(dd) == 0 {
		return ll
	}
	names := make([]string, 0, len(dd))
	for _, d := range dd {
		names = append(names, fmt.Sprintf("%s (%s)", d.Name, render.FormatSize(d.SizeBytes)))
	}

	return append(ll, "Disks: "+strings.Join(names, ", "))
}
