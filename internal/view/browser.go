// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of aic

package view

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/aic/aic/internal/client"
	"github.com/aic/aic/internal/dao"
	"github.com/aic/aic/internal/massaction"
	"github.com/aic/aic/internal/model"
	"github.com/aic/aic/internal/model1"
	"github.com/aic/aic/internal/render"
	"github.com/aic/aic/internal/ui"
	"github.com/derailed/tcell/v2"
	log "github.com/sirupsen/logrus"
)

const actionTimeout = 2 * time.Minute

// Browser lists one resource kind of the assisted installer and keeps it
// fresh.
type Browser[R dao.Object] struct {
	*ui.Table[R]

	app      *App
	rid      *dao.ResourceID
	scope    string
	accessor dao.Accessor
	watcher  *model.Watcher[R]
	cancelFn context.CancelFunc
	mx       sync.RWMutex
}

// NewBrowser returns a browser listing rid under scope.
func NewBrowser[R dao.Object](app *App, rid *dao.ResourceID, name, scope string, r render.Renderer[R]) *Browser[R] {
	cols := r.Columns()
	opts := app.TableOptions(name, cols.Header(), r.DefaultSort())

	return &Browser[R]{
		Table: ui.NewTable(name, render.NewTable(r, opts), r.ColorerFunc()),
		app:   app,
		rid:   rid,
		scope: scope,
	}
}

// Init initializes the browser component.
func (b *Browser[R]) Init(ctx context.Context) error {
	if err := b.Table.Init(ctx); err != nil {
		return err
	}
	acc, err := dao.AccessorFor(b.app.Factory(), b.rid)
	if err != nil {
		return err
	}
	b.accessor = acc
	b.watcher = model.NewWatcher(b.Name(), model.AccessorList[R](acc, b.scope), b.Model(), b.app.RefreshRate())

	b.SetQueueFn(b.app.QueueUpdateDraw)
	b.SetReadOnlyFn(b.app.IsReadOnly)
	b.SetRefusedFn(b.refused)
	b.Model().SetHooks(model1.Hooks[R]{OnSort: b.saveSort})
	b.bindKeys(b.Actions())

	return nil
}

// Start watches the resources.
func (b *Browser[R]) Start() {
	b.Stop()
	if b.watcher == nil {
		return
	}
	b.watcher.AddListener(b.Table)
	ctx := b.prepareContext()
	go func() {
		if err := b.watcher.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
			b.app.Flash().Errf("%s. Press ctrl-r to retry", friendlyError(err, b.Name()))
		}
	}()
}

// Stop terminates browser updates.
func (b *Browser[R]) Stop() {
	b.mx.Lock()
	if b.cancelFn != nil {
		b.cancelFn()
		b.cancelFn = nil
	}
	b.mx.Unlock()

	if b.watcher != nil {
		b.watcher.Stop()
		b.watcher.RemoveListener(b.Table)
	}
}

func (b *Browser[R]) prepareContext() context.Context {
	b.mx.Lock()
	defer b.mx.Unlock()

	if b.cancelFn != nil {
		b.cancelFn()
	}
	var ctx context.Context
	ctx, b.cancelFn = context.WithCancel(context.Background())

	return ctx
}

// Refresh lists the resources again and restarts the polling.
func (b *Browser[R]) Refresh() {
	b.Start()
}

// SetFilter shows the rows having a cell containing q.
func (b *Browser[R]) SetFilter(q string) {
	b.SetFilterText(q)
	if b.watcher == nil {
		return
	}
	if err := b.watcher.SetFilter(model.TextFilter(q, b.Model().Columns())); err != nil {
		log.Warnf("filter %s: %v", b.Name(), err)
	}
	b.Render()
}

// Command returns the command reopening this view.
func (b *Browser[R]) Command() string {
	if b.scope == "" {
		return b.Name()
	}
	return b.Name() + " " + b.scope
}

// Last returns every listed object, ignoring the filter.
func (b *Browser[R]) Last() []R {
	if b.watcher == nil {
		return nil
	}
	return b.watcher.Last()
}

func (b *Browser[R]) saveSort(s model1.SortState) {
	b.app.SaveSort(b.Name(), b.Model().Header(), s)
}

func (b *Browser[R]) refused(err error) {
	if errors.Is(err, massaction.ErrBusy) {
		b.app.Flash().Warn("Wait for the current change to finish")
		return
	}
	b.app.Flash().Warn("Edits are disabled in read-only mode")
}

func (b *Browser[R]) bindKeys(aa *ui.KeyActions) {
	aa.Bulk(ui.KeyMap{
		tcell.KeyCtrlR: ui.NewKeyAction("Refresh", b.refreshCmd, true),
		ui.KeyD:        ui.NewKeyAction("Describe", b.describeCmd, true),
	})
	b.bindResourceActions(aa)
}

func (b *Browser[R]) bindResourceActions(aa *ui.KeyActions) {
	for _, act := range ui.GetActions(b.rid) {
		aa.Add(act.Key, ui.NewEditKeyAction(act.Name, func(*tcell.EventKey) *tcell.EventKey {
			b.executeAction(act)
			return nil
		}, act.Dangerous))
	}
}

// executeAction asks for confirmation then runs a registered action on the
// row under the cursor.
func (b *Browser[R]) executeAction(act ui.ResourceAction) {
	o, ok := b.CurrentObject()
	if !ok {
		return
	}
	if allowed, reason := act.Allowed(o); !allowed {
		b.app.Flash().Warnf("%s %s: %s", act.Name, displayName(o), reason)
		return
	}

	path := objectPath(o)
	ui.NewConfirm(b.app.Content).
		SetQuestion(fmt.Sprintf(act.Description, displayName(o))).
		SetDangerous(act.Dangerous).
		SetOnConfirm(func() { b.runAction(act, path, displayName(o)) }).
		SetOnCancel(func() { b.app.SetFocus(b) }).
		Show()
}

func (b *Browser[R]) runAction(act ui.ResourceAction, path, name string) {
	b.app.SetFocus(b)
	b.app.Flash().Infof("%s %s...", act.Name, name)
	f := b.app.Factory()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()

		err := act.Handler(ctx, f, path)
		b.app.QueueUpdateDraw(func() {
			if err != nil {
				b.app.Flash().Errf("%s %s failed: %s", act.Name, name, client.Message(err))
				return
			}
			b.app.Flash().Infof("%s %s succeeded", act.Name, name)
			b.Refresh()
		})
	}()
}

func (b *Browser[R]) refreshCmd(*tcell.EventKey) *tcell.EventKey {
	b.app.Flash().Info("Refreshing...")
	b.Refresh()
	return nil
}

func (b *Browser[R]) describeCmd(*tcell.EventKey) *tcell.EventKey {
	o, ok := b.CurrentObject()
	if !ok {
		return nil
	}
	if err := b.app.inject(NewDescribe(b.app, b.accessor, objectPath(o)), false); err != nil {
		b.app.Flash().Err(err)
	}

	return nil
}

// objectPath returns the path accessors address o with.
func objectPath(o dao.Object) string {
	if d, ok := o.(*dao.Disk); ok {
		return d.ClusterID + "/" + d.HostID + "/" + d.ID
	}
	if p, ok := o.(interface{ Path() string }); ok {
		return p.Path()
	}
	return o.GetID()
}

func displayName(o dao.Object) string {
	if n := o.GetName(); n != "" {
		return n
	}
	return o.GetID()
}

// friendlyError turns listing errors into short messages.
func friendlyError(err error, what string) string {
	var apiErr *client.APIError
	switch {
	case errors.Is(err, client.ErrNoConnection):
		return "No connection to the assisted installer"
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Sprintf("Timed out listing %s", what)
	case errors.As(err, &apiErr):
		switch apiErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Sprintf("Access denied for %s", what)
		case http.StatusNotFound:
			return fmt.Sprintf("No %s found", what)
		}
		if apiErr.Reason != "" {
			return apiErr.Reason
		}
	}

	msg := err.Error()
	if strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "no such host") {
		return "Unable to connect to the assisted installer"
	}

	return fmt.Sprintf("Unable to list %s", what)
}
