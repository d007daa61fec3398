// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of aic

package ui

import (
	"sort"
	"sync"

	"github.com/derailed/tcell/v2"
)

// ActionHandler handles a keyboard command.
type ActionHandler func(*tcell.EventKey) *tcell.EventKey

// ActionOpts tunes a key action.
type ActionOpts struct {
	Visible   bool
	Shared    bool
	Dangerous bool

	// Edit actions change backend state. They are refused while a mass
	// action runs and in read-only mode.
	Edit bool
}

// KeyAction represents a keyboard action.
type KeyAction struct {
	Description string
	Action      ActionHandler
	Opts        ActionOpts
}

// KeyMap tracks key to action mappings.
type KeyMap map[tcell.Key]KeyAction

// NewKeyAction returns a new keyboard action.
func NewKeyAction(d string, a ActionHandler, display bool) KeyAction {
	return NewKeyActionWithOpts(d, a, ActionOpts{Visible: display})
}

// NewSharedKeyAction returns an action inherited by every view.
func NewSharedKeyAction(d string, a ActionHandler, display bool) KeyAction {
	return NewKeyActionWithOpts(d, a, ActionOpts{Visible: display, Shared: true})
}

// NewEditKeyAction returns an action that changes backend state.
func NewEditKeyAction(d string, a ActionHandler, dangerous bool) KeyAction {
	return NewKeyActionWithOpts(d, a, ActionOpts{Visible: true, Dangerous: dangerous, Edit: true})
}

// NewKeyActionWithOpts returns a new keyboard action.
func NewKeyActionWithOpts(d string, a ActionHandler, opts ActionOpts) KeyAction {
	return KeyAction{
		Description: d,
		Action:      a,
		Opts:        opts,
	}
}

// KeyActions tracks the actions of a view.
type KeyActions struct {
	actions KeyMap
	mx      sync.RWMutex
}

// NewKeyActions returns an empty action set.
func NewKeyActions() *KeyActions {
	return &KeyActions{actions: make(KeyMap)}
}

// Get returns the action bound to key.
func (a *KeyActions) Get(key tcell.Key) (KeyAction, bool) {
	a.mx.RLock()
	defer a.mx.RUnlock()

	v, ok := a.actions[key]
	return v, ok
}

// Len returns the number of bound actions.
func (a *KeyActions) Len() int {
	a.mx.RLock()
	defer a.mx.RUnlock()

	return len(a.actions)
}

// Add binds an action.
func (a *KeyActions) Add(k tcell.Key, ka KeyAction) {
	a.mx.Lock()
	defer a.mx.Unlock()

	a.actions[k] = ka
}

// Bulk binds several actions at once.
func (a *KeyActions) Bulk(aa KeyMap) {
	a.mx.Lock()
	defer a.mx.Unlock()

	for k, v := range aa {
		a.actions[k] = v
	}
}

// Merge binds the actions of other that are not bound yet.
func (a *KeyActions) Merge(other *KeyActions) {
	other.mx.RLock()
	defer other.mx.RUnlock()
	a.mx.Lock()
	defer a.mx.Unlock()

	for k, v := range other.actions {
		if _, ok := a.actions[k]; !ok {
			a.actions[k] = v
		}
	}
}

// Delete unbinds keys.
func (a *KeyActions) Delete(kk ...tcell.Key) {
	a.mx.Lock()
	defer a.mx.Unlock()

	for _, k := range kk {
		delete(a.actions, k)
	}
}

// Clear unbinds every key.
func (a *KeyActions) Clear() {
	a.mx.Lock()
	defer a.mx.Unlock()

	clear(a.actions)
}

// Hints returns the menu hints of the visible actions. Edit actions are
// hidden when locked is true.
func (a *KeyActions) Hints(locked bool) MenuHints {
	a.mx.RLock()
	defer a.mx.RUnlock()

	hh := make(MenuHints, 0, len(a.actions))
	for k, v := range a.actions {
		hh = append(hh, MenuHint{
			Mnemonic:    KeyName(k),
			Description: v.Description,
			Visible:     v.Opts.Visible && !(locked && v.Opts.Edit),
			Dangerous:   v.Opts.Dangerous,
		})
	}
	sort.Sort(hh)

	return hh
}
