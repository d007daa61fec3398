// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of aic

package ui

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

// IndicatorMode represents the current input mode.
type IndicatorMode int

const (
	// ModeNormal is the default navigation mode.
	ModeNormal IndicatorMode = iota
	// ModeCommand is for entering commands (: prefix).
	ModeCommand
	// ModeFilter is for filtering rows (/ prefix).
	ModeFilter
)

func (m IndicatorMode) prefix() string {
	switch m {
	case ModeCommand:
		return ":"
	case ModeFilter:
		return "/"
	default:
		return ">"
	}
}

// CmdBar is the command and filter input at the top of the app. The rest
// of a matching command is shown as ghost text.
type CmdBar struct {
	*tview.TextView

	mode          IndicatorMode
	cmdFn         func(string)
	filterFn      func(string)
	activeFn      func(bool)
	active        bool
	filter        string
	text          []rune
	suggestions   []string
	suggestionIdx int
	commands      []string
	mx            sync.RWMutex
}

// NewCmdBar creates a new command bar.
func NewCmdBar() *CmdBar {
	c := &CmdBar{
		TextView:      tview.NewTextView(),
		mode:          ModeNormal,
		suggestionIdx: -1,
	}
	c.SetBorder(true)
	c.SetBorderColor(tcell.ColorDarkCyan)
	c.SetBackgroundColor(tcell.ColorDefault)
	c.SetTextColor(tcell.ColorWhite)
	c.SetDynamicColors(true)
	c.SetWrap(false)
	c.SetInputCapture(c.keyboard)
	c.render()

	return c
}

// Suggest returns the commands starting with text, sorted.
func Suggest(commands []string, text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ToLower(text)
	var out []string
	for _, cmd := range commands {
		if strings.HasPrefix(cmd, text) && cmd != text {
			out = append(out, cmd)
		}
	}
	slices.Sort(out)

	return out
}

func (c *CmdBar) keyboard(evt *tcell.EventKey) *tcell.EventKey {
	if !c.IsActive() {
		return evt
	}

	switch evt.Key() {
	case tcell.KeyBackspace, tcell.KeyBackspace2, tcell.KeyDelete:
		c.mx.Lock()
		if len(c.text) > 0 {
			c.text = c.text[:len(c.text)-1]
		}
		c.mx.Unlock()
		c.changed()
	case tcell.KeyCtrlU:
		c.mx.Lock()
		c.text = c.text[:0]
		c.mx.Unlock()
		c.changed()
	case tcell.KeyEnter:
		c.execute()
	case tcell.KeyEsc:
		c.cancel()
	case tcell.KeyTab, tcell.KeyRight:
		c.mx.Lock()
		if s := c.suggestion(); s != "" {
			c.text = []rune(s)
		}
		c.mx.Unlock()
		c.changed()
	case tcell.KeyUp, tcell.KeyDown:
		c.mx.Lock()
		if n := len(c.suggestions); n > 0 {
			step := 1
			if evt.Key() == tcell.KeyUp {
				step = n - 1
			}
			c.suggestionIdx = (c.suggestionIdx + step) % n
		}
		c.mx.Unlock()
		c.render()
	case tcell.KeyRune:
		c.mx.Lock()
		c.text = append(c.text, evt.Rune())
		c.mx.Unlock()
		c.changed()
	default:
		return evt
	}

	return nil
}

func (c *CmdBar) suggestion() string {
	if c.suggestionIdx < 0 || c.suggestionIdx >= len(c.suggestions) {
		return ""
	}
	return c.suggestions[c.suggestionIdx]
}

func (c *CmdBar) changed() {
	c.mx.Lock()
	text, mode := string(c.text), c.mode
	c.suggestions, c.suggestionIdx = nil, -1
	if mode == ModeCommand {
		c.suggestions = Suggest(c.commands, text)
		if len(c.suggestions) > 0 {
			c.suggestionIdx = 0
		}
	}
	fn := c.filterFn
	c.mx.Unlock()

	c.render()
	if mode == ModeFilter && fn != nil {
		fn(text)
	}
}

func (c *CmdBar) render() {
	c.mx.RLock()
	text, ghost, mode, filter := string(c.text), c.suggestion(), c.mode, c.filter
	c.mx.RUnlock()

	c.Clear()
	if mode == ModeNormal && filter != "" {
		_, _ = fmt.Fprintf(c.TextView, "/ [gray::]%s", tview.Escape(filter))
		return
	}
	rest := ""
	if strings.HasPrefix(ghost, text) {
		rest = ghost[len(text):]
	}
	_, _ = fmt.Fprintf(c.TextView, "%s [::b]%s[gray::-]%s[-::]", mode.prefix(), tview.Escape(text), rest)
}

// SetCommands sets the full list of available commands.
func (c *CmdBar) SetCommands(cmds []string) {
	c.mx.Lock()
	defer c.mx.Unlock()

	c.commands = slices.Clone(cmds)
	slices.Sort(c.commands)
}

// GetText returns the current input text.
func (c *CmdBar) GetText() string {
	c.mx.RLock()
	defer c.mx.RUnlock()
	return string(c.text)
}

// Activate enters command or filter mode.
func (c *CmdBar) Activate(mode IndicatorMode) {
	c.mx.Lock()
	c.mode, c.active = mode, true
	c.text = c.text[:0]
	if mode == ModeFilter {
		c.text = []rune(c.filter)
	}
	c.suggestions, c.suggestionIdx = nil, -1
	fn := c.activeFn
	c.mx.Unlock()
	c.render()

	if fn != nil {
		fn(true)
	}
}

// Deactivate exits input mode and returns to normal.
func (c *CmdBar) Deactivate() {
	c.mx.Lock()
	c.mode, c.active = ModeNormal, false
	c.text = c.text[:0]
	c.suggestions, c.suggestionIdx = nil, -1
	fn := c.activeFn
	c.mx.Unlock()
	c.render()

	if fn != nil {
		fn(false)
	}
}

func (c *CmdBar) execute() {
	c.mx.Lock()
	text, mode, fn := strings.TrimSpace(string(c.text)), c.mode, c.cmdFn
	if mode == ModeFilter {
		c.filter = text
	}
	c.mx.Unlock()

	c.Deactivate()
	if mode == ModeCommand && fn != nil && text != "" {
		fn(text)
	}
}

func (c *CmdBar) cancel() {
	c.mx.RLock()
	mode := c.mode
	c.mx.RUnlock()

	c.Deactivate()
	if mode == ModeFilter {
		c.ClearFilter()
	}
}

// IsActive returns whether the command bar is accepting input.
func (c *CmdBar) IsActive() bool {
	c.mx.RLock()
	defer c.mx.RUnlock()
	return c.active
}

// Mode returns the current mode.
func (c *CmdBar) Mode() IndicatorMode {
	c.mx.RLock()
	defer c.mx.RUnlock()
	return c.mode
}

// SetCommandFn sets the callback for command execution.
func (c *CmdBar) SetCommandFn(fn func(string)) {
	c.mx.Lock()
	defer c.mx.Unlock()
	c.cmdFn = fn
}

// SetFilterFn sets the callback for filter text changes.
func (c *CmdBar) SetFilterFn(fn func(string)) {
	c.mx.Lock()
	defer c.mx.Unlock()
	c.filterFn = fn
}

// SetActiveFn sets the callback for when active state changes.
func (c *CmdBar) SetActiveFn(fn func(bool)) {
	c.mx.Lock()
	defer c.mx.Unlock()
	c.activeFn = fn
}

// FilterText returns the confirmed filter.
func (c *CmdBar) FilterText() string {
	c.mx.RLock()
	defer c.mx.RUnlock()
	return c.filter
}

// ClearFilter drops the filter.
func (c *CmdBar) ClearFilter() {
	c.mx.Lock()
	c.filter = ""
	fn := c.filterFn
	c.mx.Unlock()
	c.render()

	if fn != nil {
		fn("")
	}
}
