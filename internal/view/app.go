// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of aic

package view

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aic/aic/internal/config"
	"github.com/aic/aic/internal/config/data"
	"github.com/aic/aic/internal/dao"
	"github.com/aic/aic/internal/model"
	"github.com/aic/aic/internal/model1"
	"github.com/aic/aic/internal/ui"
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
	log "github.com/sirupsen/logrus"
)

const (
	// FlashDelay sets the flash auto-clear delay.
	FlashDelay = 5 * time.Second

	headerHeight = 7
	infoWidth    = 50
)

// FlashLevel represents flash message severity.
type FlashLevel int

const (
	// FlashInfo represents an info message.
	FlashInfo FlashLevel = iota
	// FlashWarn represents a warning message.
	FlashWarn
	// FlashErr represents an error message.
	FlashErr
)

// Flash shows short lived status messages under the content.
type Flash struct {
	*tview.TextView
	app    *App
	cancel context.CancelFunc
	mx     sync.RWMutex
}

// NewFlash creates a new Flash instance.
func NewFlash(app *App) *Flash {
	f := &Flash{
		TextView: tview.NewTextView(),
		app:      app,
	}
	f.SetDynamicColors(true)
	f.SetTextAlign(tview.AlignLeft)
	f.SetBorderPadding(0, 0, 1, 1)
	f.SetBackgroundColor(tcell.ColorDefault)
	return f
}

// Info displays an informational message.
func (f *Flash) Info(msg string) {
	f.setMessage(FlashInfo, msg)
}

// Infof displays a formatted informational message.
func (f *Flash) Infof(format string, args ...any) {
	f.Info(fmt.Sprintf(format, args...))
}

// Warn displays a warning message.
func (f *Flash) Warn(msg string) {
	f.setMessage(FlashWarn, msg)
}

// Warnf displays a formatted warning message.
func (f *Flash) Warnf(format string, args ...any) {
	f.Warn(fmt.Sprintf(format, args...))
}

// Err displays an error message.
func (f *Flash) Err(err error) {
	if err != nil {
		log.Error(err)
		f.setMessage(FlashErr, err.Error())
	}
}

// Errf displays a formatted error message.
func (f *Flash) Errf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	log.Error(msg)
	f.setMessage(FlashErr, msg)
}

// Clear clears the flash message.
func (f *Flash) Clear() {
	f.mx.Lock()
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	f.mx.Unlock()

	f.draw(func() { f.TextView.Clear() })
}

func (f *Flash) draw(fn func()) {
	if f.app != nil && f.app.IsRunning() {
		f.app.QueueUpdateDraw(fn)
		return
	}
	fn()
}

func (f *Flash) setMessage(level FlashLevel, msg string) {
	if msg == "" {
		f.Clear()
		return
	}

	f.mx.Lock()
	if f.cancel != nil {
		f.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	f.cancel = cancel
	f.mx.Unlock()

	f.draw(func() {
		f.TextView.Clear()
		f.SetTextColor(flashColor(level))
		fmt.Fprintf(f.TextView, "%s %s", flashPrefix(level), tview.Escape(msg))
	})

	go f.autoClear(ctx)
}

func (f *Flash) autoClear(ctx context.Context) {
	select {
	case <-ctx.Done():
		return
	case <-time.After(FlashDelay):
		f.draw(func() { f.TextView.Clear() })
	}
}

func flashColor(level FlashLevel) tcell.Color {
	switch level {
	case FlashWarn:
		return tcell.ColorYellow
	case FlashErr:
		return tcell.ColorRed
	default:
		return tcell.ColorGreen
	}
}

func flashPrefix(level FlashLevel) string {
	switch level {
	case FlashWarn:
		return "[WARN]"
	case FlashErr:
		return "[ERROR]"
	default:
		return "[INFO]"
	}
}

// App represents the main application container.
type App struct {
	*tview.Application

	version string
	Main    *tview.Pages
	Content *ui.Pages
	command *Command
	config  *config.Config
	factory dao.Factory
	hotKeys map[tcell.Key]string
	cmdBar  *ui.CmdBar
	menu    *ui.Menu
	crumbs  *ui.Crumbs
	info    *EndpointInfo
	flash   *Flash
	running bool
	mx      sync.RWMutex
}

// NewApp creates a new application instance.
func NewApp(cfg *config.Config, f dao.Factory, version string) *App {
	a := &App{
		Application: tview.NewApplication(),
		version:     version,
		Main:        tview.NewPages(),
		Content:     ui.NewPages(),
		config:      cfg,
		factory:     f,
		hotKeys:     make(map[tcell.Key]string),
		cmdBar:      ui.NewCmdBar(),
		menu:        ui.NewMenu(),
		info:        NewEndpointInfo(),
	}
	a.flash = NewFlash(a)
	a.crumbs = ui.NewCrumbs(a.Content.Stack)

	a.cmdBar.SetActiveFn(func(active bool) {
		if active {
			a.SetFocus(a.cmdBar)
			return
		}
		a.SetFocus(a.Content)
	})
	a.cmdBar.SetCommandFn(func(line string) {
		if err := a.command.Run(line); err != nil {
			a.flash.Err(err)
		}
	})
	a.cmdBar.SetFilterFn(a.applyFilter)

	return a
}

// Init loads aliases and hotkeys and builds the layout.
func (a *App) Init() error {
	aliases := config.NewAliases()
	if err := aliases.Load(); err != nil {
		log.Warnf("failed to load aliases: %v", err)
	}
	a.command = NewCommand(a, aliases)
	a.cmdBar.SetCommands(a.command.Names())
	a.loadHotKeys()

	a.Content.AddListener(a.menu)
	a.Content.AddListener(a.crumbs)
	a.Content.AddListener(a)

	a.Application.SetInputCapture(a.keyboard)
	a.Main.AddPage("main", a.buildLayout(), true, true)
	a.SetRoot(a.Main, true)
	a.EnableMouse(a.config.Aic.UI.EnableMouse)
	a.refreshInfo()

	return nil
}

func (a *App) loadHotKeys() {
	hk := config.NewHotKeys()
	if err := hk.Load(); err != nil {
		log.Warnf("failed to load hotkeys: %v", err)
		return
	}
	for _, name := range hk.Names() {
		h := hk.Get(name)
		key, ok := ui.ParseShortcut(h.ShortCut)
		if !ok {
			log.Warnf("hotkey %s: invalid shortcut %q", name, h.ShortCut)
			continue
		}
		a.hotKeys[key] = h.Command
	}
}

// Run shows the start view and runs the event loop.
func (a *App) Run() error {
	a.mx.Lock()
	a.running = true
	a.mx.Unlock()

	if err := a.command.Run(a.startView()); err != nil {
		a.flash.Errf("Failed to open start view: %v", err)
		if err := a.command.Run(config.DefaultView); err != nil {
			return err
		}
	}
	go a.checkConnectivity()

	return a.Application.Run()
}

// startView picks the view opened on start: --command, then the last view
// of the endpoint, then the cluster list.
func (a *App) startView() string {
	if a.config.Aic.DefaultView != data.DefaultView {
		return a.config.Aic.DefaultView
	}
	if v := a.activeView(); v != nil && v.Active != "" {
		return v.Active
	}
	return data.DefaultView
}

// Stop stops the application.
func (a *App) Stop() {
	a.mx.Lock()
	a.running = false
	a.mx.Unlock()

	if top := a.Content.Top(); top != nil {
		top.Stop()
	}
	a.Application.Stop()
}

// IsRunning returns whether the application is currently running.
func (a *App) IsRunning() bool {
	a.mx.RLock()
	defer a.mx.RUnlock()

	return a.running
}

// Flash returns the flash message handler.
func (a *App) Flash() *Flash {
	return a.flash
}

// Factory returns the backend factory.
func (a *App) Factory() dao.Factory {
	a.mx.RLock()
	defer a.mx.RUnlock()

	return a.factory
}

// IsReadOnly returns true when edit actions are disabled.
func (a *App) IsReadOnly() bool {
	return a.config.Aic.IsReadOnly()
}

// Gates returns the feature gates of the active endpoint.
func (a *App) Gates() data.FeatureGates {
	if ctx := a.endpointContext(); ctx != nil {
		return ctx.Gates()
	}
	return data.NewFeatureGates()
}

// RefreshRate returns the polling interval of the table views.
func (a *App) RefreshRate() time.Duration {
	return a.config.Aic.GetRefreshRate()
}

// TableOptions returns the table options of a view, using the sort saved
// for it when there is one.
func (a *App) TableOptions(view string, h model1.Header, def model1.SortState) model1.Options {
	t := a.config.Aic.Table
	opts := model1.DefaultOptions()
	opts.PageSize = t.PageSize
	opts.PageSizeOptions = t.PageSizeOptions
	opts.ShowPagination = t.Paged()
	opts.DefaultSort = def
	if s, ok := a.savedSort(view, h); ok {
		opts.DefaultSort = s
	}

	return opts
}

func (a *App) savedSort(view string, h model1.Header) (model1.SortState, bool) {
	v := a.activeView()
	if v == nil {
		return model1.SortState{}, false
	}
	spec, ok := v.SortFor(view)
	if !ok {
		return model1.SortState{}, false
	}
	col, ok := h.IndexOf(spec.Column, true)
	if !ok || !h.IsSortable(col) {
		return model1.SortState{}, false
	}
	dir := model1.Ascending
	if spec.Desc {
		dir = model1.Descending
	}

	return model1.SortState{Column: col, Direction: dir}, true
}

// SaveSort remembers the sort of a view for the active endpoint.
func (a *App) SaveSort(view string, h model1.Header, s model1.SortState) {
	v := a.activeView()
	if v == nil || s.Column < 0 || s.Column >= len(h) {
		return
	}
	v.SetSort(view, data.SortSpec{Column: h[s.Column].Name, Desc: s.Direction == model1.Descending})
	if err := a.config.Aic.SaveActive(); err != nil {
		log.Warnf("failed to save view state: %v", err)
	}
}

func (a *App) saveActiveView(name string) {
	v := a.activeView()
	if v == nil || v.Active == name {
		return
	}
	v.Active = name
	if err := a.config.Aic.SaveActive(); err != nil {
		log.Warnf("failed to save view state: %v", err)
	}
}

func (a *App) activeView() *data.View {
	if ctx := a.endpointContext(); ctx != nil {
		return ctx.GetView()
	}
	return nil
}

func (a *App) endpointContext() *data.EndpointContext {
	cfg := a.config.Aic.ActiveConfig()
	if cfg == nil {
		return nil
	}
	return cfg.GetContext()
}

// SwitchEndpoint points the console at another backend and reopens the
// cluster list.
func (a *App) SwitchEndpoint(name string) error {
	f := a.Factory()
	if f == nil {
		return fmt.Errorf("factory not initialized")
	}
	if name == f.Endpoint() {
		return nil
	}
	if err := f.SetEndpoint(name); err != nil {
		return fmt.Errorf("failed to switch endpoint: %w", err)
	}
	if _, err := a.config.Aic.ActivateEndpoint(name); err != nil {
		return err
	}
	log.Infof("switched to endpoint %s", name)
	a.refreshInfo()
	go a.checkConnectivity()

	return a.command.Run(config.DefaultView)
}

func (a *App) checkConnectivity() {
	f := a.Factory()
	if f == nil || f.Client() == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if !f.Client().CheckConnectivity(ctx) {
		a.flash.Warnf("Unable to reach endpoint %s", f.Endpoint())
	}
	a.QueueUpdateDraw(a.refreshInfo)
}

func (a *App) refreshInfo() {
	f := a.Factory()
	if f == nil {
		return
	}
	var url string
	conn := f.Client()
	if conn != nil && conn.Config() != nil {
		url = conn.Config().URL
	}
	a.info.SetInfo(EndpointState{
		Name:     f.Endpoint(),
		URL:      url,
		Online:   conn != nil && conn.ConnectionOK(),
		ReadOnly: a.IsReadOnly(),
		Version:  a.version,
	})
}

// QueueUpdateDraw queues a function to be executed on the UI goroutine.
func (a *App) QueueUpdateDraw(fn func()) {
	go a.Application.QueueUpdateDraw(fn)
}

// RefreshMenu redraws the hints of the current view.
func (a *App) RefreshMenu() {
	if c := a.Content.Current(); c != nil {
		a.menu.HydrateMenu(c.Hints())
	}
}

// inject initializes c and shows it on top of the current view.
func (a *App) inject(c ui.Component, reset bool) error {
	if err := c.Init(context.Background()); err != nil {
		return fmt.Errorf("failed to initialize %s: %w", c.Name(), err)
	}
	if reset {
		a.Content.Reset(c)
	} else {
		a.Content.Push(c)
	}

	return nil
}

// StackPushed implements model.StackListener.
func (*App) StackPushed(model.Component) {}

// StackPopped implements model.StackListener.
func (*App) StackPopped(_, _ model.Component) {}

// StackTop focuses the top view. A filter typed on another view is
// dropped.
func (a *App) StackTop(top model.Component) {
	if p, ok := top.(tview.Primitive); ok {
		a.SetFocus(p)
	}
	if a.cmdBar.FilterText() != "" {
		a.cmdBar.ClearFilter()
	}
	if c, ok := top.(Commander); ok {
		a.saveActiveView(c.Command())
	}
}

func (a *App) buildLayout() *tview.Flex {
	header := tview.NewFlex().
		AddItem(a.info, infoWidth, 0, false).
		AddItem(a.menu, 0, 1, false)

	main := tview.NewFlex().SetDirection(tview.FlexRow)
	if !a.config.Aic.UI.Logoless {
		main.AddItem(header, headerHeight, 0, false)
	}
	main.AddItem(a.cmdBar, 3, 0, false)
	main.AddItem(a.Content, 0, 1, true)
	if !a.config.Aic.UI.Crumbsless {
		main.AddItem(a.crumbs, 1, 0, false)
	}
	main.AddItem(a.flash, 1, 0, false)

	return main
}

// Filterable is implemented by views that narrow their rows on a filter.
type Filterable interface {
	SetFilter(string)
}

// Commander is implemented by views that can be reopened from a command.
type Commander interface {
	Command() string
}

func (a *App) keyboard(evt *tcell.EventKey) *tcell.EventKey {
	if a.cmdBar.IsActive() || a.Content.HasModal() {
		return evt
	}

	key := ui.AsKey(evt)
	if cmd, ok := a.hotKeys[key]; ok {
		if err := a.command.Run(cmd); err != nil {
			a.flash.Err(err)
		}
		return nil
	}

	switch key {
	case ui.KeyColon:
		a.cmdBar.Activate(ui.ModeCommand)
	case ui.KeySlash:
		if _, ok := a.Content.Current().(Filterable); !ok {
			return evt
		}
		a.cmdBar.Activate(ui.ModeFilter)
	case ui.KeyQuestion:
		a.showHelp()
	case ui.KeyQ, tcell.KeyCtrlC:
		a.Stop()
	case tcell.KeyEsc:
		if a.cmdBar.FilterText() != "" {
			a.cmdBar.ClearFilter()
			return nil
		}
		a.Content.Pop()
	default:
		return evt
	}

	return nil
}

func (a *App) applyFilter(text string) {
	if f, ok := a.Content.Current().(Filterable); ok {
		f.SetFilter(text)
	}
}

func (a *App) showHelp() {
	if _, ok := a.Content.Current().(*Help); ok {
		a.Content.Pop()
		return
	}
	var hh ui.MenuHints
	if c := a.Content.Current(); c != nil {
		hh = c.Hints()
	}
	if err := a.inject(NewHelp(a, hh), false); err != nil {
		a.flash.Err(err)
	}
}
