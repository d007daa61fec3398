// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of aic

package view

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aic/aic/internal/dao"
	"github.com/aic/aic/internal/ui"
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
	"gopkg.in/yaml.v3"
)

const (
	describeTimeout = 30 * time.Second

	formatSummary = "summary"
	formatYAML    = "yaml"
	formatJSON    = "json"
)

// Describe shows one resource as a summary, YAML or JSON.
type Describe struct {
	*tview.TextView

	app      *App
	accessor dao.Accessor
	path     string
	format   string
	raw      any
	summary  string
	err      error
	actions  *ui.KeyActions
	wrapOn   bool
	mx       sync.RWMutex
}

// NewDescribe returns a view of the resource at path.
func NewDescribe(app *App, acc dao.Accessor, path string) *Describe {
	d := Describe{
		TextView: tview.NewTextView(),
		app:      app,
		accessor: acc,
		path:     path,
		format:   formatYAML,
		actions:  ui.NewKeyActions(),
	}
	if _, ok := acc.(dao.Describer); ok {
		d.format = formatSummary
	}

	d.SetDynamicColors(true)
	d.SetWrap(false)
	d.SetWordWrap(false)
	d.SetScrollable(true)
	d.SetBorder(true)
	d.SetBorderPadding(0, 0, 1, 1)
	d.SetBorderColor(tcell.ColorAqua)
	d.SetBackgroundColor(tcell.ColorDefault)

	return &d
}

// Init initializes the describe view.
func (d *Describe) Init(context.Context) error {
	d.bindKeys()
	d.SetInputCapture(d.keyboard)
	d.updateTitle()

	return nil
}

// Start loads the resource.
func (d *Describe) Start() {
	d.SetText("[gray::]Loading...[-::]")
	go d.load()
}

// Stop implements ui.Component.
func (*Describe) Stop() {}

// Name returns the view name.
func (*Describe) Name() string {
	return "describe"
}

// Hints returns the menu hints for this view.
func (d *Describe) Hints() ui.MenuHints {
	return d.actions.Hints(false)
}

func (d *Describe) load() {
	ctx, cancel := context.WithTimeout(context.Background(), describeTimeout)
	defer cancel()

	var (
		raw     any
		summary string
	)
	o, err := d.accessor.Get(ctx, d.path)
	if err == nil {
		raw = o.GetRaw()
		if ds, ok := d.accessor.(dao.Describer); ok {
			summary, err = ds.Describe(ctx, d.path)
		}
	}

	d.mx.Lock()
	d.raw, d.summary, d.err = raw, summary, err
	d.mx.Unlock()

	d.app.QueueUpdateDraw(d.render)
}

func (d *Describe) render() {
	d.Clear()
	d.SetText(d.content())
	d.updateTitle()
	d.ScrollToBeginning()
}

func (d *Describe) content() string {
	d.mx.RLock()
	defer d.mx.RUnlock()

	if d.err != nil {
		return fmt.Sprintf("[red::]Error fetching %s: %s[-::]", d.path, tview.Escape(d.err.Error()))
	}
	if d.raw == nil {
		return "[red::]No data available[-::]"
	}

	switch d.format {
	case formatSummary:
		return highlightYAML(d.summary)
	case formatJSON:
		return generateJSON(d.raw)
	default:
		return generateYAML(d.raw)
	}
}

func (d *Describe) bindKeys() {
	d.actions.Bulk(ui.KeyMap{
		ui.KeyY:      ui.NewKeyAction("YAML", d.formatCmd(formatYAML), true),
		ui.KeyJ:      ui.NewKeyAction("JSON", d.formatCmd(formatJSON), true),
		ui.KeyW:      ui.NewKeyAction("Wrap", d.toggleWrap, true),
		tcell.KeyEsc: ui.NewKeyAction("Back", d.backCmd, true),
	})
	if _, ok := d.accessor.(dao.Describer); ok {
		d.actions.Add(ui.KeyS, ui.NewKeyAction("Summary", d.formatCmd(formatSummary), true))
	}
}

func (d *Describe) toggleWrap(*tcell.EventKey) *tcell.EventKey {
	d.wrapOn = !d.wrapOn
	d.SetWrap(d.wrapOn)
	d.SetWordWrap(d.wrapOn)

	return nil
}

func (d *Describe) keyboard(evt *tcell.EventKey) *tcell.EventKey {
	row, _ := d.GetScrollOffset()
	switch evt.Key() {
	case tcell.KeyDown:
		d.ScrollTo(row+1, 0)
		return nil
	case tcell.KeyUp:
		d.ScrollTo(max(row-1, 0), 0)
		return nil
	case tcell.KeyPgDn:
		d.ScrollTo(row+20, 0)
		return nil
	case tcell.KeyPgUp:
		d.ScrollTo(max(row-20, 0), 0)
		return nil
	case tcell.KeyHome:
		d.ScrollToBeginning()
		return nil
	case tcell.KeyEnd:
		d.ScrollToEnd()
		return nil
	}

	if a, ok := d.actions.Get(ui.AsKey(evt)); ok {
		return a.Action(evt)
	}

	return evt
}

func (d *Describe) formatCmd(format string) ui.ActionHandler {
	return func(*tcell.EventKey) *tcell.EventKey {
		d.mx.Lock()
		d.format = format
		d.mx.Unlock()
		d.render()

		return nil
	}
}

func (d *Describe) backCmd(*tcell.EventKey) *tcell.EventKey {
	d.app.Content.Pop()
	return nil
}

func (d *Describe) updateTitle() {
	d.mx.RLock()
	format := d.format
	d.mx.RUnlock()

	d.SetTitle(fmt.Sprintf(" %s/%s [%s] ", d.accessor.ResourceID(), d.path, strings.ToUpper(format)))
}

func generateYAML(raw any) string {
	out, err := yaml.Marshal(toCleanMap(raw))
	if err != nil {
		return fmt.Sprintf("[red::]# Error generating YAML: %v[-::]", err)
	}
	return highlightYAML(string(out))
}

func generateJSON(raw any) string {
	out, err := json.MarshalIndent(toCleanMap(raw), "", "  ")
	if err != nil {
		return fmt.Sprintf("// Error generating JSON: %v", err)
	}
	return tview.Escape(string(out))
}

// highlightYAML colors the keys and values of "key: value" lines.
func highlightYAML(content string) string {
	var sb strings.Builder
	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		colonIdx := strings.Index(line, ":")
		if colonIdx <= 0 {
			sb.WriteString(tview.Escape(line) + "\n")
			continue
		}

		key, value := line[:colonIdx+1], strings.TrimSpace(line[colonIdx+1:])
		keyStart := len(key) - len(strings.TrimLeft(key, " -"))
		indent, actual := key[:keyStart], key[keyStart:]
		if value == "" {
			fmt.Fprintf(&sb, "%s[aqua::]%s[-::]\n", indent, tview.Escape(actual))
			continue
		}
		fmt.Fprintf(&sb, "%s[aqua::]%s[-::] %s\n", indent, tview.Escape(actual), colorizeValue(tview.Escape(value)))
	}

	return sb.String()
}

var (
	goodValues = map[string]struct{}{
		dao.HostKnown:        {},
		dao.ClusterReady:     {},
		dao.ClusterInstalled: {},
	}
	badValues = map[string]struct{}{
		dao.HostError:        {},
		dao.HostDisconnected: {},
		dao.HostInsufficient: {},
		dao.HostDisabled:     {},
		dao.ClusterCancelled: {},
	}
	busyValues = map[string]struct{}{
		dao.HostDiscovering:             {},
		dao.HostPendingForInput:         {},
		dao.HostPreparingInstallation:   {},
		dao.HostInstalling:              {},
		dao.HostInstallingInProgress:    {},
		dao.HostInstallingPendingAction: {},
		dao.HostResetting:               {},
		dao.ClusterFinalizing:           {},
		dao.ClusterAddingHosts:          {},
	}
)

// colorizeValue colors a YAML scalar by type, and installer statuses by
// health.
func colorizeValue(value string) string {
	trimmed := strings.Trim(value, "\"'")
	lower := strings.ToLower(trimmed)

	switch lower {
	case "true":
		return "[green::]" + value + "[-::]"
	case "false":
		return "[red::]" + value + "[-::]"
	case "null", "nil", "~":
		return "[gray::]" + value + "[-::]"
	}
	if _, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return "[fuchsia::]" + value + "[-::]"
	}
	if _, ok := goodValues[lower]; ok {
		return "[green::]" + value + "[-::]"
	}
	if _, ok := badValues[lower]; ok {
		return "[red::]" + value + "[-::]"
	}
	if _, ok := busyValues[lower]; ok {
		return "[yellow::]" + value + "[-::]"
	}

	return value
}

// toCleanMap turns backend structs into maps keyed by their JSON names,
// dropping empty values.
func toCleanMap(obj any) any {
	if obj == nil {
		return nil
	}

	val := reflect.ValueOf(obj)
	for val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return nil
		}
		val = val.Elem()
	}

	switch val.Kind() {
	case reflect.Struct:
		if t, ok := val.Interface().(time.Time); ok {
			if t.IsZero() {
				return nil
			}
			return t.Format(time.RFC3339)
		}

		result := make(map[string]any)
		typ := val.Type()
		for i := 0; i < val.NumField(); i++ {
			field := typ.Field(i)
			if !field.IsExported() {
				continue
			}
			name := field.Name
			if tag := field.Tag.Get("json"); tag != "" {
				n, _, _ := strings.Cut(tag, ",")
				if n == "-" {
					continue
				}
				if n != "" {
					name = n
				}
			}
			if v := toCleanMap(val.Field(i).Interface()); v != nil {
				result[name] = v
			}
		}
		if len(result) == 0 {
			return nil
		}
		return result

	case reflect.Slice:
		var result []any
		for i := 0; i < val.Len(); i++ {
			if item := toCleanMap(val.Index(i).Interface()); item != nil {
				result = append(result, item)
			}
		}
		if len(result) == 0 {
			return nil
		}
		return result

	case reflect.Map:
		result := make(map[string]any)
		iter := val.MapRange()
		for iter.Next() {
			if v := toCleanMap(iter.Value().Interface()); v != nil {
				result[fmt.Sprintf("%v", iter.Key().Interface())] = v
			}
		}
		if len(result) == 0 {
			return nil
		}
		return result

	case reflect.String:
		if s := val.String(); s != "" {
			return s
		}
		return nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return val.Int()

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return val.Uint()

	case reflect.Float32, reflect.Float64:
		return val.Float()

	case reflect.Bool:
		return val.Bool()

	default:
		if val.CanInterface() {
			return val.Interface()
		}
		return nil
	}
}
