package ui

import (
	"strings"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

const promptPageID = "prompt"

// PreviewFunc previews what an input would do. A non nil error blocks
// submission.
type PreviewFunc func(input string) ([]string, error)

// Prompt is a modal input field with a live preview under it.
type Prompt struct {
	*tview.Flex

	input     *tview.InputField
	preview   *tview.TextView
	previewFn PreviewFunc
	submitFn  func(string)
	cancelFn  func()
	lastErr   error
	pages     *Pages
}

// NewPrompt returns a prompt titled title.
func NewPrompt(pages *Pages, title, label string) *Prompt {
	p := &Prompt{
		Flex:    tview.NewFlex().SetDirection(tview.FlexRow),
		input:   tview.NewInputField(),
		preview: tview.NewTextView(),
		pages:   pages,
	}
	p.input.SetLabel(label + " ")
	p.input.SetFieldBackgroundColor(tcell.ColorDefault)
	p.input.SetLabelColor(tcell.ColorAqua)
	p.input.SetChangedFunc(p.update)
	p.input.SetDoneFunc(p.done)
	p.preview.SetDynamicColors(true)
	p.preview.SetBackgroundColor(tcell.ColorDefault)

	p.SetBorder(true)
	p.SetTitle(" " + title + " ")
	p.SetBorderColor(tcell.ColorDodgerBlue)
	p.SetBackgroundColor(tcell.ColorDefault)
	p.AddItem(p.input, 1, 0, true)
	p.AddItem(p.preview, 0, 1, false)

	return p
}

// SetPreviewFn sets the preview callback.
func (p *Prompt) SetPreviewFn(f PreviewFunc) *Prompt {
	p.previewFn = f
	return p
}

// SetSubmitFn sets the callback run on enter with a valid input.
func (p *Prompt) SetSubmitFn(f func(string)) *Prompt {
	p.submitFn = f
	return p
}

// SetCancelFn sets the callback run on escape.
func (p *Prompt) SetCancelFn(f func()) *Prompt {
	p.cancelFn = f
	return p
}

// SetText presets the input.
func (p *Prompt) SetText(s string) *Prompt {
	p.input.SetText(s)
	p.update(s)
	return p
}

// Text returns the current input.
func (p *Prompt) Text() string {
	return p.input.GetText()
}

// PreviewText returns what the preview shows.
func (p *Prompt) PreviewText() string {
	return p.preview.GetText(true)
}

// Show displays the prompt centered over the current page.
func (p *Prompt) Show() {
	p.update(p.input.GetText())
	if p.pages != nil {
		p.pages.ShowModal(promptPageID, Centered(p, 72, 16))
	}
}

// Dismiss removes the prompt.
func (p *Prompt) Dismiss() {
	if p.pages != nil {
		p.pages.DismissModal(promptPageID)
	}
}

func (p *Prompt) update(text string) {
	p.preview.Clear()
	if p.previewFn == nil {
		return
	}
	lines, err := p.previewFn(text)
	p.lastErr = err
	if err != nil {
		p.preview.SetText("[red::b]" + tview.Escape(err.Error()) + "[-::-]")
		return
	}
	p.preview.SetText(strings.Join(lines, "\n"))
}

func (p *Prompt) done(key tcell.Key) {
	switch key {
	case tcell.KeyEnter:
		if p.lastErr != nil {
			return
		}
		p.Dismiss()
		if p.submitFn != nil {
			p.submitFn(p.input.GetText())
		}
	case tcell.KeyEsc:
		p.Dismiss()
		if p.cancelFn != nil {
			p.cancelFn()
		}
	}
}

// Centered wraps prim in a box of the given size centered on screen.
func Centered(prim tview.Primitive, width, height int) tview.Primitive {
	return tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(prim, height, 1, true).
			AddItem(nil, 0, 1, false), width, 1, true).
		AddItem(nil, 0, 1, false)
}
