package ui

import (
	"github.com/aic/aic/internal/model"
	"github.com/derailed/tview"
	log "github.com/sirupsen/logrus"
)

// Pages shows the top of the navigation stack and the modals drawn over it.
type Pages struct {
	*tview.Pages
	*model.Stack

	pages  []string
	modals []string
}

// NewPages returns a new pages manager
func NewPages() *Pages {
	p := &Pages{
		Pages: tview.NewPages(),
		Stack: model.NewStack(),
	}
	p.Stack.AddListener(p)

	return p
}

// Current returns the current component.
func (p *Pages) Current() Component {
	c, _ := p.Stack.Top().(Component)
	return c
}

// ShowModal draws prim over the current page.
func (p *Pages) ShowModal(id string, prim tview.Primitive) {
	p.modals = append(p.modals, id)
	p.AddPage(id, prim, true, true)
}

// DismissModal removes a modal and gives focus back to the page under it.
func (p *Pages) DismissModal(id string) {
	for i, m := range p.modals {
		if m == id {
			p.modals = append(p.modals[:i], p.modals[i+1:]...)
			break
		}
	}
	p.RemovePage(id)
}

// HasModal returns true while a modal is shown.
func (p *Pages) HasModal() bool {
	return len(p.modals) > 0
}

// StackPushed adds the page of a new component. Pages of components no
// longer on the stack are dropped.
func (p *Pages) StackPushed(c model.Component) {
	live := make(map[string]struct{})
	for _, n := range p.Flatten() {
		live[n] = struct{}{}
	}
	kept := p.pages[:0]
	for _, n := range p.pages {
		if _, ok := live[n]; ok {
			kept = append(kept, n)
			continue
		}
		p.RemovePage(n)
	}
	p.pages = kept

	prim, ok := c.(tview.Primitive)
	if !ok {
		log.Errorf("component %s is not drawable", c.Name())
		return
	}
	p.AddPage(c.Name(), prim, true, true)
	p.pages = append(p.pages, c.Name())
}

// StackPopped removes the page of the popped component.
func (p *Pages) StackPopped(old, _ model.Component) {
	p.RemovePage(old.Name())
	for i, n := range p.pages {
		if n == old.Name() {
			p.pages = append(p.pages[:i], p.pages[i+1:]...)
			break
		}
	}
}

// StackTop shows the page of the top component.
func (p *Pages) StackTop(top model.Component) {
	if top == nil {
		return
	}
	p.SwitchToPage(top.Name())
}
