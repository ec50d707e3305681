package ui

import "github.com/rivo/tview"

// Pages is a stack-based page manager wrapping tview.Pages. Every page
// carries a title used for the breadcrumb trail.
type Pages struct {
	*tview.Pages
	stack    []page
	onChange func(titles []string)
}

type page struct {
	name  string
	title string
}

// NewPages creates a new stack-based page manager.
func NewPages() *Pages {
	return &Pages{
		Pages: tview.NewPages(),
	}
}

// SetOnChange sets a callback that fires with the page titles whenever the
// stack changes.
func (p *Pages) SetOnChange(fn func(titles []string)) {
	p.onChange = fn
}

// Push shows the named page on top of the stack.
func (p *Pages) Push(name, title string) {
	if len(p.stack) > 0 {
		p.HidePage(p.stack[len(p.stack)-1].name)
	}
	p.stack = append(p.stack, page{name: name, title: title})
	p.ShowPage(name)
	p.SendToFront(name)
	p.notify()
}

// Pop removes the top page and shows the previous one. The last page is
// never popped. Returns the name of the popped page, or "".
func (p *Pages) Pop() string {
	if len(p.stack) <= 1 {
		return ""
	}
	top := p.stack[len(p.stack)-1]
	p.HidePage(top.name)
	p.stack = p.stack[:len(p.stack)-1]
	current := p.stack[len(p.stack)-1].name
	p.ShowPage(current)
	p.SendToFront(current)
	p.notify()
	return top.name
}

// Current returns the name of the top page.
func (p *Pages) Current() string {
	if len(p.stack) == 0 {
		return ""
	}
	return p.stack[len(p.stack)-1].name
}

// Titles returns the page titles from bottom to top.
func (p *Pages) Titles() []string {
	titles := make([]string, len(p.stack))
	for i, pg := range p.stack {
		titles[i] = pg.title
	}
	return titles
}

// Reset clears the stack and shows only the given page.
func (p *Pages) Reset(name, title string) {
	for _, pg := range p.stack {
		p.HidePage(pg.name)
	}
	p.stack = []page{{name: name, title: title}}
	p.ShowPage(name)
	p.SendToFront(name)
	p.notify()
}

func (p *Pages) notify() {
	if p.onChange != nil {
		p.onChange(p.Titles())
	}
}
