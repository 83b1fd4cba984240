package gui

import (
	"context"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/san-kum/physdemo/internal/demo"
)

// Browser is the main window: a demo picker above the current View.
type Browser struct {
	ctx    context.Context
	reg    *demo.Registry
	opts   Options
	window fyne.Window
	picker *widget.Select
	view   *View
}

// NewBrowser opens name, or the first registered demo when name is empty.
func NewBrowser(ctx context.Context, a fyne.App, reg *demo.Registry, name string, initial demo.Values, opts Options) (*Browser, error) {
	b := &Browser{
		ctx:    ctx,
		reg:    reg,
		opts:   opts.withDefaults(),
		window: a.NewWindow("physdemo"),
	}
	b.picker = widget.NewSelect(reg.Names(), func(name string) {
		if b.view != nil && name == b.view.demo.Name() {
			return
		}
		if err := b.Open(name, nil); err != nil {
			b.opts.Logger.Printf("open %s: %v", name, err)
		}
	})
	if name == "" {
		name = reg.Names()[0]
	}
	if err := b.Open(name, initial); err != nil {
		b.window.Close()
		return nil, err
	}
	return b, nil
}

// Open replaces the shown demo, stopping any running animation.
func (b *Browser) Open(name string, initial demo.Values) error {
	d, err := b.reg.Get(name)
	if err != nil {
		return err
	}
	v, err := NewView(b.ctx, d, initial, b.opts)
	if err != nil {
		return err
	}
	if b.view != nil && b.view.Playing() {
		b.view.TogglePlay()
	}
	b.view = v
	b.picker.Selected = name
	b.picker.Refresh()
	b.window.SetTitle("physdemo: " + name)
	b.window.SetContent(container.NewBorder(b.picker, nil, nil, nil, v.Content))
	return nil
}

func (b *Browser) Window() fyne.Window { return b.window }

func (b *Browser) View() *View { return b.view }
