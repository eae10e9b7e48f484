package components

import (
	"context"
	"errors"
	"fmt"
	"image"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/shinsi/pkg/app/styles"
	"github.com/kerbaras/shinsi/pkg/imageloader"
	"github.com/kerbaras/shinsi/pkg/viewer"
)

// ImageLoader loads a display-ready image.
type ImageLoader interface {
	Load(ctx context.Context, ref string) (image.Image, error)
}

// PageLoadedMsg carries the result of a PageView fetch.
type PageLoadedMsg struct {
	Ref   string
	Gen   uint64
	Image image.Image
	Err   error
}

// PageView shows one page image in a terminal region. Each cell draws two
// vertical pixels with a half block, so the viewport is width x 2*height.
type PageView struct {
	loader ImageLoader
	slot   imageloader.Slot
	viewer *viewer.Viewer

	ref     string
	img     image.Image
	err     error
	loading bool

	width  int
	height int
}

func NewPageView(loader ImageLoader, width, height int) *PageView {
	p := &PageView{loader: loader, viewer: viewer.New(viewer.Size{})}
	p.SetSize(width, height)
	return p
}

func (p *PageView) Viewer() *viewer.Viewer { return p.viewer }

func (p *PageView) Ref() string { return p.ref }

func (p *PageView) Loading() bool { return p.loading }

func (p *PageView) Err() error { return p.err }

func (p *PageView) SetSize(width, height int) {
	p.width, p.height = width, height
	p.viewer.Layout(viewer.Size{W: float64(width), H: float64(height * 2)})
}

// Load starts fetching ref, cancelling whatever fetch was in flight.
func (p *PageView) Load(ctx context.Context, ref string) tea.Cmd {
	fetchCtx, gen := p.slot.Begin(ctx)
	p.ref = ref
	p.img = nil
	p.err = nil
	p.loading = true
	p.viewer.SetImageSize(viewer.Size{})

	loader := p.loader
	return func() tea.Msg {
		img, err := loader.Load(fetchCtx, ref)
		return PageLoadedMsg{Ref: ref, Gen: gen, Image: img, Err: err}
	}
}

// ErrNoImage is shown when a loader reports success without an image.
var ErrNoImage = errors.New("no image returned")

// Update applies a finished fetch. Results of superseded fetches are
// dropped.
func (p *PageView) Update(msg PageLoadedMsg) bool {
	if !p.slot.Current(msg.Gen) {
		return false
	}
	p.loading = false
	if msg.Err != nil {
		p.err = msg.Err
		return true
	}
	if msg.Image == nil {
		p.err = ErrNoImage
		return true
	}
	p.img = msg.Image
	b := msg.Image.Bounds()
	p.viewer.SetImageSize(viewer.Size{W: float64(b.Dx()), H: float64(b.Dy())})
	return true
}

// PrepareForReuse resets zoom and cancels any in-flight fetch so the view
// can show another page.
func (p *PageView) PrepareForReuse() {
	p.slot.Cancel()
	p.viewer.Reset()
	p.ref = ""
	p.img = nil
	p.err = nil
	p.loading = false
}

// DoubleTap toggles zoom around the cell at col, row.
func (p *PageView) DoubleTap(col, row int) {
	p.viewer.DoubleTap(viewer.Point{X: float64(col) + 0.5, Y: float64(row*2) + 1})
}

// Pan scrolls by whole cells.
func (p *PageView) Pan(cols, rows int) {
	p.viewer.Pan(float64(cols), float64(rows*2))
}

func (p *PageView) View() string {
	switch {
	case p.err != nil:
		return p.placeholder(styles.StatusError.Render(fmt.Sprintf("Error: %s", p.err)))
	case p.loading:
		return p.placeholder(styles.MutedStyle.Render("Loading..."))
	case p.img == nil:
		return p.placeholder(styles.MutedStyle.Render("No page"))
	}

	var b strings.Builder
	for row := 0; row < p.height; row++ {
		for col := 0; col < p.width; col++ {
			top, topOK := p.sample(float64(col)+0.5, float64(row*2)+0.5)
			bottom, bottomOK := p.sample(float64(col)+0.5, float64(row*2)+1.5)
			b.WriteString(halfBlock(top, topOK, bottom, bottomOK))
		}
		if row < p.height-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (p *PageView) placeholder(msg string) string {
	return lipgloss.Place(p.width, p.height, lipgloss.Center, lipgloss.Center, msg)
}

// sample returns the image color under the viewport point x, y.
func (p *PageView) sample(x, y float64) (lipgloss.Color, bool) {
	pt := p.viewer.ToFrame(viewer.Point{X: x, Y: y})
	r := p.viewer.ImageRect()
	if pt.X < r.Origin.X || pt.Y < r.Origin.Y || pt.X >= r.Origin.X+r.Size.W || pt.Y >= r.Origin.Y+r.Size.H {
		return "", false
	}

	b := p.img.Bounds()
	ix := b.Min.X + int((pt.X-r.Origin.X)*float64(b.Dx())/r.Size.W)
	iy := b.Min.Y + int((pt.Y-r.Origin.Y)*float64(b.Dy())/r.Size.H)
	cr, cg, cb, _ := p.img.At(ix, iy).RGBA()
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", cr>>8, cg>>8, cb>>8)), true
}

func halfBlock(top lipgloss.Color, topOK bool, bottom lipgloss.Color, bottomOK bool) string {
	switch {
	case topOK && bottomOK:
		return lipgloss.NewStyle().Foreground(top).Background(bottom).Render("▀")
	case topOK:
		return lipgloss.NewStyle().Foreground(top).Render("▀")
	case bottomOK:
		return lipgloss.NewStyle().Foreground(bottom).Render("▄")
	default:
		return " "
	}
}
