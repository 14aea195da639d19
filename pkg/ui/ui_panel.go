package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Widget is anything the panel can lay out.
type Widget interface {
	Update()
	Draw(screen *ebiten.Image)
}

const (
	panelMargin   = 10
	titleHeight   = 30
	headerHeight  = 25
	labelHeight   = 15
	sectionMargin = 5
)

// caption is a piece of text the panel prints at a fixed place.
type caption struct {
	text string
	x, y float64
}

// UIPanel stacks widgets top to bottom, grouped under section headers.
// Positions are fixed when a widget is added.
type UIPanel struct {
	Title         string
	X, Y          float64
	Width, Height float64

	BGColor     color.RGBA
	BorderColor color.RGBA
	HeaderColor color.RGBA

	widgets  []Widget
	headers  []caption
	captions []caption
	cursor   float64 // offset of the next row from Y
}

// NewUIPanel creates an empty panel.
func NewUIPanel(x, y, width, height float64) *UIPanel {
	return &UIPanel{
		Title:       "Configuration",
		X:           x,
		Y:           y,
		Width:       width,
		Height:      height,
		BGColor:     color.RGBA{R: 40, G: 40, B: 45, A: 230},
		BorderColor: color.RGBA{R: 100, G: 100, B: 110, A: 255},
		HeaderColor: color.RGBA{R: 60, G: 60, B: 70, A: 255},
		cursor:      titleHeight,
	}
}

func (p *UIPanel) nextRow(height float64) float64 {
	y := p.Y + p.cursor
	p.cursor += height
	return y
}

// AddSection starts a new group of widgets under a header.
func (p *UIPanel) AddSection(title string) {
	p.headers = append(p.headers, caption{text: title, x: p.X + panelMargin, y: p.nextRow(headerHeight)})
}

// EndSection leaves some room before the next section.
func (p *UIPanel) EndSection() {
	p.cursor += sectionMargin
}

// AddSlider adds a labelled slider spanning the panel width.
func (p *UIPanel) AddSlider(label string, min, max, value float64) *Slider {
	s := NewSlider(p.X+panelMargin, 0, p.Width-2*panelMargin, label, min, max, value)
	y := p.nextRow(labelHeight + s.H + 10)
	s.Y = y + labelHeight
	p.captions = append(p.captions, caption{text: label, x: s.X, y: y})
	p.widgets = append(p.widgets, s)
	return s
}

// AddCheckbox adds a checkbox with its label on the right.
func (p *UIPanel) AddCheckbox(label string, value bool) *Checkbox {
	c := NewCheckbox(p.X+panelMargin, 0, label, value)
	c.Y = p.nextRow(c.Size + 8)
	p.captions = append(p.captions, caption{text: label, x: c.X + c.Size + 8, y: c.Y + 2})
	p.widgets = append(p.widgets, c)
	return c
}

// AddButton adds a full-width button; the button draws its own label.
func (p *UIPanel) AddButton(label string, onClick func()) *Button {
	b := NewButton(p.X+panelMargin, 0, p.Width-2*panelMargin, 22, label, onClick)
	b.Y = p.nextRow(b.Height + 8)
	p.widgets = append(p.widgets, b)
	return b
}

// Contains reports whether the point lies on the panel.
func (p *UIPanel) Contains(x, y float64) bool {
	return x >= p.X && x <= p.X+p.Width && y >= p.Y && y <= p.Y+p.Height
}

func (p *UIPanel) Update() {
	for _, w := range p.widgets {
		w.Update()
	}
}

func (p *UIPanel) Draw(screen *ebiten.Image) {
	vector.FillRect(screen, float32(p.X), float32(p.Y), float32(p.Width), float32(p.Height), p.BGColor, true)
	vector.StrokeRect(screen, float32(p.X), float32(p.Y), float32(p.Width), float32(p.Height), 2, p.BorderColor, true)
	ebitenutil.DebugPrintAt(screen, p.Title, int(p.X+panelMargin), int(p.Y+5))

	for _, h := range p.headers {
		vector.FillRect(screen, float32(p.X+5), float32(h.y), float32(p.Width-10), headerHeight-5, p.HeaderColor, true)
		ebitenutil.DebugPrintAt(screen, h.text, int(h.x), int(h.y+3))
	}
	for _, c := range p.captions {
		ebitenutil.DebugPrintAt(screen, c.text, int(c.x), int(c.y))
	}
	for _, w := range p.widgets {
		w.Draw(screen)
	}
}
