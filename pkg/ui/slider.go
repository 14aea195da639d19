package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// Slider is a horizontal value picker between Min and Max
type Slider struct {
	Label    string
	Value    float64
	Min, Max float64
	X, Y     float64
	W, H     float64
	changed  bool
}

// NewSlider creates a slider; value is clamped to [min, max]
func NewSlider(x, y, w float64, label string, min, max, value float64) *Slider {
	s := &Slider{
		Label: label,
		Min:   min,
		Max:   max,
		X:     x,
		Y:     y,
		W:     w,
		H:     10,
	}
	s.Value = s.clamp(value)
	return s
}

func (s *Slider) clamp(v float64) float64 {
	if v < s.Min {
		return s.Min
	}
	if v > s.Max {
		return s.Max
	}
	return v
}

// Fraction is the position of Value in the range, 0 at Min and 1 at Max
func (s *Slider) Fraction() float64 {
	if s.Max == s.Min {
		return 0
	}
	return (s.Value - s.Min) / (s.Max - s.Min)
}

// SetFraction moves the slider to a fraction of its range
func (s *Slider) SetFraction(f float64) {
	s.Value = s.clamp(s.Min + f*(s.Max-s.Min))
}

// Contains reports whether the point lies on the slider track
func (s *Slider) Contains(x, y float64) bool {
	return x >= s.X && x <= s.X+s.W && y >= s.Y && y <= s.Y+s.H
}

// Changed reports whether the value moved since the last call
func (s *Slider) Changed() bool {
	c := s.changed
	s.changed = false
	return c
}

// Update checks for mouse interaction
func (s *Slider) Update() {
	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if !s.Contains(float64(mx), float64(my)) {
		return
	}
	old := s.Value
	s.SetFraction((float64(mx) - s.X) / s.W)
	if s.Value != old {
		s.changed = true
	}
}

// Draw renders the track, the filled part and the current value
func (s *Slider) Draw(screen *ebiten.Image) {
	vector.FillRect(screen, float32(s.X), float32(s.Y), float32(s.W), float32(s.H), color.RGBA{R: 80, G: 80, B: 80, A: 255}, true)
	vector.FillRect(screen, float32(s.X), float32(s.Y), float32(s.W*s.Fraction()), float32(s.H), color.RGBA{R: 200, G: 200, B: 200, A: 255}, true)

	value := fmt.Sprintf("%.2f", s.Value)
	text.Draw(screen, value, basicfont.Face7x13, int(s.X+s.W)-7*len(value), int(s.Y)-3, color.White)
}
