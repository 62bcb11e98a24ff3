package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"powergrid/internal/config"
)

// canvas adapts an offscreen ebiten image to the engine's Renderer contract.
type canvas struct {
	img *ebiten.Image
}

func (c *canvas) Clear(width, height float64) {
	c.img.Clear()
}

func (c *canvas) FillRect(x, y, width, height float64, col config.Color, alpha float64) {
	rgba := color.NRGBA{R: col.R, G: col.G, B: col.B, A: uint8(alpha*255 + 0.5)}
	vector.DrawFilledRect(c.img, float32(x), float32(y), float32(width), float32(height), rgba, false)
}
