package game

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/ncruces/zenity"

	"powergrid/internal/config"
	"powergrid/internal/effect"
)

const minWindowWidth = 360

// Game drives one effect instance: it supplies the per-frame tick, turns
// cursor position into pointer enter/leave, and presents the offscreen
// surface at the effect's current intensity.
type Game struct {
	cfg    config.Effect
	fx     *effect.Effect
	target *canvas

	winWidth  int
	winHeight int

	hum *hum

	// input edge detection
	prevKey map[ebiten.Key]bool

	// button state
	buttonHovered bool
	buttonPressed bool

	lastErr error
}

func New(cfg config.Effect) (*Game, error) {
	g := &Game{
		prevKey: map[ebiten.Key]bool{},
	}
	if err := g.applyConfig(cfg); err != nil {
		return nil, err
	}
	return g, nil
}

// applyConfig swaps in a new effect built from cfg and resizes the
// offscreen surface to match. The previous effect stays untouched on error.
func (g *Game) applyConfig(cfg config.Effect) error {
	fx, err := effect.New(cfg)
	if err != nil {
		return err
	}

	side := int(cfg.Side())
	if side < 1 {
		side = 1 // ebiten images need positive dimensions
	}
	g.cfg = cfg
	g.fx = fx
	g.target = &canvas{img: ebiten.NewImage(side, side)}

	g.winWidth = side + 2*config.SurfaceMargin
	if g.winWidth < minWindowWidth {
		g.winWidth = minWindowWidth
	}
	g.winHeight = config.TopBarHeight + side + config.SurfaceMargin

	// Prime the surface so the first frame shows the dark grid.
	g.fx.DrawGrid(g.target)
	return nil
}

// EnableAudio starts the hover hum. Failures are reported in the status
// line rather than stopping the game.
func (g *Game) EnableAudio() {
	h, err := startHum()
	if err != nil {
		g.lastErr = err
		return
	}
	g.hum = h
}

// WindowSize returns the window dimensions for the current config.
func (g *Game) WindowSize() (int, int) {
	return g.winWidth, g.winHeight
}

func (g *Game) surfaceOrigin() (int, int) {
	ox := (g.winWidth - int(g.cfg.Side())) / 2
	return ox, config.TopBarHeight
}

func (g *Game) Update() error {
	justPressed := func(k ebiten.Key) bool {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !g.prevKey[k]
		g.prevKey[k] = pressed
		return jp
	}

	if justPressed(ebiten.KeyEscape) || justPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	mouseX, mouseY := ebiten.CursorPosition()

	// Handle button interactions
	g.buttonHovered = mouseX >= config.ButtonX && mouseX <= config.ButtonX+config.ButtonWidth &&
		mouseY >= config.ButtonY && mouseY <= config.ButtonY+config.ButtonHeight

	if g.buttonHovered && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.buttonPressed = true
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		if g.buttonPressed && g.buttonHovered {
			if err := g.openConfigDialog(); err != nil {
				g.lastErr = err
			}
		}
		g.buttonPressed = false
	}

	// Pointer enter/leave for the effect surface
	ox, oy := g.surfaceOrigin()
	side := int(g.cfg.Side())
	g.fx.SetHovering(mouseX >= ox && mouseX < ox+side && mouseY >= oy && mouseY < oy+side)

	g.fx.Tick(g.target)
	if g.hum != nil {
		g.hum.setGain(g.fx.Intensity())
	}

	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 10, G: 13, B: 20, A: 255})

	ox, oy := g.surfaceOrigin()
	side := float32(g.cfg.Side())
	intensity := g.fx.Intensity()

	// Border glow tracks intensity, like the surface itself.
	glow := color.NRGBA{R: 56, G: 189, B: 248, A: uint8(intensity*255 + 0.5)}
	vector.StrokeRect(screen, float32(ox)-2, float32(oy)-2, side+4, side+4, 2, glow, false)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(ox), float64(oy))
	op.ColorScale.ScaleAlpha(float32(intensity))
	screen.DrawImage(g.target.img, op)

	g.drawButton(screen)

	status := ""
	if g.fx.Hovering() {
		status = "Charging - move the cursor away to power down"
	} else if intensity > 0 {
		status = "Powering down"
	} else {
		status = "Idle - hover the grid to power it up"
	}
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	ebitenutil.DebugPrintAt(screen, status, 12, 12)
}

func (g *Game) drawButton(screen *ebiten.Image) {
	var bgColor color.Color
	if g.buttonPressed {
		bgColor = color.RGBA{R: 60, G: 80, B: 120, A: 255} // Pressed
	} else if g.buttonHovered {
		bgColor = color.RGBA{R: 80, G: 100, B: 140, A: 255} // Hovered
	} else {
		bgColor = color.RGBA{R: 100, G: 120, B: 160, A: 255} // Normal
	}

	vector.DrawFilledRect(screen, float32(config.ButtonX), float32(config.ButtonY),
		float32(config.ButtonWidth), float32(config.ButtonHeight), bgColor, false)

	borderColor := color.RGBA{R: 150, G: 170, B: 200, A: 255}
	vector.StrokeRect(screen, float32(config.ButtonX), float32(config.ButtonY),
		float32(config.ButtonWidth), float32(config.ButtonHeight), 2, borderColor, false)

	text := "Open Config"
	textWidth := len(text) * 8 // Approximate character width
	textX := config.ButtonX + (config.ButtonWidth-textWidth)/2
	textY := config.ButtonY + (config.ButtonHeight+8)/2
	ebitenutil.DebugPrintAt(screen, text, textX, textY)
}

// openConfigDialog lets the user pick a replacement effect config. A bad
// file leaves the running effect untouched.
func (g *Game) openConfigDialog() error {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Effect Config"),
		zenity.FileFilters{{
			Name:     "Config",
			Patterns: []string{"*.yaml", "*.yml"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return err
	}

	cfg, err := config.Load(filename)
	if err != nil {
		return err
	}
	if err := g.applyConfig(cfg); err != nil {
		return err
	}
	ebiten.SetWindowSize(g.winWidth, g.winHeight)
	fmt.Printf("Loaded config %v\n", filename)
	return nil
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.winWidth, g.winHeight
}
