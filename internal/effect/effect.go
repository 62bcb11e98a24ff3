// Package effect implements the power-on wave: a square grid of fading
// points whose lit radius expands from the center while the pointer hovers
// and recedes when it leaves. The package owns all per-frame state; drawing
// and frame scheduling are supplied by the caller.
package effect

import (
	"math"
	"math/rand"

	"powergrid/internal/config"
)

// Renderer is the drawing surface the engine paints onto, once per tick.
type Renderer interface {
	// Clear erases the full surface.
	Clear(width, height float64)
	// FillRect draws an axis-aligned filled rectangle with the given
	// color at the given opacity (0..1).
	FillRect(x, y, width, height float64, c config.Color, alpha float64)
}

// particle is one square of the grid. X, Y and distance are fixed at
// construction; opacity and speed are stepped every tick. The sign of speed
// is the fade direction: positive fades in, negative fades out.
type particle struct {
	x, y               float64
	opacity            float64
	speed              float64
	color              config.Color
	distanceFromCenter float64
}

// Effect is one effect instance. All mutation happens on the caller's frame
// loop; pointer enter/leave only flips the hovering flag, so no locking is
// needed as long as input and ticks run on the same goroutine.
type Effect struct {
	cfg       config.Effect
	particles []particle

	// largest distanceFromCenter over the grid, fixed at construction
	maxDistance float64

	hovering bool
	// normalized radius of the lit region, ramped toward 1 while hovering
	waveFront float64
	// overall surface opacity, ramped toward 1 while hovering
	intensity float64
}

// New builds the particle grid for cfg. The grid is square with
// cfg.GridCells cells per side, each square centered in its cell. Particles
// start dark with a random fade speed and a random palette color.
func New(cfg config.Effect) (*Effect, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Effect{
		cfg:       cfg,
		particles: make([]particle, 0, cfg.GridCells*cfg.GridCells),
	}

	side := cfg.Side()
	step := cfg.CellSize + cfg.GapSize
	inset := (cfg.CellSize - cfg.SquareSize) / 2
	for row := 0; row < cfg.GridCells; row++ {
		for col := 0; col < cfg.GridCells; col++ {
			x := float64(col)*step + inset
			y := float64(row)*step + inset

			// Distance is measured from the square's top-left corner, not
			// its center; the wave gate below depends on this exact value.
			d := math.Hypot(x-side/2, y-side/2)
			if d > e.maxDistance {
				e.maxDistance = d
			}

			e.particles = append(e.particles, particle{
				x: x,
				y: y,
				// The upper bound runs one past MaxPointFadeSpeed.
				speed: cfg.MinPointFadeSpeed +
					rand.Float64()*(cfg.MaxPointFadeSpeed+1-cfg.MinPointFadeSpeed),
				color:              cfg.Colors[rand.Intn(len(cfg.Colors))],
				distanceFromCenter: d,
			})
		}
	}
	return e, nil
}

// SetHovering records a pointer-enter (true) or pointer-leave (false).
func (e *Effect) SetHovering(hovering bool) { e.hovering = hovering }

// Hovering reports the last recorded pointer state.
func (e *Effect) Hovering() bool { return e.hovering }

// WaveFront returns the current normalized lit radius in [0,1].
func (e *Effect) WaveFront() float64 { return e.waveFront }

// Intensity returns the current overall surface opacity in [0,1]. The
// caller is expected to apply it when presenting the surface.
func (e *Effect) Intensity() float64 { return e.intensity }

// Side returns the pixel side length of the effect surface.
func (e *Effect) Side() float64 { return e.cfg.Side() }

// Tick advances the effect by one frame and redraws it: the hover ramps
// move first, then every particle is gated, stepped and bounced, then the
// grid is drawn onto r.
func (e *Effect) Tick(r Renderer) {
	e.ease()
	e.step()
	e.DrawGrid(r)
}

// DrawGrid clears r and draws every particle at its current opacity. It
// never mutates state, so repeated calls produce identical output.
func (e *Effect) DrawGrid(r Renderer) {
	side := e.cfg.Side()
	r.Clear(side, side)
	for i := range e.particles {
		p := &e.particles[i]
		r.FillRect(p.x, p.y, e.cfg.SquareSize, e.cfg.SquareSize, p.color, p.opacity)
	}
}

// ease ramps waveFront and intensity toward 1 while hovering and back
// toward 0 otherwise, each by its own fixed per-tick step.
func (e *Effect) ease() {
	dir := -1.0
	if e.hovering {
		dir = 1.0
	}
	e.waveFront = clamp01(e.waveFront + dir*e.cfg.FadeSpeedFactor)
	e.intensity = clamp01(e.intensity + dir*e.cfg.CardSpeedFactor)
}

// step runs the wave gate, opacity integration and bounce for every
// particle.
func (e *Effect) step() {
	for i := range e.particles {
		p := &e.particles[i]

		normalized := 0.0
		if e.maxDistance > 0 {
			normalized = p.distanceFromCenter / e.maxDistance
		}

		// Wave gate: outside the lit radius a particle may not fade in.
		if normalized > e.waveFront && p.speed > 0 {
			p.speed = -math.Abs(p.speed)
		}

		p.opacity += p.speed * e.cfg.PointFadeSpeedFactor

		// Bounce at the opacity bounds, flipping the fade direction.
		if p.opacity > 1 {
			p.opacity = 1
			p.speed = -p.speed
		} else if p.opacity < 0 {
			p.opacity = 0
			p.speed = -p.speed
		}
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
