// Package falling implements the falling-words typing game: words fall as
// groups of letters, the player types the lowest one and a collector walks
// over to consume every matched group in order.
package falling

import "time"

// FrameDuration is the virtual frame length used by the driving loop.
const FrameDuration = time.Second / 60

// Rand is the randomness the game needs. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// Config holds the play-area geometry and tuning values. Distances are in
// virtual pixels and speeds in pixels per second.
type Config struct {
	Width            float64
	Height           float64
	Lives            int
	Spacing          float64
	Margin           float64
	MinSpeed         float64
	MaxSpeed         float64
	CollectorStep    float64
	CollectorEpsilon float64
	BoundaryPad      float64
	SpawnLift        float64
	SpawnStagger     float64
}

// DefaultConfig returns the standard 800x400 board with three lives.
func DefaultConfig() Config {
	return Config{
		Width:            800,
		Height:           400,
		Lives:            3,
		Spacing:          48,
		Margin:           60,
		MinSpeed:         18,
		MaxSpeed:         30,
		CollectorStep:    10,
		CollectorEpsilon: 4,
		BoundaryPad:      20,
		SpawnLift:        40,
		SpawnStagger:     6,
	}
}

// Boundary is the y a group must pass to be lost.
func (c Config) Boundary() float64 {
	return c.Height + c.BoundaryPad
}

func (c Config) normalized() Config {
	def := DefaultConfig()
	if c.Width <= 0 {
		c.Width = def.Width
	}
	if c.Height <= 0 {
		c.Height = def.Height
	}
	if c.Lives <= 0 {
		c.Lives = def.Lives
	}
	if c.Spacing <= 0 {
		c.Spacing = def.Spacing
	}
	if c.Margin < 0 {
		c.Margin = def.Margin
	}
	if c.MinSpeed <= 0 {
		c.MinSpeed = def.MinSpeed
	}
	if c.MaxSpeed < c.MinSpeed {
		c.MaxSpeed = c.MinSpeed
	}
	if c.CollectorStep <= 0 {
		c.CollectorStep = def.CollectorStep
	}
	if c.CollectorEpsilon <= 0 {
		c.CollectorEpsilon = def.CollectorEpsilon
	}
	return c
}

// SpawnDelay returns the pause before the next word. It starts at five
// seconds and shrinks by 300ms every three points down to two seconds.
func SpawnDelay(score int) time.Duration {
	if score < 0 {
		score = 0
	}
	ms := max(2000, 5000-(score/3)*300)
	return time.Duration(ms) * time.Millisecond
}
