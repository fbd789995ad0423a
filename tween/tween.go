// Package tween animates scalar properties of overlays with a critically damped spring.
package tween

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

// Direction selects the end a tween travels to.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// settleEpsilon is the distance under which a tween snaps to its target.
const settleEpsilon = 0.001

// Tween moves a value between From and To over roughly the configured duration.
type Tween struct {
	From, To float64

	spring   harmonica.Spring
	value    float64
	velocity float64
	target   float64
	running  bool
}

// New creates a tween resting at From. fps is the rate Update is called at.
func New(from, to float64, duration time.Duration, fps int) *Tween {
	if fps <= 0 {
		fps = 60
	}
	if duration <= 0 {
		duration = time.Second / 2
	}

	// a critically damped spring settles after about 6/ω seconds
	frequency := 6.0 / duration.Seconds()

	return &Tween{
		From:   from,
		To:     to,
		spring: harmonica.NewSpring(harmonica.FPS(fps), frequency, 1.0),
		value:  from,
		target: from,
	}
}

// Play starts moving toward To (Forward) or From (Backward) from the current value.
func (t *Tween) Play(d Direction) {
	if d == Forward {
		t.target = t.To
	} else {
		t.target = t.From
	}
	t.running = t.value != t.target
}

// Update advances the animation by one frame and reports whether it is still running.
func (t *Tween) Update() bool {
	if !t.running {
		return false
	}

	t.value, t.velocity = t.spring.Update(t.value, t.velocity, t.target)
	if math.Abs(t.value-t.target) < settleEpsilon && math.Abs(t.velocity) < settleEpsilon {
		t.Finish()
	}
	return t.running
}

// Finish snaps the value to the current target.
func (t *Tween) Finish() {
	t.value = t.target
	t.velocity = 0
	t.running = false
}

// Value returns the current animated value.
func (t *Tween) Value() float64 {
	return t.value
}

// Running reports whether the tween has not reached its target yet.
func (t *Tween) Running() bool {
	return t.running
}

// AtEnd reports whether the tween rests at To.
func (t *Tween) AtEnd() bool {
	return !t.running && t.value == t.To
}
