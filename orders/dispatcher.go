// Package orders turns each unit's registry state into host orders.
//
// Mobile units are Idle without a target and Engaging with one. Naval units
// ignore targets and act on stasis instead: a ship that has not moved since
// the previous tick either converts into a base (far from home) or picks a
// new random heading.
package orders

import (
	"log/slog"
	"math"

	"github.com/qstars/qstars/qstars-core/model"
	"github.com/qstars/qstars/qstars-core/registry"
)

// Settings tune the idle patterns and the conversion trigger.
type Settings struct {
	GroundScanStep  float64 `mapstructure:"groundScanStep"`  // degrees per tick while idle
	AirTurnStep     float64 `mapstructure:"airTurnStep"`     // degrees per leg while idle
	ConvertDistance float64 `mapstructure:"convertDistance"` // min distance from home to convert
}

// DefaultSettings returns the tournament settings.
func DefaultSettings() Settings {
	return Settings{
		GroundScanStep:  45,
		AirTurnStep:     30,
		ConvertDistance: 20,
	}
}

// Tally counts the orders issued in one dispatch.
type Tally struct {
	Headings int
	Gotos    int
	Converts int
}

// Dispatcher issues per-unit orders every tick.
type Dispatcher struct {
	settings Settings
	headings func() float64
}

// NewDispatcher creates a dispatcher. headings supplies random headings in
// [0, 360) for parked ships.
func NewDispatcher(s Settings, headings func() float64) *Dispatcher {
	return &Dispatcher{settings: s, headings: headings}
}

// Dispatch issues orders to every reported vehicle with a registry record.
func (d *Dispatcher) Dispatch(reg *registry.Registry, vehicles []model.Vehicle) Tally {
	var t Tally
	for _, vh := range vehicles {
		v, ok := reg.Vehicle(vh.ID())
		if !ok {
			slog.Warn("no record for reported vehicle", "id", vh.ID())
			continue
		}

		switch k := v.Kind.(type) {
		case *registry.Ground:
			d.ground(v, vh, &t)
		case *registry.Air:
			d.air(v, k, vh, &t)
		case *registry.Naval:
			d.naval(k, vh, &t)
		}
	}
	return t
}

func turn(heading, step float64) float64 {
	return math.Mod(heading+step, 360)
}

// ground units scan in place until they get a target.
func (d *Dispatcher) ground(v *registry.Vehicle, vh model.Vehicle, t *Tally) {
	if p, ok := v.Target(); ok {
		vh.Goto(p)
		t.Gotos++
		return
	}
	vh.SetHeading(turn(vh.Heading(), d.settings.GroundScanStep))
	t.Headings++
}

// air units fly legs that grow by one tick each time they turn.
func (d *Dispatcher) air(v *registry.Vehicle, k *registry.Air, vh model.Vehicle, t *Tally) {
	if p, ok := v.Target(); ok {
		vh.Goto(p)
		t.Gotos++
		return
	}
	k.Leg++
	if k.Leg > k.LongestLeg {
		k.LongestLeg = k.Leg
		k.Leg = 0
		vh.SetHeading(turn(vh.Heading(), d.settings.AirTurnStep))
		t.Headings++
	}
}

func (d *Dispatcher) naval(k *registry.Naval, vh model.Vehicle, t *Tally) {
	pos := vh.Position()
	if k.HasPrevious && pos == k.Previous {
		if pos.Dist(vh.OwnerPosition()) > d.settings.ConvertDistance {
			slog.Debug("converting parked ship", "id", vh.ID(), "x", pos.X, "y", pos.Y)
			vh.ConvertToBase()
			t.Converts++
		} else {
			vh.SetHeading(d.headings())
			t.Headings++
		}
	}
	k.Previous = pos
	k.HasPrevious = true
}
