package registry

import "github.com/qstars/qstars/qstars-core/model"

// Kind carries the per-class behaviour state of a vehicle. Exactly one of
// *Ground, *Air or *Naval.
type Kind interface {
	Class() model.UnitClass
}

// Ground units hold position and scan; they need no extra state.
type Ground struct{}

// Air units wander in legs of growing length while idle.
type Air struct {
	Leg        int // ticks since the last heading change
	LongestLeg int // longest leg flown so far
}

// Naval units detect stasis by comparing against the previous tick.
type Naval struct {
	Previous    model.Point
	HasPrevious bool
}

func (*Ground) Class() model.UnitClass { return model.Ground }
func (*Air) Class() model.UnitClass    { return model.Air }
func (*Naval) Class() model.UnitClass  { return model.Naval }

// NewKind returns zeroed behaviour state for class c.
func NewKind(c model.UnitClass) Kind {
	switch c {
	case model.Air:
		return &Air{}
	case model.Naval:
		return &Naval{}
	default:
		return &Ground{}
	}
}

// Vehicle is the agent's record of one of its own mobile units.
type Vehicle struct {
	ID     string
	BaseID string
	Kind   Kind

	target    model.Point
	hasTarget bool

	Position model.Point
	Located  bool // false until the host has reported the unit at least once
}

// Class returns the unit class of v.
func (v *Vehicle) Class() model.UnitClass { return v.Kind.Class() }

// Target returns the assigned target, if any.
func (v *Vehicle) Target() (model.Point, bool) { return v.target, v.hasTarget }

// Engaging reports whether v has a target.
func (v *Vehicle) Engaging() bool { return v.hasTarget }

// Claim sets the target if v has none. Returns false when v is already
// engaging; a target is never overwritten.
func (v *Vehicle) Claim(p model.Point) bool {
	if v.hasTarget {
		return false
	}
	v.target = p
	v.hasTarget = true
	return true
}
