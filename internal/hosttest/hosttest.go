// Package hosttest provides in-memory host entities for tests. They record
// every order they receive instead of acting on a simulation.
package hosttest

import (
	"fmt"

	"github.com/qstars/qstars/qstars-core/model"
)

// Entity is a read-only enemy entity.
type Entity struct {
	UID string
	At  model.Point
}

func (e *Entity) ID() string            { return e.UID }
func (e *Entity) Position() model.Point { return e.At }

// Build is one unit build order received by a Base.
type Build struct {
	UID     string
	Class   model.UnitClass
	Heading float64
}

// Base is a controllable own base.
type Base struct {
	UID       string
	At        model.Point
	Balance   float64
	MineCount int
	Costs     map[model.Product]float64

	MinesBuilt int
	Builds     []Build

	seq int
}

func (b *Base) ID() string            { return b.UID }
func (b *Base) Position() model.Point { return b.At }
func (b *Base) Crystal() float64      { return b.Balance }
func (b *Base) Mines() int            { return b.MineCount }

// Cost returns the configured cost, or 100 when none is set.
func (b *Base) Cost(p model.Product) float64 {
	if c, ok := b.Costs[p]; ok {
		return c
	}
	return 100
}

func (b *Base) BuildMine() {
	b.MinesBuilt++
}

// Build records the order and returns a deterministic ID.
func (b *Base) Build(class model.UnitClass, heading float64) string {
	b.seq++
	uid := fmt.Sprintf("%s-%s-%d", b.UID, class, b.seq)
	b.Builds = append(b.Builds, Build{UID: uid, Class: class, Heading: heading})
	return uid
}

// Orders counts what a Vehicle was told to do this tick.
type Orders struct {
	Headings []float64
	Gotos    []model.Point
	Converts int
}

// Vehicle is a controllable own vehicle.
type Vehicle struct {
	UID      string
	Kind     model.UnitClass
	At       model.Point
	Facing   float64
	Owner    string
	OwnerAt  model.Point
	Received Orders
}

func (v *Vehicle) ID() string                 { return v.UID }
func (v *Vehicle) Position() model.Point      { return v.At }
func (v *Vehicle) Class() model.UnitClass     { return v.Kind }
func (v *Vehicle) Heading() float64           { return v.Facing }
func (v *Vehicle) OwnerID() string            { return v.Owner }
func (v *Vehicle) OwnerPosition() model.Point { return v.OwnerAt }
func (v *Vehicle) SetHeading(h float64)       { v.Received.Headings = append(v.Received.Headings, h) }
func (v *Vehicle) Goto(p model.Point)         { v.Received.Gotos = append(v.Received.Gotos, p) }
func (v *Vehicle) ConvertToBase()             { v.Received.Converts++ }

// Bases converts fakes to the host interface slice.
func Bases(bs ...*Base) []model.Base {
	out := make([]model.Base, len(bs))
	for i, b := range bs {
		out[i] = b
	}
	return out
}

// Vehicles converts fakes to the host interface slice.
func Vehicles(vs ...*Vehicle) []model.Vehicle {
	out := make([]model.Vehicle, len(vs))
	for i, v := range vs {
		out[i] = v
	}
	return out
}

// Entities converts fakes to the host interface slice.
func Entities(es ...*Entity) []model.Entity {
	out := make([]model.Entity, len(es))
	for i, e := range es {
		out[i] = e
	}
	return out
}
