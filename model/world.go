package model

import "math"

// UnitClass is the closed set of mobile unit classes a base can produce.
type UnitClass string

const (
	Ground UnitClass = "ground" // tank
	Air    UnitClass = "air"    // jet
	Naval  UnitClass = "naval"  // ship
)

// Classes lists every unit class in a stable order.
var Classes = []UnitClass{Ground, Air, Naval}

// Product names something a base can spend crystal on. Values match the
// host's cost table keys.
type Product string

const (
	Mine Product = "mine"
	Tank Product = "tank"
	Jet  Product = "jet"
	Ship Product = "ship"
)

// Product returns the host-side product that builds a unit of class c.
func (c UnitClass) Product() Product {
	switch c {
	case Ground:
		return Tank
	case Air:
		return Jet
	case Naval:
		return Ship
	}
	return ""
}

// ClassOf maps a host product name back to its unit class.
func ClassOf(p Product) (UnitClass, bool) {
	switch p {
	case Tank:
		return Ground, true
	case Jet:
		return Air, true
	case Ship:
		return Naval, true
	}
	return "", false
}

// Point is a position on the map in host distance units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Dist returns the straight-line distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Entity is anything the host reports with an identity and a position.
// Enemy bases and vehicles expose nothing more.
type Entity interface {
	ID() string
	Position() Point
}

// Base is an own production facility. Build actions are side effects on
// the host; Build returns the identifier of the unit it ordered.
type Base interface {
	Entity
	Crystal() float64
	Mines() int
	Cost(p Product) float64
	BuildMine()
	Build(class UnitClass, heading float64) string
}

// Vehicle is an own mobile unit with its order methods.
type Vehicle interface {
	Entity
	Class() UnitClass
	Heading() float64
	OwnerID() string
	OwnerPosition() Point
	SetHeading(heading float64)
	Goto(p Point)
	ConvertToBase()
}

// Faction is the agent's own visible state for one tick.
type Faction struct {
	Name     string
	Bases    []Base
	Vehicles []Vehicle
}

// Contacts is what the agent can see of one enemy faction.
type Contacts struct {
	Name  string
	Bases []Entity
	Units map[UnitClass][]Entity
}

// World is the read-only snapshot the host hands over each tick.
type World struct {
	Time    float64
	Dt      float64
	Own     Faction
	Enemies []Contacts
	Grid    *Grid
}
