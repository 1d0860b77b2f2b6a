// Package registry keeps the agent's local mirror of its own bases and
// vehicles and reconciles it against the host snapshot each tick.
package registry

import (
	"errors"
	"fmt"
	"slices"

	"github.com/qstars/qstars/qstars-core/model"
)

// ErrInconsistent means the registry and the host have diverged in a way
// that cannot be repaired: a unit being retired is missing from the base
// that supposedly owns it.
var ErrInconsistent = errors.New("registry inconsistent")

// Base is the agent's record of one of its production facilities. Units
// lists, per class, the IDs of units the base produced and still considers
// active.
type Base struct {
	ID    string
	Units map[model.UnitClass][]string
}

// Count returns how many active units of class c the base owns.
func (b *Base) Count(c model.UnitClass) int {
	return len(b.Units[c])
}

// Owned returns the total number of active units across all classes.
func (b *Base) Owned() int {
	n := 0
	for _, ids := range b.Units {
		n += len(ids)
	}
	return n
}

// Registry maps identifiers to the agent's own bases and vehicles. It is
// owned by one agent and mutated only from its tick.
type Registry struct {
	vehicles map[string]*Vehicle
	order    []string // vehicle IDs in insertion order
	bases    map[string]*Base
	baseIDs  []string
}

func New() *Registry {
	return &Registry{
		vehicles: make(map[string]*Vehicle),
		bases:    make(map[string]*Base),
	}
}

// Base returns the base record for id.
func (r *Registry) Base(id string) (*Base, bool) {
	b, ok := r.bases[id]
	return b, ok
}

// EnsureBase returns the base record for id, creating it on first sight.
func (r *Registry) EnsureBase(id string) *Base {
	if b, ok := r.bases[id]; ok {
		return b
	}
	b := &Base{ID: id, Units: make(map[model.UnitClass][]string)}
	r.bases[id] = b
	r.baseIDs = append(r.baseIDs, id)
	return b
}

// Bases returns all base records in creation order.
func (r *Registry) Bases() []*Base {
	out := make([]*Base, 0, len(r.baseIDs))
	for _, id := range r.baseIDs {
		out = append(out, r.bases[id])
	}
	return out
}

// Vehicle returns the vehicle record for id.
func (r *Registry) Vehicle(id string) (*Vehicle, bool) {
	v, ok := r.vehicles[id]
	return v, ok
}

// Vehicles returns all vehicle records in insertion order.
func (r *Registry) Vehicles() []*Vehicle {
	out := make([]*Vehicle, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.vehicles[id])
	}
	return out
}

// Len returns the number of vehicle records.
func (r *Registry) Len() int { return len(r.vehicles) }

// Enlist records a new vehicle owned by baseID and appends it to the
// base's collection for its class. Enlisting a known ID returns the
// existing record unchanged.
func (r *Registry) Enlist(id, baseID string, class model.UnitClass) *Vehicle {
	if v, ok := r.vehicles[id]; ok {
		return v
	}
	b := r.EnsureBase(baseID)
	b.Units[class] = append(b.Units[class], id)

	v := &Vehicle{ID: id, BaseID: baseID, Kind: NewKind(class)}
	r.vehicles[id] = v
	r.order = append(r.order, id)
	return v
}

// retire removes a vehicle and its back-reference in its owning base.
func (r *Registry) retire(id string) error {
	v, ok := r.vehicles[id]
	if !ok {
		return nil
	}
	b, ok := r.bases[v.BaseID]
	if !ok {
		return fmt.Errorf("retire %s: owning base %s not found: %w", id, v.BaseID, ErrInconsistent)
	}
	class := v.Class()
	i := slices.Index(b.Units[class], id)
	if i < 0 {
		return fmt.Errorf("retire %s: not in base %s %s units: %w", id, v.BaseID, class, ErrInconsistent)
	}
	b.Units[class] = slices.Delete(b.Units[class], i, i+1)

	delete(r.vehicles, id)
	r.order = slices.DeleteFunc(r.order, func(s string) bool { return s == id })
	return nil
}

// dropBase removes a base record. Callers must make sure it owns nothing.
func (r *Registry) dropBase(id string) {
	delete(r.bases, id)
	r.baseIDs = slices.DeleteFunc(r.baseIDs, func(s string) bool { return s == id })
}
