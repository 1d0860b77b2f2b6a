package registry

import (
	"log/slog"

	"github.com/qstars/qstars/qstars-core/model"
)

// Sync summarizes what a Reconcile changed.
type Sync struct {
	Adopted      int // reported vehicles with no record yet
	Retired      int // records for vehicles no longer reported
	DroppedBases int // unreported bases with nothing left to own
}

// Changed reports whether the reconcile mutated membership.
func (s Sync) Changed() bool {
	return s.Adopted > 0 || s.Retired > 0 || s.DroppedBases > 0
}

// Reconcile brings the registry in line with the host's view for this tick.
// seen holds IDs of units ordered built this tick; they survive even when
// the host does not report them yet. A vehicle that is neither reported nor
// seen is gone (destroyed or converted) and is retired.
//
// The only error is a wrapped ErrInconsistent.
func (r *Registry) Reconcile(bases []model.Base, vehicles []model.Vehicle, seen map[string]bool) (Sync, error) {
	var s Sync

	alive := make(map[string]bool, len(vehicles)+len(seen))
	for id := range seen {
		alive[id] = true
	}
	for _, vh := range vehicles {
		id := vh.ID()
		alive[id] = true

		v, ok := r.vehicles[id]
		if !ok {
			v = r.Enlist(id, vh.OwnerID(), vh.Class())
			s.Adopted++
			slog.Debug("adopted unreported vehicle", "id", id, "base", vh.OwnerID(), "class", vh.Class())
		}
		v.Position = vh.Position()
		v.Located = true
	}

	var dead []string
	for _, id := range r.order {
		if !alive[id] {
			dead = append(dead, id)
		}
	}
	for _, id := range dead {
		if err := r.retire(id); err != nil {
			return s, err
		}
		s.Retired++
	}

	reported := make(map[string]bool, len(bases))
	for _, b := range bases {
		reported[b.ID()] = true
	}
	for _, b := range r.Bases() {
		if !reported[b.ID] && b.Owned() == 0 {
			r.dropBase(b.ID)
			s.DroppedBases++
		}
	}

	return s, nil
}
