package rules

import (
	"github.com/qstars/qstars/qstars-core/model"
	"github.com/qstars/qstars/qstars-core/registry"
)

// Scheduler runs the build decision tree for every own base and records
// the units it orders in the registry.
type Scheduler struct {
	engine   *Engine
	headings func() float64
}

// NewScheduler creates a scheduler. headings supplies the initial heading
// of each unit ordered built.
func NewScheduler(engine *Engine, headings func() float64) *Scheduler {
	return &Scheduler{engine: engine, headings: headings}
}

// Run gives every base one decision this tick. It returns the IDs of units
// ordered built, which the reconciler must treat as alive even before the
// host reports them.
func (s *Scheduler) Run(reg *registry.Registry, bases []model.Base) map[string]bool {
	seen := make(map[string]bool)
	for _, b := range bases {
		record := reg.EnsureBase(b.ID())
		env := BuildEnv{Base: b, Record: record, Heading: s.headings}

		for _, o := range s.engine.Evaluate(env) {
			reg.Enlist(o.UnitID, b.ID(), o.Class)
			seen[o.UnitID] = true
		}
	}
	return seen
}
