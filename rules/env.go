package rules

import (
	"github.com/qstars/qstars/qstars-core/model"
	"github.com/qstars/qstars/qstars-core/registry"
)

// BuildEnv wraps one base's state and exposes helper methods callable from
// expr expressions.
type BuildEnv struct {
	Base    model.Base
	Record  *registry.Base
	Heading func() float64 // initial heading for a new unit
}

// Mines returns the base's infrastructure count.
func (e BuildEnv) Mines() int {
	return e.Base.Mines()
}

// Crystal returns the base's resource balance.
func (e BuildEnv) Crystal() float64 {
	return e.Base.Crystal()
}

// Count returns how many active units of the named class the base owns.
// Unknown classes count as zero.
func (e BuildEnv) Count(class string) int {
	if e.Record == nil {
		return 0
	}
	return e.Record.Count(model.UnitClass(class))
}

// Cost returns the host's price for a product ("mine", "tank", "jet", "ship").
func (e BuildEnv) Cost(product string) float64 {
	return e.Base.Cost(model.Product(product))
}

// CanAfford reports whether the balance strictly exceeds the product's cost.
func (e BuildEnv) CanAfford(product string) bool {
	return e.Crystal() > e.Cost(product)
}
