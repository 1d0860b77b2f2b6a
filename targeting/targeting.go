// Package targeting matches enemy entities to the agent's idle units.
//
// Matching is greedy and one-shot: each enemy entity, taken in priority
// order, claims the nearest eligible unit that has no target yet. A unit
// claimed early is gone for a closer enemy considered later.
package targeting

import (
	"log/slog"
	"math"

	"github.com/qstars/qstars/qstars-core/model"
	"github.com/qstars/qstars/qstars-core/registry"
)

// Category is a class of enemy entity.
type Category string

const (
	EnemyBases  Category = "bases"
	EnemyNaval  Category = "naval"
	EnemyGround Category = "ground"
	EnemyAir    Category = "air"
)

// Priority is the order in which enemy categories are matched.
var Priority = []Category{EnemyBases, EnemyNaval, EnemyGround, EnemyAir}

// Eligible lists which own unit classes may engage each enemy category.
// Only jets can reach ships; jets hunt jets.
var Eligible = map[Category][]model.UnitClass{
	EnemyBases:  {model.Ground, model.Air, model.Naval},
	EnemyNaval:  {model.Air},
	EnemyGround: {model.Ground},
	EnemyAir:    {model.Air},
}

// farAway is the distance of a unit the host has not located yet; such a
// unit never wins a match.
var farAway = math.Inf(1)

// entities returns the enemy entities of category cat.
func entities(c model.Contacts, cat Category) []model.Entity {
	switch cat {
	case EnemyBases:
		return c.Bases
	case EnemyNaval:
		return c.Units[model.Naval]
	case EnemyGround:
		return c.Units[model.Ground]
	case EnemyAir:
		return c.Units[model.Air]
	}
	return nil
}

func eligible(v *registry.Vehicle, classes []model.UnitClass) bool {
	for _, c := range classes {
		if v.Class() == c {
			return true
		}
	}
	return false
}

func distance(v *registry.Vehicle, p model.Point) float64 {
	if !v.Located {
		return farAway
	}
	return v.Position.Dist(p)
}

// Nearest returns the closest untargeted vehicle among classes, or nil.
// Ties go to the first vehicle in registry order.
func Nearest(reg *registry.Registry, p model.Point, classes []model.UnitClass) *registry.Vehicle {
	var closest *registry.Vehicle
	best := farAway
	for _, v := range reg.Vehicles() {
		if v.Engaging() || !eligible(v, classes) {
			continue
		}
		if d := distance(v, p); d < best {
			best = d
			closest = v
		}
	}
	return closest
}

// Assign runs one matching pass over every visible enemy faction and
// returns how many targets were set.
func Assign(reg *registry.Registry, enemies []model.Contacts) int {
	assigned := 0
	for _, c := range enemies {
		for _, cat := range Priority {
			classes := Eligible[cat]
			for _, e := range entities(c, cat) {
				v := Nearest(reg, e.Position(), classes)
				if v == nil {
					continue
				}
				if v.Claim(e.Position()) {
					assigned++
					slog.Debug("target assigned", "unit", v.ID, "class", v.Class(), "enemy", e.ID(), "faction", c.Name, "category", cat)
				}
			}
		}
	}
	return assigned
}
