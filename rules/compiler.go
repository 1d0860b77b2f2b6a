package rules

import (
	"fmt"

	"github.com/qstars/qstars/qstars-core/model"
)

// CategoryProduction is the single exclusive category every build rule
// shares, so the first satisfied rule is the only one that fires.
const CategoryProduction = "production"

// BuildOrder holds the thresholds of the base decision tree.
type BuildOrder struct {
	MineFloor   int `mapstructure:"mineFloor"`   // mines before anything else
	FirstGround int `mapstructure:"firstGround"` // baseline defense
	MineTarget  int `mapstructure:"mineTarget"`  // mines before air
	AirFloor    int `mapstructure:"airFloor"`    // air units before more ground
	GroundFloor int `mapstructure:"groundFloor"` // ground units before expansion
}

// DefaultBuildOrder returns the tournament build order.
func DefaultBuildOrder() BuildOrder {
	return BuildOrder{
		MineFloor:   2,
		FirstGround: 1,
		MineTarget:  3,
		AirFloor:    2,
		GroundFloor: 3,
	}
}

// Validate clamps thresholds to sane ranges. MineTarget never drops below
// MineFloor and GroundFloor never below FirstGround.
func (o *BuildOrder) Validate() {
	o.MineFloor = clampInt(o.MineFloor, 0, 20)
	o.FirstGround = clampInt(o.FirstGround, 0, 20)
	o.MineTarget = clampInt(o.MineTarget, o.MineFloor, 20)
	o.AirFloor = clampInt(o.AirFloor, 0, 50)
	o.GroundFloor = clampInt(o.GroundFloor, o.FirstGround, 50)
}

// clampInt restricts v to [min, max].
func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// CompileBuildOrder generates the base decision tree as a rule set.
// All conditions are built via fmt.Sprintf with interpolated values, so
// the compiler never generates invalid expr.
func CompileBuildOrder(o BuildOrder) []*Rule {
	o.Validate()

	ground := fmt.Sprintf(`Count(%q)`, model.Ground)
	air := fmt.Sprintf(`Count(%q)`, model.Air)
	naval := fmt.Sprintf(`Count(%q)`, model.Naval)

	steps := []struct {
		name string
		cond string
		act  ActionFunc
	}{
		{"mines-floor", fmt.Sprintf(`Mines() < %d`, o.MineFloor), ActionBuildMine},
		{"first-ground", fmt.Sprintf(`%s < %d`, ground, o.FirstGround), BuildUnit(model.Ground)},
		{"mines-target", fmt.Sprintf(`Mines() < %d`, o.MineTarget), ActionBuildMine},
		{"air-floor", fmt.Sprintf(`%s < %d`, air, o.AirFloor), BuildUnit(model.Air)},
		{"ground-floor", fmt.Sprintf(`%s < %d`, ground, o.GroundFloor), BuildUnit(model.Ground)},

		// Steady state: keep naval caught up to air, then ground, default air.
		{"expand-naval", fmt.Sprintf(`%s < %s`, naval, air), BuildUnit(model.Naval)},
		{"expand-ground", fmt.Sprintf(`%s < %s`, ground, air), BuildUnit(model.Ground)},
		{"expand-air", `true`, BuildUnit(model.Air)},
	}

	rules := make([]*Rule, 0, len(steps))
	for i, s := range steps {
		rules = append(rules, &Rule{
			Name:         s.name,
			Priority:     1000 - i*100,
			Category:     CategoryProduction,
			Exclusive:    true,
			ConditionSrc: s.cond,
			Action:       s.act,
		})
	}
	return rules
}
