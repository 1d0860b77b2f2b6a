package rules

import (
	"github.com/expr-lang/expr/vm"
	"github.com/qstars/qstars/qstars-core/model"
)

// Outcome reports a unit ordered by a rule action. A zero Outcome means
// nothing mobile was built (a mine, or nothing affordable).
type Outcome struct {
	UnitID string
	Class  model.UnitClass
}

// ActionFunc spends a base's crystal when a rule's condition is true.
type ActionFunc func(env BuildEnv) (Outcome, error)

// Rule is the atomic unit of production behavior: a condition → action pair.
// The engine evaluates rules by priority and uses Category + Exclusive
// so only one build decision is made per base per tick.
type Rule struct {
	Name         string      // human-readable identifier
	Priority     int         // higher = evaluated first
	Category     string      // grouping for exclusive semantics
	Exclusive    bool        // if true, blocks lower-priority rules in same category
	ConditionSrc string      // expr source
	program      *vm.Program // compiled bytecode
	Action       ActionFunc
}
