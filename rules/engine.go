package rules

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Engine runs compiled rules against one base each tick.
// Rules fire in priority order; exclusive rules block lower-priority rules
// in the same category, so a base makes at most one build decision.
type Engine struct {
	rules []*Rule
}

// NewEngine compiles all rule conditions into expr bytecode and sorts by priority.
func NewEngine(rules []*Rule) (*Engine, error) {
	compiled, err := compileRules(rules)
	if err != nil {
		return nil, err
	}
	return &Engine{rules: compiled}, nil
}

// Rules returns the compiled rules in evaluation order.
func (e *Engine) Rules() []*Rule {
	return e.rules
}

// Evaluate runs all rules against env and returns the units ordered.
// A condition or action error is logged and the rule skipped; the engine
// never fails a tick.
func (e *Engine) Evaluate(env BuildEnv) []Outcome {
	fired := make(map[string]bool) // category → exclusive rule already fired
	var out []Outcome

	for _, r := range e.rules {
		if fired[r.Category] {
			continue
		}

		result, err := vm.Run(r.program, env)
		if err != nil {
			slog.Warn("rule condition error", "rule", r.Name, "error", err)
			continue
		}

		match, ok := result.(bool)
		if !ok || !match {
			continue
		}

		slog.Debug("rule fired", "rule", r.Name, "priority", r.Priority, "category", r.Category, "base", env.Base.ID())

		o, err := r.Action(env)
		if err != nil {
			slog.Error("rule action error", "rule", r.Name, "error", err)
		} else if o.UnitID != "" {
			out = append(out, o)
		}

		if r.Exclusive {
			fired[r.Category] = true
		}
	}

	return out
}

func compileRules(rules []*Rule) ([]*Rule, error) {
	for _, r := range rules {
		prog, err := expr.Compile(r.ConditionSrc, expr.Env(BuildEnv{}), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("compile rule %q: %w", r.Name, err)
		}
		r.program = prog
	}
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Priority > rules[j].Priority
	})
	return rules, nil
}
