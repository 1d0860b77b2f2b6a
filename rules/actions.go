package rules

import (
	"fmt"
	"log/slog"

	"github.com/qstars/qstars/qstars-core/model"
)

// ActionBuildMine adds infrastructure if the base can afford it.
func ActionBuildMine(env BuildEnv) (Outcome, error) {
	if !env.CanAfford(string(model.Mine)) {
		slog.Debug("mine deferred, not enough crystal", "base", env.Base.ID(), "crystal", env.Crystal())
		return Outcome{}, nil
	}
	slog.Debug("building mine", "base", env.Base.ID(), "mines", env.Mines())
	env.Base.BuildMine()
	return Outcome{}, nil
}

// BuildUnit returns an action that orders one unit of class if the base can
// afford it. The unit starts on a random heading.
func BuildUnit(class model.UnitClass) ActionFunc {
	return func(env BuildEnv) (Outcome, error) {
		product := class.Product()
		if product == "" {
			return Outcome{}, fmt.Errorf("no product for unit class %q", class)
		}
		if !env.CanAfford(string(product)) {
			slog.Debug("unit deferred, not enough crystal", "base", env.Base.ID(), "class", class, "crystal", env.Crystal())
			return Outcome{}, nil
		}

		heading := 0.0
		if env.Heading != nil {
			heading = env.Heading()
		}
		uid := env.Base.Build(class, heading)
		if uid == "" {
			return Outcome{}, fmt.Errorf("host returned no id for %s at base %s", class, env.Base.ID())
		}
		slog.Debug("building unit", "base", env.Base.ID(), "class", class, "id", uid, "heading", heading)
		return Outcome{UnitID: uid, Class: class}, nil
	}
}
