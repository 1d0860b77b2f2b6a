package ipc

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/qstars/qstars/qstars-core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTick() TickMessage {
	return TickMessage{
		Time: 12.5,
		Dt:   0.1,
		Factions: []FactionState{
			{
				Name:  "Blue",
				Bases: []BaseState{{UID: "e1", X: 100, Y: 100}},
				Tanks: []VehicleState{{UID: "et1", X: 90, Y: 90}},
				Ships: []VehicleState{{UID: "es1", X: 80, Y: 80}},
			},
			{
				Name:  "Red",
				Bases: []BaseState{{UID: "b1", X: 1, Y: 2, Crystal: 500, Mines: 2, Costs: map[string]float64{"tank": 150}}},
				Tanks: []VehicleState{{UID: "t1", X: 3, Y: 4, Heading: 90, Owner: "b1", OwnerX: 1, OwnerY: 2}},
				Jets:  []VehicleState{{UID: "j1", Owner: "b1"}},
			},
		},
	}
}

func TestDecodeWorldSplitsOwnFromEnemies(t *testing.T) {
	w := DecodeWorld(sampleTick(), "Red", nil, NewBatch(func() string { return "new" }))

	assert.Equal(t, 12.5, w.Time)
	assert.Equal(t, "Red", w.Own.Name)
	require.Len(t, w.Own.Bases, 1)
	base := w.Own.Bases[0]
	assert.Equal(t, "b1", base.ID())
	assert.Equal(t, model.Point{X: 1, Y: 2}, base.Position())
	assert.Equal(t, 500.0, base.Crystal())
	assert.Equal(t, 2, base.Mines())

	require.Len(t, w.Own.Vehicles, 2)
	tank := w.Own.Vehicles[0]
	assert.Equal(t, model.Ground, tank.Class())
	assert.Equal(t, 90.0, tank.Heading())
	assert.Equal(t, model.Point{X: 1, Y: 2}, tank.OwnerPosition())
	assert.Equal(t, model.Air, w.Own.Vehicles[1].Class())

	require.Len(t, w.Enemies, 1)
	blue := w.Enemies[0]
	assert.Equal(t, "Blue", blue.Name)
	require.Len(t, blue.Bases, 1)
	assert.Equal(t, model.Point{X: 100, Y: 100}, blue.Bases[0].Position())
	assert.Len(t, blue.Units[model.Ground], 1)
	assert.Len(t, blue.Units[model.Naval], 1)
	assert.Empty(t, blue.Units[model.Air])
}

func TestDecodeWorldWithoutOwnFaction(t *testing.T) {
	w := DecodeWorld(sampleTick(), "Green", nil, NewBatch(nil))
	assert.Empty(t, w.Own.Bases)
	assert.Len(t, w.Enemies, 2)
}

func TestUnlistedCostIsNeverAffordable(t *testing.T) {
	w := DecodeWorld(sampleTick(), "Red", nil, NewBatch(nil))
	base := w.Own.Bases[0]
	assert.Equal(t, 150.0, base.Cost(model.Tank))
	assert.True(t, math.IsInf(base.Cost(model.Jet), 1))
}

func TestOrdersLandInBatchInIssueOrder(t *testing.T) {
	batch := NewBatch(func() string { return "minted" })
	w := DecodeWorld(sampleTick(), "Red", nil, batch)

	base := w.Own.Bases[0]
	base.BuildMine()
	uid := base.Build(model.Naval, 45)
	assert.Equal(t, "minted", uid)

	tank := w.Own.Vehicles[0]
	tank.SetHeading(135)
	tank.Goto(model.Point{X: 7, Y: 8})
	tank.ConvertToBase()

	cmds := batch.Commands()
	require.Len(t, cmds, 5)
	types := make([]string, len(cmds))
	for i, c := range cmds {
		types[i] = c.Type
	}
	assert.Equal(t, []string{TypeBuildMine, TypeBuild, TypeSetHeading, TypeGoto, TypeConvert}, types)

	var build BuildCommand
	require.NoError(t, json.Unmarshal(cmds[1].Data, &build))
	assert.Equal(t, BuildCommand{Base: "b1", Kind: "ship", Heading: 45, UID: "minted"}, build)

	var move GotoCommand
	require.NoError(t, json.Unmarshal(cmds[3].Data, &move))
	assert.Equal(t, GotoCommand{UID: "t1", X: 7, Y: 8}, move)
}
