package ipc

import (
	"log/slog"
	"math"

	"github.com/qstars/qstars/qstars-core/model"
)

// Batch collects the commands issued while the agent runs one tick.
type Batch struct {
	mint     func() string
	commands []Envelope
}

// NewBatch creates an empty batch. mint supplies identifiers for units
// ordered built.
func NewBatch(mint func() string) *Batch {
	return &Batch{mint: mint}
}

// Commands returns the commands in issue order.
func (b *Batch) Commands() []Envelope {
	return b.commands
}

func (b *Batch) add(msgType string, data any) {
	env, err := NewEnvelope(msgType, data)
	if err != nil {
		slog.Error("dropping command", "type", msgType, "error", err)
		return
	}
	b.commands = append(b.commands, env)
}

// remoteBase is an own base whose actions become batch commands.
type remoteBase struct {
	state BaseState
	batch *Batch
}

func (r *remoteBase) ID() string            { return r.state.UID }
func (r *remoteBase) Position() model.Point { return model.Point{X: r.state.X, Y: r.state.Y} }
func (r *remoteBase) Crystal() float64      { return r.state.Crystal }
func (r *remoteBase) Mines() int            { return r.state.Mines }

// Cost returns the host's price for p. A product with no listed price is
// never affordable.
func (r *remoteBase) Cost(p model.Product) float64 {
	if c, ok := r.state.Costs[string(p)]; ok {
		return c
	}
	return math.Inf(1)
}

func (r *remoteBase) BuildMine() {
	r.batch.add(TypeBuildMine, BuildMineCommand{Base: r.state.UID})
}

func (r *remoteBase) Build(class model.UnitClass, heading float64) string {
	uid := r.batch.mint()
	r.batch.add(TypeBuild, BuildCommand{
		Base:    r.state.UID,
		Kind:    string(class.Product()),
		Heading: heading,
		UID:     uid,
	})
	return uid
}

// remoteVehicle is an own vehicle whose orders become batch commands.
type remoteVehicle struct {
	state VehicleState
	class model.UnitClass
	batch *Batch
}

func (r *remoteVehicle) ID() string                 { return r.state.UID }
func (r *remoteVehicle) Position() model.Point      { return model.Point{X: r.state.X, Y: r.state.Y} }
func (r *remoteVehicle) Class() model.UnitClass     { return r.class }
func (r *remoteVehicle) Heading() float64           { return r.state.Heading }
func (r *remoteVehicle) OwnerID() string            { return r.state.Owner }
func (r *remoteVehicle) OwnerPosition() model.Point { return model.Point{X: r.state.OwnerX, Y: r.state.OwnerY} }

func (r *remoteVehicle) SetHeading(heading float64) {
	r.batch.add(TypeSetHeading, SetHeadingCommand{UID: r.state.UID, Heading: heading})
}

func (r *remoteVehicle) Goto(p model.Point) {
	r.batch.add(TypeGoto, GotoCommand{UID: r.state.UID, X: p.X, Y: p.Y})
}

func (r *remoteVehicle) ConvertToBase() {
	r.batch.add(TypeConvert, ConvertCommand{UID: r.state.UID})
}

// contact is a read-only enemy entity.
type contact struct {
	uid string
	at  model.Point
}

func (c contact) ID() string            { return c.uid }
func (c contact) Position() model.Point { return c.at }

// classList is one unit class's slice in a faction message.
type classList struct {
	class model.UnitClass
	list  []VehicleState
}

func (f FactionState) units() []classList {
	return []classList{
		{model.Ground, f.Tanks},
		{model.Air, f.Jets},
		{model.Naval, f.Ships},
	}
}

// DecodeWorld turns a tick message into the agent's world view. Orders
// issued on the returned world's own entities land in batch.
func DecodeWorld(msg TickMessage, team string, grid *model.Grid, batch *Batch) model.World {
	w := model.World{
		Time: msg.Time,
		Dt:   msg.Dt,
		Own:  model.Faction{Name: team},
		Grid: grid,
	}

	for _, f := range msg.Factions {
		if f.Name == team {
			for _, b := range f.Bases {
				w.Own.Bases = append(w.Own.Bases, &remoteBase{state: b, batch: batch})
			}
			for _, u := range f.units() {
				for _, v := range u.list {
					w.Own.Vehicles = append(w.Own.Vehicles, &remoteVehicle{state: v, class: u.class, batch: batch})
				}
			}
			continue
		}

		c := model.Contacts{Name: f.Name, Units: make(map[model.UnitClass][]model.Entity)}
		for _, b := range f.Bases {
			c.Bases = append(c.Bases, contact{uid: b.UID, at: model.Point{X: b.X, Y: b.Y}})
		}
		for _, u := range f.units() {
			for _, v := range u.list {
				c.Units[u.class] = append(c.Units[u.class], contact{uid: v.UID, at: model.Point{X: v.X, Y: v.Y}})
			}
		}
		w.Enemies = append(w.Enemies, c)
	}

	return w
}
