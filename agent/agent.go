package agent

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/qstars/qstars/qstars-core/config"
	"github.com/qstars/qstars/qstars-core/ipc"
	"github.com/qstars/qstars/qstars-core/journal"
	"github.com/qstars/qstars/qstars-core/model"
	"github.com/qstars/qstars/qstars-core/orders"
	"github.com/qstars/qstars/qstars-core/registry"
	"github.com/qstars/qstars/qstars-core/rules"
	"github.com/qstars/qstars/qstars-core/targeting"
)

// Agent owns the decision-making for a single faction session. Its
// registry is touched only from Tick, one call at a time.
type Agent struct {
	Team    string
	Session string

	reg        *registry.Registry
	scheduler  *rules.Scheduler
	dispatcher *orders.Dispatcher
	grid       *model.Grid
	rng        *rand.Rand
	mint       func() string
	journal    *journal.Journal

	ticks     int
	diagEvery int
}

// New builds an agent from configuration. A zero seed seeds from the clock.
func New(cfg config.Config) (*Agent, error) {
	engine, err := rules.NewEngine(rules.CompileBuildOrder(cfg.BuildOrder))
	if err != nil {
		return nil, fmt.Errorf("build order: %w", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	a := &Agent{
		Team:      cfg.Team,
		Session:   uuid.NewString(),
		reg:       registry.New(),
		rng:       rand.New(rand.NewSource(seed)),
		mint:      uuid.NewString,
		diagEvery: cfg.DiagnosticsEvery,
	}
	a.scheduler = rules.NewScheduler(engine, a.randomHeading)
	a.dispatcher = orders.NewDispatcher(cfg.Orders, a.randomHeading)
	return a, nil
}

func (a *Agent) randomHeading() float64 {
	return 360 * a.rng.Float64()
}

// UseJournal makes the agent record a summary of every tick in j.
func (a *Agent) UseJournal(j *journal.Journal) {
	a.journal = j
}

// Registry exposes the agent's bookkeeping (read-only use).
func (a *Agent) Registry() *registry.Registry {
	return a.reg
}

// Tick runs one decision cycle: build, reconcile, assign targets, dispatch
// orders. The only error is a wrapped registry.ErrInconsistent; orders
// already issued during a failed tick should be discarded by the caller.
func (a *Agent) Tick(w model.World) error {
	a.ticks++

	seen := a.scheduler.Run(a.reg, w.Own.Bases)

	sync, err := a.reg.Reconcile(w.Own.Bases, w.Own.Vehicles, seen)
	if err != nil {
		return fmt.Errorf("tick %d: %w", a.ticks, err)
	}

	assigned := targeting.Assign(a.reg, w.Enemies)
	tally := a.dispatcher.Dispatch(a.reg, w.Own.Vehicles)

	forces := a.census()
	slog.Debug("tick complete",
		"tick", a.ticks,
		"time", w.Time,
		"built", len(seen),
		"adopted", sync.Adopted,
		"retired", sync.Retired,
		"assigned", assigned,
		"headings", tally.Headings,
		"gotos", tally.Gotos,
		"converts", tally.Converts,
	)

	a.journal.Record(journal.Entry{
		Session:  a.Session,
		Team:     a.Team,
		Tick:     a.ticks,
		Time:     w.Time,
		Bases:    len(w.Own.Bases),
		Ground:   forces.classes[model.Ground],
		Air:      forces.classes[model.Air],
		Naval:    forces.classes[model.Naval],
		Built:    len(seen),
		Adopted:  sync.Adopted,
		Retired:  sync.Retired,
		Assigned: assigned,
		Headings: tally.Headings,
		Gotos:    tally.Gotos,
		Converts: tally.Converts,
	})

	a.logForceDiagnostics(w, forces)
	return nil
}

type census struct {
	classes  map[model.UnitClass]int
	engaging int
}

func (a *Agent) census() census {
	c := census{classes: make(map[model.UnitClass]int)}
	for _, v := range a.reg.Vehicles() {
		c.classes[v.Class()]++
		if v.Engaging() {
			c.engaging++
		}
	}
	return c
}

// logForceDiagnostics helps debug "why isn't the AI attacking?". Fires
// every diagEvery ticks.
func (a *Agent) logForceDiagnostics(w model.World, forces census) {
	if a.diagEvery <= 0 || a.ticks%a.diagEvery != 0 {
		return
	}

	crystal := 0.0
	for _, b := range w.Own.Bases {
		crystal += b.Crystal()
	}

	slog.Info("force diagnostics",
		"tick", a.ticks,
		"bases", len(w.Own.Bases),
		"ground", forces.classes[model.Ground],
		"air", forces.classes[model.Air],
		"naval", forces.classes[model.Naval],
		"engaging", forces.engaging,
		"crystal", crystal,
		"enemyFactions", len(w.Enemies),
	)
}

// HandleHello completes the handshake so the host knows the agent is ready.
func (a *Agent) HandleHello(env ipc.Envelope) (*ipc.Envelope, error) {
	var hello ipc.HelloMessage
	if err := json.Unmarshal(env.Data, &hello); err != nil {
		return nil, fmt.Errorf("unmarshal hello: %w", err)
	}

	if hello.Team != "" {
		a.Team = hello.Team
	}
	if hello.Grid != nil {
		a.grid = model.NewGrid(hello.Grid.Cols, hello.Grid.Rows, hello.Grid.Cells)
		if a.grid == nil {
			slog.Warn("ignoring malformed grid", "cols", hello.Grid.Cols, "rows", hello.Grid.Rows, "cells", len(hello.Grid.Cells))
		}
	}
	slog.Info("team identified", "team", a.Team, "grid", a.grid != nil)

	ack, err := ipc.NewEnvelope(ipc.TypeAck, ipc.AckMessage{Status: "ok"})
	if err != nil {
		return nil, err
	}
	return &ack, nil
}

// HandleTick runs one tick against the host snapshot and replies with the
// orders issued, or with an error message when the tick failed.
func (a *Agent) HandleTick(env ipc.Envelope) (*ipc.Envelope, error) {
	var msg ipc.TickMessage
	if err := json.Unmarshal(env.Data, &msg); err != nil {
		return nil, fmt.Errorf("unmarshal tick: %w", err)
	}

	batch := ipc.NewBatch(a.mint)
	world := ipc.DecodeWorld(msg, a.Team, a.grid, batch)

	if err := a.Tick(world); err != nil {
		slog.Error("tick failed", "error", err)
		reply, encErr := ipc.NewEnvelope(ipc.TypeError, ipc.ErrorMessage{
			Fatal: errors.Is(err, registry.ErrInconsistent),
			Error: err.Error(),
		})
		if encErr != nil {
			return nil, encErr
		}
		return &reply, nil
	}

	reply, err := ipc.NewEnvelope(ipc.TypeOrders, ipc.OrdersMessage{Time: msg.Time, Commands: batch.Commands()})
	if err != nil {
		return nil, err
	}
	return &reply, nil
}
