package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mmaury2727/Halite-Badr-Marius-IEMP9/ipc"
	"github.com/mmaury2727/Halite-Badr-Marius-IEMP9/model"
	"github.com/mmaury2727/Halite-Badr-Marius-IEMP9/replay"
	"github.com/mmaury2727/Halite-Badr-Marius-IEMP9/rules"
)

// Agent owns the decision-making for a single match.
type Agent struct {
	Session   *ipc.Session
	Engine    *rules.Engine
	Scheduler *rules.ReturnScheduler
	Game      *model.Game
	Recorder  *replay.Writer

	last stateSnapshot
}

func New(session *ipc.Session, engine *rules.Engine) *Agent {
	return &Agent{Session: session, Engine: engine}
}

// Init reads the engine handshake and sets up the per-match scheduler.
func (a *Agent) Init() (*model.Game, error) {
	g, err := a.Session.Init()
	if err != nil {
		return nil, fmt.Errorf("handshake: %w", err)
	}
	a.Game = g
	a.Scheduler = rules.NewReturnScheduler(a.Engine.Tuning(), g.Constants)
	return g, nil
}

// Ready tells the engine the bot has finished its setup.
func (a *Agent) Ready() error {
	name := a.Engine.Tuning().BotName
	if err := a.Session.Ready(name); err != nil {
		return err
	}
	slog.Info("bot ready", "name", name, "player", a.Game.MyID)
	return nil
}

// Run plays turns until the engine ends the match, a submission fails or ctx
// is cancelled. A normal end of match returns nil.
func (a *Agent) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := a.Session.UpdateFrame(a.Game); err != nil {
			if errors.Is(err, ipc.ErrGameOver) {
				slog.Info("game over", "lastTurn", a.Game.Turn)
				return nil
			}
			return err
		}

		plan := a.PlayTurn()
		if err := a.Session.EndTurn(plan.Commands); err != nil {
			return fmt.Errorf("turn %d: %w", plan.Turn, err)
		}
	}
}

// PlayTurn plans the current frame and records it.
func (a *Agent) PlayTurn() rules.TurnPlan {
	me := a.Game.Me()
	ships := me.OrderedShips()

	snap := takeSnapshot(a.Game.Turn, me)
	events := detectEvents(a.last, snap)
	a.last = snap
	for _, ev := range events {
		slog.Info("turn event", "turn", ev.Turn, "kind", ev.Kind, "ship", ev.ShipID, "detail", ev.Detail)
	}

	plan := a.Engine.PlanTurn(a.Scheduler, rules.TurnInput{
		Turn:      a.Game.Turn,
		Ships:     ships,
		Shipyard:  me.Shipyard.Position,
		Halite:    me.Halite,
		Constants: a.Game.Constants,
		Map:       a.Game.Map,
	})

	returning := a.Scheduler.Returning()
	priority, hasPriority := a.Scheduler.Priority()
	slog.Info("turn planned",
		"turn", plan.Turn,
		"halite", me.Halite,
		"ships", len(ships),
		"returning", len(returning),
		"priority", priorityAttr(priority, hasPriority),
		"spawn", plan.Spawn,
	)

	if a.Recorder != nil {
		rec := replay.TurnRecord{
			Turn:      plan.Turn,
			Halite:    me.Halite,
			Ships:     ships,
			Returning: returning,
			Plan:      plan,
		}
		for _, ev := range events {
			rec.Events = append(rec.Events, ev.String())
		}
		if hasPriority {
			rec.Priority = &priority
		}
		if err := a.Recorder.WriteTurn(rec); err != nil {
			slog.Warn("replay write failed, recording disabled", "turn", plan.Turn, "error", err)
			a.Recorder = nil
		}
	}
	return plan
}

func priorityAttr(id int, ok bool) any {
	if !ok {
		return "none"
	}
	return id
}
