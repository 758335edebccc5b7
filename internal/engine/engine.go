package engine

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub007/internal/game"
	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub007/internal/game/abilities"
	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub007/internal/game/resolve"
	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub007/internal/game/rules"
)

// Engine bundles one game with its resolution services. Each top-level
// action builds a fresh resolution stack and session, pushes the entry
// resolver, and drains the stack to completion before returning; the
// execution history of the drained chain is returned for replay storage.
type Engine struct {
	Game      *game.Game
	Bus       *rules.EventBus
	Registry  *abilities.Registry
	Mover     *game.CardMover
	Rules     *rules.Service
	Judgement *rules.JudgementService
	logger    *zap.Logger
}

// New wires an engine around a fresh game.
func New(cfg rules.Config, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	g := game.NewGame()
	bus := rules.NewEventBus()
	registry := abilities.NewRegistry(g, bus, logger)
	mover := game.NewCardMover(g, logger)
	return &Engine{
		Game:      g,
		Bus:       bus,
		Registry:  registry,
		Mover:     mover,
		Rules:     rules.NewService(registry, cfg, logger),
		Judgement: rules.NewJudgementService(mover, bus, logger),
		logger:    logger,
	}
}

// Outcome reports how one top-level action resolved.
type Outcome struct {
	Result  resolve.Result
	History []resolve.HistoryEntry
}

// PlayCard resolves one card use by the actor against the targets. The
// choose callback supplies every decision the chain needs; passing nil is
// legal for chains that never ask.
func (e *Engine) PlayCard(actor int, card *game.Card, targets []int, choose resolve.ChoiceCallback) (Outcome, error) {
	return e.run(&resolve.UseCard{Card: card, Targets: targets}, actor, choose)
}

// PlayDrawPhase resolves the actor's draw phase.
func (e *Engine) PlayDrawPhase(actor int, choose resolve.ChoiceCallback) (Outcome, error) {
	return e.run(&resolve.DrawPhase{}, actor, choose)
}

// AvailableActions lists the actions the seat could legally take now.
func (e *Engine) AvailableActions(seat int) []rules.Action {
	return e.Rules.AvailableActions(e.Game, seat)
}

func (e *Engine) run(entry resolve.Resolver, actor int, choose resolve.ChoiceCallback) (Outcome, error) {
	if entry == nil {
		return Outcome{}, fmt.Errorf("engine: nil entry resolver")
	}
	stack := resolve.NewStack()
	ctx := resolve.Context{
		Game:      e.Game,
		Actor:     actor,
		Stack:     stack,
		Mover:     e.Mover,
		Rules:     e.Rules,
		Abilities: e.Registry,
		Judgement: e.Judgement,
		Bus:       e.Bus,
		Logger:    e.logger,
		Request:   choose,
		Session:   resolve.NewSession(),
	}
	stack.Push(entry, ctx)

	first, err := stack.Pop()
	if err != nil {
		return Outcome{Result: first, History: stack.History()}, err
	}
	if err := stack.ResolveAll(); err != nil {
		return Outcome{Result: first, History: stack.History()}, err
	}
	return Outcome{Result: first, History: stack.History()}, nil
}
