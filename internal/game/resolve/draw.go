package resolve

import (
	"go.uber.org/zap"

	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub007/internal/game/rules"
)

// DrawPhase draws the actor's effective draw count from the deck. The
// count starts from the configured base and folds in every active
// draw-count modifier.
type DrawPhase struct{}

// Kind implements Resolver.
func (r *DrawPhase) Kind() Kind { return KindDraw }

// Resolve implements Resolver.
func (r *DrawPhase) Resolve(ctx *Context) (Result, error) {
	p := ctx.Game.Player(ctx.Actor)
	if p == nil || !p.Alive {
		return Failure(ErrTargetNotAlive, "draw.actor.dead"), nil
	}

	count := ctx.Rules.DrawCount(ctx.Game, ctx.Actor)
	cards, err := ctx.Mover.Draw(ctx.Actor, count)
	if err != nil {
		return Result{}, err
	}

	ev := rules.NewEvent(rules.EventCardsDrawn, ctx.Actor, ctx.Actor)
	ev.Amount = len(cards)
	ctx.Publish(ev)
	ctx.Log().Info("draw phase resolved",
		zap.Int("seat", ctx.Actor),
		zap.Int("count", len(cards)),
	)
	return Success(), nil
}
