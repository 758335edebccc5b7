package resolve

import (
	"go.uber.org/zap"

	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub007/internal/game"
	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub007/internal/game/rules"
)

// Heal restores one health to a wounded target, clamped at its maximum.
type Heal struct {
	Card   *game.Card
	Target int
}

// Kind implements Resolver.
func (r *Heal) Kind() Kind { return KindHeal }

// Resolve implements Resolver.
func (r *Heal) Resolve(ctx *Context) (Result, error) {
	target := ctx.Game.Player(r.Target)
	if target == nil {
		return Failure(ErrInvalidTarget, "heal.target.unknown"), nil
	}
	if !target.Alive {
		return Failure(ErrTargetNotAlive, "heal.target.dead"), nil
	}
	if !target.Wounded() {
		return Failure(ErrInvalidState, "heal.target.unwounded"), nil
	}

	target.Health++
	if target.Health > target.MaxHealth {
		target.Health = target.MaxHealth
	}

	ev := rules.NewEvent(rules.EventHealApplied, ctx.Actor, r.Target)
	ev.Amount = 1
	if r.Card != nil {
		ev.CardID = r.Card.ID
	}
	ctx.Publish(ev)
	ctx.Log().Info("heal applied",
		zap.Int("actor", ctx.Actor),
		zap.Int("target", r.Target),
		zap.Int("health", target.Health),
	)
	return Success(), nil
}
