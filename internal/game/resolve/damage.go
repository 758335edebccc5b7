package resolve

import (
	"go.uber.org/zap"

	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub007/internal/game"
	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub007/internal/game/rules"
)

// DamageKind classifies damage for abilities that care about the element.
type DamageKind string

const (
	DamageNormal  DamageKind = "NORMAL"
	DamageFire    DamageKind = "FIRE"
	DamageThunder DamageKind = "THUNDER"
)

// DamageSpec describes one pending instance of damage.
type DamageSpec struct {
	Source        int // seat dealing the damage, -1 when sourceless
	Target        int
	Amount        int // never negative
	Kind          DamageKind
	Reason        string
	Card          *game.Card // causing card, optional
	Preventable   bool
	RedirectTo    int // seat to redirect to, -1 when unset
	TriggersDying bool
}

// Damage applies a pending DamageSpec to the target: abilities get a
// veto/annotation window first, then health is reduced and clamped at
// zero, and liveness handling follows.
type Damage struct{}

// Kind implements Resolver.
func (r *Damage) Kind() Kind { return KindDamage }

// Resolve implements Resolver. A missing pending-damage descriptor is an
// invalid-state failure, not a structural fault.
func (r *Damage) Resolve(ctx *Context) (Result, error) {
	spec := ctx.Damage
	if spec == nil {
		return Failure(ErrInvalidState, "damage.spec.missing"), nil
	}
	target := ctx.Game.Player(spec.Target)
	if target == nil {
		return Failure(ErrInvalidTarget, "damage.target.unknown"), nil
	}
	if !target.Alive {
		return Failure(ErrTargetNotAlive, "damage.target.dead"), nil
	}

	amount := spec.Amount
	finalTarget := spec.Target
	if spec.RedirectTo >= 0 {
		finalTarget = spec.RedirectTo
	}

	if spec.Preventable {
		ev := rules.NewEvent(rules.EventDamageApplying, spec.Source, finalTarget)
		ev.Amount = amount
		ev.Reason = spec.Reason
		if spec.Card != nil {
			ev.CardID = spec.Card.ID
		}
		ctx.Publish(ev)
		if ev.Prevented {
			ctx.Log().Info("damage prevented",
				zap.Int("target", finalTarget),
				zap.Int("amount", amount),
				zap.String("reason", spec.Reason),
			)
			return Success(), nil
		}
		amount = ev.Amount
		if ev.RedirectTo >= 0 {
			finalTarget = ev.RedirectTo
		}
	}
	if amount < 0 {
		amount = 0
	}

	victim := ctx.Game.Player(finalTarget)
	if victim == nil || !victim.Alive {
		return Failure(ErrTargetNotAlive, "damage.target.dead"), nil
	}

	victim.Health -= amount
	if victim.Health < 0 {
		victim.Health = 0
	}

	applied := rules.NewEvent(rules.EventDamageApplied, spec.Source, finalTarget)
	applied.Amount = amount
	applied.Reason = spec.Reason
	if spec.Card != nil {
		applied.CardID = spec.Card.ID
	}
	ctx.Publish(applied)

	ctx.Log().Info("damage applied",
		zap.Int("source", spec.Source),
		zap.Int("target", finalTarget),
		zap.Int("amount", amount),
		zap.String("kind", string(spec.Kind)),
		zap.Int("health", victim.Health),
	)

	if victim.Health == 0 {
		dying := rules.NewEvent(rules.EventPlayerDying, spec.Source, finalTarget)
		ctx.Publish(dying)
		if spec.TriggersDying {
			ctx.Stack.Push(&DyingRescue{Seat: finalTarget, CauseSeat: spec.Source}, ctx.WithActor(finalTarget))
		} else {
			killPlayer(ctx, victim, spec.Source)
		}
	}
	return Success(), nil
}

func killPlayer(ctx *Context, victim *game.Player, cause int) {
	victim.Alive = false
	died := rules.NewEvent(rules.EventPlayerDied, cause, victim.Seat)
	ctx.Publish(died)
	ctx.Log().Info("player died",
		zap.Int("seat", victim.Seat),
		zap.Int("cause", cause),
	)
}
