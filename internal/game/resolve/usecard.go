package resolve

import (
	"go.uber.org/zap"

	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub007/internal/game"
	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub007/internal/game/rules"
)

// UseCard is the entry resolver of a card-driven action: it validates the
// action, moves the card out of the actor's hand, and pushes the resolver
// that carries out the card's effect.
type UseCard struct {
	Card    *game.Card
	Targets []int
}

// Kind implements Resolver.
func (r *UseCard) Kind() Kind { return KindUseCard }

// Resolve implements Resolver.
func (r *UseCard) Resolve(ctx *Context) (Result, error) {
	if res := ctx.Rules.CanUseCard(ctx.Game, ctx.Actor, r.Card); !res.Allowed {
		code := ErrInvalidState
		if res.Reason == "rule.card.not-in-hand" || res.Reason == "rule.card.missing" {
			code = ErrCardNotFound
		}
		return Failure(code, res.Reason), nil
	}

	action := rules.Action{
		Kind:    actionKindFor(r.Card),
		Actor:   ctx.Actor,
		Card:    r.Card,
		Targets: r.Targets,
	}
	if res := ctx.Rules.ValidateAction(ctx.Game, action); !res.Allowed {
		code := ErrInvalidTarget
		if res.Reason == "rule.attack.target-dead" || res.Reason == "rule.heal.target-dead" {
			code = ErrTargetNotAlive
		}
		return Failure(code, res.Reason), nil
	}

	dest := game.DiscardZone()
	if r.Card.Kind == game.KindEquipment {
		dest = game.EquipmentZone(ctx.Actor)
	}
	if err := ctx.Mover.Move([]*game.Card{r.Card}, game.HandZone(ctx.Actor), dest, game.OrderToBottom); err != nil {
		return Result{}, err
	}
	ctx.Game.NoteCardUse(ctx.Actor, r.Card.Kind)

	used := rules.NewEvent(rules.EventCardUsed, ctx.Actor, firstTarget(r.Targets))
	used.CardID = r.Card.ID
	ctx.Publish(used)
	ctx.Log().Info("card used",
		zap.Int("actor", ctx.Actor),
		zap.String("card", r.Card.String()),
		zap.Ints("targets", r.Targets),
	)

	next := ctx.WithAction(&action)
	switch r.Card.Kind {
	case game.KindAttack:
		ctx.Stack.Push(&Attack{Card: r.Card, Target: r.Targets[0]}, next)
	case game.KindHeal:
		target := ctx.Actor
		if len(r.Targets) == 1 {
			target = r.Targets[0]
		}
		ctx.Stack.Push(&Heal{Card: r.Card, Target: target}, next)
	}
	return Success(), nil
}

func actionKindFor(card *game.Card) rules.ActionKind {
	switch card.Kind {
	case game.KindAttack:
		return rules.ActionAttack
	case game.KindHeal:
		return rules.ActionHeal
	case game.KindEquipment:
		return rules.ActionEquip
	default:
		return rules.ActionKind(card.Kind)
	}
}

func firstTarget(targets []int) int {
	if len(targets) > 0 {
		return targets[0]
	}
	return -1
}
