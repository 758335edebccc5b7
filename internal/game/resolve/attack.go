package resolve

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub007/internal/game"
	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub007/internal/game/rules"
)

// Attack resolves a declared attack in two frames sharing one kind tag:
// the declaration builds the evade requirement and pushes it, and the
// outcome frame pushed beneath it reads the arbitration result from
// the session once the requirement has been tried, pushing the damage
// resolver when the defender failed to evade.
type Attack struct {
	Card   *game.Card
	Target int
}

// Kind implements Resolver.
func (r *Attack) Kind() Kind { return KindAttack }

// Resolve implements Resolver.
func (r *Attack) Resolve(ctx *Context) (Result, error) {
	target := ctx.Game.Player(r.Target)
	if target == nil {
		return Failure(ErrInvalidTarget, "attack.target.unknown"), nil
	}
	if !target.Alive {
		return Failure(ErrTargetNotAlive, "attack.target.dead"), nil
	}
	if ctx.Session == nil {
		// The outcome frame reads the evade result from the session;
		// running without one would lose the arbitration entirely.
		return Result{}, fmt.Errorf("attack: session missing from context")
	}

	declared := rules.NewEvent(rules.EventAttackDeclared, ctx.Actor, r.Target)
	if r.Card != nil {
		declared.CardID = r.Card.ID
	}
	ctx.Publish(declared)
	if declared.Prevented {
		ctx.Log().Info("attack nullified",
			zap.Int("attacker", ctx.Actor),
			zap.Int("target", r.Target),
			zap.String("card", r.Card.String()),
		)
		return Success(), nil
	}

	ctx.Stack.Push(&attackOutcome{attack: r, attacker: ctx.Actor}, *ctx)

	var providers []DodgeProvider
	if ctx.Abilities != nil {
		providers = ctx.Abilities.DodgeProviders(r.Target)
	}
	if len(providers) > 0 {
		req := &DodgeRequest{
			Defender: r.Target,
			Attacker: ctx.Actor,
			Source:   declared,
		}
		providers = append(providers, NewManualDodgeProvider(ManualDodgePriority))
		ctx.Stack.Push(&DodgeChain{Request: req, Providers: providers}, ctx.WithActor(r.Target))
	} else {
		ctx.Stack.Push(&ResponseWindow{
			Response:   rules.ResponseDodge,
			Responders: []int{r.Target},
			SourceSeat: ctx.Actor,
		}, ctx.WithActor(r.Target))
	}
	return Success(), nil
}

// ManualDodgePriority is the conventional priority of the manual dodge
// card, tried after every ability- and equipment-granted provider.
const ManualDodgePriority = 100

// attackOutcome reads the evade arbitration result and applies the
// consequence. It shares the "attack" kind tag: it is the second phase of
// the same logical step, not a separate pipeline stage.
type attackOutcome struct {
	attack   *Attack
	attacker int
}

func (r *attackOutcome) Kind() Kind { return KindAttack }

func (r *attackOutcome) Resolve(ctx *Context) (Result, error) {
	if ctx.Session == nil {
		return Result{}, fmt.Errorf("attack outcome: session missing from context")
	}

	evaded := false
	providedBy := ""
	if req, ok := Get(ctx.Session, KeyDodgeRequest); ok {
		evaded = req.Resolved
		providedBy = req.ProvidedBy
		Delete(ctx.Session, KeyDodgeRequest)
	} else if outcome, ok := Get(ctx.Session, KeyResponseOutcome); ok {
		evaded = outcome.Kind == ResponseSuccessful
		providedBy = "dodge-card"
	} else {
		return Failure(ErrInvalidState, "attack.evade-outcome.missing"), nil
	}
	Delete(ctx.Session, KeyResponseOutcome)

	resolved := rules.NewEvent(rules.EventDodgeResolved, r.attack.Target, r.attacker)
	resolved.Prevented = evaded
	if providedBy != "" {
		resolved.Metadata["provided_by"] = providedBy
	}
	ctx.Publish(resolved)

	if evaded {
		ctx.Log().Info("attack evaded",
			zap.Int("attacker", r.attacker),
			zap.Int("defender", r.attack.Target),
			zap.String("provided_by", providedBy),
		)
		return Success(), nil
	}

	spec := &DamageSpec{
		Source:        r.attacker,
		Target:        r.attack.Target,
		Amount:        1,
		Kind:          DamageNormal,
		Reason:        "attack",
		Card:          r.attack.Card,
		Preventable:   true,
		RedirectTo:    -1,
		TriggersDying: true,
	}
	ctx.Stack.Push(&Damage{}, ctx.WithActor(r.attacker).WithDamage(spec))
	return Success(), nil
}
