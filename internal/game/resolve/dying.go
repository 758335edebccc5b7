package resolve

import (
	"fmt"

	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub007/internal/game/rules"
)

// DyingRescue gives every living seat, in seat order starting from the
// dying player, one chance to play a rescue card. Like Attack it resolves
// in two frames under one kind tag: the first opens the response window,
// the second reads its outcome and either restores the player to one
// health or confirms the death.
type DyingRescue struct {
	Seat      int
	CauseSeat int
}

// Kind implements Resolver.
func (r *DyingRescue) Kind() Kind { return KindDyingRescue }

// Resolve implements Resolver.
func (r *DyingRescue) Resolve(ctx *Context) (Result, error) {
	if ctx.Session == nil {
		return Result{}, fmt.Errorf("dying rescue: session missing from context")
	}
	p := ctx.Game.Player(r.Seat)
	if p == nil {
		return Failure(ErrInvalidTarget, "rescue.target.unknown"), nil
	}
	if p.Health > 0 {
		// Already rescued by an earlier effect in the chain.
		return Success(), nil
	}

	responders := rescueOrder(ctx, r.Seat)
	ctx.Stack.Push(&rescueOutcome{rescue: r}, *ctx)
	ctx.Stack.Push(&ResponseWindow{
		Response:   rules.ResponseRescue,
		Responders: responders,
		SourceSeat: r.CauseSeat,
	}, *ctx)
	return Success(), nil
}

// rescueOrder lists living seats starting from the dying seat and
// walking the table in seat order.
func rescueOrder(ctx *Context, from int) []int {
	living := ctx.Game.LivingSeats()
	var before, after []int
	for _, s := range living {
		if s >= from {
			after = append(after, s)
		} else {
			before = append(before, s)
		}
	}
	return append(after, before...)
}

type rescueOutcome struct {
	rescue *DyingRescue
}

func (r *rescueOutcome) Kind() Kind { return KindDyingRescue }

func (r *rescueOutcome) Resolve(ctx *Context) (Result, error) {
	if ctx.Session == nil {
		return Result{}, fmt.Errorf("rescue outcome: session missing from context")
	}
	p := ctx.Game.Player(r.rescue.Seat)
	if p == nil {
		return Failure(ErrInvalidTarget, "rescue.target.unknown"), nil
	}

	outcome, ok := Get(ctx.Session, KeyResponseOutcome)
	if !ok {
		return Failure(ErrInvalidState, "rescue.window-outcome.missing"), nil
	}
	Delete(ctx.Session, KeyResponseOutcome)

	if outcome.Kind == ResponseSuccessful {
		p.Health = 1
		ev := rules.NewEvent(rules.EventHealApplied, outcome.Responder, p.Seat)
		ev.Amount = 1
		ev.CardID = outcome.CardID
		ev.Reason = "rescue"
		ctx.Publish(ev)
		return Success(), nil
	}

	killPlayer(ctx, p, r.rescue.CauseSeat)
	return Success(), nil
}
