package abilities

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub007/internal/game"
	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub007/internal/game/resolve"
	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub007/internal/game/rules"
)

// EightTrigramsPriority orders the armor's dodge provider before the
// manual dodge card.
const EightTrigramsPriority = 10

// EightTrigrams is an armor that may satisfy an evade requirement with a
// judgement draw instead of a card: a red judgement counts as a dodge.
// The provider defers: the judgement runs as its own pushed frame, and
// on a black result the manual dodge window is offered as a fallback
// within the same deferred chain.
type EightTrigrams struct {
	Base
}

// NewEightTrigrams creates the armor ability for the owner seat.
func NewEightTrigrams(owner int) *EightTrigrams {
	return &EightTrigrams{Base: NewBase("eight-trigrams", owner)}
}

// Attach implements Ability. The armor acts through its dodge provider,
// queried live; it subscribes to nothing.
func (a *EightTrigrams) Attach(g *game.Game, bus *rules.EventBus) {}

// DodgeProvider implements DodgeProviderSource.
func (a *EightTrigrams) DodgeProvider() resolve.DodgeProvider {
	return &eightTrigramsProvider{owner: a.Owner()}
}

type eightTrigramsProvider struct {
	owner int
}

func (p *eightTrigramsProvider) Name() string { return "eight-trigrams" }

func (p *eightTrigramsProvider) Priority() int { return EightTrigramsPriority }

// Provide asks the owner whether to activate the armor; on activation it
// locks out lower-priority providers for this invocation and defers to a
// judgement frame.
func (p *eightTrigramsProvider) Provide(req *resolve.DodgeRequest, ctx *resolve.Context) error {
	if ctx.Request != nil {
		res, err := ctx.Request(resolve.ChoiceRequest{
			ID:          uuid.NewString(),
			Seat:        p.owner,
			Kind:        resolve.ChoiceConfirm,
			PassAllowed: true,
			Prompt:      "ability.eight-trigrams.activate",
		})
		if err != nil {
			// The armor fails to coordinate its own activation: it simply
			// does not activate.
			ctx.Log().Warn("eight trigrams activation choice failed",
				zap.Int("owner", p.owner),
				zap.Error(err),
			)
			return nil
		}
		if res.Confirmation != resolve.Confirmed {
			return nil
		}
	}

	req.HighPriorityActivated = true
	ctx.Stack.Push(&trigramsJudgement{request: req, owner: p.owner}, ctx.WithActor(p.owner))
	return nil
}

// trigramsJudgement is the deferred half of the armor's provider: it
// performs the judgement and completes the shared request, falling back
// to the manual dodge window when the judgement misses or cannot run.
type trigramsJudgement struct {
	request *resolve.DodgeRequest
	owner   int
}

func (r *trigramsJudgement) Kind() resolve.Kind { return resolve.KindJudgement }

func (r *trigramsJudgement) Resolve(ctx *resolve.Context) (resolve.Result, error) {
	if ctx.Judgement == nil {
		return resolve.Failure(resolve.ErrInvalidState, "judgement.service.missing"), nil
	}
	j, err := ctx.Judgement.Perform(ctx.Game, r.owner, "eight-trigrams", func(c *game.Card) bool {
		return c.Suit.IsRed()
	})
	if err != nil {
		// The armor could not complete its judgement; it does not
		// activate, and the owner keeps the manual dodge.
		ctx.Log().Warn("eight trigrams judgement failed",
			zap.Int("owner", r.owner),
			zap.Error(err),
		)
		return resolve.Success(), r.fallback(ctx)
	}
	if j.Success {
		r.request.Resolved = true
		r.request.ProvidedBy = "eight-trigrams"
		r.request.ProvidedCard = j.Card.ID
		ctx.Log().Info("eight trigrams dodge",
			zap.Int("owner", r.owner),
			zap.String("judgement_card", j.Card.String()),
		)
		return resolve.Success(), nil
	}
	return resolve.Success(), r.fallback(ctx)
}

func (r *trigramsJudgement) fallback(ctx *resolve.Context) error {
	return resolve.NewManualDodgeProvider(resolve.ManualDodgePriority).Provide(r.request, ctx)
}

// NiohShield is an armor that nullifies black-suited attacks against the
// owner before any evade requirement opens.
type NiohShield struct {
	Base
}

// NewNiohShield creates the armor ability for the owner seat.
func NewNiohShield(owner int) *NiohShield {
	return &NiohShield{Base: NewBase("nioh-shield", owner)}
}

// Attach implements Ability.
func (a *NiohShield) Attach(g *game.Game, bus *rules.EventBus) {
	a.SubscribeTyped(bus, rules.EventAttackDeclared, func(ev *rules.Event) {
		if ev.Target != a.Owner() || ev.Prevented {
			return
		}
		owner := g.Player(a.Owner())
		if owner == nil || !owner.Alive {
			return
		}
		card, _, ok := g.FindCard(ev.CardID)
		if !ok || !card.Suit.IsBlack() {
			return
		}
		ev.Prevented = true
		ev.Metadata["nullified_by"] = a.Name()
	})
}
