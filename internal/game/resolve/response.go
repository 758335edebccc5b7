package resolve

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub007/internal/game"
	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub007/internal/game/rules"
)

// ResponseOutcomeKind is the exhaustive set of window outcomes.
type ResponseOutcomeKind string

const (
	// ResponseNone means every responder passed or had nothing legal.
	ResponseNone ResponseOutcomeKind = "no-response"
	// ResponseSuccessful means the requirement was satisfied.
	ResponseSuccessful ResponseOutcomeKind = "response-success"
	// ResponseFailed means responding was attempted but fell short,
	// or the window could not be conducted.
	ResponseFailed ResponseOutcomeKind = "response-failed"
)

// ResponseOutcome names the result of one response window. When several
// responses were required, Responder and CardID describe the last
// acceptance.
type ResponseOutcome struct {
	Kind      ResponseOutcomeKind
	Responder int
	CardID    string
}

// ResponseWindow sequentially polls ordered candidate responders for a
// qualifying response card. Polling is strictly single-pass in list
// order; the first acceptance wins (or the first Required acceptances
// when more than one response is needed). The outcome, always exactly
// one of no-response, response-success, or response-failed, is written
// to the session for the resolver that pushed the window.
type ResponseWindow struct {
	Response   rules.ResponseKind
	Responders []int
	Required   int // defaults to 1
	SourceSeat int // seat that caused the window, -1 when none
}

// Kind implements Resolver.
func (r *ResponseWindow) Kind() Kind { return KindResponseWindow }

// Resolve implements Resolver. The session is a hard precondition: the
// window is pure coordination and its outcome is unreachable without one.
func (r *ResponseWindow) Resolve(ctx *Context) (Result, error) {
	if ctx.Session == nil {
		return Result{}, fmt.Errorf("response window: session missing from context")
	}
	required := r.Required
	if required <= 0 {
		required = 1
	}

	accepted := 0
	outcome := ResponseOutcome{Kind: ResponseNone, Responder: -1}
	for _, seat := range r.Responders {
		p := ctx.Game.Player(seat)
		if p == nil || !p.Alive {
			continue
		}
		legal := ctx.Rules.LegalResponseCards(ctx.Game, seat, r.Response)
		if len(legal) == 0 {
			continue
		}
		if ctx.Request == nil {
			// A decision is required and nothing can supply one.
			Put(ctx.Session, KeyResponseOutcome, ResponseOutcome{Kind: ResponseFailed, Responder: -1})
			return Failure(ErrInvalidState, "response.choice-callback.missing"), nil
		}

		card, ok := r.askForCard(ctx, seat, legal)
		if !ok {
			continue
		}
		if err := ctx.Mover.Move([]*game.Card{card}, game.HandZone(seat), game.DiscardZone(), game.OrderToBottom); err != nil {
			return Result{}, err
		}
		discarded := rules.NewEvent(rules.EventCardsDiscarded, seat, seat)
		discarded.CardID = card.ID
		discarded.Reason = string(r.Response)
		ctx.Publish(discarded)

		accepted++
		outcome = ResponseOutcome{Kind: ResponseSuccessful, Responder: seat, CardID: card.ID}
		ctx.Log().Info("response accepted",
			zap.String("response", string(r.Response)),
			zap.Int("responder", seat),
			zap.String("card", card.String()),
		)
		if accepted >= required {
			Put(ctx.Session, KeyResponseOutcome, outcome)
			return Success(), nil
		}
	}

	if accepted > 0 {
		// Some responses arrived but fewer than required.
		outcome = ResponseOutcome{Kind: ResponseFailed, Responder: outcome.Responder, CardID: outcome.CardID}
	}
	Put(ctx.Session, KeyResponseOutcome, outcome)
	ctx.Log().Debug("response window closed",
		zap.String("response", string(r.Response)),
		zap.String("outcome", string(outcome.Kind)),
	)
	return Success(), nil
}

// askForCard requests a choice from the seat. An empty selection or an
// illegal card id is treated as a pass, never a hard failure.
func (r *ResponseWindow) askForCard(ctx *Context, seat int, legal []*game.Card) (*game.Card, bool) {
	ids := make([]string, len(legal))
	byID := make(map[string]*game.Card, len(legal))
	for i, c := range legal {
		ids[i] = c.ID
		byID[c.ID] = c
	}
	req := ChoiceRequest{
		ID:           uuid.NewString(),
		Seat:         seat,
		Kind:         ChoicePlayCard,
		AllowedCards: ids,
		PassAllowed:  true,
		Prompt:       fmt.Sprintf("respond.%s", r.Response),
	}
	res, err := ctx.Request(req)
	if err != nil {
		ctx.Log().Warn("choice request failed, treating as pass",
			zap.Int("seat", seat),
			zap.Error(err),
		)
		return nil, false
	}
	if res.Confirmation == Passed || len(res.CardIDs) == 0 {
		return nil, false
	}
	card, ok := byID[res.CardIDs[0]]
	if !ok {
		ctx.Log().Warn("illegal response card selected, treating as pass",
			zap.Int("seat", seat),
			zap.String("card_id", res.CardIDs[0]),
		)
		return nil, false
	}
	return card, true
}
