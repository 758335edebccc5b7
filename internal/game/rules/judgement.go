package rules

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub007/internal/game"
)

// Judgement is the outcome of one judgement draw.
type Judgement struct {
	Card    *game.Card
	Success bool
}

// JudgementService draws a card and evaluates a success rule against it.
// The revealed card passes through the event bus before evaluation, so an
// ability may substitute it by rewriting the event's CardID to another
// card already in the processing zone.
type JudgementService struct {
	mover  *game.CardMover
	bus    *EventBus
	logger *zap.Logger
}

// NewJudgementService creates a judgement service.
func NewJudgementService(mover *game.CardMover, bus *EventBus, logger *zap.Logger) *JudgementService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JudgementService{mover: mover, bus: bus, logger: logger}
}

// Perform runs one judgement for the seat: reveal the top deck card into
// the processing zone, let abilities react, evaluate the verdict, then
// move the judged card to the discard pile.
func (s *JudgementService) Perform(g *game.Game, seat int, reason string, verdict func(*game.Card) bool) (Judgement, error) {
	if verdict == nil {
		return Judgement{}, fmt.Errorf("judgement: nil verdict for %q", reason)
	}

	deck := g.Cards(game.DeckZone())
	if len(deck) == 0 {
		discard := g.Cards(game.DiscardZone())
		if len(discard) == 0 {
			return Judgement{}, fmt.Errorf("judgement: deck and discard pile empty for %q", reason)
		}
		if err := s.mover.Move(discard, game.DiscardZone(), game.DeckZone(), game.OrderPreserve); err != nil {
			return Judgement{}, err
		}
		deck = g.Cards(game.DeckZone())
	}
	revealed := deck[0]
	if err := s.mover.Move([]*game.Card{revealed}, game.DeckZone(), game.ProcessingZone(), game.OrderToBottom); err != nil {
		return Judgement{}, err
	}

	var superseded *game.Card
	if s.bus != nil {
		started := NewEvent(EventJudgementStarted, seat, seat)
		started.Reason = reason
		s.bus.Publish(started)

		ev := NewEvent(EventJudgementRevealed, seat, seat)
		ev.CardID = revealed.ID
		ev.Reason = reason
		s.bus.Publish(ev)

		if ev.CardID != revealed.ID {
			// An ability substituted the judgement card.
			swapped, zone, ok := g.FindCard(ev.CardID)
			if ok && zone == game.ProcessingZone() {
				s.logger.Debug("judgement card substituted",
					zap.String("original", revealed.ID),
					zap.String("substitute", swapped.ID),
					zap.String("reason", reason),
				)
				superseded = revealed
				revealed = swapped
			}
		}
	}

	result := Judgement{Card: revealed, Success: verdict(revealed)}
	if err := s.mover.Move([]*game.Card{revealed}, game.ProcessingZone(), game.DiscardZone(), game.OrderToBottom); err != nil {
		return Judgement{}, err
	}
	if superseded != nil {
		// The replaced card must not stay stranded in the processing zone.
		if err := s.mover.Move([]*game.Card{superseded}, game.ProcessingZone(), game.DiscardZone(), game.OrderToBottom); err != nil {
			return Judgement{}, err
		}
	}

	s.logger.Debug("judgement performed",
		zap.Int("seat", seat),
		zap.String("reason", reason),
		zap.String("card", revealed.String()),
		zap.Bool("success", result.Success),
	)
	return result, nil
}
