package game

import (
	"fmt"

	"go.uber.org/zap"
)

// OrderPolicy controls where moved cards land in the target zone.
type OrderPolicy string

const (
	// OrderToTop places the moved cards at the top of the target zone,
	// keeping their relative order.
	OrderToTop OrderPolicy = "TO_TOP"
	// OrderToBottom places the moved cards at the bottom of the target zone.
	OrderToBottom OrderPolicy = "TO_BOTTOM"
	// OrderPreserve appends the cards keeping their relative order; for
	// piles this is equivalent to OrderToBottom but states intent.
	OrderPreserve OrderPolicy = "PRESERVE"
)

// CardMover is the card movement service. Every in-play transfer of cards
// between zones goes through it so the zone invariants hold: the source
// must contain each card and the target must not already hold it.
// Violations are structural faults, not recoverable results.
type CardMover struct {
	game   *Game
	logger *zap.Logger
}

// NewCardMover creates a mover bound to one game.
func NewCardMover(g *Game, logger *zap.Logger) *CardMover {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CardMover{game: g, logger: logger}
}

// Move transfers the given cards from one zone to another under an
// ordering policy. It fails as a hard fault if any card is missing from
// the source or already present in the target.
func (m *CardMover) Move(cards []*Card, from, to Zone, policy OrderPolicy) error {
	if len(cards) == 0 {
		return nil
	}
	if from == to {
		return fmt.Errorf("move cards: source and target are both %s", from)
	}
	for _, c := range cards {
		if c == nil {
			return fmt.Errorf("move cards: nil card")
		}
		if !m.game.ZoneContains(from, c.ID) {
			return fmt.Errorf("move cards: %s does not contain card %s", from, c.ID)
		}
		if m.game.ZoneContains(to, c.ID) {
			return fmt.Errorf("move cards: card %s already present in %s", c.ID, to)
		}
	}

	moving := make(map[string]bool, len(cards))
	for _, c := range cards {
		moving[c.ID] = true
	}
	src := m.game.zones[from]
	remaining := src[:0]
	for _, c := range src {
		if !moving[c.ID] {
			remaining = append(remaining, c)
		}
	}
	m.game.zones[from] = remaining

	switch policy {
	case OrderToTop:
		m.game.zones[to] = append(append([]*Card{}, cards...), m.game.zones[to]...)
	default:
		m.game.zones[to] = append(m.game.zones[to], cards...)
	}

	m.logger.Debug("cards moved",
		zap.Int("count", len(cards)),
		zap.String("from", from.String()),
		zap.String("to", to.String()),
		zap.String("policy", string(policy)),
	)
	return nil
}

// Draw moves up to n cards from the top of the deck into the seat's hand
// and returns them. When the deck runs dry the discard pile is recycled
// underneath it, preserving order, so a draw only fails when both piles
// are empty.
func (m *CardMover) Draw(seat int, n int) ([]*Card, error) {
	if n <= 0 {
		return nil, nil
	}
	drawn := make([]*Card, 0, n)
	for i := 0; i < n; i++ {
		if len(m.game.zones[DeckZone()]) == 0 {
			if err := m.recycleDiscard(); err != nil {
				return drawn, err
			}
		}
		deck := m.game.zones[DeckZone()]
		top := deck[0]
		if err := m.Move([]*Card{top}, DeckZone(), HandZone(seat), OrderToBottom); err != nil {
			return drawn, err
		}
		drawn = append(drawn, top)
	}
	m.logger.Debug("cards drawn", zap.Int("seat", seat), zap.Int("count", len(drawn)))
	return drawn, nil
}

// DiscardFromHand moves the given cards from the seat's hand to the
// discard pile.
func (m *CardMover) DiscardFromHand(seat int, cards []*Card) error {
	return m.Move(cards, HandZone(seat), DiscardZone(), OrderToBottom)
}

func (m *CardMover) recycleDiscard() error {
	discard := m.game.Cards(DiscardZone())
	if len(discard) == 0 {
		return fmt.Errorf("draw: deck and discard pile both empty")
	}
	if err := m.Move(discard, DiscardZone(), DeckZone(), OrderPreserve); err != nil {
		return err
	}
	m.logger.Debug("discard pile recycled into deck", zap.Int("count", len(discard)))
	return nil
}
