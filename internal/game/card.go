package game

import "fmt"

// Suit is the suit of a playing card.
type Suit string

const (
	SuitSpade   Suit = "SPADE"
	SuitHeart   Suit = "HEART"
	SuitClub    Suit = "CLUB"
	SuitDiamond Suit = "DIAMOND"
)

// IsRed reports whether the suit is hearts or diamonds.
func (s Suit) IsRed() bool {
	return s == SuitHeart || s == SuitDiamond
}

// IsBlack reports whether the suit is spades or clubs.
func (s Suit) IsBlack() bool {
	return s == SuitSpade || s == SuitClub
}

// CardKind is the functional category of a card.
type CardKind string

const (
	// KindAttack is a basic attack card.
	KindAttack CardKind = "ATTACK"
	// KindDodge is a reactive card that evades an attack.
	KindDodge CardKind = "DODGE"
	// KindHeal restores one health to a wounded player.
	KindHeal CardKind = "HEAL"
	// KindEquipment is placed into a player's equipment zone.
	KindEquipment CardKind = "EQUIPMENT"
)

// Card is a single card instance. Cards are identified by ID; two instances
// of the same printing carry different IDs.
type Card struct {
	ID   string
	Name string
	Suit Suit
	Rank int
	Kind CardKind
}

// String returns a short human-readable description for logs.
func (c *Card) String() string {
	if c == nil {
		return "<nil card>"
	}
	return fmt.Sprintf("%s[%s-%d]", c.Name, c.Suit, c.Rank)
}
