package game

import (
	"math/rand"

	"github.com/google/uuid"
)

// StandardDeck builds the base card pool: attacks, dodges and heals
// spread across the four suits. Every call produces fresh card IDs.
func StandardDeck() []*Card {
	var deck []*Card
	add := func(name string, kind CardKind, suit Suit, ranks ...int) {
		for _, rank := range ranks {
			deck = append(deck, &Card{
				ID:   uuid.New().String(),
				Name: name,
				Suit: suit,
				Rank: rank,
				Kind: kind,
			})
		}
	}

	add("Strike", KindAttack, SuitSpade, 4, 7, 8, 9, 10)
	add("Strike", KindAttack, SuitClub, 2, 3, 5, 8, 11)
	add("Strike", KindAttack, SuitHeart, 10, 12)
	add("Strike", KindAttack, SuitDiamond, 6, 13)
	add("Evade", KindDodge, SuitHeart, 2, 4, 8, 13)
	add("Evade", KindDodge, SuitDiamond, 2, 3, 7, 9, 11)
	add("Elixir", KindHeal, SuitHeart, 3, 6, 9)
	add("Elixir", KindHeal, SuitDiamond, 12)

	return deck
}

// Shuffle permutes cards in place using the given source.
func Shuffle(cards []*Card, rng *rand.Rand) {
	rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
}
