package game

import (
	"fmt"

	"github.com/google/uuid"
)

// ZoneKind identifies a class of card zone.
type ZoneKind string

const (
	// ZoneDeck is the shared face-down draw pile. Index 0 is the top.
	ZoneDeck ZoneKind = "DECK"
	// ZoneDiscard is the shared face-up discard pile.
	ZoneDiscard ZoneKind = "DISCARD"
	// ZoneProcessing holds cards mid-resolution (judgement reveals etc.).
	ZoneProcessing ZoneKind = "PROCESSING"
	// ZoneHand is a player's hand.
	ZoneHand ZoneKind = "HAND"
	// ZoneEquipment is a player's equipment area.
	ZoneEquipment ZoneKind = "EQUIPMENT"
)

// Zone addresses one concrete zone. Seat is -1 for shared zones.
type Zone struct {
	Kind ZoneKind
	Seat int
}

// DeckZone returns the shared deck zone.
func DeckZone() Zone { return Zone{Kind: ZoneDeck, Seat: -1} }

// DiscardZone returns the shared discard zone.
func DiscardZone() Zone { return Zone{Kind: ZoneDiscard, Seat: -1} }

// ProcessingZone returns the shared processing zone.
func ProcessingZone() Zone { return Zone{Kind: ZoneProcessing, Seat: -1} }

// HandZone returns the hand zone of the given seat.
func HandZone(seat int) Zone { return Zone{Kind: ZoneHand, Seat: seat} }

// EquipmentZone returns the equipment zone of the given seat.
func EquipmentZone(seat int) Zone { return Zone{Kind: ZoneEquipment, Seat: seat} }

func (z Zone) String() string {
	if z.Seat < 0 {
		return string(z.Kind)
	}
	return fmt.Sprintf("%s[%d]", z.Kind, z.Seat)
}

// Player is one seated participant.
type Player struct {
	Seat      int
	Name      string
	Health    int
	MaxHealth int
	Alive     bool
}

// Wounded reports whether the player is below maximum health.
func (p *Player) Wounded() bool {
	return p.Health < p.MaxHealth
}

// Game holds the shared game model: seated players and card zones.
// It exposes location and ownership queries plus the mutation primitives
// used by CardMover. All access is single-threaded by design; one
// top-level action fully resolves before the next begins.
type Game struct {
	ID       string
	players  []*Player
	zones    map[Zone][]*Card
	turnUses map[int]map[CardKind]int
}

// NewGame creates an empty game with a fresh ID.
func NewGame() *Game {
	return &Game{
		ID:       uuid.NewString(),
		zones:    make(map[Zone][]*Card),
		turnUses: make(map[int]map[CardKind]int),
	}
}

// AddPlayer seats a new player with the given name and starting health.
// Seats are assigned in join order.
func (g *Game) AddPlayer(name string, health int) *Player {
	p := &Player{
		Seat:      len(g.players),
		Name:      name,
		Health:    health,
		MaxHealth: health,
		Alive:     true,
	}
	g.players = append(g.players, p)
	return p
}

// Player returns the player at the given seat, or nil.
func (g *Game) Player(seat int) *Player {
	if seat < 0 || seat >= len(g.players) {
		return nil
	}
	return g.players[seat]
}

// Players returns all seated players in seat order.
func (g *Game) Players() []*Player {
	out := make([]*Player, len(g.players))
	copy(out, g.players)
	return out
}

// LivingSeats returns the seats of all living players in seat order.
func (g *Game) LivingSeats() []int {
	var seats []int
	for _, p := range g.players {
		if p.Alive {
			seats = append(seats, p.Seat)
		}
	}
	return seats
}

// SeatDistance returns the base table distance between two living seats:
// the smaller number of steps around the ring, counting only living
// players. Rule modifiers adjust this value downstream; the model only
// supplies the geometric base. Distance to self or to an unknown seat is 0.
func (g *Game) SeatDistance(from, to int) int {
	if from == to {
		return 0
	}
	living := g.LivingSeats()
	fromIdx, toIdx := -1, -1
	for i, s := range living {
		if s == from {
			fromIdx = i
		}
		if s == to {
			toIdx = i
		}
	}
	if fromIdx < 0 || toIdx < 0 {
		return 0
	}
	n := len(living)
	clockwise := (toIdx - fromIdx + n) % n
	counter := (fromIdx - toIdx + n) % n
	if counter < clockwise {
		return counter
	}
	return clockwise
}

// Cards returns a copy of the contents of a zone, in zone order.
func (g *Game) Cards(zone Zone) []*Card {
	src := g.zones[zone]
	out := make([]*Card, len(src))
	copy(out, src)
	return out
}

// ZoneContains reports whether the zone currently holds the card.
func (g *Game) ZoneContains(zone Zone, cardID string) bool {
	for _, c := range g.zones[zone] {
		if c.ID == cardID {
			return true
		}
	}
	return false
}

// FindCard locates a card by ID in any zone.
func (g *Game) FindCard(cardID string) (*Card, Zone, bool) {
	for zone, cards := range g.zones {
		for _, c := range cards {
			if c.ID == cardID {
				return c, zone, true
			}
		}
	}
	return nil, Zone{}, false
}

// AddCards places cards at the bottom of a zone. Intended for game setup;
// in-play movement goes through CardMover.
func (g *Game) AddCards(zone Zone, cards ...*Card) {
	g.zones[zone] = append(g.zones[zone], cards...)
}

// NoteCardUse records one use of a card kind by the seat this turn.
func (g *Game) NoteCardUse(seat int, kind CardKind) {
	uses, ok := g.turnUses[seat]
	if !ok {
		uses = make(map[CardKind]int)
		g.turnUses[seat] = uses
	}
	uses[kind]++
}

// CardUsesThisTurn returns how many times the seat used the card kind
// this turn.
func (g *Game) CardUsesThisTurn(seat int, kind CardKind) int {
	return g.turnUses[seat][kind]
}

// ResetTurnUses clears the per-turn use counters for a seat. The turn
// scheduler (an external collaborator) calls this at turn start.
func (g *Game) ResetTurnUses(seat int) {
	delete(g.turnUses, seat)
}
