package abilities

import (
	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub007/internal/game"
	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub007/internal/game/rules"
)

// Ability is a character- or equipment-granted capability. An ability may
// modify rule outcomes (by implementing the capability interfaces in the
// rules package), react to events (by subscribing during Attach), and
// grant response providers (by implementing DodgeProviderSource).
//
// Attach is called once per ability-instance lifetime and subscribes to
// exactly the event kinds the ability handles. Detach is the symmetric
// unsubscription and must be safe to call even if Attach never ran, and
// safe to call twice.
type Ability interface {
	Name() string
	Owner() int
	Attach(g *game.Game, bus *rules.EventBus)
	Detach()
}

// Base carries the identity and subscription bookkeeping shared by every
// ability implementation.
type Base struct {
	name    string
	owner   int
	bus     *rules.EventBus
	handles []int
}

// NewBase creates the shared ability core.
func NewBase(name string, owner int) Base {
	return Base{name: name, owner: owner}
}

// Name returns the ability name.
func (b *Base) Name() string { return b.name }

// Owner returns the owning seat.
func (b *Base) Owner() int { return b.owner }

// ModifierSource implements rules.Modifier for every ability.
func (b *Base) ModifierSource() string { return b.name }

// SubscribeTyped registers an event handler and records the handle so
// Detach can release it.
func (b *Base) SubscribeTyped(bus *rules.EventBus, eventType rules.EventType, fn func(*rules.Event)) {
	if bus == nil {
		return
	}
	b.bus = bus
	b.handles = append(b.handles, bus.SubscribeTyped(eventType, fn))
}

// Detach releases every recorded subscription. Calling it without a prior
// Attach, or calling it twice, is a no-op.
func (b *Base) Detach() {
	if b.bus == nil {
		b.handles = nil
		return
	}
	for _, h := range b.handles {
		b.bus.Unsubscribe(h)
	}
	b.handles = nil
	b.bus = nil
}
