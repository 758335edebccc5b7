package rules

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// EventType indicates the category of a rules event.
type EventType string

const (
	// Turn events
	EventTurnStarted EventType = "TURN_STARTED"

	// Card events
	EventCardUsed       EventType = "CARD_USED"
	EventCardsDrawn     EventType = "CARDS_DRAWN"
	EventCardsDiscarded EventType = "CARDS_DISCARDED"

	// Combat events
	EventAttackDeclared EventType = "ATTACK_DECLARED"
	EventDodgeResolved  EventType = "DODGE_RESOLVED"

	// Damage/life events
	EventDamageApplying EventType = "DAMAGE_APPLYING"
	EventDamageApplied  EventType = "DAMAGE_APPLIED"
	EventHealApplied    EventType = "HEAL_APPLIED"
	EventPlayerDying    EventType = "PLAYER_DYING"
	EventPlayerDied     EventType = "PLAYER_DIED"

	// Judgement events
	EventJudgementStarted  EventType = "JUDGEMENT_STARTED"
	EventJudgementRevealed EventType = "JUDGEMENT_REVEALED"
)

// Event represents a state change that abilities may react to. Events are
// published by pointer: a handler invoked during the publish may annotate
// the event (set Prevented, change Amount or RedirectTo, swap CardID) and
// the publisher observes the annotation when the publish returns.
type Event struct {
	Type       EventType
	ID         string
	Source     int // acting seat, -1 when not seat-driven
	Target     int // affected seat, -1 when none
	CardID     string
	Amount     int
	Prevented  bool // set by a handler to veto the event
	RedirectTo int  // seat to redirect to, -1 when unset
	Reason     string
	Timestamp  time.Time
	Metadata   map[string]string
}

// NewEvent creates an event with common fields populated.
func NewEvent(eventType EventType, source, target int) *Event {
	return &Event{
		Type:       eventType,
		ID:         uuid.NewString(),
		Source:     source,
		Target:     target,
		RedirectTo: -1,
		Timestamp:  time.Now(),
		Metadata:   make(map[string]string),
	}
}

// Listener reacts to every published event.
type Listener func(*Event)

// TypedListener reacts to a single event type.
type TypedListener struct {
	Handle    int
	EventType EventType
	Callback  func(*Event)
}

// maxPublishDepth bounds re-entrant publication. Publication is
// synchronous and re-entrant: a handler may itself publish. An ability
// that re-triggers itself without a guard would otherwise recurse without
// bound; exceeding the depth is a hard fault surfaced as a panic.
const maxPublishDepth = 32

// EventBus is a synchronous publish/subscribe hub with type filtering.
type EventBus struct {
	mu             sync.Mutex
	listeners      map[int]Listener
	typedListeners map[EventType][]TypedListener
	nextHandle     int
	depth          int
}

// NewEventBus constructs a fresh event bus.
func NewEventBus() *EventBus {
	return &EventBus{
		listeners:      make(map[int]Listener),
		typedListeners: make(map[EventType][]TypedListener),
	}
}

// Subscribe registers a listener for all events and returns a handle.
func (bus *EventBus) Subscribe(listener Listener) int {
	if listener == nil {
		return -1
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	handle := bus.nextHandle
	bus.nextHandle++
	bus.listeners[handle] = listener
	return handle
}

// SubscribeTyped registers a listener for a specific event type.
func (bus *EventBus) SubscribeTyped(eventType EventType, callback func(*Event)) int {
	if callback == nil {
		return -1
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	handle := bus.nextHandle
	bus.nextHandle++
	bus.typedListeners[eventType] = append(bus.typedListeners[eventType], TypedListener{
		Handle:    handle,
		EventType: eventType,
		Callback:  callback,
	})
	return handle
}

// Unsubscribe removes the listener identified by the handle, whether it
// was registered for all events or a single type. Unknown handles are
// ignored, so unsubscription is idempotent.
func (bus *EventBus) Unsubscribe(handle int) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	delete(bus.listeners, handle)
	for eventType, listeners := range bus.typedListeners {
		for i := len(listeners) - 1; i >= 0; i-- {
			if listeners[i].Handle == handle {
				bus.typedListeners[eventType] = append(listeners[:i], listeners[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers the event to all registered listeners synchronously.
// Handlers run on the caller's stack and may publish further events;
// exceeding maxPublishDepth panics rather than recursing silently.
func (bus *EventBus) Publish(event *Event) {
	if event == nil {
		return
	}
	bus.mu.Lock()
	if bus.depth >= maxPublishDepth {
		bus.mu.Unlock()
		panic(fmt.Sprintf("event bus: publish depth %d exceeded while publishing %s; an ability is re-triggering itself without a guard", maxPublishDepth, event.Type))
	}
	bus.depth++
	all := make([]Listener, 0, len(bus.listeners))
	for _, l := range bus.listeners {
		all = append(all, l)
	}
	typed := append([]TypedListener(nil), bus.typedListeners[event.Type]...)
	bus.mu.Unlock()

	defer func() {
		bus.mu.Lock()
		bus.depth--
		bus.mu.Unlock()
	}()

	for _, listener := range all {
		listener(event)
	}
	for _, listener := range typed {
		listener.Callback(event)
	}
}
