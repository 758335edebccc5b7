package resolve

import (
	"go.uber.org/zap"

	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub007/internal/game"
	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub007/internal/game/rules"
)

// AbilityQuery exposes the ability-granted response machinery resolvers
// need. Rule modifiers flow through the rule service instead; this is the
// narrow slice the resolution layer consumes directly.
type AbilityQuery interface {
	// DodgeProviders returns the dodge providers granted to the defender
	// by its currently-active abilities, in registration order.
	DodgeProviders(defender int) []DodgeProvider
}

// Context is the bundle a resolver needs. Contexts are copied by value
// when deriving (a nested effect may act on a different seat); the copies
// share the same stack, services, and session references, so writes to
// the session are visible across the whole chain.
type Context struct {
	Game      *game.Game
	Actor     int
	Action    *rules.Action
	Choice    *ChoiceResult
	Stack     *Stack
	Mover     *game.CardMover
	Rules     *rules.Service
	Abilities AbilityQuery
	Judgement *rules.JudgementService
	Bus       *rules.EventBus
	Damage    *DamageSpec
	Logger    *zap.Logger
	Request   ChoiceCallback
	Session   *Session
}

// WithActor derives a context acting as another seat.
func (c Context) WithActor(seat int) Context {
	c.Actor = seat
	return c
}

// WithAction derives a context carrying the triggering action.
func (c Context) WithAction(action *rules.Action) Context {
	c.Action = action
	return c
}

// WithDamage derives a context carrying a pending damage descriptor.
func (c Context) WithDamage(spec *DamageSpec) Context {
	c.Damage = spec
	return c
}

// Log returns the context logger, or a nop logger when none is set.
// Engine behavior is identical either way.
func (c *Context) Log() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

// Publish sends the event over the context bus when one is present.
func (c *Context) Publish(event *rules.Event) {
	if c.Bus != nil {
		c.Bus.Publish(event)
	}
}
