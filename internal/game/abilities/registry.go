package abilities

import (
	"go.uber.org/zap"

	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub007/internal/game"
	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub007/internal/game/resolve"
	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub007/internal/game/rules"
)

// DodgeProviderSource is implemented by abilities that grant a way to
// satisfy an evade requirement.
type DodgeProviderSource interface {
	DodgeProvider() resolve.DodgeProvider
}

// Registry owns the granted ability instances of one game. It is the
// live ability-query service: the modifier aggregator and the resolution
// layer ask it on every evaluation, and eligibility (the owner must be
// alive) is filtered at query time, never cached.
//
// Registry implements rules.ModifierSource and resolve.AbilityQuery.
type Registry struct {
	game      *game.Game
	bus       *rules.EventBus
	logger    *zap.Logger
	abilities []Ability // registration order
}

// NewRegistry creates an empty registry for one game.
func NewRegistry(g *game.Game, bus *rules.EventBus, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{game: g, bus: bus, logger: logger}
}

// Grant attaches the ability and adds it to the active set.
func (r *Registry) Grant(a Ability) {
	a.Attach(r.game, r.bus)
	r.abilities = append(r.abilities, a)
	r.logger.Debug("ability granted",
		zap.String("ability", a.Name()),
		zap.Int("owner", a.Owner()),
	)
}

// Revoke detaches and removes the named ability of the owner. It reports
// whether anything was removed.
func (r *Registry) Revoke(name string, owner int) bool {
	for i, a := range r.abilities {
		if a.Name() == name && a.Owner() == owner {
			a.Detach()
			r.abilities = append(r.abilities[:i], r.abilities[i+1:]...)
			r.logger.Debug("ability revoked",
				zap.String("ability", name),
				zap.Int("owner", owner),
			)
			return true
		}
	}
	return false
}

// Active returns the currently-eligible abilities of the seat.
func (r *Registry) Active(seat int) []Ability {
	var out []Ability
	for _, a := range r.abilities {
		if a.Owner() == seat && r.eligible(a) {
			out = append(out, a)
		}
	}
	return out
}

// ActiveModifiers implements rules.ModifierSource: every eligible
// ability, in registration order.
func (r *Registry) ActiveModifiers() []rules.Modifier {
	var out []rules.Modifier
	for _, a := range r.abilities {
		if !r.eligible(a) {
			continue
		}
		if m, ok := a.(rules.Modifier); ok {
			out = append(out, m)
		}
	}
	return out
}

// DodgeProviders implements resolve.AbilityQuery: the dodge providers
// granted to the defender by its eligible abilities, in registration
// order.
func (r *Registry) DodgeProviders(defender int) []resolve.DodgeProvider {
	var out []resolve.DodgeProvider
	for _, a := range r.abilities {
		if a.Owner() != defender || !r.eligible(a) {
			continue
		}
		if src, ok := a.(DodgeProviderSource); ok {
			out = append(out, src.DodgeProvider())
		}
	}
	return out
}

func (r *Registry) eligible(a Ability) bool {
	p := r.game.Player(a.Owner())
	return p != nil && p.Alive
}
