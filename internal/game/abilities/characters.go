package abilities

import (
	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub007/internal/game"
	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub007/internal/game/rules"
)

// Horsemanship shortens the owner's distance to every other seat by one.
type Horsemanship struct {
	Base
}

// NewHorsemanship creates the ability for the owner seat.
func NewHorsemanship(owner int) *Horsemanship {
	return &Horsemanship{Base: NewBase("horsemanship", owner)}
}

// Attach implements Ability. Horsemanship is a pure rule modifier and
// subscribes to nothing.
func (a *Horsemanship) Attach(g *game.Game, bus *rules.EventBus) {}

// ModifySeatDistance implements rules.SeatDistanceModifier.
func (a *Horsemanship) ModifySeatDistance(g *game.Game, from, to int, current int) (int, bool) {
	if from != a.Owner() {
		return 0, false
	}
	return -1, true
}

// HeroicPoise grants one extra card in the owner's draw phase.
type HeroicPoise struct {
	Base
}

// NewHeroicPoise creates the ability for the owner seat.
func NewHeroicPoise(owner int) *HeroicPoise {
	return &HeroicPoise{Base: NewBase("heroic-poise", owner)}
}

// Attach implements Ability.
func (a *HeroicPoise) Attach(g *game.Game, bus *rules.EventBus) {}

// ModifyDrawCount implements rules.DrawCountModifier.
func (a *HeroicPoise) ModifyDrawCount(g *game.Game, seat int, current int) (int, bool) {
	if seat != a.Owner() {
		return 0, false
	}
	return 1, true
}

// Roar removes the owner's per-turn attack limit.
type Roar struct {
	Base
}

// NewRoar creates the ability for the owner seat.
func NewRoar(owner int) *Roar {
	return &Roar{Base: NewBase("roar", owner)}
}

// Attach implements Ability.
func (a *Roar) Attach(g *game.Game, bus *rules.EventBus) {}

// ModifyMaxUsesPerTurn implements rules.MaxUsesPerTurnModifier.
func (a *Roar) ModifyMaxUsesPerTurn(g *game.Game, seat int, kind game.CardKind, current int) (int, bool) {
	if seat != a.Owner() || kind != game.KindAttack {
		return 0, false
	}
	return -1, true
}

// EmptyCity forbids attacking the owner while the owner's hand is empty.
type EmptyCity struct {
	Base
}

// NewEmptyCity creates the ability for the owner seat.
func NewEmptyCity(owner int) *EmptyCity {
	return &EmptyCity{Base: NewBase("empty-city", owner)}
}

// Attach implements Ability.
func (a *EmptyCity) Attach(g *game.Game, bus *rules.EventBus) {}

// ModifyValidateAction implements rules.ValidateActionModifier.
func (a *EmptyCity) ModifyValidateAction(g *game.Game, action rules.Action, current rules.RuleResult) (rules.RuleResult, bool) {
	if action.Kind != rules.ActionAttack {
		return rules.RuleResult{}, false
	}
	targeted := false
	for _, t := range action.Targets {
		if t == a.Owner() {
			targeted = true
		}
	}
	if !targeted {
		return rules.RuleResult{}, false
	}
	if len(g.Cards(game.HandZone(a.Owner()))) > 0 {
		return rules.RuleResult{}, false
	}
	return rules.Deny("ability.empty-city"), true
}
