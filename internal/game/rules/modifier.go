package rules

import (
	"go.uber.org/zap"

	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub007/internal/game"
)

// Query identifies one numeric or boolean rule question that abilities may
// modify.
type Query string

const (
	QueryCanUseCard     Query = "CAN_USE_CARD"
	QueryCanRespond     Query = "CAN_RESPOND"
	QueryValidateAction Query = "VALIDATE_ACTION"
	QueryMaxUsesPerTurn Query = "MAX_USES_PER_TURN"
	QueryAttackRange    Query = "ATTACK_RANGE"
	QuerySeatDistance   Query = "SEAT_DISTANCE"
	QueryDrawCount      Query = "DRAW_COUNT"
)

// CombinePolicy declares how several modifier opinions on the same query
// are combined. The policy is a property of the query kind, not a
// convention each modifier has to honor on its own.
type CombinePolicy int

const (
	// PolicyOverride keeps the last non-abstaining value.
	PolicyOverride CombinePolicy = iota
	// PolicyAdditive folds each non-abstaining delta into the running value.
	PolicyAdditive
)

// Policy returns the declared combine policy for the query.
func (q Query) Policy() CombinePolicy {
	switch q {
	case QuerySeatDistance, QueryDrawCount:
		return PolicyAdditive
	default:
		return PolicyOverride
	}
}

// RuleResult is the outcome of a boolean rule query: a base value computed
// from the game model first, then narrowed or overridden by modifiers.
type RuleResult struct {
	Allowed bool
	Reason  string
}

// Allow returns an allowing result.
func Allow() RuleResult { return RuleResult{Allowed: true} }

// Deny returns a denying result with a reason tag.
func Deny(reason string) RuleResult { return RuleResult{Allowed: false, Reason: reason} }

// ActionKind classifies a proposed top-level action.
type ActionKind string

const (
	ActionAttack ActionKind = "ATTACK"
	ActionHeal   ActionKind = "HEAL"
	ActionEquip  ActionKind = "EQUIP"
)

// Action describes one proposed card use before it resolves.
type Action struct {
	Kind    ActionKind
	Actor   int
	Card    *game.Card
	Targets []int
}

// ResponseKind names the reactive requirement a response window satisfies.
type ResponseKind string

const (
	// ResponseDodge asks for a card that evades an attack.
	ResponseDodge ResponseKind = "DODGE"
	// ResponseRescue asks for a card that saves a dying player.
	ResponseRescue ResponseKind = "RESCUE"
)

// Modifier is an ability's opinion on rule queries. Concrete modifiers
// implement one or more of the capability interfaces below; the
// aggregator discovers each capability by type assertion, so an ability
// that does not participate in a query costs nothing there.
type Modifier interface {
	// ModifierSource names the ability supplying the opinion, for logs.
	ModifierSource() string
}

// CanUseCardModifier overrides whether a seat may use a card at all.
type CanUseCardModifier interface {
	Modifier
	// ModifyCanUseCard returns a replacement result and true, or abstains
	// with false. The current running value is supplied.
	ModifyCanUseCard(g *game.Game, seat int, card *game.Card, current RuleResult) (RuleResult, bool)
}

// CanRespondModifier overrides whether a card qualifies as a response.
type CanRespondModifier interface {
	Modifier
	ModifyCanRespond(g *game.Game, seat int, card *game.Card, response ResponseKind, current RuleResult) (RuleResult, bool)
}

// ValidateActionModifier overrides the validation verdict of a proposed
// action.
type ValidateActionModifier interface {
	Modifier
	ModifyValidateAction(g *game.Game, action Action, current RuleResult) (RuleResult, bool)
}

// MaxUsesPerTurnModifier overrides the per-turn use limit for a card
// kind. A value below zero means unlimited.
type MaxUsesPerTurnModifier interface {
	Modifier
	ModifyMaxUsesPerTurn(g *game.Game, seat int, kind game.CardKind, current int) (int, bool)
}

// AttackRangeModifier overrides the seat's attack range.
type AttackRangeModifier interface {
	Modifier
	ModifyAttackRange(g *game.Game, seat int, current int) (int, bool)
}

// SeatDistanceModifier contributes an additive delta to the distance from
// one seat to another.
type SeatDistanceModifier interface {
	Modifier
	ModifySeatDistance(g *game.Game, from, to int, current int) (delta int, applied bool)
}

// DrawCountModifier contributes an additive delta to a seat's draw count.
type DrawCountModifier interface {
	Modifier
	ModifyDrawCount(g *game.Game, seat int, current int) (delta int, applied bool)
}

// ModifierSource supplies the currently-active modifiers, in registration
// order. Implementations filter to eligible abilities (living owners) at
// query time; the aggregator never caches the list.
type ModifierSource interface {
	ActiveModifiers() []Modifier
}

// Aggregator computes effective rule values by folding every active
// modifier's opinion over a base value. Override queries keep the last
// non-abstaining value; additive queries fold deltas into the running
// value, so each modifier sees the already-modified total.
type Aggregator struct {
	source ModifierSource
	logger *zap.Logger
}

// NewAggregator creates an aggregator over the given modifier source.
func NewAggregator(source ModifierSource, logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{source: source, logger: logger}
}

func (a *Aggregator) modifiers() []Modifier {
	if a.source == nil {
		return nil
	}
	return a.source.ActiveModifiers()
}

// foldResult combines verdict opinions. Every boolean query declares
// PolicyOverride: the last non-abstaining verdict wins.
func (a *Aggregator) foldResult(q Query, base RuleResult, step func(Modifier, RuleResult) (RuleResult, bool)) RuleResult {
	current := base
	for _, m := range a.modifiers() {
		if v, applied := step(m, current); applied {
			a.logOverride(q, m)
			current = v
		}
	}
	return current
}

// CanUseCard folds can-use-card overrides over the base result.
func (a *Aggregator) CanUseCard(g *game.Game, seat int, card *game.Card, base RuleResult) RuleResult {
	return a.foldResult(QueryCanUseCard, base, func(m Modifier, current RuleResult) (RuleResult, bool) {
		cm, ok := m.(CanUseCardModifier)
		if !ok {
			return RuleResult{}, false
		}
		return cm.ModifyCanUseCard(g, seat, card, current)
	})
}

// CanRespond folds can-respond overrides over the base result.
func (a *Aggregator) CanRespond(g *game.Game, seat int, card *game.Card, response ResponseKind, base RuleResult) RuleResult {
	return a.foldResult(QueryCanRespond, base, func(m Modifier, current RuleResult) (RuleResult, bool) {
		cm, ok := m.(CanRespondModifier)
		if !ok {
			return RuleResult{}, false
		}
		return cm.ModifyCanRespond(g, seat, card, response, current)
	})
}

// ValidateAction folds validation overrides over the base verdict.
func (a *Aggregator) ValidateAction(g *game.Game, action Action, base RuleResult) RuleResult {
	return a.foldResult(QueryValidateAction, base, func(m Modifier, current RuleResult) (RuleResult, bool) {
		vm, ok := m.(ValidateActionModifier)
		if !ok {
			return RuleResult{}, false
		}
		return vm.ModifyValidateAction(g, action, current)
	})
}

// foldInt combines modifier opinions on a numeric query according to the
// query's declared policy: override replaces the running value with the
// returned one, additive adds the returned delta to it. The step function
// receives the running value and abstains by returning false.
func (a *Aggregator) foldInt(q Query, base int, step func(Modifier, int) (int, bool)) int {
	current := base
	additive := q.Policy() == PolicyAdditive
	for _, m := range a.modifiers() {
		v, applied := step(m, current)
		if !applied {
			continue
		}
		a.logOverride(q, m)
		if additive {
			current += v
		} else {
			current = v
		}
	}
	return current
}

// MaxUsesPerTurn folds use-limit overrides over the base limit.
func (a *Aggregator) MaxUsesPerTurn(g *game.Game, seat int, kind game.CardKind, base int) int {
	return a.foldInt(QueryMaxUsesPerTurn, base, func(m Modifier, current int) (int, bool) {
		um, ok := m.(MaxUsesPerTurnModifier)
		if !ok {
			return 0, false
		}
		return um.ModifyMaxUsesPerTurn(g, seat, kind, current)
	})
}

// AttackRange folds attack-range overrides over the base range.
func (a *Aggregator) AttackRange(g *game.Game, seat int, base int) int {
	return a.foldInt(QueryAttackRange, base, func(m Modifier, current int) (int, bool) {
		rm, ok := m.(AttackRangeModifier)
		if !ok {
			return 0, false
		}
		return rm.ModifyAttackRange(g, seat, current)
	})
}

// SeatDistance folds distance deltas over the base table distance.
// The result never drops below one between distinct seats.
func (a *Aggregator) SeatDistance(g *game.Game, from, to int) int {
	base := g.SeatDistance(from, to)
	if from == to {
		return base
	}
	current := a.foldInt(QuerySeatDistance, base, func(m Modifier, running int) (int, bool) {
		dm, ok := m.(SeatDistanceModifier)
		if !ok {
			return 0, false
		}
		return dm.ModifySeatDistance(g, from, to, running)
	})
	if current < 1 {
		current = 1
	}
	return current
}

// DrawCount folds draw-count deltas over the base count. The result is
// clamped at zero.
func (a *Aggregator) DrawCount(g *game.Game, seat int, base int) int {
	current := a.foldInt(QueryDrawCount, base, func(m Modifier, running int) (int, bool) {
		dm, ok := m.(DrawCountModifier)
		if !ok {
			return 0, false
		}
		return dm.ModifyDrawCount(g, seat, running)
	})
	if current < 0 {
		current = 0
	}
	return current
}

func (a *Aggregator) logOverride(q Query, m Modifier) {
	a.logger.Debug("rule value modified",
		zap.String("query", string(q)),
		zap.String("source", m.ModifierSource()),
	)
}
