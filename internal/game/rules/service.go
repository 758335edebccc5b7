package rules

import (
	"go.uber.org/zap"

	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub007/internal/game"
)

// Config carries the base rule values before any modifier applies.
type Config struct {
	BaseDrawCount      int
	BaseAttackRange    int
	AttackLimitPerTurn int
}

// DefaultConfig returns the standard base values.
func DefaultConfig() Config {
	return Config{
		BaseDrawCount:      2,
		BaseAttackRange:    1,
		AttackLimitPerTurn: 1,
	}
}

// Service answers rule questions for resolvers: which actions are
// available, whether an action is valid, and which cards qualify as a
// response. The modifier aggregator is one of its internal stages;
// resolvers never consult modifiers directly.
type Service struct {
	agg    *Aggregator
	cfg    Config
	logger *zap.Logger
}

// NewService creates a rule service over the given modifier source.
func NewService(source ModifierSource, cfg Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		agg:    NewAggregator(source, logger),
		cfg:    cfg,
		logger: logger,
	}
}

// CanUseCard reports whether the seat may use the card right now.
func (s *Service) CanUseCard(g *game.Game, seat int, card *game.Card) RuleResult {
	base := Allow()
	p := g.Player(seat)
	switch {
	case card == nil:
		base = Deny("rule.card.missing")
	case p == nil || !p.Alive:
		base = Deny("rule.actor.dead")
	case !g.ZoneContains(game.HandZone(seat), card.ID):
		base = Deny("rule.card.not-in-hand")
	}
	return s.agg.CanUseCard(g, seat, card, base)
}

// ValidateAction checks a proposed action immediately before it resolves.
func (s *Service) ValidateAction(g *game.Game, action Action) RuleResult {
	base := s.validateBase(g, action)
	return s.agg.ValidateAction(g, action, base)
}

func (s *Service) validateBase(g *game.Game, action Action) RuleResult {
	switch action.Kind {
	case ActionAttack:
		if len(action.Targets) != 1 {
			return Deny("rule.attack.target-count")
		}
		target := g.Player(action.Targets[0])
		if target == nil {
			return Deny("rule.attack.target-unknown")
		}
		if !target.Alive {
			return Deny("rule.attack.target-dead")
		}
		if action.Targets[0] == action.Actor {
			return Deny("rule.attack.self")
		}
		limit := s.MaxUsesPerTurn(g, action.Actor, game.KindAttack)
		if limit >= 0 && g.CardUsesThisTurn(action.Actor, game.KindAttack) >= limit {
			return Deny("rule.attack.limit-reached")
		}
		if s.SeatDistance(g, action.Actor, action.Targets[0]) > s.AttackRange(g, action.Actor) {
			return Deny("rule.attack.out-of-range")
		}
		return Allow()
	case ActionHeal:
		target := action.Actor
		if len(action.Targets) == 1 {
			target = action.Targets[0]
		}
		p := g.Player(target)
		if p == nil || !p.Alive {
			return Deny("rule.heal.target-dead")
		}
		if !p.Wounded() {
			return Deny("rule.heal.target-unwounded")
		}
		return Allow()
	case ActionEquip:
		return Allow()
	default:
		return Deny("rule.action.unknown")
	}
}

// CanRespond reports whether the card qualifies for the response kind
// when played by the seat.
func (s *Service) CanRespond(g *game.Game, seat int, card *game.Card, response ResponseKind) RuleResult {
	base := Allow()
	switch {
	case card == nil:
		base = Deny("rule.card.missing")
	case response == ResponseDodge && card.Kind != game.KindDodge:
		base = Deny("rule.respond.kind-mismatch")
	case response == ResponseRescue && card.Kind != game.KindHeal:
		base = Deny("rule.respond.kind-mismatch")
	}
	return s.agg.CanRespond(g, seat, card, response, base)
}

// LegalResponseCards returns the seat's hand cards that qualify for the
// response kind, in hand order.
func (s *Service) LegalResponseCards(g *game.Game, seat int, response ResponseKind) []*game.Card {
	var legal []*game.Card
	for _, card := range g.Cards(game.HandZone(seat)) {
		if s.CanRespond(g, seat, card, response).Allowed {
			legal = append(legal, card)
		}
	}
	return legal
}

// AvailableActions enumerates the actions the seat could legally take
// with its current hand.
func (s *Service) AvailableActions(g *game.Game, seat int) []Action {
	p := g.Player(seat)
	if p == nil || !p.Alive {
		return nil
	}
	var actions []Action
	for _, card := range g.Cards(game.HandZone(seat)) {
		switch card.Kind {
		case game.KindAttack:
			for _, target := range g.LivingSeats() {
				if target == seat {
					continue
				}
				a := Action{Kind: ActionAttack, Actor: seat, Card: card, Targets: []int{target}}
				if s.ValidateAction(g, a).Allowed {
					actions = append(actions, a)
				}
			}
		case game.KindHeal:
			a := Action{Kind: ActionHeal, Actor: seat, Card: card}
			if s.ValidateAction(g, a).Allowed {
				actions = append(actions, a)
			}
		}
	}
	return actions
}

// DrawCount returns the effective number of cards the seat draws in its
// draw phase.
func (s *Service) DrawCount(g *game.Game, seat int) int {
	return s.agg.DrawCount(g, seat, s.cfg.BaseDrawCount)
}

// AttackRange returns the seat's effective attack range.
func (s *Service) AttackRange(g *game.Game, seat int) int {
	return s.agg.AttackRange(g, seat, s.cfg.BaseAttackRange)
}

// SeatDistance returns the effective distance from one seat to another.
func (s *Service) SeatDistance(g *game.Game, from, to int) int {
	return s.agg.SeatDistance(g, from, to)
}

// MaxUsesPerTurn returns the effective per-turn limit for a card kind.
// A negative value means unlimited.
func (s *Service) MaxUsesPerTurn(g *game.Game, seat int, kind game.CardKind) int {
	base := -1
	if kind == game.KindAttack {
		base = s.cfg.AttackLimitPerTurn
	}
	return s.agg.MaxUsesPerTurn(g, seat, kind, base)
}
