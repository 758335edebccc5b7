package abilities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub007/internal/game"
	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub007/internal/game/rules"
)

func newRuleService(reg *Registry) *rules.Service {
	return rules.NewService(reg, rules.DefaultConfig(), nil)
}

func TestHorsemanship_ShortensDistanceFromOwner(t *testing.T) {
	g, _, reg := newTestRegistry(t, 5)
	svc := newRuleService(reg)
	reg.Grant(NewHorsemanship(0))

	assert.Equal(t, 1, svc.SeatDistance(g, 0, 2), "base 2 shortened by one")
	assert.Equal(t, 2, svc.SeatDistance(g, 2, 0), "distance toward the owner is unchanged")
	assert.Equal(t, 1, svc.SeatDistance(g, 0, 1), "never below one")
}

func TestHeroicPoise_ExtraDraw(t *testing.T) {
	g, _, reg := newTestRegistry(t, 2)
	svc := newRuleService(reg)
	reg.Grant(NewHeroicPoise(0))

	assert.Equal(t, 3, svc.DrawCount(g, 0))
	assert.Equal(t, 2, svc.DrawCount(g, 1))
}

func TestHeroicPoise_DeltasStack(t *testing.T) {
	g, _, reg := newTestRegistry(t, 2)
	svc := newRuleService(reg)
	reg.Grant(NewHeroicPoise(0))
	reg.Grant(NewHeroicPoise(0))

	assert.Equal(t, 4, svc.DrawCount(g, 0))
}

func TestRoar_UnlimitedAttacks(t *testing.T) {
	g, _, reg := newTestRegistry(t, 2)
	svc := newRuleService(reg)
	reg.Grant(NewRoar(0))

	assert.Equal(t, -1, svc.MaxUsesPerTurn(g, 0, game.KindAttack))
	assert.Equal(t, 1, svc.MaxUsesPerTurn(g, 1, game.KindAttack))

	g.NoteCardUse(0, game.KindAttack)
	g.NoteCardUse(0, game.KindAttack)
	c := &game.Card{ID: "c1", Name: "Strike", Suit: game.SuitSpade, Rank: 7, Kind: game.KindAttack}
	action := rules.Action{Kind: rules.ActionAttack, Actor: 0, Card: c, Targets: []int{1}}
	assert.True(t, svc.ValidateAction(g, action).Allowed)
}

func TestEmptyCity_BlocksAttacksWhileHandEmpty(t *testing.T) {
	g, _, reg := newTestRegistry(t, 2)
	svc := newRuleService(reg)
	reg.Grant(NewEmptyCity(1))

	c := &game.Card{ID: "c1", Name: "Strike", Suit: game.SuitSpade, Rank: 7, Kind: game.KindAttack}
	action := rules.Action{Kind: rules.ActionAttack, Actor: 0, Card: c, Targets: []int{1}}

	res := svc.ValidateAction(g, action)
	require.False(t, res.Allowed)
	assert.Equal(t, "ability.empty-city", res.Reason)

	// Any hand card lifts the protection.
	g.AddCards(game.HandZone(1), &game.Card{ID: "h1", Name: "Evade", Suit: game.SuitHeart, Rank: 2, Kind: game.KindDodge})
	assert.True(t, svc.ValidateAction(g, action).Allowed)
}

func TestEmptyCity_IgnoresOtherTargets(t *testing.T) {
	g, _, reg := newTestRegistry(t, 3)
	svc := newRuleService(reg)
	reg.Grant(NewEmptyCity(1))

	c := &game.Card{ID: "c1", Name: "Strike", Suit: game.SuitSpade, Rank: 7, Kind: game.KindAttack}
	action := rules.Action{Kind: rules.ActionAttack, Actor: 0, Card: c, Targets: []int{2}}
	assert.True(t, svc.ValidateAction(g, action).Allowed)
}
