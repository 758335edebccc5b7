package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub007/internal/game"
	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub007/internal/game/rules"
)

func TestUseCard_NotInHand(t *testing.T) {
	env := newTestEnv(t, 2)
	c := newAttackCard("c1", game.SuitSpade)
	env.game.AddCards(game.DeckZone(), c)

	res, err := (&UseCard{Card: c, Targets: []int{1}}).Resolve(&env.ctx)
	require.NoError(t, err)
	assert.False(t, res.Succeeded)
	assert.Equal(t, ErrCardNotFound, res.Code)
	assert.Equal(t, "rule.card.not-in-hand", res.MessageKey)
}

func TestUseCard_NilCard(t *testing.T) {
	env := newTestEnv(t, 2)

	res, err := (&UseCard{Card: nil, Targets: []int{1}}).Resolve(&env.ctx)
	require.NoError(t, err)
	assert.Equal(t, ErrCardNotFound, res.Code)
}

func TestUseCard_DeadTarget(t *testing.T) {
	env := newTestEnv(t, 2)
	c := newAttackCard("c1", game.SuitSpade)
	env.game.AddCards(game.HandZone(0), c)
	env.game.Player(1).Alive = false

	res, err := (&UseCard{Card: c, Targets: []int{1}}).Resolve(&env.ctx)
	require.NoError(t, err)
	assert.Equal(t, ErrTargetNotAlive, res.Code)
	assert.True(t, env.game.ZoneContains(game.HandZone(0), "c1"), "a rejected use keeps the card in hand")
}

func TestUseCard_SelfAttackRejected(t *testing.T) {
	env := newTestEnv(t, 2)
	c := newAttackCard("c1", game.SuitSpade)
	env.game.AddCards(game.HandZone(0), c)

	res, err := (&UseCard{Card: c, Targets: []int{0}}).Resolve(&env.ctx)
	require.NoError(t, err)
	assert.Equal(t, ErrInvalidTarget, res.Code)
}

func TestUseCard_MovesCardAndCountsUse(t *testing.T) {
	env := newTestEnv(t, 2)
	c := newAttackCard("c1", game.SuitSpade)
	env.game.AddCards(game.HandZone(0), c)

	var used *rules.Event
	env.bus.SubscribeTyped(rules.EventCardUsed, func(ev *rules.Event) { used = ev })

	res, err := (&UseCard{Card: c, Targets: []int{1}}).Resolve(&env.ctx)
	require.NoError(t, err)
	assert.True(t, res.Succeeded)
	assert.True(t, env.game.ZoneContains(game.DiscardZone(), "c1"))
	assert.Equal(t, 1, env.game.CardUsesThisTurn(0, game.KindAttack))
	require.NotNil(t, used)
	assert.Equal(t, "c1", used.CardID)
	assert.Equal(t, 1, used.Target)
	assert.False(t, env.stack.IsEmpty(), "the card's effect resolver is pushed")
}

func TestUseCard_AttackLimitEnforced(t *testing.T) {
	env := newTestEnv(t, 2)
	c1 := newAttackCard("c1", game.SuitSpade)
	c2 := newAttackCard("c2", game.SuitClub)
	env.game.AddCards(game.HandZone(0), c1, c2)
	env.ctx.Request = scriptedChoices()

	env.stack.Push(&UseCard{Card: c1, Targets: []int{1}}, env.ctx)
	env.drain(t)

	res, err := (&UseCard{Card: c2, Targets: []int{1}}).Resolve(&env.ctx)
	require.NoError(t, err)
	assert.False(t, res.Succeeded)
	assert.Equal(t, "rule.attack.limit-reached", res.MessageKey)
}

func TestUseCard_HealDefaultsToSelf(t *testing.T) {
	env := newTestEnv(t, 2)
	h := newHealCard("h1")
	env.game.AddCards(game.HandZone(0), h)
	env.game.Player(0).Health = 2

	env.stack.Push(&UseCard{Card: h}, env.ctx)
	env.drain(t)

	assert.Equal(t, 3, env.game.Player(0).Health)
	assert.Equal(t, []Kind{KindUseCard, KindHeal}, env.historyKinds())
}

func TestUseCard_EquipmentGoesToEquipmentZone(t *testing.T) {
	env := newTestEnv(t, 2)
	c := &game.Card{ID: "e1", Name: "Eight Trigrams", Suit: game.SuitSpade, Rank: 2, Kind: game.KindEquipment}
	env.game.AddCards(game.HandZone(0), c)

	env.stack.Push(&UseCard{Card: c}, env.ctx)
	env.drain(t)

	assert.True(t, env.game.ZoneContains(game.EquipmentZone(0), "e1"))
	assert.False(t, env.game.ZoneContains(game.DiscardZone(), "e1"))
	assert.Equal(t, []Kind{KindUseCard}, env.historyKinds())
}
