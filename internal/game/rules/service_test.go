package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub007/internal/game"
)

func newTestService(src ModifierSource) *Service {
	return NewService(src, DefaultConfig(), nil)
}

func attackCard(id string) *game.Card {
	return &game.Card{ID: id, Name: "Strike", Suit: game.SuitSpade, Rank: 7, Kind: game.KindAttack}
}

func dodgeCard(id string) *game.Card {
	return &game.Card{ID: id, Name: "Evade", Suit: game.SuitHeart, Rank: 2, Kind: game.KindDodge}
}

func healCard(id string) *game.Card {
	return &game.Card{ID: id, Name: "Elixir", Suit: game.SuitHeart, Rank: 3, Kind: game.KindHeal}
}

func TestCanUseCard(t *testing.T) {
	g := threeSeatGame(t)
	svc := newTestService(nil)
	c := attackCard("c1")
	g.AddCards(game.HandZone(0), c)

	assert.True(t, svc.CanUseCard(g, 0, c).Allowed)

	res := svc.CanUseCard(g, 1, c)
	assert.False(t, res.Allowed)
	assert.Equal(t, "rule.card.not-in-hand", res.Reason)

	res = svc.CanUseCard(g, 0, nil)
	assert.False(t, res.Allowed)
	assert.Equal(t, "rule.card.missing", res.Reason)

	g.Player(0).Alive = false
	res = svc.CanUseCard(g, 0, c)
	assert.False(t, res.Allowed)
	assert.Equal(t, "rule.actor.dead", res.Reason)
}

func TestValidateAction_Attack(t *testing.T) {
	g := threeSeatGame(t)
	svc := newTestService(nil)
	c := attackCard("c1")

	valid := Action{Kind: ActionAttack, Actor: 0, Card: c, Targets: []int{1}}
	assert.True(t, svc.ValidateAction(g, valid).Allowed)

	cases := []struct {
		name   string
		action Action
		reason string
	}{
		{"no target", Action{Kind: ActionAttack, Actor: 0, Card: c}, "rule.attack.target-count"},
		{"two targets", Action{Kind: ActionAttack, Actor: 0, Card: c, Targets: []int{1, 2}}, "rule.attack.target-count"},
		{"unknown target", Action{Kind: ActionAttack, Actor: 0, Card: c, Targets: []int{9}}, "rule.attack.target-unknown"},
		{"self target", Action{Kind: ActionAttack, Actor: 0, Card: c, Targets: []int{0}}, "rule.attack.self"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := svc.ValidateAction(g, tc.action)
			assert.False(t, res.Allowed)
			assert.Equal(t, tc.reason, res.Reason)
		})
	}
}

func TestValidateAction_AttackDeadTarget(t *testing.T) {
	g := threeSeatGame(t)
	svc := newTestService(nil)
	g.Player(1).Alive = false

	res := svc.ValidateAction(g, Action{Kind: ActionAttack, Actor: 0, Card: attackCard("c1"), Targets: []int{1}})
	assert.False(t, res.Allowed)
	assert.Equal(t, "rule.attack.target-dead", res.Reason)
}

func TestValidateAction_AttackLimit(t *testing.T) {
	g := threeSeatGame(t)
	svc := newTestService(nil)
	action := Action{Kind: ActionAttack, Actor: 0, Card: attackCard("c1"), Targets: []int{1}}

	require.True(t, svc.ValidateAction(g, action).Allowed)

	g.NoteCardUse(0, game.KindAttack)
	res := svc.ValidateAction(g, action)
	assert.False(t, res.Allowed)
	assert.Equal(t, "rule.attack.limit-reached", res.Reason)

	g.ResetTurnUses(0)
	assert.True(t, svc.ValidateAction(g, action).Allowed)
}

func TestValidateAction_AttackOutOfRange(t *testing.T) {
	g := game.NewGame()
	for i := 0; i < 5; i++ {
		g.AddPlayer("p", 4)
	}
	svc := newTestService(nil)

	res := svc.ValidateAction(g, Action{Kind: ActionAttack, Actor: 0, Card: attackCard("c1"), Targets: []int{2}})
	assert.False(t, res.Allowed)
	assert.Equal(t, "rule.attack.out-of-range", res.Reason)
}

func TestValidateAction_Heal(t *testing.T) {
	g := threeSeatGame(t)
	svc := newTestService(nil)
	c := healCard("h1")

	res := svc.ValidateAction(g, Action{Kind: ActionHeal, Actor: 0, Card: c})
	assert.False(t, res.Allowed)
	assert.Equal(t, "rule.heal.target-unwounded", res.Reason)

	g.Player(0).Health = 2
	assert.True(t, svc.ValidateAction(g, Action{Kind: ActionHeal, Actor: 0, Card: c}).Allowed)

	g.Player(1).Alive = false
	res = svc.ValidateAction(g, Action{Kind: ActionHeal, Actor: 0, Card: c, Targets: []int{1}})
	assert.False(t, res.Allowed)
	assert.Equal(t, "rule.heal.target-dead", res.Reason)
}

func TestCanRespond(t *testing.T) {
	g := threeSeatGame(t)
	svc := newTestService(nil)

	assert.True(t, svc.CanRespond(g, 0, dodgeCard("d1"), ResponseDodge).Allowed)
	assert.True(t, svc.CanRespond(g, 0, healCard("h1"), ResponseRescue).Allowed)

	res := svc.CanRespond(g, 0, attackCard("c1"), ResponseDodge)
	assert.False(t, res.Allowed)
	assert.Equal(t, "rule.respond.kind-mismatch", res.Reason)

	res = svc.CanRespond(g, 0, dodgeCard("d1"), ResponseRescue)
	assert.False(t, res.Allowed)
}

func TestLegalResponseCards_HandOrder(t *testing.T) {
	g := threeSeatGame(t)
	svc := newTestService(nil)
	d1, d2 := dodgeCard("d1"), dodgeCard("d2")
	g.AddCards(game.HandZone(0), attackCard("c1"), d1, healCard("h1"), d2)

	legal := svc.LegalResponseCards(g, 0, ResponseDodge)
	require.Len(t, legal, 2)
	assert.Equal(t, d1, legal[0])
	assert.Equal(t, d2, legal[1])
}

func TestAvailableActions(t *testing.T) {
	g := threeSeatGame(t)
	svc := newTestService(nil)
	g.AddCards(game.HandZone(0), attackCard("c1"), healCard("h1"), dodgeCard("d1"))
	g.Player(0).Health = 3

	actions := svc.AvailableActions(g, 0)
	// One attack per reachable seat plus the heal; dodge is reactive only.
	var attacks, heals int
	for _, a := range actions {
		switch a.Kind {
		case ActionAttack:
			attacks++
		case ActionHeal:
			heals++
		}
	}
	assert.Equal(t, 2, attacks)
	assert.Equal(t, 1, heals)

	assert.Nil(t, svc.AvailableActions(g, 9))
	g.Player(0).Alive = false
	assert.Nil(t, svc.AvailableActions(g, 0))
}

func TestMaxUsesPerTurn(t *testing.T) {
	g := threeSeatGame(t)
	svc := newTestService(nil)

	assert.Equal(t, 1, svc.MaxUsesPerTurn(g, 0, game.KindAttack))
	assert.Equal(t, -1, svc.MaxUsesPerTurn(g, 0, game.KindHeal), "non-attack kinds are unlimited")
}
