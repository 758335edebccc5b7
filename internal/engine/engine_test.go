package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub007/internal/game"
	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub007/internal/game/abilities"
	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub007/internal/game/resolve"
	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub007/internal/game/rules"
)

func newTestEngine(t *testing.T, seats int) *Engine {
	t.Helper()
	e := New(rules.DefaultConfig(), nil)
	for i := 0; i < seats; i++ {
		e.Game.AddPlayer("p", 4)
	}
	return e
}

func answer(results ...resolve.ChoiceResult) resolve.ChoiceCallback {
	i := 0
	return func(req resolve.ChoiceRequest) (resolve.ChoiceResult, error) {
		if i >= len(results) {
			return resolve.ChoiceResult{RequestID: req.ID, Confirmation: resolve.Passed}, nil
		}
		res := results[i]
		i++
		res.RequestID = req.ID
		return res, nil
	}
}

func historyKinds(o Outcome) []resolve.Kind {
	kinds := make([]resolve.Kind, len(o.History))
	for i, h := range o.History {
		kinds[i] = h.Kind
	}
	return kinds
}

func TestPlayCard_AttackWithoutDodgeDealsDamage(t *testing.T) {
	e := newTestEngine(t, 2)
	c := &game.Card{ID: "c1", Name: "Strike", Suit: game.SuitSpade, Rank: 7, Kind: game.KindAttack}
	e.Game.AddCards(game.HandZone(0), c)

	outcome, err := e.PlayCard(0, c, []int{1}, answer())
	require.NoError(t, err)
	assert.True(t, outcome.Result.Succeeded)
	assert.Equal(t, 3, e.Game.Player(1).Health)
	assert.True(t, e.Game.ZoneContains(game.DiscardZone(), "c1"))
	assert.Equal(t, []resolve.Kind{
		resolve.KindUseCard,
		resolve.KindAttack,
		resolve.KindResponseWindow,
		resolve.KindAttack,
		resolve.KindDamage,
	}, historyKinds(outcome))
}

func TestPlayCard_DodgeEvadesAttack(t *testing.T) {
	e := newTestEngine(t, 2)
	c := &game.Card{ID: "c1", Name: "Strike", Suit: game.SuitSpade, Rank: 7, Kind: game.KindAttack}
	d := &game.Card{ID: "d1", Name: "Evade", Suit: game.SuitHeart, Rank: 2, Kind: game.KindDodge}
	e.Game.AddCards(game.HandZone(0), c)
	e.Game.AddCards(game.HandZone(1), d)

	outcome, err := e.PlayCard(0, c, []int{1},
		answer(resolve.ChoiceResult{CardIDs: []string{"d1"}, Confirmation: resolve.Confirmed}))
	require.NoError(t, err)
	assert.True(t, outcome.Result.Succeeded)
	assert.Equal(t, 4, e.Game.Player(1).Health)
	assert.True(t, e.Game.ZoneContains(game.DiscardZone(), "d1"))
	for _, h := range outcome.History {
		assert.NotEqual(t, resolve.KindDamage, h.Kind, "an evaded attack deals no damage")
	}
}

func TestPlayCard_FailedValidationLeavesStateUntouched(t *testing.T) {
	e := newTestEngine(t, 2)
	c := &game.Card{ID: "c1", Name: "Strike", Suit: game.SuitSpade, Rank: 7, Kind: game.KindAttack}
	e.Game.AddCards(game.HandZone(0), c)

	outcome, err := e.PlayCard(0, c, []int{0}, nil)
	require.NoError(t, err)
	assert.False(t, outcome.Result.Succeeded)
	assert.Equal(t, resolve.ErrInvalidTarget, outcome.Result.Code)
	assert.True(t, e.Game.ZoneContains(game.HandZone(0), "c1"))
	assert.Equal(t, 0, e.Game.CardUsesThisTurn(0, game.KindAttack))
}

func TestPlayCard_EightTrigramsRedJudgement(t *testing.T) {
	e := newTestEngine(t, 2)
	e.Registry.Grant(abilities.NewEightTrigrams(1))
	c := &game.Card{ID: "c1", Name: "Strike", Suit: game.SuitSpade, Rank: 7, Kind: game.KindAttack}
	j := &game.Card{ID: "j1", Name: "Evade", Suit: game.SuitHeart, Rank: 2, Kind: game.KindDodge}
	e.Game.AddCards(game.HandZone(0), c)
	e.Game.AddCards(game.DeckZone(), j)

	outcome, err := e.PlayCard(0, c, []int{1},
		answer(resolve.ChoiceResult{Confirmation: resolve.Confirmed}))
	require.NoError(t, err)
	assert.True(t, outcome.Result.Succeeded)
	assert.Equal(t, 4, e.Game.Player(1).Health, "the red judgement counts as a dodge")

	kinds := historyKinds(outcome)
	assert.Contains(t, kinds, resolve.KindDodgeChain)
	assert.Contains(t, kinds, resolve.KindJudgement)
}

func TestPlayCard_LethalAttackTriggersRescue(t *testing.T) {
	e := newTestEngine(t, 3)
	e.Game.Player(1).Health = 1
	c := &game.Card{ID: "c1", Name: "Strike", Suit: game.SuitSpade, Rank: 7, Kind: game.KindAttack}
	h := &game.Card{ID: "h1", Name: "Elixir", Suit: game.SuitHeart, Rank: 3, Kind: game.KindHeal}
	e.Game.AddCards(game.HandZone(0), c)
	e.Game.AddCards(game.HandZone(2), h)

	// Seat 1 has nothing to dodge with; the only choice asked for is
	// seat 2's rescue.
	outcome, err := e.PlayCard(0, c, []int{1}, answer(
		resolve.ChoiceResult{CardIDs: []string{"h1"}, Confirmation: resolve.Confirmed},
	))
	require.NoError(t, err)
	assert.True(t, outcome.Result.Succeeded)
	assert.True(t, e.Game.Player(1).Alive)
	assert.Equal(t, 1, e.Game.Player(1).Health)
	assert.Contains(t, historyKinds(outcome), resolve.KindDyingRescue)
}

func TestPlayCard_LethalAttackWithoutRescueKills(t *testing.T) {
	e := newTestEngine(t, 2)
	e.Game.Player(1).Health = 1
	c := &game.Card{ID: "c1", Name: "Strike", Suit: game.SuitSpade, Rank: 7, Kind: game.KindAttack}
	e.Game.AddCards(game.HandZone(0), c)

	outcome, err := e.PlayCard(0, c, []int{1}, answer())
	require.NoError(t, err)
	assert.True(t, outcome.Result.Succeeded)
	assert.False(t, e.Game.Player(1).Alive)
}

func TestPlayDrawPhase(t *testing.T) {
	e := newTestEngine(t, 2)
	deck := game.StandardDeck()
	e.Game.AddCards(game.DeckZone(), deck...)

	outcome, err := e.PlayDrawPhase(0, nil)
	require.NoError(t, err)
	assert.True(t, outcome.Result.Succeeded)
	assert.Len(t, e.Game.Cards(game.HandZone(0)), 2)
}

func TestPlayDrawPhase_EmptyDeckIsStructuralFault(t *testing.T) {
	e := newTestEngine(t, 2)

	_, err := e.PlayDrawPhase(0, nil)
	assert.Error(t, err)
}

func TestAvailableActions(t *testing.T) {
	e := newTestEngine(t, 2)
	c := &game.Card{ID: "c1", Name: "Strike", Suit: game.SuitSpade, Rank: 7, Kind: game.KindAttack}
	e.Game.AddCards(game.HandZone(0), c)

	actions := e.AvailableActions(0)
	require.Len(t, actions, 1)
	assert.Equal(t, rules.ActionAttack, actions[0].Kind)
	assert.Equal(t, []int{1}, actions[0].Targets)
}

func TestPlayCard_HistorySequenceIsMonotonic(t *testing.T) {
	e := newTestEngine(t, 2)
	c := &game.Card{ID: "c1", Name: "Strike", Suit: game.SuitSpade, Rank: 7, Kind: game.KindAttack}
	e.Game.AddCards(game.HandZone(0), c)

	outcome, err := e.PlayCard(0, c, []int{1}, answer())
	require.NoError(t, err)
	for i, h := range outcome.History {
		assert.Equal(t, i, h.Sequence)
	}
}
