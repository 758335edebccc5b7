package resolve

import (
	"testing"

	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub007/internal/game"
	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub007/internal/game/rules"
)

// testEnv bundles the services one resolver test needs.
type testEnv struct {
	game  *game.Game
	bus   *rules.EventBus
	stack *Stack
	ctx   Context
}

func newTestEnv(t *testing.T, seats int) *testEnv {
	t.Helper()
	g := game.NewGame()
	for i := 0; i < seats; i++ {
		g.AddPlayer("p", 4)
	}
	bus := rules.NewEventBus()
	mover := game.NewCardMover(g, nil)
	stack := NewStack()
	env := &testEnv{game: g, bus: bus, stack: stack}
	env.ctx = Context{
		Game:      g,
		Actor:     0,
		Stack:     stack,
		Mover:     mover,
		Rules:     rules.NewService(nil, rules.DefaultConfig(), nil),
		Judgement: rules.NewJudgementService(mover, bus, nil),
		Bus:       bus,
		Session:   NewSession(),
	}
	return env
}

// drain pops until the stack is empty and fails the test on a
// structural fault.
func (e *testEnv) drain(t *testing.T) {
	t.Helper()
	if err := e.stack.ResolveAll(); err != nil {
		t.Fatalf("Unexpected structural fault: %v", err)
	}
}

func (e *testEnv) historyKinds() []Kind {
	history := e.stack.History()
	kinds := make([]Kind, len(history))
	for i, h := range history {
		kinds[i] = h.Kind
	}
	return kinds
}

// scriptedChoices answers choice requests from a fixed queue; once the
// queue runs out, every request passes.
func scriptedChoices(results ...ChoiceResult) ChoiceCallback {
	i := 0
	return func(req ChoiceRequest) (ChoiceResult, error) {
		if i >= len(results) {
			return ChoiceResult{RequestID: req.ID, Confirmation: Passed}, nil
		}
		res := results[i]
		i++
		res.RequestID = req.ID
		return res, nil
	}
}

// playCardWith answers the first card-selection request with the card id.
func playCard(cardID string) ChoiceResult {
	return ChoiceResult{CardIDs: []string{cardID}, Confirmation: Confirmed}
}

func passChoice() ChoiceResult {
	return ChoiceResult{Confirmation: Passed}
}

func confirmChoice() ChoiceResult {
	return ChoiceResult{Confirmation: Confirmed}
}

func newAttackCard(id string, suit game.Suit) *game.Card {
	return &game.Card{ID: id, Name: "Strike", Suit: suit, Rank: 7, Kind: game.KindAttack}
}

func newDodgeCard(id string) *game.Card {
	return &game.Card{ID: id, Name: "Evade", Suit: game.SuitHeart, Rank: 2, Kind: game.KindDodge}
}

func newHealCard(id string) *game.Card {
	return &game.Card{ID: id, Name: "Elixir", Suit: game.SuitHeart, Rank: 3, Kind: game.KindHeal}
}
