package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub007/internal/game/resolve"
)

func TestChoose_DisconnectedSeatPassesWhenAllowed(t *testing.T) {
	hub := NewChoiceHub(time.Second, nil)

	res, err := hub.Choose(resolve.ChoiceRequest{
		ID:          "r1",
		Seat:        3,
		Kind:        resolve.ChoicePlayCard,
		PassAllowed: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "r1", res.RequestID)
	assert.Equal(t, resolve.Passed, res.Confirmation)
}

func TestChoose_DisconnectedSeatErrorsWhenMandatory(t *testing.T) {
	hub := NewChoiceHub(time.Second, nil)

	_, err := hub.Choose(resolve.ChoiceRequest{
		ID:   "r1",
		Seat: 3,
		Kind: resolve.ChoiceConfirm,
	})
	assert.Error(t, err)
}

func TestChoose_TimeoutPassesWhenAllowed(t *testing.T) {
	hub := NewChoiceHub(10*time.Millisecond, nil)
	// Register a fake connected seat whose send buffer absorbs the frame
	// but never answers.
	c := &client{seat: 0, send: make(chan []byte, 1)}
	hub.seats[0] = c

	res, err := hub.Choose(resolve.ChoiceRequest{
		ID:          "r1",
		Seat:        0,
		Kind:        resolve.ChoicePlayCard,
		PassAllowed: true,
	})
	require.NoError(t, err)
	assert.Equal(t, resolve.Passed, res.Confirmation)

	hub.mu.Lock()
	defer hub.mu.Unlock()
	assert.Empty(t, hub.pending, "a timed-out request is cleaned up")
}

func TestChoose_TimeoutErrorsWhenMandatory(t *testing.T) {
	hub := NewChoiceHub(10*time.Millisecond, nil)
	c := &client{seat: 0, send: make(chan []byte, 1)}
	hub.seats[0] = c

	_, err := hub.Choose(resolve.ChoiceRequest{ID: "r1", Seat: 0, Kind: resolve.ChoiceConfirm})
	assert.Error(t, err)
}
