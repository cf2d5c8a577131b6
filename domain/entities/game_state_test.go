package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrizeTier_Next(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		tier PrizeTier
		want PrizeTier
	}{
		{name: "quadra advances to linha", tier: TierQuadra, want: TierLinha},
		{name: "linha advances to bingo", tier: TierLinha, want: TierBingo},
		{name: "bingo is terminal", tier: TierBingo, want: TierDone},
		{name: "done stays done", tier: TierDone, want: TierDone},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tt.tier.Next())
		})
	}
}

func TestNewGameState(t *testing.T) {
	t.Parallel()

	state := NewGameState()

	assert.Equal(t, StatusScheduled, state.Status)
	assert.Empty(t, state.DrawnNumbers)
	assert.Equal(t, 0, state.BallCount)
	assert.Equal(t, TierQuadra, state.CurrentPrizeTier)
	assert.Equal(t, DefaultSeriesPrice, state.SeriesPrice)
	assert.False(t, state.IsEntryLocked)
	assert.Nil(t, state.LastWinner)
}

func TestGameState_Clone(t *testing.T) {
	t.Parallel()

	state := NewGameState()
	state.DrawnNumbers = []int{4, 8, 15}
	state.LastWinner = &Winner{
		Name: "Ana",
		Tier: TierQuadra,
		Card: &Card{ID: "XYZ-1"},
	}

	clone := state.Clone()

	// Mutating the clone must not reach the original.
	clone.DrawnNumbers[0] = 99
	clone.LastWinner.Name = "Bruno"
	clone.LastWinner.Card.ID = "other"

	assert.Equal(t, []int{4, 8, 15}, state.DrawnNumbers)
	assert.Equal(t, "Ana", state.LastWinner.Name)
	assert.Equal(t, "XYZ-1", state.LastWinner.Card.ID)
}

func TestGameState_DrawnSet(t *testing.T) {
	t.Parallel()

	state := NewGameState()
	state.DrawnNumbers = []int{1, 42, 90}

	drawn := state.DrawnSet()

	assert.Len(t, drawn, 3)
	assert.True(t, drawn[42])
	assert.False(t, drawn[2])
}
