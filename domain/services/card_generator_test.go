package services

import (
	"fmt"
	"testing"

	"housie/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardGenerator_GenerateSeries_ExhaustsAllNumbers(t *testing.T) {
	t.Parallel()

	for seed := int64(0); seed < 25; seed++ {
		seed := seed
		t.Run(fmt.Sprintf("seed %d", seed), func(t *testing.T) {
			t.Parallel()

			cards := NewCardGenerator(seed).GenerateSeries("user-1", "Ana")
			require.Len(t, cards, entities.CardsPerSeries)

			seen := make(map[int]int)
			for _, card := range cards {
				for _, n := range card.AllNumbers() {
					seen[n]++
				}
			}

			require.Len(t, seen, entities.MaxBall, "series must use all 90 numbers")
			for n := 1; n <= entities.MaxBall; n++ {
				assert.Equal(t, 1, seen[n], "number %d must appear exactly once", n)
			}
		})
	}
}

func TestCardGenerator_GenerateSeries_CardInvariants(t *testing.T) {
	t.Parallel()

	for seed := int64(0); seed < 25; seed++ {
		seed := seed
		t.Run(fmt.Sprintf("seed %d", seed), func(t *testing.T) {
			t.Parallel()

			cards := NewCardGenerator(seed).GenerateSeries("user-1", "Ana")

			for ci, card := range cards {
				// Exactly 5 numbers (4 blanks) per row.
				for row := 0; row < entities.CardRows; row++ {
					filled := 0
					for col := 0; col < entities.CardCols; col++ {
						if card.Numbers[row][col] != 0 {
							filled++
						}
					}
					assert.Equal(t, entities.NumbersPerRow, filled,
						"card %d row %d must hold exactly 5 numbers", ci, row)
				}

				for col := 0; col < entities.CardCols; col++ {
					low, high := entities.ColumnRange(col)
					var vals []int
					for row := 0; row < entities.CardRows; row++ {
						if n := card.Numbers[row][col]; n != 0 {
							assert.GreaterOrEqual(t, n, low, "card %d col %d below bucket", ci, col)
							assert.LessOrEqual(t, n, high, "card %d col %d above bucket", ci, col)
							vals = append(vals, n)
						}
					}

					// No card may have an entirely blank column.
					assert.NotEmpty(t, vals, "card %d col %d must not be empty", ci, col)

					// Values ascend strictly top to bottom.
					for i := 1; i < len(vals); i++ {
						assert.Greater(t, vals[i], vals[i-1],
							"card %d col %d must ascend top to bottom", ci, col)
					}
				}
			}
		})
	}
}

func TestCardGenerator_GenerateSeries_Identity(t *testing.T) {
	t.Parallel()

	cards := NewCardGenerator(7).GenerateSeries("user-9", "Diana")

	seriesID := cards[0].SeriesID
	require.NotEmpty(t, seriesID)
	for i, card := range cards {
		assert.Equal(t, seriesID, card.SeriesID)
		assert.Equal(t, fmt.Sprintf("%s-%d", seriesID, i+1), card.ID)
		assert.Equal(t, "user-9", card.OwnerID)
		assert.Equal(t, "Diana", card.OwnerName)
	}
}

func TestCardGenerator_GenerateSeries_DeterministicForSeed(t *testing.T) {
	t.Parallel()

	first := NewCardGenerator(42).GenerateSeries("user-1", "Edu")
	second := NewCardGenerator(42).GenerateSeries("user-1", "Edu")

	for i := range first {
		assert.Equal(t, first[i].Numbers, second[i].Numbers,
			"same seed must yield the same layout")
	}
}
