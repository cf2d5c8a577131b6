package services

import (
	"testing"

	"housie/domain/entities"

	"github.com/stretchr/testify/assert"
)

func TestCalculatePrizes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		revenue float64
		game    *entities.ScheduledGame
		want    entities.Prizes
	}{
		{
			name:    "auto game splits revenue 10/15/40/10",
			revenue: 1000,
			game:    &entities.ScheduledGame{Time: "14:30", Price: 10},
			want:    entities.Prizes{Quadra: 100, Linha: 150, Bingo: 400, Acumulado: 100},
		},
		{
			name:    "no scheduled game still derives from revenue",
			revenue: 500,
			game:    nil,
			want:    entities.Prizes{Quadra: 50, Linha: 75, Bingo: 200, Acumulado: 50},
		},
		{
			name:    "zero revenue yields zero prizes",
			revenue: 0,
			game:    &entities.ScheduledGame{Time: "14:30"},
			want:    entities.Prizes{},
		},
		{
			name:    "manual game uses fixed amounts plus revenue-derived acumulado",
			revenue: 1000,
			game: &entities.ScheduledGame{
				Time:         "20:00",
				IsManual:     true,
				ManualPrizes: &entities.ManualPrizes{Quadra: 50, Linha: 80, Bingo: 300},
			},
			want: entities.Prizes{Quadra: 50, Linha: 80, Bingo: 300, Acumulado: 100},
		},
		{
			name:    "manual flag without fixed amounts falls back to percentages",
			revenue: 1000,
			game:    &entities.ScheduledGame{Time: "20:00", IsManual: true},
			want:    entities.Prizes{Quadra: 100, Linha: 150, Bingo: 400, Acumulado: 100},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := CalculatePrizes(tt.revenue, tt.game)
			assert.InDelta(t, tt.want.Quadra, got.Quadra, 1e-9)
			assert.InDelta(t, tt.want.Linha, got.Linha, 1e-9)
			assert.InDelta(t, tt.want.Bingo, got.Bingo, 1e-9)
			assert.InDelta(t, tt.want.Acumulado, got.Acumulado, 1e-9)
		})
	}
}

func TestPrizeForTier(t *testing.T) {
	t.Parallel()

	prizes := entities.Prizes{Quadra: 1, Linha: 2, Bingo: 3, Acumulado: 4}

	assert.Equal(t, 1.0, PrizeForTier(prizes, entities.TierQuadra))
	assert.Equal(t, 2.0, PrizeForTier(prizes, entities.TierLinha))
	assert.Equal(t, 3.0, PrizeForTier(prizes, entities.TierBingo))
	assert.Equal(t, 4.0, PrizeForTier(prizes, entities.TierAcumulado))
	assert.Equal(t, 0.0, PrizeForTier(prizes, entities.TierDone))
}
