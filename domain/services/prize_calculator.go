package services

import "housie/domain/entities"

// Revenue shares per tier for auto-scheduled games. The acumulado share
// also applies to manual games, whose other tiers are operator-fixed.
const (
	QuadraShare    = 0.10
	LinhaShare     = 0.15
	BingoShare     = 0.40
	AcumuladoShare = 0.10
)

// CalculatePrizes derives the tier payouts for the given game from the
// table's running revenue. A manual game with fixed amounts uses those for
// quadra/linha/bingo; everything else is a straight percentage split.
func CalculatePrizes(revenue float64, game *entities.ScheduledGame) entities.Prizes {
	if game != nil && game.IsManual && game.ManualPrizes != nil {
		return entities.Prizes{
			Quadra:    game.ManualPrizes.Quadra,
			Linha:     game.ManualPrizes.Linha,
			Bingo:     game.ManualPrizes.Bingo,
			Acumulado: revenue * AcumuladoShare,
		}
	}
	return entities.Prizes{
		Quadra:    revenue * QuadraShare,
		Linha:     revenue * LinhaShare,
		Bingo:     revenue * BingoShare,
		Acumulado: revenue * AcumuladoShare,
	}
}

// PrizeForTier returns the payout of a single tier from the mapping.
func PrizeForTier(p entities.Prizes, tier entities.PrizeTier) float64 {
	switch tier {
	case entities.TierQuadra:
		return p.Quadra
	case entities.TierLinha:
		return p.Linha
	case entities.TierBingo:
		return p.Bingo
	case entities.TierAcumulado:
		return p.Acumulado
	default:
		return 0
	}
}
