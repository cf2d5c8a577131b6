package services

import "housie/domain/entities"

// WinDetector checks the active card pool against the drawn set for the
// single tier currently in play. Ties are resolved by pool order: the
// first qualifying card in registration order wins.
type WinDetector struct{}

// NewWinDetector creates a detector.
func NewWinDetector() *WinDetector {
	return &WinDetector{}
}

// FindWinner returns the first card in pool order that resolves the tier,
// or nil when nobody has won yet. Tier rules:
//
//	QUADRA: any row with at least 4 of its 5 numbers drawn
//	LINHA:  any row with all 5 numbers drawn
//	BINGO:  every number on the card drawn
func (d *WinDetector) FindWinner(pool []*entities.Card, drawn map[int]bool, tier entities.PrizeTier) *entities.Winner {
	for _, card := range pool {
		if d.cardWins(card, drawn, tier) {
			name := card.OwnerName
			if name == "" {
				name = "Jogador"
			}
			return &entities.Winner{Name: name, Tier: tier, Card: card}
		}
	}
	return nil
}

func (d *WinDetector) cardWins(card *entities.Card, drawn map[int]bool, tier entities.PrizeTier) bool {
	switch tier {
	case entities.TierQuadra:
		for row := 0; row < entities.CardRows; row++ {
			if card.RowHits(row, drawn) >= entities.NumbersPerRow-1 {
				return true
			}
		}
	case entities.TierLinha:
		for row := 0; row < entities.CardRows; row++ {
			if card.RowHits(row, drawn) >= entities.NumbersPerRow {
				return true
			}
		}
	case entities.TierBingo:
		return card.IsFull(drawn)
	}
	return false
}
