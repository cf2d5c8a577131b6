package entities

// GameStatus represents the phase of the live draw.
type GameStatus string

const (
	StatusScheduled GameStatus = "SCHEDULED"
	StatusWaiting   GameStatus = "WAITING"
	StatusPlaying   GameStatus = "PLAYING"
	StatusFinished  GameStatus = "FINISHED"
)

// PrizeTier is one of the prize categories of a game, resolved in fixed
// order. TierDone marks the terminal state after a BINGO win.
type PrizeTier string

const (
	TierQuadra    PrizeTier = "QUADRA"
	TierLinha     PrizeTier = "LINHA"
	TierBingo     PrizeTier = "BINGO"
	TierAcumulado PrizeTier = "ACUMULADO"
	TierDone      PrizeTier = "FINISHED"
)

// Next returns the tier that follows a win on the receiver. BINGO is the
// last playable tier; winning it ends the game.
func (t PrizeTier) Next() PrizeTier {
	switch t {
	case TierQuadra:
		return TierLinha
	case TierLinha:
		return TierBingo
	case TierBingo:
		return TierDone
	default:
		return TierDone
	}
}

// Prizes holds the payout for each tier of the current/upcoming game.
type Prizes struct {
	Quadra    float64 `json:"quadra"`
	Linha     float64 `json:"linha"`
	Bingo     float64 `json:"bingo"`
	Acumulado float64 `json:"acumulado"`
}

// Winner identifies the most recent winner while the celebration runs.
type Winner struct {
	Name string    `json:"name"`
	Tier PrizeTier `json:"tier"`
	Card *Card     `json:"card,omitempty"`
}

// GameState is the full observable state of the draw engine. The engine is
// its only writer; subscribers receive deep copies via Clone.
type GameState struct {
	Status           GameStatus `json:"status"`
	DrawnNumbers     []int      `json:"drawnNumbers"`
	CurrentBall      int        `json:"currentBall"` // 0 when no ball is up
	BallCount        int        `json:"ballCount"`
	Prizes           Prizes     `json:"prizes"`
	CurrentPrizeTier PrizeTier  `json:"currentPrizeTier"`
	NextGameTime     string     `json:"nextGameTime"` // "HH:mm", empty when none scheduled
	SeriesPrice      float64    `json:"seriesPrice"`
	IsManualGame     bool       `json:"isManualGame"`
	LastWinner       *Winner    `json:"lastWinner,omitempty"`
	IsEntryLocked    bool       `json:"isEntryLocked"`
}

// DefaultSeriesPrice is used until a scheduled game supplies a price.
const DefaultSeriesPrice = 10.0

// NewGameState returns the initial engine state.
func NewGameState() *GameState {
	return &GameState{
		Status:           StatusScheduled,
		DrawnNumbers:     []int{},
		CurrentPrizeTier: TierQuadra,
		SeriesPrice:      DefaultSeriesPrice,
	}
}

// Clone returns a deep copy safe to hand to subscribers.
func (s *GameState) Clone() GameState {
	cp := *s
	cp.DrawnNumbers = make([]int, len(s.DrawnNumbers))
	copy(cp.DrawnNumbers, s.DrawnNumbers)
	if s.LastWinner != nil {
		w := *s.LastWinner
		w.Card = s.LastWinner.Card.Clone()
		cp.LastWinner = &w
	}
	return cp
}

// DrawnSet returns the drawn numbers as a membership set.
func (s *GameState) DrawnSet() map[int]bool {
	drawn := make(map[int]bool, len(s.DrawnNumbers))
	for _, n := range s.DrawnNumbers {
		drawn[n] = true
	}
	return drawn
}
