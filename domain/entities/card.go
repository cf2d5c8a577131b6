package entities

// Card layout constants for the 90-ball pattern.
const (
	CardRows       = 3
	CardCols       = 9
	NumbersPerRow  = 5
	MaxBall        = 90
	CardsPerSeries = 6
)

// Card is a single 3x9 bingo card. A cell holds a number in [1,90] or 0 for
// a blank. Cards are generated in series of six that together exhaust the
// numbers 1-90.
type Card struct {
	ID        string
	SeriesID  string
	OwnerID   string
	OwnerName string
	Numbers   [CardRows][CardCols]int
}

// RowHits counts how many of the row's numbers appear in the drawn set.
// Blanks never count.
func (c *Card) RowHits(row int, drawn map[int]bool) int {
	hits := 0
	for col := 0; col < CardCols; col++ {
		if n := c.Numbers[row][col]; n != 0 && drawn[n] {
			hits++
		}
	}
	return hits
}

// AllNumbers returns every non-blank number on the card in row order.
func (c *Card) AllNumbers() []int {
	nums := make([]int, 0, CardRows*NumbersPerRow)
	for row := 0; row < CardRows; row++ {
		for col := 0; col < CardCols; col++ {
			if n := c.Numbers[row][col]; n != 0 {
				nums = append(nums, n)
			}
		}
	}
	return nums
}

// Matched returns the card's numbers that have already been drawn. The
// matched set is always derived from the draw state, never stored.
func (c *Card) Matched(drawn map[int]bool) []int {
	matched := make([]int, 0, CardRows*NumbersPerRow)
	for _, n := range c.AllNumbers() {
		if drawn[n] {
			matched = append(matched, n)
		}
	}
	return matched
}

// IsFull reports whether every number on the card has been drawn.
func (c *Card) IsFull(drawn map[int]bool) bool {
	for _, n := range c.AllNumbers() {
		if !drawn[n] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the card.
func (c *Card) Clone() *Card {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

// ColumnRange returns the inclusive number range owned by a grid column:
// column 0 holds 1-9, columns 1-7 hold their decade, column 8 holds 80-90.
func ColumnRange(col int) (low, high int) {
	low = col * 10
	if col == 0 {
		low = 1
	}
	high = col*10 + 9
	if col == CardCols-1 {
		high = MaxBall
	}
	return low, high
}
