package entities

// ManualPrizes are operator-fixed payouts for the three played tiers of a
// manually scheduled game. The acumulado tier is always revenue-derived.
type ManualPrizes struct {
	Quadra float64
	Linha  float64
	Bingo  float64
}

// ScheduledGame describes one slot of the day's schedule. Auto-generated
// slots carry the recurring series price; manual games may fix their own
// price and prize amounts.
type ScheduledGame struct {
	ID           string
	Time         string // "HH:mm", minute granularity
	Price        float64
	IsManual     bool
	ManualPrizes *ManualPrizes
}

// AutoScheduleConfig drives generation of the recurring game slots between
// the first and last game of the day.
type AutoScheduleConfig struct {
	FirstGameTime   string // "HH:mm"
	LastGameTime    string // "HH:mm"
	IntervalMinutes int
	SeriesPrice     float64
	Enabled         bool
}
