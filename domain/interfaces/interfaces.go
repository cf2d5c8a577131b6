package interfaces

import (
	"housie/domain/entities"
	"housie/domain/events"
)

// Narrator receives discrete announcement strings from the engine. A
// priority announcement preempts anything still queued; how (or whether)
// the text is vocalized is the implementation's business.
type Narrator interface {
	Speak(text string, priority bool)
}

// EventPublisher publishes engine events to interested parties outside the
// engine's in-process subscriber list.
type EventPublisher interface {
	Publish(event events.Event) error
}

// RevenueSource supplies the running total of completed series purchases
// for the table. The engine treats the figure as ground truth and never
// computes revenue itself.
type RevenueSource interface {
	TotalRevenue() float64
}

// ScheduleSource supplies the day's schedule inputs: the recurring slot
// configuration and the operator-defined manual games.
type ScheduleSource interface {
	AutoSchedule() entities.AutoScheduleConfig
	ManualGames() []*entities.ScheduledGame
}
