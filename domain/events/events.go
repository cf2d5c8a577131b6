package events

import "housie/domain/entities"

// EventType represents different types of events emitted by the draw engine
type EventType string

const (
	EventTypeGameStarted      EventType = "game_started"
	EventTypeBallDrawn        EventType = "ball_drawn"
	EventTypeWinnerDeclared   EventType = "winner_declared"
	EventTypeGameFinished     EventType = "game_finished"
	EventTypeEntryLockToggled EventType = "entry_lock_toggled"
	EventTypeCardsRegistered  EventType = "cards_registered"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// GameStartedEvent marks the SCHEDULED -> WAITING transition of a game.
type GameStartedEvent struct {
	GameTime    string
	SeriesPrice float64
	Prizes      entities.Prizes
	CardsInPlay int
}

func (e GameStartedEvent) Type() EventType {
	return EventTypeGameStarted
}

// BallDrawnEvent is emitted for every ball drawn during PLAYING.
type BallDrawnEvent struct {
	Ball      int
	BallCount int
	Tier      entities.PrizeTier
}

func (e BallDrawnEvent) Type() EventType {
	return EventTypeBallDrawn
}

// WinnerDeclaredEvent is emitted when a card resolves the active tier.
type WinnerDeclaredEvent struct {
	WinnerName string
	CardID     string
	Tier       entities.PrizeTier
	Amount     float64
	BallCount  int
}

func (e WinnerDeclaredEvent) Type() EventType {
	return EventTypeWinnerDeclared
}

// GameFinishedEvent marks the transition to FINISHED, whether natural or
// forced by an operator stop.
type GameFinishedEvent struct {
	BallCount int
	Stopped   bool
}

func (e GameFinishedEvent) Type() EventType {
	return EventTypeGameFinished
}

// EntryLockToggledEvent records an operator flipping the entry lock.
type EntryLockToggledEvent struct {
	Locked bool
}

func (e EntryLockToggledEvent) Type() EventType {
	return EventTypeEntryLockToggled
}

// CardsRegisteredEvent records new cards joining the active pool.
type CardsRegisteredEvent struct {
	Added    int
	PoolSize int
}

func (e CardsRegisteredEvent) Type() EventType {
	return EventTypeCardsRegistered
}
