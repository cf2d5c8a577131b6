package application

import (
	"context"
	"sync"
	"time"

	"housie/domain/entities"
	"housie/domain/interfaces"
	"housie/domain/services"

	log "github.com/sirupsen/logrus"
)

// SyncWorker periodically feeds the draw engine from its collaborators:
// the day's schedule is expanded and the next game pushed in, and the
// revenue source's running total is forwarded. The engine itself never
// computes either.
type SyncWorker struct {
	engine   *DrawEngine
	schedule interfaces.ScheduleSource
	revenue  interfaces.RevenueSource
	interval time.Duration
	now      func() time.Time
}

// NewSyncWorker creates a worker ticking at the given interval.
func NewSyncWorker(engine *DrawEngine, schedule interfaces.ScheduleSource, revenue interfaces.RevenueSource, interval time.Duration) *SyncWorker {
	return &SyncWorker{
		engine:   engine,
		schedule: schedule,
		revenue:  revenue,
		interval: interval,
		now:      time.Now,
	}
}

// Start begins the sync loop and returns a cleanup function.
func (w *SyncWorker) Start(ctx context.Context) func() {
	stopChan := make(chan struct{})

	go func() {
		log.Info("Schedule sync worker started")
		w.syncOnce()

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Info("Schedule sync worker shutting down (context cancelled)...")
				return
			case <-stopChan:
				log.Info("Schedule sync worker shutting down (stop requested)...")
				return
			case <-ticker.C:
				w.syncOnce()
			}
		}
	}()

	return func() {
		close(stopChan)
	}
}

func (w *SyncWorker) syncOnce() {
	if w.schedule != nil {
		full := services.FullSchedule(w.schedule.AutoSchedule(), w.schedule.ManualGames())
		w.engine.SetNextScheduledGame(services.NextGame(full, w.now()))
	}
	if w.revenue != nil {
		w.engine.SetRevenue(w.revenue.TotalRevenue())
	}
}

// MemoryScheduleSource is an in-memory ScheduleSource the operator surface
// mutates at runtime.
type MemoryScheduleSource struct {
	mu     sync.Mutex
	auto   entities.AutoScheduleConfig
	manual []*entities.ScheduledGame
}

// NewMemoryScheduleSource creates a source with the given recurring config.
func NewMemoryScheduleSource(auto entities.AutoScheduleConfig) *MemoryScheduleSource {
	return &MemoryScheduleSource{auto: auto}
}

// AutoSchedule returns the recurring slot configuration.
func (s *MemoryScheduleSource) AutoSchedule() entities.AutoScheduleConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.auto
}

// SetAutoSchedule replaces the recurring slot configuration.
func (s *MemoryScheduleSource) SetAutoSchedule(auto entities.AutoScheduleConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auto = auto
}

// ManualGames returns a copy of the operator-defined games.
func (s *MemoryScheduleSource) ManualGames() []*entities.ScheduledGame {
	s.mu.Lock()
	defer s.mu.Unlock()
	games := make([]*entities.ScheduledGame, len(s.manual))
	copy(games, s.manual)
	return games
}

// AddManualGame appends an operator-defined game.
func (s *MemoryScheduleSource) AddManualGame(game *entities.ScheduledGame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.manual = append(s.manual, game)
}

// RemoveManualGame deletes the manual game with the given ID.
func (s *MemoryScheduleSource) RemoveManualGame(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.manual[:0]
	for _, g := range s.manual {
		if g.ID != id {
			kept = append(kept, g)
		}
	}
	s.manual = kept
}

// MemoryRevenueSource accumulates completed purchase amounts in memory.
// The purchase collaborator records each sale; the engine reads the total.
type MemoryRevenueSource struct {
	mu    sync.Mutex
	total float64
}

// NewMemoryRevenueSource creates an empty revenue ledger.
func NewMemoryRevenueSource() *MemoryRevenueSource {
	return &MemoryRevenueSource{}
}

// RecordPurchase adds a completed purchase to the running total.
func (r *MemoryRevenueSource) RecordPurchase(amount float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.total += amount
}

// TotalRevenue returns the running total of completed purchases.
func (r *MemoryRevenueSource) TotalRevenue() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.total
}
