package application

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"housie/config"
	"housie/domain/entities"
	"housie/domain/events"
	"housie/domain/interfaces"
	"housie/domain/services"

	log "github.com/sirupsen/logrus"
)

// DrawEngine owns the single authoritative game state: it runs the
// scheduler, the ball-draw loop, win detection and prize computation, and
// pushes state snapshots to subscribers. All mutations go through one
// mutex, so the one-writer-at-a-time invariant holds even though the
// scheduler, the draw loop and the broadcaster run on separate goroutines.
//
// Construct one engine per table and pass it around; there is no package
// singleton.
type DrawEngine struct {
	cfg       *config.Config
	narrator  interfaces.Narrator
	publisher interfaces.EventPublisher
	detector  *services.WinDetector

	mu         sync.Mutex
	state      *entities.GameState
	pool       []*entities.Card
	poolIDs    map[string]struct{}
	next       *entities.ScheduledGame
	revenue    float64
	announced  map[int]bool // proximity minutes already called out
	stopCh     chan struct{}
	resetTimer *time.Timer

	subMu       sync.Mutex
	subscribers map[int64]func(entities.GameState)
	nextSubID   int64

	quit     chan struct{}
	quitOnce sync.Once

	// Injectable for deterministic tests.
	now  func() time.Time
	seed func() int64
}

// NewDrawEngine creates an engine in the initial SCHEDULED state.
func NewDrawEngine(cfg *config.Config, narrator interfaces.Narrator, publisher interfaces.EventPublisher) *DrawEngine {
	return &DrawEngine{
		cfg:         cfg,
		narrator:    narrator,
		publisher:   publisher,
		detector:    services.NewWinDetector(),
		state:       entities.NewGameState(),
		poolIDs:     make(map[string]struct{}),
		announced:   make(map[int]bool),
		subscribers: make(map[int64]func(entities.GameState)),
		quit:        make(chan struct{}),
		now:         time.Now,
		seed:        func() int64 { return time.Now().UnixNano() },
	}
}

// Start begins the scheduler and the periodic snapshot broadcast. The
// returned cleanup stops both and halts any running game.
func (e *DrawEngine) Start(ctx context.Context) func() {
	go func() {
		log.Info("Draw engine started")

		scheduler := time.NewTicker(e.cfg.SchedulerPoll)
		defer scheduler.Stop()
		broadcast := time.NewTicker(e.cfg.BroadcastSync)
		defer broadcast.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Info("Draw engine shutting down (context cancelled)...")
				return
			case <-e.quit:
				log.Info("Draw engine shutting down (stop requested)...")
				return
			case <-scheduler.C:
				e.schedulerTick()
			case <-broadcast.C:
				e.notify(e.GetState())
			}
		}
	}()

	return func() {
		e.quitOnce.Do(func() { close(e.quit) })
	}
}

// Subscribe registers an observer. The current snapshot is delivered
// before any subsequent broadcast, and the returned function unsubscribes.
// The initial delivery happens outside the registry lock, so observers may
// subscribe or unsubscribe from inside their own callback.
func (e *DrawEngine) Subscribe(observer func(entities.GameState)) func() {
	snap := e.GetState()

	e.subMu.Lock()
	e.nextSubID++
	id := e.nextSubID
	e.subscribers[id] = observer
	e.subMu.Unlock()

	observer(snap)

	return func() {
		e.subMu.Lock()
		delete(e.subscribers, id)
		e.subMu.Unlock()
	}
}

// GetState returns a point-in-time deep copy of the engine state.
func (e *DrawEngine) GetState() entities.GameState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone()
}

// CardsInPlay returns the size of the active card pool.
func (e *DrawEngine) CardsInPlay() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.pool)
}

// SetNextScheduledGame updates the next game's time, price and manual
// prize overrides, and recomputes the prize mapping. Announcement
// thresholds reset only when the scheduled time actually changes.
func (e *DrawEngine) SetNextScheduledGame(game *entities.ScheduledGame) {
	e.mu.Lock()
	if gameTime(e.next) != gameTime(game) {
		e.announced = make(map[int]bool)
	}
	e.next = game
	e.applyScheduleLocked()
	snap := e.state.Clone()
	e.mu.Unlock()

	e.notify(snap)
}

// SetRevenue updates the revenue baseline used by the prize calculator.
// Negative figures are absorbed, not rejected.
func (e *DrawEngine) SetRevenue(amount float64) {
	if amount < 0 {
		log.WithField("amount", amount).Warn("ignoring negative revenue figure")
		return
	}
	e.mu.Lock()
	e.revenue = amount
	e.state.Prizes = services.CalculatePrizes(e.revenue, e.next)
	snap := e.state.Clone()
	e.mu.Unlock()

	e.notify(snap)
}

// UpdatePrizes merges operator overrides into the current prize mapping.
func (e *DrawEngine) UpdatePrizes(overrides map[entities.PrizeTier]float64) {
	e.mu.Lock()
	for tier, amount := range overrides {
		switch tier {
		case entities.TierQuadra:
			e.state.Prizes.Quadra = amount
		case entities.TierLinha:
			e.state.Prizes.Linha = amount
		case entities.TierBingo:
			e.state.Prizes.Bingo = amount
		case entities.TierAcumulado:
			e.state.Prizes.Acumulado = amount
		}
	}
	snap := e.state.Clone()
	e.mu.Unlock()

	e.notify(snap)
}

// RegisterCards adds newly purchased cards to the active pool. Cards whose
// ID is already registered are silently filtered, so repeated registration
// is idempotent. Registration is accepted in any phase: cards added
// mid-game join the current draw. The pool is cleared when a game
// finishes.
func (e *DrawEngine) RegisterCards(cards []*entities.Card) {
	e.mu.Lock()
	added := 0
	for _, card := range cards {
		if card == nil {
			continue
		}
		if _, ok := e.poolIDs[card.ID]; ok {
			continue
		}
		e.poolIDs[card.ID] = struct{}{}
		e.pool = append(e.pool, card)
		added++
	}
	poolSize := len(e.pool)
	e.mu.Unlock()

	if added > 0 {
		e.publish(events.CardsRegisteredEvent{Added: added, PoolSize: poolSize})
		log.WithFields(log.Fields{
			"added":     added,
			"pool_size": poolSize,
		}).Info("Cards registered into active pool")
	}
}

// StartGame locks entry, resets the per-game fields and kicks off the
// WAITING -> PLAYING sequence. It is a no-op while a game is already
// waiting or playing.
func (e *DrawEngine) StartGame() {
	e.mu.Lock()
	if e.state.Status == entities.StatusPlaying || e.state.Status == entities.StatusWaiting {
		e.mu.Unlock()
		return
	}
	if e.resetTimer != nil {
		e.resetTimer.Stop()
		e.resetTimer = nil
	}
	e.state.Status = entities.StatusWaiting
	e.state.IsEntryLocked = true
	e.state.DrawnNumbers = []int{}
	e.state.BallCount = 0
	e.state.CurrentBall = 0
	e.state.LastWinner = nil
	e.state.CurrentPrizeTier = entities.TierQuadra

	stop := make(chan struct{})
	e.stopCh = stop

	welcome := welcomeAnnouncement(e.state.Prizes)
	started := events.GameStartedEvent{
		GameTime:    e.state.NextGameTime,
		SeriesPrice: e.state.SeriesPrice,
		Prizes:      e.state.Prizes,
		CardsInPlay: len(e.pool),
	}
	snap := e.state.Clone()
	e.mu.Unlock()

	e.notify(snap)
	e.narrator.Speak(welcome, true)
	e.publish(started)
	log.WithFields(log.Fields{
		"game_time":     started.GameTime,
		"cards_in_play": started.CardsInPlay,
	}).Info("Game starting, table locked")

	go e.runGame(stop)
}

// StopGame forces the FINISHED state immediately, from any phase. The draw
// loop halts without drawing another ball or honoring any pending delay.
func (e *DrawEngine) StopGame() {
	e.mu.Lock()
	stop := e.stopCh
	e.stopCh = nil
	e.mu.Unlock()
	if stop != nil {
		close(stop)
	}
	e.finishGame(true)
}

// ToggleEmergencyUnlock flips the entry lock independent of game phase so
// operators can admit purchases even mid-game.
func (e *DrawEngine) ToggleEmergencyUnlock() {
	e.mu.Lock()
	e.state.IsEntryLocked = !e.state.IsEntryLocked
	locked := e.state.IsEntryLocked
	snap := e.state.Clone()
	e.mu.Unlock()

	e.notify(snap)
	e.publish(events.EntryLockToggledEvent{Locked: locked})
	log.WithField("locked", locked).Info("Entry lock toggled")
}

// runGame drives one game: the intro pause, then the ball loop. Named
// suspension points (intro, inter-ball, celebration) all select on the
// per-game stop channel so StopGame interrupts them mid-wait.
func (e *DrawEngine) runGame(stop chan struct{}) {
	if !e.pause(e.cfg.IntroPause, stop) {
		return
	}

	e.mu.Lock()
	if e.state.Status != entities.StatusWaiting {
		e.mu.Unlock()
		return
	}
	e.state.Status = entities.StatusPlaying
	snap := e.state.Clone()
	e.mu.Unlock()
	e.notify(snap)

	// One seeded shuffle per game: not adversarially predictable, but
	// reproducible given the logged seed.
	seed := e.seed()
	rng := rand.New(rand.NewSource(seed))
	order := rng.Perm(entities.MaxBall)
	log.WithField("seed", seed).Info("Ball order shuffled")

	for _, idx := range order {
		ball := idx + 1

		e.mu.Lock()
		if e.state.Status != entities.StatusPlaying {
			e.mu.Unlock()
			return
		}
		e.state.CurrentBall = ball
		e.state.DrawnNumbers = append(e.state.DrawnNumbers, ball)
		e.state.BallCount++
		tier := e.state.CurrentPrizeTier
		drawn := e.state.DrawnSet()
		pool := make([]*entities.Card, len(e.pool))
		copy(pool, e.pool)
		count := e.state.BallCount
		snap := e.state.Clone()
		e.mu.Unlock()

		e.notify(snap)
		e.narrator.Speak(ballAnnouncement(ball), true)
		e.publish(events.BallDrawnEvent{Ball: ball, BallCount: count, Tier: tier})

		if winner := e.detector.FindWinner(pool, drawn, tier); winner != nil {
			if !e.handleWin(winner, stop) {
				return
			}
			e.mu.Lock()
			terminal := e.state.CurrentPrizeTier == entities.TierDone
			e.mu.Unlock()
			if terminal {
				break
			}
		}

		if !e.pause(e.cfg.BallInterval, stop) {
			return
		}
	}

	e.finishGame(false)
}

// handleWin records the winner, runs the celebration pause, then clears
// the winner and advances the tier. Returns false when the game was
// stopped during the celebration.
func (e *DrawEngine) handleWin(winner *entities.Winner, stop chan struct{}) bool {
	e.mu.Lock()
	e.state.LastWinner = winner
	amount := services.PrizeForTier(e.state.Prizes, winner.Tier)
	count := e.state.BallCount
	snap := e.state.Clone()
	e.mu.Unlock()

	e.notify(snap)
	e.narrator.Speak(winnerAnnouncement(winner), true)
	e.publish(events.WinnerDeclaredEvent{
		WinnerName: winner.Name,
		CardID:     winner.Card.ID,
		Tier:       winner.Tier,
		Amount:     amount,
		BallCount:  count,
	})
	log.WithFields(log.Fields{
		"winner":     winner.Name,
		"tier":       winner.Tier,
		"card_id":    winner.Card.ID,
		"amount":     amount,
		"ball_count": count,
	}).Info("Winner declared")

	if !e.pause(e.cfg.CelebrationPause, stop) {
		return false
	}

	e.mu.Lock()
	if e.state.Status != entities.StatusPlaying {
		e.mu.Unlock()
		return false
	}
	e.state.LastWinner = nil
	e.state.CurrentPrizeTier = winner.Tier.Next()
	snap = e.state.Clone()
	e.mu.Unlock()
	e.notify(snap)
	return true
}

// finishGame transitions to FINISHED, clears the active pool and schedules
// the cooldown reset back to SCHEDULED.
func (e *DrawEngine) finishGame(stopped bool) {
	e.mu.Lock()
	if e.state.Status == entities.StatusFinished {
		e.mu.Unlock()
		return
	}
	e.state.Status = entities.StatusFinished
	e.pool = nil
	e.poolIDs = make(map[string]struct{})
	e.announced = make(map[int]bool)
	count := e.state.BallCount
	snap := e.state.Clone()
	e.resetTimer = time.AfterFunc(e.cfg.FinishCooldown, e.resetAfterCooldown)
	e.mu.Unlock()

	e.notify(snap)
	e.publish(events.GameFinishedEvent{BallCount: count, Stopped: stopped})
	log.WithFields(log.Fields{
		"ball_count": count,
		"stopped":    stopped,
	}).Info("Game finished, card pool cleared")
}

// resetAfterCooldown returns the engine to its initial SCHEDULED state and
// re-applies the still-known next game and revenue.
func (e *DrawEngine) resetAfterCooldown() {
	e.mu.Lock()
	if e.state.Status != entities.StatusFinished {
		e.mu.Unlock()
		return
	}
	e.state = entities.NewGameState()
	e.applyScheduleLocked()
	snap := e.state.Clone()
	e.mu.Unlock()
	e.notify(snap)
}

// schedulerTick fires proximity announcements and, at minute granularity,
// starts the next game when the wall clock matches its time.
func (e *DrawEngine) schedulerTick() {
	e.checkProximityAnnouncements()

	e.mu.Lock()
	start := e.state.Status == entities.StatusScheduled &&
		e.next != nil &&
		e.now().Format("15:04") == e.next.Time
	e.mu.Unlock()

	if start {
		e.StartGame()
	}
}

// checkProximityAnnouncements raises a one-time countdown call when the
// minutes remaining first reach 3, 2 and 1. Each threshold fires at most
// once per scheduled game.
func (e *DrawEngine) checkProximityAnnouncements() {
	e.mu.Lock()
	if e.state.Status != entities.StatusScheduled || e.next == nil {
		e.mu.Unlock()
		return
	}
	mins, ok := services.MinutesUntil(e.next.Time, e.now())
	if !ok || mins <= 0 || mins > 3 || e.announced[mins] {
		e.mu.Unlock()
		return
	}
	e.announced[mins] = true
	e.mu.Unlock()

	e.narrator.Speak(proximityAnnouncement(mins), true)
}

// applyScheduleLocked re-derives the schedule-facing state fields and the
// prize mapping from the next game and current revenue. Caller holds e.mu.
func (e *DrawEngine) applyScheduleLocked() {
	if e.next != nil {
		e.state.NextGameTime = e.next.Time
		e.state.SeriesPrice = e.next.Price
		e.state.IsManualGame = e.next.IsManual
	} else {
		e.state.NextGameTime = ""
		e.state.SeriesPrice = entities.DefaultSeriesPrice
		e.state.IsManualGame = false
	}
	e.state.Prizes = services.CalculatePrizes(e.revenue, e.next)
}

// pause waits for the given duration at a named suspension point. It
// returns false when the wait was interrupted by StopGame or shutdown.
func (e *DrawEngine) pause(d time.Duration, stop chan struct{}) bool {
	select {
	case <-stop:
		return false
	case <-e.quit:
		return false
	case <-time.After(d):
		return true
	}
}

// notify delivers a snapshot to every subscriber. Never called while e.mu
// is held, so observers may call back into the engine.
func (e *DrawEngine) notify(snap entities.GameState) {
	e.subMu.Lock()
	observers := make([]func(entities.GameState), 0, len(e.subscribers))
	for _, fn := range e.subscribers {
		observers = append(observers, fn)
	}
	e.subMu.Unlock()

	for _, fn := range observers {
		fn(snap)
	}
}

func (e *DrawEngine) publish(event events.Event) {
	if e.publisher == nil {
		return
	}
	if err := e.publisher.Publish(event); err != nil {
		log.WithFields(log.Fields{
			"event_type": event.Type(),
			"error":      err,
		}).Error("Failed to publish engine event")
	}
}

func gameTime(g *entities.ScheduledGame) string {
	if g == nil {
		return ""
	}
	return g.Time
}
