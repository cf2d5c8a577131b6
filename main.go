package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"housie/application"
	"housie/config"
	"housie/domain/entities"
	"housie/domain/events"
	"housie/domain/interfaces"
	"housie/infrastructure"

	log "github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Get()

	if cfg.Environment == "production" {
		log.SetFormatter(&log.JSONFormatter{})
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("Received shutdown signal, shutting down gracefully...")
		cancel()
	}()

	if err := run(ctx, cfg); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	// Event publishing is optional; without NATS the engine still serves
	// its in-process subscribers.
	var publisher interfaces.EventPublisher = infrastructure.NewNoopEventPublisher()
	if cfg.NATSServers != "" {
		natsClient := infrastructure.NewNATSClient(cfg.NATSServers)
		if err := natsClient.Connect(); err != nil {
			return err
		}
		defer natsClient.Close()

		natsPublisher := infrastructure.NewNATSEventPublisher(natsClient)
		// Payout audit trail: every winner is logged in-process alongside
		// the published event.
		natsPublisher.RegisterLocalHandler(events.EventTypeWinnerDeclared, func(_ context.Context, event events.Event) error {
			win, ok := event.(events.WinnerDeclaredEvent)
			if !ok {
				return nil
			}
			log.WithFields(log.Fields{
				"winner":     win.WinnerName,
				"card_id":    win.CardID,
				"tier":       win.Tier,
				"amount":     win.Amount,
				"ball_count": win.BallCount,
			}).Info("Payout recorded")
			return nil
		})
		publisher = natsPublisher
	}

	var narrator interfaces.Narrator = infrastructure.NewLogNarrator()
	if cfg.DiscordToken != "" {
		discordNarrator, err := infrastructure.NewDiscordNarrator(cfg.DiscordToken, cfg.AnnounceChannelID)
		if err != nil {
			return err
		}
		defer discordNarrator.Close()
		narrator = discordNarrator
	}

	engine := application.NewDrawEngine(cfg, narrator, publisher)
	stopEngine := engine.Start(ctx)
	defer stopEngine()

	scheduleSource := application.NewMemoryScheduleSource(entities.AutoScheduleConfig{
		FirstGameTime:   cfg.FirstGameTime,
		LastGameTime:    cfg.LastGameTime,
		IntervalMinutes: cfg.IntervalMinutes,
		SeriesPrice:     cfg.SeriesPrice,
		Enabled:         true,
	})
	revenueSource := application.NewMemoryRevenueSource()

	syncWorker := application.NewSyncWorker(engine, scheduleSource, revenueSource, cfg.SchedulerPoll)
	stopSync := syncWorker.Start(ctx)
	defer stopSync()

	log.WithFields(log.Fields{
		"first_game": cfg.FirstGameTime,
		"last_game":  cfg.LastGameTime,
		"interval":   cfg.IntervalMinutes,
	}).Info("Housie draw service running")

	<-ctx.Done()
	return nil
}
