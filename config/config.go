package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Engine pacing. These durations are part of the observable contract:
	// narration timing depends on them.
	IntroPause       time.Duration // delay between WAITING and the first ball
	BallInterval     time.Duration // delay between drawn balls
	CelebrationPause time.Duration // pause after a win before the tier advances
	FinishCooldown   time.Duration // delay before FINISHED resets to SCHEDULED
	SchedulerPoll    time.Duration // cadence of the next-game time check
	BroadcastSync    time.Duration // cadence of the periodic snapshot push

	// Auto-schedule defaults
	FirstGameTime   string // "HH:mm"
	LastGameTime    string // "HH:mm"
	IntervalMinutes int
	SeriesPrice     float64

	// NATS configuration
	NATSServers string // NATS server addresses (comma-separated), empty disables publishing

	// Discord narrator configuration
	DiscordToken      string // empty disables the Discord narrator
	AnnounceChannelID string

	// Environment
	Environment string // "development" or "production"
}

var (
	instance *Config
	once     sync.Once
	mu       sync.Mutex // Protects instance for test setup
)

// Get returns the global configuration instance
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()

	// If instance is already set (e.g., by tests), return it
	if instance != nil {
		return instance
	}

	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			if os.Getenv("GO_TEST") == "1" || os.Getenv("ENVIRONMENT") == "test" {
				instance = NewTestConfig()
			} else {
				panic(fmt.Sprintf("failed to load config: %v", err))
			}
		}
	})
	return instance
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		// Pacing defaults: 10s intro, 6s per ball, 15s celebration,
		// 5s cooldown, 10s scheduler poll, 1s sync.
		IntroPause:       secondsEnv("INTRO_PAUSE_SECONDS", 10),
		BallInterval:     secondsEnv("BALL_INTERVAL_SECONDS", 6),
		CelebrationPause: secondsEnv("CELEBRATION_PAUSE_SECONDS", 15),
		FinishCooldown:   secondsEnv("FINISH_COOLDOWN_SECONDS", 5),
		SchedulerPoll:    secondsEnv("SCHEDULER_POLL_SECONDS", 10),
		BroadcastSync:    secondsEnv("BROADCAST_SYNC_SECONDS", 1),

		// Auto-schedule defaults
		FirstGameTime:   getEnvWithDefault("FIRST_GAME_TIME", "10:00"),
		LastGameTime:    getEnvWithDefault("LAST_GAME_TIME", "23:30"),
		IntervalMinutes: 30,
		SeriesPrice:     10.0,

		// NATS
		NATSServers: os.Getenv("NATS_SERVERS"),

		// Discord narrator
		DiscordToken:      os.Getenv("DISCORD_TOKEN"),
		AnnounceChannelID: os.Getenv("ANNOUNCE_CHANNEL_ID"),

		// Environment
		Environment: os.Getenv("ENVIRONMENT"),
	}

	if interval := os.Getenv("INTERVAL_MINUTES"); interval != "" {
		if parsed, err := strconv.Atoi(interval); err == nil && parsed > 0 {
			config.IntervalMinutes = parsed
		}
	}
	if price := os.Getenv("SERIES_PRICE"); price != "" {
		if parsed, err := strconv.ParseFloat(price, 64); err == nil && parsed >= 0 {
			config.SeriesPrice = parsed
		}
	}

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		if _, err := time.Parse("15:04", config.FirstGameTime); err != nil {
			return nil, fmt.Errorf("FIRST_GAME_TIME must be HH:mm: %w", err)
		}
		if _, err := time.Parse("15:04", config.LastGameTime); err != nil {
			return nil, fmt.Errorf("LAST_GAME_TIME must be HH:mm: %w", err)
		}
		if config.DiscordToken != "" && config.AnnounceChannelID == "" {
			return nil, fmt.Errorf("ANNOUNCE_CHANNEL_ID is required when DISCORD_TOKEN is set")
		}
	}

	return config, nil
}

func secondsEnv(key string, defaultSeconds int) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed >= 0 {
			return time.Duration(parsed) * time.Second
		}
	}
	return time.Duration(defaultSeconds) * time.Second
}

// getEnvWithDefault returns the environment variable value or a default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Test helpers - only use in tests

// SetTestConfig overrides the global config instance for testing
// This should only be called from test files
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance and sync.Once for testing
// This should only be called from test files
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig creates a minimal config suitable for unit tests. Pacing
// is collapsed to near-zero so engine tests run fast.
func NewTestConfig() *Config {
	return &Config{
		IntroPause:       time.Millisecond,
		BallInterval:     time.Millisecond,
		CelebrationPause: time.Millisecond,
		FinishCooldown:   time.Millisecond,
		SchedulerPoll:    5 * time.Millisecond,
		BroadcastSync:    5 * time.Millisecond,
		FirstGameTime:    "10:00",
		LastGameTime:     "23:30",
		IntervalMinutes:  30,
		SeriesPrice:      10.0,
		Environment:      "test",
	}
}
