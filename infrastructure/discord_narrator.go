package infrastructure

import (
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// DiscordNarrator posts engine announcements to a Discord channel.
// Announcements go out in FIFO order, and a priority announcement drops
// everything still queued so the table never narrates stale state.
type DiscordNarrator struct {
	session *discordgo.Session
	send    func(text string) error

	mu    sync.Mutex
	queue []string
	wake  chan struct{}
	done  chan struct{}
}

// NewDiscordNarrator connects the bot session and starts the send worker.
func NewDiscordNarrator(token, channelID string) (*DiscordNarrator, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}
	if err := session.Open(); err != nil {
		return nil, fmt.Errorf("failed to open Discord session: %w", err)
	}

	n := newQueuedNarrator(func(text string) error {
		_, err := session.ChannelMessageSend(channelID, text)
		return err
	})
	n.session = session

	log.WithField("channel_id", channelID).Info("Discord narrator connected")
	return n, nil
}

// newQueuedNarrator starts the send worker around an arbitrary transport.
func newQueuedNarrator(send func(text string) error) *DiscordNarrator {
	n := &DiscordNarrator{
		send: send,
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
	go n.run()
	return n
}

// Speak queues an announcement. Priority announcements clear the queue
// first so they are the next thing narrated.
func (n *DiscordNarrator) Speak(text string, priority bool) {
	n.mu.Lock()
	if priority {
		n.queue = n.queue[:0]
	}
	n.queue = append(n.queue, text)
	n.mu.Unlock()

	select {
	case n.wake <- struct{}{}:
	default:
	}
}

// Close stops the worker and closes the Discord session.
func (n *DiscordNarrator) Close() {
	close(n.done)
	if n.session != nil {
		if err := n.session.Close(); err != nil {
			log.WithError(err).Warn("Error closing Discord session")
		}
	}
}

func (n *DiscordNarrator) run() {
	for {
		select {
		case <-n.done:
			return
		case <-n.wake:
			for {
				n.mu.Lock()
				if len(n.queue) == 0 {
					n.mu.Unlock()
					break
				}
				text := n.queue[0]
				n.queue = n.queue[1:]
				n.mu.Unlock()

				if err := n.send(text); err != nil {
					log.WithError(err).Error("Failed to post announcement to Discord")
				}
			}
		}
	}
}
