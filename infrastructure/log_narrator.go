package infrastructure

import (
	log "github.com/sirupsen/logrus"
)

// LogNarrator writes announcements to the application log. Used when no
// Discord narrator is configured.
type LogNarrator struct{}

// NewLogNarrator creates a log-backed narrator.
func NewLogNarrator() *LogNarrator {
	return &LogNarrator{}
}

// Speak logs the announcement.
func (n *LogNarrator) Speak(text string, priority bool) {
	log.WithFields(log.Fields{
		"priority": priority,
	}).Info("ANNOUNCE: " + text)
}
