package room

import (
	"slotpoker-server/pkg/account"
	"time"

	"github.com/google/uuid"
)

const logMessageLimit = 25

// LogMessage is a committed transition as shown to connected clients
type LogMessage struct {
	UUID    string    `json:"uuid"`
	Actor   uuid.UUID `json:"actor"`
	Version int64     `json:"version"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

func newLogMessage(version int64, t *account.Transition) *LogMessage {
	return &LogMessage{
		UUID:    uuid.New().String(),
		Actor:   t.Actor,
		Version: version,
		Message: t.Message,
		Time:    time.Now(),
	}
}

// addLogMessages adds log messages, keeping only the most recent ones
// Note: this must only be called from within the run loop
func (d *Dealer) addLogMessages(messages ...*LogMessage) {
	m := append(d.logMessages, messages...)
	count := len(m)
	if count > logMessageLimit {
		m = m[count-logMessageLimit:]
	}

	d.logMessages = m
}
