package state

import (
	"fmt"
	"slices"

	"github.com/leonelquinteros/gotext"
)

// DefaultMessageLimit is how many messages a log keeps unless configured otherwise
const DefaultMessageLimit = 5

// Message keys, translated through gotext
const (
	MsgSoftWallPlaced       = "SOFT_WALL_PLACED"
	MsgSoftWallRemoved      = "SOFT_WALL_REMOVED"
	MsgBudgetExhausted      = "SOFT_WALL_BUDGET_EXHAUSTED"
	MsgMutationsCleared     = "MUTATIONS_CLEARED"
	MsgConfigurationChanged = "CONFIGURATION_CHANGED"
)

// translate looks keys up at runtime; a function variable keeps go vet from
// treating the key as a format string
var translate = gotext.Get

// Message translates key and appends the details, space separated
func Message(key string, details ...any) string {
	text := translate(key)
	for _, d := range details {
		text += " " + fmt.Sprint(d)
	}
	return text
}

// MessageLog keeps the most recent messages
type MessageLog struct {
	limit    int
	messages []string
}

// NewMessageLog creates a log keeping at most limit messages.
// A non-positive limit means DefaultMessageLimit.
func NewMessageLog(limit int) *MessageLog {
	if limit <= 0 {
		limit = DefaultMessageLimit
	}
	return &MessageLog{limit: limit, messages: make([]string, 0, limit)}
}

// Add appends msg, dropping the oldest messages past the limit
func (l *MessageLog) Add(msg string) {
	l.messages = append(l.messages, msg)

	// Keep only the last limit messages
	if len(l.messages) > l.limit {
		l.messages = l.messages[len(l.messages)-l.limit:]
	}
}

// All returns a copy of the messages, oldest first
func (l *MessageLog) All() []string {
	return slices.Clone(l.messages)
}
