package game

import (
	"strings"

	"github.com/rs/zerolog"
)

// EventKind controls the color of an event in the log panel.
type EventKind uint8

const (
	EventInfo    EventKind = iota // cyan
	EventWarning                  // yellow
	EventRefused                  // red
	EventFlight                   // green
)

// Event is a single line in the event log.
type Event struct {
	Text string
	Kind EventKind
}

// EventLog is a bounded FIFO of events. Every event is also written to the
// structured logger.
type EventLog struct {
	Events  []Event
	maxSize int
	width   int
	logger  zerolog.Logger
}

// NewEventLog creates a log that keeps the most recent maxSize lines,
// wrapping text at width columns.
func NewEventLog(maxSize, width int, logger zerolog.Logger) *EventLog {
	return &EventLog{
		Events:  make([]Event, 0, maxSize),
		maxSize: maxSize,
		width:   width,
		logger:  logger,
	}
}

// Add appends an event, evicting the oldest lines if full.
func (l *EventLog) Add(text string, kind EventKind) {
	switch kind {
	case EventWarning, EventRefused:
		l.logger.Warn().Msg(text)
	default:
		l.logger.Info().Msg(text)
	}

	for _, line := range wrapText(text, l.width) {
		ev := Event{Text: line, Kind: kind}
		if len(l.Events) >= l.maxSize {
			copy(l.Events, l.Events[1:])
			l.Events[len(l.Events)-1] = ev
		} else {
			l.Events = append(l.Events, ev)
		}
	}
}

// Recent returns the last n lines, or fewer if the log is shorter.
func (l *EventLog) Recent(n int) []Event {
	n = min(n, len(l.Events))
	return l.Events[len(l.Events)-n:]
}

// wrapText splits s into lines no longer than width. A single word longer
// than width gets a line of its own.
func wrapText(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}
	if width <= 0 || len(s) <= width {
		return []string{strings.Join(words, " ")}
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
		} else {
			line += " " + w
		}
	}
	return append(lines, line)
}
