package site

import (
	"math/rand"
	"time"
)

const (
	// LogSize is how many events the activity log shows at once.
	LogSize = 4
	// SpinFor is how long the refresh control spins after a shuffle.
	SpinFor = 400 * time.Millisecond
)

type Event struct {
	Status  string `json:"status" yaml:"status"`
	Message string `json:"message" yaml:"message"`
	Time    string `json:"time" yaml:"time"`
}

// StatusLine is the secondary line under an event message.
func (e Event) StatusLine() string { return e.Status + " · " + e.Time }

// Initial is the first render: source order, trimmed to LogSize.
func Initial(events []Event) []Event {
	return trimLog(append([]Event(nil), events...))
}

// Shuffle returns a uniformly permuted copy of events trimmed to LogSize. The
// input is left untouched.
func Shuffle(events []Event, rng *rand.Rand) []Event {
	out := append([]Event(nil), events...)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return trimLog(out)
}

func trimLog(events []Event) []Event {
	if len(events) > LogSize {
		return events[:LogSize]
	}
	return events
}
