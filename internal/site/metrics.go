package site

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// CountDuration is how long a metric takes to count up from zero.
const CountDuration = 1200 * time.Millisecond

// Metric is a headline number that counts up when the page loads. Target is
// the final value as written ("48", "4.9"); decimals are shown only when the
// target has them.
type Metric struct {
	Label  string `json:"label" yaml:"label"`
	Target string `json:"target" yaml:"target"`
	Suffix string `json:"suffix,omitempty" yaml:"suffix,omitempty"`
}

// Progress is the eased animation progress in [0,1] after elapsed.
func Progress(elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	p := float64(elapsed) / float64(CountDuration)
	if p > 1 {
		p = 1
	}
	return 1 - math.Pow(1-p, 3)
}

// CountDone reports whether the count-up has reached its target.
func CountDone(elapsed time.Duration) bool { return elapsed >= CountDuration }

// ValueAt renders the metric as it reads elapsed into the animation. A target
// that is not a number renders verbatim.
func (m Metric) ValueAt(elapsed time.Duration) string {
	target := strings.TrimSpace(m.Target)
	end, err := strconv.ParseFloat(target, 64)
	if err != nil {
		return target + m.Suffix
	}
	current := end * Progress(elapsed)
	if strings.Contains(target, ".") {
		return strconv.FormatFloat(current, 'f', 1, 64) + m.Suffix
	}
	return strconv.FormatFloat(math.Round(current), 'f', 0, 64) + m.Suffix
}

// Final is the fully counted value.
func (m Metric) Final() string { return m.ValueAt(CountDuration) }
