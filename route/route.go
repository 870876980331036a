// Package route reconstructs the relay path of a message from its Received
// headers and measures the time spent between hops.
package route

import (
	"fmt"
	"math"
	"time"

	"github.com/synqronlabs/authlens/message"
)

// DelayClass classifies the time spent between two hops.
type DelayClass string

const (
	// DelayOrigin marks the first hop, which has no predecessor.
	DelayOrigin DelayClass = "origin"

	// DelayNormal is a delay below the warning threshold.
	DelayNormal DelayClass = "normal"

	// DelayWarning is a delay at or above the warning threshold and at most
	// the danger threshold.
	DelayWarning DelayClass = "warning"

	// DelayDanger is a delay above the danger threshold.
	DelayDanger DelayClass = "danger"

	// DelayUnknown is used when this hop or the previous one has no date.
	DelayUnknown DelayClass = "unknown"
)

// unknownLabel is shown for hops without a measurable delay.
const unknownLabel = "--"

// Delay is the time spent between a hop and its predecessor.
type Delay struct {
	Class DelayClass `json:"class"`

	// Seconds is the floored delay. Only meaningful when Known is true.
	Seconds int64 `json:"seconds"`

	// Known reports whether both timestamps were available.
	Known bool `json:"known"`

	// Label is a compact rendering such as "+5s" or "+3m55s", or "--".
	Label string `json:"label"`
}

// Thresholds configures delay classification.
type Thresholds struct {
	// Warning is the smallest delay classified as a warning. Default: 60s.
	Warning time.Duration

	// Danger is exceeded by delays classified as danger. Default: 300s.
	Danger time.Duration
}

// DefaultThresholds are the thresholds used when none are configured.
var DefaultThresholds = Thresholds{
	Warning: 60 * time.Second,
	Danger:  300 * time.Second,
}

func (th Thresholds) withDefaults() Thresholds {
	if th.Warning <= 0 {
		th.Warning = DefaultThresholds.Warning
	}
	if th.Danger <= 0 {
		th.Danger = DefaultThresholds.Danger
	}
	return th
}

// Classify computes the delay between prev and cur. first marks the first
// hop of the route; zero times are treated as absent.
func (th Thresholds) Classify(first bool, prev, cur time.Time) Delay {
	th = th.withDefaults()

	if prev.IsZero() || cur.IsZero() {
		if first {
			return Delay{Class: DelayOrigin, Label: unknownLabel}
		}
		return Delay{Class: DelayUnknown, Label: unknownLabel}
	}

	secs := int64(math.Floor(cur.Sub(prev).Seconds()))
	d := Delay{Seconds: secs, Known: true}

	warning := int64(th.Warning / time.Second)
	danger := int64(th.Danger / time.Second)
	switch {
	case secs < 0:
		d.Class = DelayNormal
		d.Label = fmt.Sprintf("%ds", secs)
	case secs < warning:
		d.Class = DelayNormal
		d.Label = fmt.Sprintf("+%ds", secs)
	default:
		d.Label = fmt.Sprintf("+%dm%ds", secs/60, secs%60)
		if secs > danger {
			d.Class = DelayDanger
		} else {
			d.Class = DelayWarning
		}
	}
	return d
}

// Reconstruct returns the hops of the message in chronological order, the
// origin first. Received headers are stored newest-first, so they are
// reversed. Hops with neither a from nor a by clause are dropped.
//
// The delay of each hop is measured against the date of the hop directly
// before it; a hop without a date breaks the chain for its successor.
func Reconstruct(headers message.HeaderMap, th Thresholds) []Hop {
	received := headers.Values(message.HeaderReceived)
	hops := make([]Hop, 0, len(received))
	for i := len(received) - 1; i >= 0; i-- {
		hop := ParseReceived(received[i])
		if hop.From == "" && hop.By == "" {
			continue
		}
		hops = append(hops, hop)
	}

	var prev time.Time
	for i := range hops {
		hops[i].Delay = th.Classify(i == 0, prev, hops[i].Date)
		prev = hops[i].Date
	}
	return hops
}

// LastBy returns the receiving host of the most recent Received header,
// lower-cased, or "" when there is none. This is the relay closest to the
// recipient and the only one whose authentication results are trusted.
func LastBy(headers message.HeaderMap) string {
	received := headers.Values(message.HeaderReceived)
	if len(received) == 0 {
		return ""
	}
	return toLower(ParseReceived(received[0]).By)
}

// toLower lower-cases ASCII A-Z without affecting other bytes.
func toLower(s string) string {
	r := []byte(s)
	for i, c := range r {
		if c >= 'A' && c <= 'Z' {
			r[i] = c + 0x20
		}
	}
	return string(r)
}
