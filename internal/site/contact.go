package site

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
)

const (
	// EngagedFor is how long the availability badge reads "Engaged" after a submit.
	EngagedFor = 3200 * time.Millisecond
	// ToastVisibleFor is how long a toast stays on screen.
	ToastVisibleFor = 4200 * time.Millisecond
	// ToastFadeFor is the exit transition after which a toast is removed.
	ToastFadeFor = 400 * time.Millisecond
)

const (
	StatusOnline  = "Online"
	StatusEngaged = "Engaged"
	StatusLatency = "Latency < 6h"
)

// ErrInvalidEmail is returned for input that is not a single email address.
var ErrInvalidEmail = errors.New("enter a valid email address")

// Toast is a transient confirmation.
type Toast struct {
	Title   string
	Body    string
	ShownAt time.Time
}

// Visible reports whether the toast is fully shown at now.
func (t Toast) Visible(now time.Time) bool {
	return !now.Before(t.ShownAt) && now.Before(t.ShownAt.Add(ToastVisibleFor))
}

// Gone reports whether the toast has finished its exit and can be dropped.
func (t Toast) Gone(now time.Time) bool {
	return !now.Before(t.ShownAt.Add(ToastVisibleFor + ToastFadeFor))
}

// Contact is the contact form plus the availability badge it drives.
type Contact struct {
	text ContactCopy

	engagedUntil time.Time
	hovering     bool
	toasts       []Toast
}

func NewContact(text ContactCopy) *Contact {
	if strings.TrimSpace(text.ReplyWindow) == "" {
		text.ReplyWindow = Default().Contact.ReplyWindow
	}
	return &Contact{text: text}
}

// Submit accepts the raw input value. Blank input is ignored (ok is false, no
// error). A valid address flips the badge to Engaged, raises a toast, and
// returns the normalized address for storage; the caller resets the input.
func (c *Contact) Submit(raw string, now time.Time) (email string, ok bool, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false, nil
	}
	addr, err := mail.ParseAddress(raw)
	if err != nil || addr.Name != "" || !strings.Contains(addr.Address, "@") {
		return "", false, ErrInvalidEmail
	}
	email = addr.Address

	c.engagedUntil = now.Add(EngagedFor)
	c.toasts = append(c.toasts, Toast{
		Title:   "Request received",
		Body:    fmt.Sprintf("I'll reply to %s within %s.", email, c.text.ReplyWindow),
		ShownAt: now,
	})
	return email, true, nil
}

// Hover sets whether the pointer is over the availability badge.
func (c *Contact) Hover(on bool) { c.hovering = on }

// Submitted reports whether the form is in its post-submit state.
func (c *Contact) Submitted(now time.Time) bool { return now.Before(c.engagedUntil) }

// Status is the availability badge text at now.
func (c *Contact) Status(now time.Time) string {
	switch {
	case c.hovering:
		return StatusLatency
	case c.Submitted(now):
		return StatusEngaged
	default:
		return StatusOnline
	}
}

// Toasts drops finished toasts and returns those still on screen, including
// ones in their exit transition.
func (c *Contact) Toasts(now time.Time) []Toast {
	live := c.toasts[:0]
	for _, t := range c.toasts {
		if !t.Gone(now) {
			live = append(live, t)
		}
	}
	c.toasts = live
	return append([]Toast(nil), live...)
}

// Busy reports whether any timer is still running, so hosts can stop ticking.
func (c *Contact) Busy(now time.Time) bool {
	return c.Submitted(now) || len(c.Toasts(now)) > 0
}
