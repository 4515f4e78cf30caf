// Package notify implements the transient notification area used for error
// and success messages.
package notify

import "time"

// DefaultSuccessDelay is how long a success message stays visible.
const DefaultSuccessDelay = 3 * time.Second

// Treatment is the visual style of the notification.
type Treatment int

const (
	TreatmentError Treatment = iota
	TreatmentSuccess
)

// Dismissal is a pending auto-hide. It only takes effect if no other
// notification has been shown since it was issued.
type Dismissal struct {
	Seq   uint64
	After time.Duration
}

// Notification is a snapshot of the notification area.
type Notification struct {
	Message   string
	Visible   bool
	Treatment Treatment
}

// Channel is the notification area. It never starts timers on its own:
// callers schedule Dismiss with the returned Dismissal (the TUI uses
// tea.Tick).
type Channel struct {
	message   string
	visible   bool
	treatment Treatment
	seq       uint64
	delay     time.Duration
}

// NewChannel creates a hidden channel. A non-positive delay selects
// DefaultSuccessDelay.
func NewChannel(successDelay time.Duration) *Channel {
	if successDelay <= 0 {
		successDelay = DefaultSuccessDelay
	}
	return &Channel{delay: successDelay}
}

// ShowError shows message with the error treatment until hidden.
func (c *Channel) ShowError(message string) {
	c.seq++
	c.message = message
	c.visible = true
	c.treatment = TreatmentError
}

// ShowSuccess shows message with the success treatment and returns the
// dismissal the caller must schedule.
func (c *Channel) ShowSuccess(message string) Dismissal {
	c.seq++
	c.message = message
	c.visible = true
	c.treatment = TreatmentSuccess
	return Dismissal{Seq: c.seq, After: c.delay}
}

// Dismiss hides the notification and restores the error treatment, unless a
// newer notification superseded d. It reports whether d took effect.
func (c *Channel) Dismiss(d Dismissal) bool {
	if d.Seq != c.seq {
		return false
	}
	c.visible = false
	c.treatment = TreatmentError
	return true
}

// Hide unconditionally hides the notification.
func (c *Channel) Hide() {
	c.visible = false
}

// Current returns a snapshot of the notification area.
func (c *Channel) Current() Notification {
	return Notification{Message: c.message, Visible: c.visible, Treatment: c.treatment}
}
