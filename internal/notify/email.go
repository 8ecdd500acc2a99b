package notify

import (
	"context"
	"time"

	"fbauer/flatwatcher/internal/extract"
	"fbauer/flatwatcher/logger"
)

// Email is a stub channel: it logs the intended message and recipients
// without sending anything. SMTP delivery is accepted configuration but not
// implemented yet.
type Email struct {
	host string
	port int
	from string
	to   string
	log  *logger.Logger
}

// NewEmail creates the email stub notifier
func NewEmail(host string, port int, from, to string, log *logger.Logger) *Email {
	return &Email{host: host, port: port, from: from, to: to, log: log}
}

// Name returns the channel name
func (e *Email) Name() string {
	return "email"
}

// Notify logs the message that would have been sent. Never fails the cycle.
func (e *Email) Notify(_ context.Context, offers []extract.Offer) error {
	e.log.Warn().
		Str("smtp_host", e.host).
		Str("to", e.to).
		Str("message", Format(time.Now(), offers)).
		Msg("Email channel is not implemented, logging message instead")
	return nil
}
