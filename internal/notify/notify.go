// Package notify dispatches announcements for newly detected offers through
// one configured channel. Delivery is best-effort: dispatch failures are
// reported as errors for the caller to log and must never stop a cycle.
package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fbauer/flatwatcher/config"
	"fbauer/flatwatcher/internal/extract"
	"fbauer/flatwatcher/logger"
)

// Notifier dispatches one consolidated message for a batch of new offers
type Notifier interface {
	// Notify formats and sends an announcement for the given offers
	Notify(ctx context.Context, offers []extract.Offer) error

	// Name returns the channel name for logging
	Name() string
}

// Format builds the consolidated announcement: a timestamped header plus one
// bulleted line per offer.
func Format(now time.Time, offers []extract.Offer) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %d new housing offer(s):\n", now.Format("2006-01-02 15:04"), len(offers))
	for _, offer := range offers {
		fmt.Fprintf(&b, "• %s — %s\n", offer.Title, offer.URL)
	}
	return b.String()
}

// New selects the notifier for the configured method. Unknown methods fall
// back to the console channel with a warning; credential checks happen at
// dispatch time so a misconfigured channel degrades per cycle instead of
// failing startup.
func New(cfg config.Config, log *logger.Logger) Notifier {
	switch cfg.NotifyMethod {
	case config.MethodTelegram:
		return NewTelegram(cfg.TelegramBotToken, cfg.TelegramChatID, log)
	case config.MethodWebhook:
		return NewWebhook(cfg.WebhookURL, log)
	case config.MethodEmail:
		return NewEmail(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom, cfg.SMTPTo, log)
	case config.MethodConsole:
		return NewConsole(log)
	default:
		log.Warn().Str("method", cfg.NotifyMethod).Msg("Unknown notification method, using console")
		return NewConsole(log)
	}
}
