package notify

import (
	"context"
	"fmt"
	"time"

	"fbauer/flatwatcher/internal/extract"
	"fbauer/flatwatcher/logger"
)

// Console writes announcements to standard output. It is the default channel.
type Console struct {
	log *logger.Logger
}

// NewConsole creates a console notifier
func NewConsole(log *logger.Logger) *Console {
	return &Console{log: log}
}

// Name returns the channel name
func (c *Console) Name() string {
	return "console"
}

// Notify prints the formatted message
func (c *Console) Notify(_ context.Context, offers []extract.Offer) error {
	fmt.Print(Format(time.Now(), offers))
	c.log.Info().Int("offers", len(offers)).Msg("Console notification written")
	return nil
}
