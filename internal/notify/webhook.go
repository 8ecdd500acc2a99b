package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"fbauer/flatwatcher/internal/extract"
	"fbauer/flatwatcher/logger"
	watcherrors "fbauer/flatwatcher/pkg/errors"
)

// Webhook posts announcements as a generic {"content": ...} JSON payload,
// compatible with common chat webhook receivers.
type Webhook struct {
	url    string
	client *http.Client
	log    *logger.Logger
}

// NewWebhook creates a webhook notifier
func NewWebhook(url string, log *logger.Logger) *Webhook {
	return &Webhook{
		url:    url,
		client: &http.Client{Timeout: 15 * time.Second},
		log:    log,
	}
}

// Name returns the channel name
func (w *Webhook) Name() string {
	return "webhook"
}

// Notify posts the formatted message. A missing target URL is a
// configuration error returned before any request is attempted.
func (w *Webhook) Notify(ctx context.Context, offers []extract.Offer) error {
	if w.url == "" {
		return watcherrors.NewConfiguration("webhook", "webhook URL not configured")
	}

	payload, err := json.Marshal(map[string]string{
		"content": Format(time.Now(), offers),
	})
	if err != nil {
		return watcherrors.NewNotify("webhook", "failed to encode payload", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(payload))
	if err != nil {
		return watcherrors.NewNotify("webhook", "failed to create request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return watcherrors.NewNotify("webhook", "webhook request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return watcherrors.NewNotify("webhook",
			fmt.Sprintf("webhook returned status %d", resp.StatusCode), nil)
	}

	w.log.Info().Int("offers", len(offers)).Msg("Webhook notification sent")
	return nil
}
