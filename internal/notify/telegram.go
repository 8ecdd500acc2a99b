package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"fbauer/flatwatcher/internal/extract"
	"fbauer/flatwatcher/logger"
	watcherrors "fbauer/flatwatcher/pkg/errors"
)

const telegramAPIBase = "https://api.telegram.org"

// Telegram posts announcements through the Telegram bot API
type Telegram struct {
	token   string
	chatID  string
	apiBase string
	client  *http.Client
	log     *logger.Logger
}

// NewTelegram creates a Telegram notifier
func NewTelegram(token, chatID string, log *logger.Logger) *Telegram {
	return &Telegram{
		token:   token,
		chatID:  chatID,
		apiBase: telegramAPIBase,
		client:  &http.Client{Timeout: 15 * time.Second},
		log:     log,
	}
}

// Name returns the channel name
func (t *Telegram) Name() string {
	return "telegram"
}

type telegramMessage struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

// Notify posts one sendMessage call. Missing credentials are a configuration
// error returned before any request is attempted.
func (t *Telegram) Notify(ctx context.Context, offers []extract.Offer) error {
	if t.token == "" || t.chatID == "" {
		return watcherrors.NewConfiguration("telegram", "bot token or chat id not configured")
	}

	payload, err := json.Marshal(telegramMessage{
		ChatID:                t.chatID,
		Text:                  Format(time.Now(), offers),
		DisableWebPagePreview: false,
	})
	if err != nil {
		return watcherrors.NewNotify("telegram", "failed to encode message", err)
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", t.apiBase, t.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return watcherrors.NewNotify("telegram", "failed to create request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return watcherrors.NewNotify("telegram", "sendMessage request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return watcherrors.NewNotify("telegram",
			fmt.Sprintf("sendMessage returned status %d: %s", resp.StatusCode, string(body)), nil)
	}

	t.log.Info().Int("offers", len(offers)).Msg("Telegram notification sent")
	return nil
}
