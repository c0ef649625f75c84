package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ahmetcoskunkizilkaya/nudge-worker/internal/models"
)

// TelegramChannel pushes nudges through the Telegram bot API. The
// destination is the chat id linked to the user's account.
type TelegramChannel struct {
	token      string
	baseURL    string
	httpClient *http.Client
}

type tgSendRequest struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

func NewTelegramChannel(token string, timeout time.Duration) *TelegramChannel {
	return &TelegramChannel{
		token:      token,
		baseURL:    "https://api.telegram.org",
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (t *TelegramChannel) Send(ctx context.Context, user *models.UserContext, text string) error {
	if t.token == "" || user.TGChatID == "" {
		return ErrNoDestination
	}

	body, _ := json.Marshal(tgSendRequest{
		ChatID:                user.TGChatID,
		Text:                  text,
		DisableWebPagePreview: true,
	})

	url := fmt.Sprintf("%s/bot%s/sendMessage", t.baseURL, t.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram API status %d", resp.StatusCode)
	}
	return nil
}
