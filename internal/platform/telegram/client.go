// Package telegram is a minimal Bot API client covering what the bot needs:
// long polling, text messages with reply keyboards, and media relay by
// file_id.
package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const defaultBaseURL = "https://api.telegram.org"

type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// response is the common Bot API envelope.
type response struct {
	Ok          bool            `json:"ok"`
	Description string          `json:"description,omitempty"`
	Result      json.RawMessage `json:"result,omitempty"`
}

func NewClient(token string) *Client {
	return &Client{
		httpClient: &http.Client{
			// Must exceed the getUpdates long-poll timeout.
			Timeout: 90 * time.Second,
		},
		baseURL: defaultBaseURL,
		token:   token,
	}
}

// NewClientWithBaseURL is used by tests to point the client at a stub server.
func NewClientWithBaseURL(token, baseURL string) *Client {
	c := NewClient(token)
	c.baseURL = baseURL
	return c
}

// GetMe fetches the bot's own identity; used as a startup credential check.
func (c *Client) GetMe(ctx context.Context) (*User, error) {
	var me User
	if err := c.call(ctx, "getMe", nil, &me); err != nil {
		return nil, fmt.Errorf("getMe: %w", err)
	}
	return &me, nil
}

// GetUpdates long-polls for updates with update_id greater than or equal to
// offset. timeoutSec is the server-side hold time.
func (c *Client) GetUpdates(ctx context.Context, offset int64, timeoutSec int) ([]Update, error) {
	params := url.Values{
		"offset":  {strconv.FormatInt(offset, 10)},
		"timeout": {strconv.Itoa(timeoutSec)},
	}
	var updates []Update
	if err := c.call(ctx, "getUpdates", params, &updates); err != nil {
		return nil, fmt.Errorf("getUpdates: %w", err)
	}
	return updates, nil
}

// SendMessage sends HTML-formatted text, optionally with a reply keyboard.
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string, kb *ReplyKeyboardMarkup) error {
	params := url.Values{
		"chat_id":    {strconv.FormatInt(chatID, 10)},
		"text":       {text},
		"parse_mode": {"HTML"},
	}
	if kb != nil {
		markup, err := json.Marshal(kb)
		if err != nil {
			return fmt.Errorf("marshal keyboard: %w", err)
		}
		params.Set("reply_markup", string(markup))
	}
	if err := c.call(ctx, "sendMessage", params, nil); err != nil {
		return fmt.Errorf("sendMessage to %d: %w", chatID, err)
	}
	return nil
}

// SendPhoto relays an already-uploaded photo by file_id.
func (c *Client) SendPhoto(ctx context.Context, chatID int64, fileID, caption string) error {
	return c.sendMedia(ctx, "sendPhoto", "photo", chatID, fileID, caption)
}

func (c *Client) SendVideo(ctx context.Context, chatID int64, fileID, caption string) error {
	return c.sendMedia(ctx, "sendVideo", "video", chatID, fileID, caption)
}

func (c *Client) SendDocument(ctx context.Context, chatID int64, fileID, caption string) error {
	return c.sendMedia(ctx, "sendDocument", "document", chatID, fileID, caption)
}

func (c *Client) sendMedia(ctx context.Context, apiMethod, field string, chatID int64, fileID, caption string) error {
	params := url.Values{
		"chat_id": {strconv.FormatInt(chatID, 10)},
		field:     {fileID},
	}
	if caption != "" {
		params.Set("caption", caption)
	}
	if err := c.call(ctx, apiMethod, params, nil); err != nil {
		return fmt.Errorf("%s to %d: %w", apiMethod, chatID, err)
	}
	return nil
}

func (c *Client) call(ctx context.Context, apiMethod string, params url.Values, result interface{}) error {
	endpoint := fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, apiMethod)

	var body io.Reader
	if params != nil {
		body = strings.NewReader(params.Encode())
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if params != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var envelope response
	if err := json.Unmarshal(data, &envelope); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	if !envelope.Ok {
		log.Debug().Str("method", apiMethod).Str("description", envelope.Description).Msg("telegram API error")
		return fmt.Errorf("telegram API error: %s", envelope.Description)
	}
	if result != nil {
		if err := json.Unmarshal(envelope.Result, result); err != nil {
			return fmt.Errorf("failed to parse result: %w", err)
		}
	}
	return nil
}
