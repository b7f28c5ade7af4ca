// Package telegram implements the chat ports against the Telegram Bot API.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/bnema/telemux/internal/domain"
)

const (
	defaultBaseURL = "https://api.telegram.org"

	// Long-poll hold time requested from the API. The HTTP client
	// timeout must exceed it so held connections are not cut short.
	longPollSeconds = 30
	pollTimeout     = 35 * time.Second
	sendTimeout     = 10 * time.Second

	maxRetries = 3
)

// Client talks to a single bot and a single chat.
type Client struct {
	baseURL string
	token   string
	chatID  string
	http    *http.Client
	send    *http.Client
	logger  *slog.Logger

	// sleep is swapped out in tests to observe backoff waits.
	sleep func(ctx context.Context, d time.Duration) error
}

func NewClient(token, chatID string, logger *slog.Logger) *Client {
	return &Client{
		baseURL: defaultBaseURL,
		token:   token,
		chatID:  chatID,
		http:    &http.Client{Timeout: pollTimeout},
		send:    &http.Client{Timeout: sendTimeout},
		logger:  logger,
		sleep:   sleepContext,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

type apiEnvelope struct {
	OK          bool            `json:"ok"`
	Description string          `json:"description"`
	Result      json.RawMessage `json:"result"`
}

type apiUpdate struct {
	UpdateID int64 `json:"update_id"`
	Message  *struct {
		Text string `json:"text"`
		From *struct {
			FirstName string `json:"first_name"`
			Username  string `json:"username"`
		} `json:"from"`
	} `json:"message"`
}

// withRetries runs fn up to maxRetries times with exponential backoff
// between attempts. Backoff waits abort as soon as ctx is canceled.
func (c *Client) withRetries(ctx context.Context, op string, fn func() error) error {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			wait := time.Duration(1<<(attempt-1)) * time.Second
			c.logger.Warn("retrying "+op, "attempt", attempt+1, "wait", wait, "error", lastErr)
			if err := c.sleep(ctx, wait); err != nil {
				return err
			}
		}

		err := fn()
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		lastErr = err
	}
	return fmt.Errorf("%s after %d attempts: %w", op, maxRetries, lastErr)
}

// Updates long-polls getUpdates for messages newer than afterID.
// Transient failures are retried before the error is surfaced;
// callers treat that error as non-fatal.
func (c *Client) Updates(ctx context.Context, afterID int64) ([]domain.Update, error) {
	params := url.Values{}
	params.Set("offset", strconv.FormatInt(afterID+1, 10))
	params.Set("timeout", strconv.Itoa(longPollSeconds))
	endpoint := c.methodURL("getUpdates") + "?" + params.Encode()

	var updates []domain.Update
	err := c.withRetries(ctx, "getUpdates", func() error {
		var fetchErr error
		updates, fetchErr = c.fetchUpdates(ctx, endpoint)
		return fetchErr
	})
	if err != nil {
		return nil, err
	}
	return updates, nil
}

func (c *Client) fetchUpdates(ctx context.Context, endpoint string) ([]domain.Update, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var env apiEnvelope
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode getUpdates response: %w", err)
	}
	if !env.OK {
		return nil, fmt.Errorf("telegram api: %s", env.Description)
	}

	var raw []apiUpdate
	if err := json.Unmarshal(env.Result, &raw); err != nil {
		return nil, fmt.Errorf("decode updates: %w", err)
	}

	updates := make([]domain.Update, 0, len(raw))
	for _, u := range raw {
		upd := domain.Update{ID: u.UpdateID}
		if u.Message != nil {
			upd.Text = u.Message.Text
			if u.Message.From != nil {
				upd.From = u.Message.From.Username
				if upd.From == "" {
					upd.From = u.Message.From.FirstName
				}
			}
		}
		updates = append(updates, upd)
	}
	return updates, nil
}

// Notify sends text to the configured chat, retrying transient
// failures with the same backoff as polling.
func (c *Client) Notify(ctx context.Context, text string) error {
	return c.withRetries(ctx, "sendMessage", func() error {
		return c.postMessage(ctx, text)
	})
}

func (c *Client) postMessage(ctx context.Context, text string) error {
	body, err := json.Marshal(map[string]string{
		"chat_id":    c.chatID,
		"text":       text,
		"parse_mode": "HTML",
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.methodURL("sendMessage"), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.send.Do(req)
	if err != nil {
		return fmt.Errorf("sendMessage: %w", err)
	}
	defer resp.Body.Close()

	var env apiEnvelope
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&env); err != nil {
		return fmt.Errorf("decode sendMessage response: %w", err)
	}
	if !env.OK {
		return fmt.Errorf("sendMessage: %s", env.Description)
	}
	return nil
}

// Me fetches the bot identity. Used by connectivity checks.
func (c *Client) Me(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.methodURL("getMe"), nil)
	if err != nil {
		return "", err
	}
	resp, err := c.send.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var env apiEnvelope
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&env); err != nil {
		return "", fmt.Errorf("decode getMe response: %w", err)
	}
	if !env.OK {
		return "", fmt.Errorf("getMe: %s", env.Description)
	}

	var me struct {
		Username string `json:"username"`
	}
	if err := json.Unmarshal(env.Result, &me); err != nil {
		return "", err
	}
	return me.Username, nil
}

func (c *Client) methodURL(method string) string {
	return fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)
}
