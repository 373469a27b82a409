// Package whatsapp sends outbound messages through an Evolution API
// instance. It implements the bot.Transport interface: one call, one
// message, success only on a 2xx acknowledgement.
package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// ErrSendRejected indicates Evolution API answered with a non-success
// status.
var ErrSendRejected = errors.New("whatsapp send rejected")

// requestTimeout bounds a single send. Evolution API is normally fast;
// anything slower than this is treated as a failed chunk.
const requestTimeout = 30 * time.Second

// Client is an Evolution API client bound to one WhatsApp instance.
type Client struct {
	baseURL  string
	apiKey   string
	instance string
	http     *http.Client
	logger   *slog.Logger
}

// NewClient creates a Client. httpClient may be nil; a default with a
// request timeout is used.
func NewClient(baseURL, apiKey, instance string, logger *slog.Logger, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: requestTimeout}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		apiKey:   apiKey,
		instance: instance,
		http:     httpClient,
		logger:   logger,
	}
}

// sendTextRequest is the Evolution API sendText payload.
type sendTextRequest struct {
	Number string `json:"number"`
	Text   string `json:"text"`
}

// Send delivers one message to the given number. Success requires a 200
// or 201 from the API.
func (c *Client) Send(ctx context.Context, to, text string) error {
	body, err := json.Marshal(sendTextRequest{Number: to, Text: text})
	if err != nil {
		return fmt.Errorf("encoding send request: %w", err)
	}

	url := fmt.Sprintf("%s/message/sendText/%s", c.baseURL, c.instance)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building send request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("posting to Evolution API: %w", err)
	}
	defer func() {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		c.logger.Warn("whatsapp send rejected", "status", resp.StatusCode, "to", to)
		return fmt.Errorf("%w: status %d", ErrSendRejected, resp.StatusCode)
	}
	return nil
}
