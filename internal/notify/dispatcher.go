package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Dispatcher is the client for the external push-notification service.
// Callers treat it as fire-and-forget: errors are logged, never allowed to
// block or fail the live signaling path.
type Dispatcher struct {
	baseURL string
	token   string
	client  *http.Client
}

type Options struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

func New(opts Options) *Dispatcher {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Dispatcher{
		baseURL: opts.BaseURL,
		token:   opts.Token,
		client:  &http.Client{Timeout: timeout},
	}
}

// Notification is one push request: a message, explicit recipients and an
// arbitrary structured payload the client app interprets.
type Notification struct {
	Message    string         `json:"message"`
	Recipients []string       `json:"recipients,omitempty"`
	Data       map[string]any `json:"data,omitempty"`
}

// Receipt is what the dispatcher reports back on accepted delivery.
type Receipt struct {
	ID        string `json:"id"`
	Delivered int    `json:"delivered"`
}

func (d *Dispatcher) Send(ctx context.Context, n Notification) (*Receipt, error) {
	body, err := json.Marshal(n)
	if err != nil {
		return nil, fmt.Errorf("marshal notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL+"/notifications", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+d.token)

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("dispatch notification: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("dispatcher status %d", resp.StatusCode)
	}

	var rec Receipt
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		return nil, fmt.Errorf("decode receipt: %w", err)
	}
	return &rec, nil
}
