package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
)

const defaultBaseURL = "https://api.telegram.org"

// Notifier delivers messages and photos through the Telegram Bot API.
type Notifier struct {
	http    *http.Client
	baseURL string
	token   string
	chatID  string
}

func NewNotifier(httpClient *http.Client, token, chatID string) *Notifier {
	return &Notifier{http: httpClient, baseURL: defaultBaseURL, token: token, chatID: chatID}
}

// NewNotifierWithBaseURL is used by tests to point at a fake API server.
func NewNotifierWithBaseURL(httpClient *http.Client, baseURL, token, chatID string) *Notifier {
	return &Notifier{http: httpClient, baseURL: baseURL, token: token, chatID: chatID}
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

func (n *Notifier) SendText(ctx context.Context, text string) error {
	payload, err := json.Marshal(map[string]string{
		"chat_id": n.chatID,
		"text":    text,
	})
	if err != nil {
		return fmt.Errorf("telegram: failed to marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.methodURL("sendMessage"), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("telegram: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return n.do(req)
}

func (n *Notifier) SendPhoto(ctx context.Context, png []byte, caption string) error {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	if err := mw.WriteField("chat_id", n.chatID); err != nil {
		return fmt.Errorf("telegram: failed to write chat_id field: %w", err)
	}
	if err := mw.WriteField("caption", caption); err != nil {
		return fmt.Errorf("telegram: failed to write caption field: %w", err)
	}
	part, err := mw.CreateFormFile("photo", "chart.png")
	if err != nil {
		return fmt.Errorf("telegram: failed to create photo part: %w", err)
	}
	if _, err = part.Write(png); err != nil {
		return fmt.Errorf("telegram: failed to write photo bytes: %w", err)
	}
	if err = mw.Close(); err != nil {
		return fmt.Errorf("telegram: failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.methodURL("sendPhoto"), &body)
	if err != nil {
		return fmt.Errorf("telegram: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	return n.do(req)
}

func (n *Notifier) methodURL(method string) string {
	return fmt.Sprintf("%s/bot%s/%s", n.baseURL, n.token, method)
}

func (n *Notifier) do(req *http.Request) error {
	resp, err := n.http.Do(req)
	if err != nil {
		return fmt.Errorf("telegram: failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("telegram: unexpected status %d: %s", resp.StatusCode, resp.Status)
	}

	var ar apiResponse
	if err = json.NewDecoder(resp.Body).Decode(&ar); err != nil {
		return fmt.Errorf("telegram: failed to decode response: %w", err)
	}
	if !ar.OK {
		return fmt.Errorf("telegram: api returned non-ok result: %s", ar.Description)
	}
	return nil
}
