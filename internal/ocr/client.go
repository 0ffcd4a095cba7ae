// Package ocr is the client for the OCR.space text-extraction API.
// Engine 2 handles the dense small text on vehicle stickers best; the
// free tier rate-limits aggressively, so rate-limit failures are
// classified separately for the import queue's backoff loop.
package ocr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const defaultEndpoint = "https://api.ocr.space/parse/image"

// exit code 6 means the plan's request limit was exhausted
const exitCodeRateLimited = 6

// ErrRateLimited signals the provider rejected the call for quota
// reasons; the caller may retry after a delay.
var ErrRateLimited = errors.New("ocr provider rate limited")

type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
	log      *zap.Logger
}

func NewClient(apiKey string, log *zap.Logger) *Client {
	return &Client{
		endpoint: defaultEndpoint,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: 60 * time.Second},
		log:      log,
	}
}

type parseResponse struct {
	ParsedResults []struct {
		ParsedText string `json:"ParsedText"`
	} `json:"ParsedResults"`
	OCRExitCode           int             `json:"OCRExitCode"`
	IsErroredOnProcessing bool            `json:"IsErroredOnProcessing"`
	ErrorMessage          json.RawMessage `json:"ErrorMessage"`
}

// errorMessage flattens the provider's ErrorMessage field, which is
// sometimes a string and sometimes an array of strings.
func (p *parseResponse) errorMessage() string {
	if len(p.ErrorMessage) == 0 {
		return ""
	}
	var single string
	if err := json.Unmarshal(p.ErrorMessage, &single); err == nil {
		return single
	}
	var many []string
	if err := json.Unmarshal(p.ErrorMessage, &many); err == nil {
		return strings.Join(many, ", ")
	}
	return string(p.ErrorMessage)
}

// ParseImage submits a base64-encoded image and returns the extracted
// raw text. An empty string with nil error means the provider found no
// text at all.
func (c *Client) ParseImage(ctx context.Context, imageBase64, mimeType string) (string, error) {
	form := url.Values{}
	form.Set("apikey", c.apiKey)
	form.Set("base64Image", fmt.Sprintf("data:%s;base64,%s", mimeType, imageBase64))
	form.Set("language", "eng")
	form.Set("OCREngine", "2")
	form.Set("detectOrientation", "true")
	form.Set("scale", "true")
	form.Set("isOverlayRequired", "false")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("ocr request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", ErrRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		c.log.Warn("ocr http error", zap.Int("status", resp.StatusCode))
		return "", fmt.Errorf("ocr provider returned status %d", resp.StatusCode)
	}

	var parsed parseResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("ocr response decode: %w", err)
	}

	if parsed.IsErroredOnProcessing {
		msg := parsed.errorMessage()
		if parsed.OCRExitCode == exitCodeRateLimited || strings.Contains(strings.ToLower(msg), "limit") {
			return "", ErrRateLimited
		}
		return "", fmt.Errorf("ocr processing failed: %s", msg)
	}

	if len(parsed.ParsedResults) == 0 {
		return "", nil
	}
	return parsed.ParsedResults[0].ParsedText, nil
}
