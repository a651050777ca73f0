// Package tts is a thin client for an HTTP text-to-speech endpoint.
package tts

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/noamlvn/nikudquiz/internal/logger"
)

// Client speaks to a TTS endpoint that takes text/voice/lang query
// parameters and answers with raw audio bytes.
type Client struct {
	endpoint   string
	voice      string
	language   string
	httpClient *http.Client
	log        *logger.Logger
}

// New creates a Client for the given endpoint, voice and language.
func New(endpoint, voice, language string) *Client {
	return &Client{
		endpoint:   endpoint,
		voice:      voice,
		language:   language,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        logger.Default().WithPrefix("tts"),
	}
}

// Synthesize renders the given text as speech and returns the audio bytes.
func (c *Client) Synthesize(ctx context.Context, text string) ([]byte, error) {
	log := logger.FromContext(ctx).WithPrefix("tts").WithField("text", text)

	q := url.Values{}
	q.Set("text", text)
	q.Set("voice", c.voice)
	q.Set("lang", c.language)
	reqURL := c.endpoint + "?" + q.Encode()

	log.Debug("synthesizing via %s", c.endpoint)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		log.Error("failed to create request: %v", err)
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("failed to reach tts endpoint: %v", err)
		return nil, err
	}
	defer resp.Body.Close()

	log.Debug("tts response received in %v, status=%d", time.Since(start), resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Error("tts request failed: status=%d, body=%s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("tts status %d: %s", resp.StatusCode, string(body))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("failed to read tts audio: %v", err)
		return nil, err
	}
	if len(audio) == 0 {
		log.Error("tts returned empty audio")
		return nil, fmt.Errorf("tts returned empty audio for %q", text)
	}

	log.Info("synthesized %d bytes", len(audio))
	return audio, nil
}
