package tracker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// TokenSource supplies the caller's current credential per request.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a TokenSource for a pre-issued credential.
type StaticToken string

func (t StaticToken) Token(context.Context) (string, error) {
	if t == "" {
		return "", errors.New("no credential configured")
	}
	return string(t), nil
}

// Client talks to the tracking backend, decorating every request with the
// caller's credential.
type Client struct {
	baseURL string
	tokens  TokenSource
	http    *http.Client
}

func NewClient(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

type pointPayload struct {
	RunID     string  `json:"runId"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Submit delivers one point for the run. The server assigns the timestamp;
// the client never sends one.
func (c *Client) Submit(ctx context.Context, runID string, pos Position) error {
	body, err := json.Marshal(pointPayload{RunID: runID, Latitude: pos.Latitude, Longitude: pos.Longitude})
	if err != nil {
		return err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/location", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server rejected point: %s", resp.Status)
	}
	return nil
}

// SummaryResult is either a full summary or a degenerate message, matching
// the two response shapes of GET /summary.
type SummaryResult struct {
	Message             string  `json:"message,omitempty"`
	PointCount          int     `json:"pointCount,omitempty"`
	TotalDistanceMeters float64 `json:"totalDistanceMeters"`
	TotalTimeSeconds    float64 `json:"totalTimeSeconds"`
	AverageSpeedMps     float64 `json:"averageSpeedMps"`
	MaxSpeedMps         float64 `json:"maxSpeedMps"`
}

// RunRef is one entry of the run history; StartTime is epoch milliseconds.
type RunRef struct {
	RunID     string `json:"runId"`
	StartTime int64  `json:"startTime"`
}

func (c *Client) Summary(ctx context.Context, runID string) (SummaryResult, error) {
	var out SummaryResult
	err := c.getJSON(ctx, "/summary/"+runID, &out)
	return out, err
}

func (c *Client) Runs(ctx context.Context) ([]RunRef, error) {
	var out []RunRef
	err := c.getJSON(ctx, "/runs", &out)
	return out, err
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request failed: %s", resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("credential unavailable: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return req, nil
}
