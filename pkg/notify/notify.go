package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// DrawSummary is the payload pushed to the sink after a successful draw
type DrawSummary struct {
	GiveawayID  string `json:"giveawayId"`
	Title       string `json:"title"`
	WinnerCount int    `json:"winnerCount"`
	EntryCount  int    `json:"entryCount"`
}

// Sink represents an outbound notification destination. Delivery is best
// effort; callers log failures and move on.
type Sink interface {
	PushDrawSummary(summary DrawSummary) error
}

// WebhookSink posts draw summaries to a configured HTTP endpoint
type WebhookSink struct {
	url        string
	authToken  string
	httpClient *http.Client
}

// NewWebhookSink creates a new WebhookSink
func NewWebhookSink(url, authToken string) Sink {
	return &WebhookSink{
		url:       url,
		authToken: authToken,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// PushDrawSummary posts the summary as JSON
func (s *WebhookSink) PushDrawSummary(summary DrawSummary) error {
	body, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal draw summary: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+s.authToken)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

// MockSink records pushed summaries for tests and local runs
type MockSink struct {
	mu        sync.Mutex
	Summaries []DrawSummary
	Err       error
}

// NewMockSink creates a new MockSink
func NewMockSink() *MockSink {
	return &MockSink{}
}

// PushDrawSummary records the summary and returns the configured error
func (s *MockSink) PushDrawSummary(summary DrawSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return s.Err
	}
	s.Summaries = append(s.Summaries, summary)
	return nil
}

// Pushed returns a copy of the recorded summaries
func (s *MockSink) Pushed() []DrawSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]DrawSummary, len(s.Summaries))
	copy(out, s.Summaries)
	return out
}
