package analytics

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/stratix/backend/internal/domain/shared"
	"github.com/stratix/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// SignatureHeader carries the hex-encoded HMAC-SHA256 of the request body
const SignatureHeader = "X-Stratix-Signature"

const defaultRequestTimeout = 10 * time.Second

// EventEnvelope is the wire format delivered to the analytics sink
type EventEnvelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	AggregateType string          `json:"aggregate_type"`
	AggregateID   string          `json:"aggregate_id"`
	TenantID      string          `json:"tenant_id"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Payload       json.RawMessage `json:"payload"`
}

// SinkClient delivers domain events to the external analytics sink over HTTP
type SinkClient struct {
	httpClient *http.Client
	sinkURL    string
	secret     []byte
	logger     *zap.Logger
}

// SinkClientOption is a functional option for configuring the client
type SinkClientOption func(*SinkClient)

// WithSinkLogger sets the logger for the client
func WithSinkLogger(logger *zap.Logger) SinkClientOption {
	return func(c *SinkClient) {
		c.logger = logger
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(client *http.Client) SinkClientOption {
	return func(c *SinkClient) {
		c.httpClient = client
	}
}

// NewSinkClient creates a new analytics sink client
func NewSinkClient(cfg config.AnalyticsConfig, opts ...SinkClientOption) *SinkClient {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	client := &SinkClient{
		httpClient: &http.Client{Timeout: timeout},
		sinkURL:    cfg.SinkURL,
		secret:     []byte(cfg.SigningSecret),
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Deliver sends one domain event to the sink.
// The request body is signed with HMAC-SHA256 so the sink can verify origin.
func (c *SinkClient) Deliver(ctx context.Context, event shared.DomainEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	envelope := EventEnvelope{
		EventID:       event.EventID().String(),
		EventType:     event.EventType(),
		AggregateType: event.AggregateType(),
		AggregateID:   event.AggregateID().String(),
		TenantID:      event.TenantID().String(),
		OccurredAt:    event.OccurredAt(),
		Payload:       payload,
	}

	body, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to marshal envelope: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.sinkURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build sink request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(SignatureHeader, c.Sign(body))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("analytics sink delivery failed",
			zap.String("event_id", envelope.EventID),
			zap.String("event_type", envelope.EventType),
			zap.Error(err))
		return fmt.Errorf("failed to deliver event to sink: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("analytics sink rejected event",
			zap.String("event_id", envelope.EventID),
			zap.String("event_type", envelope.EventType),
			zap.Int("status", resp.StatusCode))
		return fmt.Errorf("sink returned status %d", resp.StatusCode)
	}

	c.logger.Debug("delivered event to analytics sink",
		zap.String("event_id", envelope.EventID),
		zap.String("event_type", envelope.EventType))
	return nil
}

// Sign computes the hex-encoded HMAC-SHA256 signature of the body
func (c *SinkClient) Sign(body []byte) string {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks a signature against the body using constant-time comparison
func (c *SinkClient) VerifySignature(body []byte, signature string) bool {
	expected := c.Sign(body)
	return hmac.Equal([]byte(expected), []byte(signature))
}
