package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/boddenberg/momentum-bfa-go/internal/domain"
	"github.com/boddenberg/momentum-bfa-go/internal/infra/resilience"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
)

var tracer = otel.Tracer("client")

const serviceName = "momentum-api"

// APIError is a non-2xx answer from the Momentum API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("momentum API returned %d: %s", e.StatusCode, e.Message)
}

// MomentumClient talks to the Momentum dashboard API.
type MomentumClient struct {
	httpClient *http.Client
	baseURL    string
	cb         *gobreaker.CircuitBreaker
	bulkhead   *resilience.Bulkhead
	cfg        resilience.Config
}

// NewMomentumClient creates a new MomentumClient.
func NewMomentumClient(httpClient *http.Client, baseURL string, cb *gobreaker.CircuitBreaker, cfg resilience.Config) *MomentumClient {
	return &MomentumClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		cb:         cb,
		bulkhead:   resilience.NewBulkhead(cfg.MaxConcurrency),
		cfg:        cfg,
	}
}

// CreateSession opens a dashboard session. An empty portfolio uses the server default.
func (c *MomentumClient) CreateSession(ctx context.Context, portfolio domain.PortfolioType) (*domain.DashboardState, error) {
	var state domain.DashboardState
	err := c.call(ctx, "MomentumClient.CreateSession", http.MethodPost, "/api/sessions",
		domain.CreateSessionRequest{PortfolioType: portfolio}, &state)
	if err != nil {
		return nil, err
	}
	return &state, nil
}

// GetSession fetches the state of a session.
func (c *MomentumClient) GetSession(ctx context.Context, id string) (*domain.DashboardState, error) {
	var state domain.DashboardState
	if err := c.call(ctx, "MomentumClient.GetSession", http.MethodGet, sessionPath(id, ""), nil, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// DeleteSession discards a session.
func (c *MomentumClient) DeleteSession(ctx context.Context, id string) error {
	return c.call(ctx, "MomentumClient.DeleteSession", http.MethodDelete, sessionPath(id, ""), nil, nil)
}

// Toggle flips one transaction type in a session.
func (c *MomentumClient) Toggle(ctx context.Context, id, token string) (*domain.ToggleResponse, error) {
	var resp domain.ToggleResponse
	err := c.call(ctx, "MomentumClient.Toggle", http.MethodPost, sessionPath(id, "/toggle"),
		domain.ToggleRequest{TransactionType: token}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// SetDuration sets the session duration in months.
func (c *MomentumClient) SetDuration(ctx context.Context, id string, months int) (*domain.DashboardState, error) {
	var state domain.DashboardState
	err := c.call(ctx, "MomentumClient.SetDuration", http.MethodPut, sessionPath(id, "/duration"),
		domain.DurationRequest{Months: &months}, &state)
	if err != nil {
		return nil, err
	}
	return &state, nil
}

// Calculate publishes a new result for the session.
func (c *MomentumClient) Calculate(ctx context.Context, id string) (*domain.DashboardState, error) {
	var state domain.DashboardState
	if err := c.call(ctx, "MomentumClient.Calculate", http.MethodPost, sessionPath(id, "/calculate"), nil, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// CalculateValue runs the single-type calculation.
func (c *MomentumClient) CalculateValue(ctx context.Context, req domain.CalculateRequest) (*domain.CalculationResult, error) {
	var resp domain.CalculateResponse
	if err := c.call(ctx, "MomentumClient.CalculateValue", http.MethodPost, "/api/calculate", req, &resp); err != nil {
		return nil, err
	}
	return resp.CalculatedValue, nil
}

// ListRecommendations fetches the recommendations of a portfolio.
func (c *MomentumClient) ListRecommendations(ctx context.Context, portfolio domain.PortfolioType) ([]domain.Recommendation, error) {
	var resp struct {
		Recommendations []domain.Recommendation `json:"recommendations"`
	}
	path := "/api/recommendations/" + url.PathEscape(string(portfolio))
	if err := c.call(ctx, "MomentumClient.ListRecommendations", http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Recommendations, nil
}

func sessionPath(id, suffix string) string {
	return "/api/sessions/" + url.PathEscape(id) + suffix
}

// call performs one API request with bulkhead, circuit breaker, retry and tracing.
// 4xx answers are not retried and do not count against the breaker.
func (c *MomentumClient) call(ctx context.Context, op, method, path string, body, out any) error {
	ctx, span := tracer.Start(ctx, op)
	defer span.End()
	span.SetAttributes(
		attribute.String("http.method", method),
		attribute.String("http.path", path),
	)

	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", op, err)
		}
		payload = b
	}

	err := c.bulkhead.Do(ctx, func() error {
		_, err := c.cb.Execute(func() (any, error) {
			return nil, resilience.RetryWithBackoff(ctx, c.cfg, func() error {
				return c.roundTrip(ctx, method, path, payload, out)
			})
		})
		return err
	})

	switch {
	case err == nil:
		return nil
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return &domain.ErrCircuitOpen{Service: serviceName}
	case errors.Is(err, context.DeadlineExceeded):
		return &domain.ErrTimeout{Operation: op}
	default:
		span.RecordError(err)
		return &domain.ErrExternalService{Service: serviceName, Err: err}
	}
}

func (c *MomentumClient) roundTrip(ctx context.Context, method, path string, payload []byte, out any) error {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return resilience.Permanent(err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: readErrorMessage(resp.Body)}
		if resp.StatusCode < 500 {
			return resilience.Permanent(apiErr)
		}
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resilience.Permanent(fmt.Errorf("decode response: %w", err))
	}
	return nil
}

func readErrorMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4<<10))
	if err != nil {
		return ""
	}
	var body struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(raw, &body) == nil && body.Error != "" {
		return body.Error
	}
	return string(bytes.TrimSpace(raw))
}
