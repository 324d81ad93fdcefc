// Package pricingapi is the HTTP client of the remote decoration pricing
// service.
package pricingapi

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

	"printshop/internal/core/domain/model/decoration"
	"printshop/internal/core/domain/model/pricing"
	"printshop/internal/pkg/errs"
)

const maxErrorBody = 4 << 10

// Client calls POST /pricing/calculate and GET /health. Every failure is an
// *errs.TransportError: ErrNetwork when no response arrived, ErrInvalidResponse
// for a non-2xx status or a body that does not decode.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("pricing API URL")
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logger.With("component", "pricing_api_client"),
	}, nil
}

func (c *Client) Calculate(ctx context.Context, req decoration.CanonicalRequest) (pricing.Result, error) {
	endpoint := c.baseURL + "/pricing/calculate"

	body, err := json.Marshal(fromCanonical(req))
	if err != nil {
		return pricing.Result{}, fmt.Errorf("encode pricing request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return pricing.Result{}, errs.NewNetworkError(endpoint, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return pricing.Result{}, errs.NewNetworkError(endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return pricing.Result{}, errs.NewInvalidResponseError(endpoint, statusError(resp))
	}

	var dto calculateResponse
	if err = json.NewDecoder(resp.Body).Decode(&dto); err != nil {
		return pricing.Result{}, errs.NewInvalidResponseError(endpoint, fmt.Errorf("decode body: %w", err))
	}
	if dto.TotalPrice == nil || dto.Subtotal == nil {
		return pricing.Result{}, errs.NewInvalidResponseError(endpoint, errors.New("total_price and subtotal are required"))
	}

	c.logger.DebugContext(ctx, "Pricing service quoted request",
		"service", req.Service, "quantity", req.Quantity, "total", dto.TotalPrice.String())
	return dto.toDomain(), nil
}

func (c *Client) Health(ctx context.Context) error {
	endpoint := c.baseURL + "/health"

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return errs.NewNetworkError(endpoint, err)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return errs.NewNetworkError(endpoint, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errs.NewInvalidResponseError(endpoint, fmt.Errorf("status %d", resp.StatusCode))
	}
	return nil
}

// statusError reads the service's {"message": ...} error body when present.
func statusError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var body struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &body) == nil && body.Message != "" {
		return fmt.Errorf("status %d: %s", resp.StatusCode, body.Message)
	}
	return fmt.Errorf("status %d", resp.StatusCode)
}
