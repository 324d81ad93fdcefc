// Package backend is the HTTP client of the order backend. It reads orders in
// whatever shape the backend stores them and writes status changes back.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/order"
	"printshop/internal/pkg/errs"
)

const maxErrorBody = 4 << 10

// Client implements ports.OrderBackend over GET /api/orders/:id and
// POST /api/orders/:id/status.
type Client struct {
	baseURL string
	http    *http.Client
	mapper  mapper
	logger  *slog.Logger
}

func NewClient(baseURL string, timeout time.Duration, clock kernel.Clock, logger *slog.Logger) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("order backend URL")
	}
	if clock == nil {
		clock = kernel.SystemClock{}
	}
	logger = logger.With("component", "order_backend_client")
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		mapper:  mapper{clock: clock, logger: logger},
		logger:  logger,
	}, nil
}

// GetOrder fetches and reshapes one order.
//
// Returns:
//   - *order.Order: the order with status, history and amounts normalized
//   - error: *errs.ObjectNotFoundError on 404, *errs.TransportError otherwise
func (c *Client) GetOrder(ctx context.Context, id string) (*order.Order, error) {
	endpoint := c.orderURL(id)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, errs.NewNetworkError(endpoint, err)
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, errs.NewNetworkError(endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, errs.NewObjectNotFoundErrorWithCause("order", id, statusError(resp))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errs.NewInvalidResponseError(endpoint, statusError(resp))
	}

	var dto orderDTO
	if err = json.NewDecoder(resp.Body).Decode(&dto); err != nil {
		return nil, errs.NewInvalidResponseError(endpoint, fmt.Errorf("decode body: %w", err))
	}
	if strings.TrimSpace(string(dto.ID)) == "" {
		dto.ID = flexString(id)
	}

	o, err := c.mapper.toOrder(ctx, dto)
	if err != nil {
		return nil, errs.NewInvalidResponseError(endpoint, err)
	}
	return o, nil
}

// UpdateOrderStatus stores the new status. A 2xx reply carrying
// {"success": false} is treated as a refusal.
func (c *Client) UpdateOrderStatus(ctx context.Context, id string, status order.Status) error {
	endpoint := c.orderURL(id) + "/status"

	body, err := json.Marshal(updateStatusRequest{Status: status.String()})
	if err != nil {
		return fmt.Errorf("encode status update: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return errs.NewNetworkError(endpoint, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return errs.NewNetworkError(endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return errs.NewObjectNotFoundErrorWithCause("order", id, statusError(resp))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errs.NewInvalidResponseError(endpoint, statusError(resp))
	}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var reply updateStatusResponse
	if len(bytes.TrimSpace(raw)) > 0 && json.Unmarshal(raw, &reply) == nil &&
		reply.Success != nil && !*reply.Success {
		msg := reply.Message
		if msg == "" {
			msg = "backend refused the update"
		}
		return errs.NewInvalidResponseError(endpoint, errors.New(msg))
	}

	c.logger.DebugContext(ctx, "Order status stored", "order_id", id, "status", status.String())
	return nil
}

func (c *Client) orderURL(id string) string {
	return c.baseURL + "/api/orders/" + url.PathEscape(id)
}

// statusError reads the backend's {"message": ...} or {"error": ...} body when present.
func statusError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(raw, &body) == nil {
		if msg := firstNonEmpty(body.Message, body.Error); msg != "" {
			return fmt.Errorf("status %d: %s", resp.StatusCode, msg)
		}
	}
	return fmt.Errorf("status %d", resp.StatusCode)
}
