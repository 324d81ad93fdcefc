package http_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpapi "printshop/internal/adapters/in/http"
	"printshop/internal/core/application/quoting"
	"printshop/internal/core/application/usecases/commands"
	"printshop/internal/core/application/usecases/queries"
	"printshop/internal/core/domain/model/decoration"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/order"
	"printshop/internal/core/domain/model/pricing"
	"printshop/internal/pkg/errs"
	"printshop/internal/pkg/metrics"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCalculator struct{ mock.Mock }

func (m *MockCalculator) Handle(ctx context.Context, query queries.CalculatePricingQuery) (pricing.Result, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(pricing.Result), args.Error(1)
}

type MockOrderReader struct{ mock.Mock }

func (m *MockOrderReader) Handle(ctx context.Context, query queries.GetOrderQuery) (*order.Order, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockStatusChanger struct{ mock.Mock }

func (m *MockStatusChanger) Handle(ctx context.Context, cmd commands.ChangeOrderStatusCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockHealth struct{ mock.Mock }

func (m *MockHealth) Current(ctx context.Context) quoting.Health {
	return m.Called(ctx).Get(0).(quoting.Health)
}

var t0 = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	calc    *MockCalculator
	orders  *MockOrderReader
	changes *MockStatusChanger
	health  *MockHealth
	e       *echo.Echo
}

func newFixture(t *testing.T, defaultActor string) *fixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f := &fixture{
		calc:    &MockCalculator{},
		orders:  &MockOrderReader{},
		changes: &MockStatusChanger{},
		health:  &MockHealth{},
	}
	sessions := quoting.NewRegistry(f.calc, 0, nil, nil, logger)
	t.Cleanup(sessions.Close)

	s, err := httpapi.NewServer(httpapi.Handlers{
		Pricing:       f.calc,
		Sessions:      sessions,
		Health:        f.health,
		Orders:        f.orders,
		StatusChanges: f.changes,
	}, defaultActor, logger)
	require.NoError(t, err)

	f.e = httpapi.NewRouter(s, metrics.New(), logger)
	return f
}

func (f *fixture) do(method, target, body string, headers ...string) *httptest.ResponseRecorder {
	var r io.Reader = http.NoBody
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func quoteOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder("1042", "#1042", t0)
	require.NoError(t, err)
	return o
}

func TestHealth(t *testing.T) {
	f := newFixture(t, "")

	rec := f.do(http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestMetricsEndpoint(t *testing.T) {
	f := newFixture(t, "")
	f.do(http.MethodGet, "/health", "")

	rec := f.do(http.MethodGet, "/metrics", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `printshop_http_requests_total{handler="/health",status="200"} 1`)
}

func TestCalculatePricing(t *testing.T) {
	f := newFixture(t, "")
	qty := 100
	result := pricing.Result{
		MarginPct:  35,
		LineItems:  []pricing.LineItem{{Description: "screen x100", Quantity: &qty, Total: kernel.MustParseMoney("1100")}},
		UnitPrice:  kernel.MustParseMoney("14.85"),
		TotalPrice: kernel.MustParseMoney("1485"),
		Subtotal:   kernel.MustParseMoney("1100"),
		Source:     pricing.SourceFallback,
	}
	f.calc.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.CalculatePricingQuery) bool {
		r := q.Request()
		return r.Method() == decoration.MethodScreen && r.Quantity() == 100 && r.ColorCount() == 2
	})).Return(result, nil).Once()

	rec := f.do(http.MethodPost, "/api/v1/pricing/calculate",
		`{"method": "screen-printing", "quantity": 100, "colorCount": 2, "locations": ["front-center"]}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode[map[string]any](t, rec)
	assert.InDelta(t, 14.85, body["unitPrice"], 0.001)
	assert.InDelta(t, 1485, body["totalPrice"], 0.001)
	assert.Equal(t, "fallback", body["source"])
	assert.InDelta(t, 35, body["marginPct"], 0)
	assert.Contains(t, body, "calculationTimeMs")
	assert.NotContains(t, body, "marginPercentage")
	items, ok := body["lineItems"].([]any)
	require.True(t, ok)
	require.Len(t, items, 1)
	item := items[0].(map[string]any)
	assert.InDelta(t, 100, item["qty"], 0)
	assert.NotContains(t, item, "quantity")
	f.calc.AssertExpectations(t)
}

func TestCalculatePricing_NoQuantity(t *testing.T) {
	f := newFixture(t, "")

	rec := f.do(http.MethodPost, "/api/v1/pricing/calculate", `{"method": "screen-printing", "quantity": 0}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "null", rec.Body.String())
	f.calc.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestCalculatePricing_Malformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "no locations", body: `{"method": "screen-printing", "quantity": 10, "locations": []}`},
		{name: "negative colors", body: `{"method": "dtg", "quantity": 10, "colorCount": -1, "locations": ["front-center"]}`},
		{name: "unknown garment", body: `{"method": "dtg", "quantity": 10, "locations": ["front-center"], "garmentType": "wool"}`},
		{name: "not json", body: `{"quantity": `},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, "")

			rec := f.do(http.MethodPost, "/api/v1/pricing/calculate", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			f.calc.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
		})
	}
}

func TestPricingHealth(t *testing.T) {
	f := newFixture(t, "")
	f.health.On("Current", mock.Anything).Return(quoting.Health{Healthy: false, CheckedAt: t0, Error: "down"})

	rec := f.do(http.MethodGet, "/api/v1/pricing/health", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, httpapi.PricingHealthResponse{
		Healthy:       false,
		UsingFallback: true,
		CheckedAt:     t0,
		Error:         "down",
	}, decode[httpapi.PricingHealthResponse](t, rec))
}

func TestVocabularyEndpoints(t *testing.T) {
	f := newFixture(t, "")

	methods := f.do(http.MethodGet, "/api/v1/pricing/methods", "")
	locations := f.do(http.MethodGet, "/api/v1/pricing/locations", "")

	require.Equal(t, http.StatusOK, methods.Code)
	require.Equal(t, http.StatusOK, locations.Code)
	assert.Equal(t, decoration.Methods(), decode[[]decoration.Option](t, methods))
	assert.Equal(t, decoration.Locations(), decode[[]decoration.Option](t, locations))
}

func TestListStatuses(t *testing.T) {
	f := newFixture(t, "")

	rec := f.do(http.MethodGet, "/api/v1/workflow/statuses", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, order.Catalog(), decode[[]order.PhaseGroup](t, rec))
}

func TestQuoteSession(t *testing.T) {
	f := newFixture(t, "")
	f.calc.On("Handle", mock.Anything, mock.Anything).
		Return(pricing.Result{TotalPrice: kernel.MustParseMoney("50"), Subtotal: kernel.MustParseMoney("40")}, nil)
	id := uuid.NewString()
	target := "/api/v1/pricing/sessions/" + id

	rec := f.do(http.MethodPost, target, `{"method": "dtg", "quantity": 5, "locations": ["full-back"]}`)

	require.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())
	assert.Equal(t, httpapi.SubmitQuoteResponse{SessionID: id, Seq: 1}, decode[httpapi.SubmitQuoteResponse](t, rec))

	assert.Eventually(t, func() bool {
		var snap httpapi.SnapshotResponse
		if json.Unmarshal(f.do(http.MethodGet, target, "").Body.Bytes(), &snap) != nil {
			return false
		}
		return !snap.Pending && snap.Seq == 1 && snap.Result != nil
	}, time.Second, 5*time.Millisecond)
}

func TestQuoteSession_Errors(t *testing.T) {
	f := newFixture(t, "")

	invalid := f.do(http.MethodPost, "/api/v1/pricing/sessions/not-a-uuid", `{"quantity": 5}`)
	missing := f.do(http.MethodGet, "/api/v1/pricing/sessions/"+uuid.NewString(), "")

	assert.Equal(t, http.StatusBadRequest, invalid.Code)
	assert.Equal(t, http.StatusNotFound, missing.Code)
}

func TestGetOrder(t *testing.T) {
	f := newFixture(t, "")
	f.orders.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetOrderQuery) bool {
		return q.OrderID() == "1042"
	})).Return(quoteOrder(t), nil).Once()

	rec := f.do(http.MethodGet, "/api/v1/orders/1042", "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[httpapi.OrderResponse](t, rec)
	assert.Equal(t, "1042", body.ID)
	assert.Equal(t, "#1042", body.OrderNumber)
	assert.Equal(t, "QUOTE", body.Status)
	assert.Equal(t, "Quotes", body.Phase)
	assert.Equal(t, "yellow", body.PhaseColor)
	assert.Empty(t, body.StatusHistory)
}

func TestGetOrder_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{name: "not found", err: errs.NewObjectNotFoundError("order", "1042"), code: http.StatusNotFound},
		{name: "backend unreachable", err: errs.NewNetworkError("http://backend", io.EOF), code: http.StatusBadGateway},
		{name: "unexpected", err: io.ErrUnexpectedEOF, code: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, "")
			f.orders.On("Handle", mock.Anything, mock.Anything).Return(nil, tt.err).Once()

			rec := f.do(http.MethodGet, "/api/v1/orders/1042", "")

			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, tt.code, decode[httpapi.ErrorResponse](t, rec).Code)
		})
	}
}

func actorIs(id, status, actor string) any {
	return mock.MatchedBy(func(cmd commands.ChangeOrderStatusCommand) bool {
		return cmd.OrderID() == id && cmd.Status() == order.Status(status) && cmd.Actor().String() == actor
	})
}

func TestChangeOrderStatus(t *testing.T) {
	f := newFixture(t, "")
	actor, err := kernel.NewActorID("u1")
	require.NoError(t, err)
	updated, _, err := quoteOrder(t).ChangeStatus("SP - In Production", actor, t0.Add(time.Hour))
	require.NoError(t, err)
	f.changes.On("Handle", mock.Anything, actorIs("1042", "SP - In Production", "u1")).Return(updated, nil).Once()

	rec := f.do(http.MethodPost, "/api/v1/orders/1042/status", `{"status": "SP - In Production"}`,
		httpapi.ActorHeader, "u1")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode[httpapi.OrderResponse](t, rec)
	assert.Equal(t, "SP - In Production", body.Status)
	assert.Equal(t, []httpapi.StatusChangeResponse{
		{From: "QUOTE", To: "SP - In Production", ChangedBy: "u1", ChangedAt: t0.Add(time.Hour)},
	}, body.StatusHistory)
	f.changes.AssertExpectations(t)
}

func TestChangeOrderStatus_DefaultActor(t *testing.T) {
	f := newFixture(t, "dev-user")
	f.changes.On("Handle", mock.Anything, actorIs("1042", "ART - In Progress", "dev-user")).
		Return(quoteOrder(t), nil).Once()

	rec := f.do(http.MethodPost, "/api/v1/orders/1042/status", `{"status": "ART - In Progress"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	f.changes.AssertExpectations(t)
}

func TestChangeOrderStatus_NoActor(t *testing.T) {
	f := newFixture(t, "")

	rec := f.do(http.MethodPost, "/api/v1/orders/1042/status", `{"status": "ART - In Progress"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, httpapi.ActorHeader+" header is required", decode[httpapi.ErrorResponse](t, rec).Message)
	f.changes.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestChangeOrderStatus_InvalidActor(t *testing.T) {
	f := newFixture(t, "dev-user")

	rec := f.do(http.MethodPost, "/api/v1/orders/1042/status", `{"status": "ART - In Progress"}`,
		httpapi.ActorHeader, strings.Repeat("u", 200))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	msg := decode[httpapi.ErrorResponse](t, rec).Message
	assert.Contains(t, msg, httpapi.ActorHeader+" header is invalid")
	assert.NotContains(t, msg, "required")
	f.changes.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestChangeOrderStatus_BadRequest(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "unknown status", body: `{"status": "Printing maybe"}`},
		{name: "missing status", body: `{}`},
		{name: "not json", body: `status`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, "")

			rec := f.do(http.MethodPost, "/api/v1/orders/1042/status", tt.body, httpapi.ActorHeader, "u1")

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			f.changes.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
		})
	}
}

func TestChangeOrderStatus_PersistenceFailure(t *testing.T) {
	f := newFixture(t, "")
	persistErr := errs.NewPersistenceErrorWithCause("update order status", "1042",
		errs.NewNetworkError("http://backend", io.EOF))
	f.changes.On("Handle", mock.Anything, mock.Anything).Return(quoteOrder(t), persistErr).Once()

	rec := f.do(http.MethodPost, "/api/v1/orders/1042/status", `{"status": "SP - In Production"}`,
		httpapi.ActorHeader, "u1")

	require.Equal(t, http.StatusBadGateway, rec.Code)
	body := decode[httpapi.ErrorResponse](t, rec)
	assert.True(t, body.Retryable)
	require.NotNil(t, body.Order)
	assert.Equal(t, "QUOTE", body.Order.Status)
}

func TestChangeOrderStatus_NotFound(t *testing.T) {
	f := newFixture(t, "")
	f.changes.On("Handle", mock.Anything, mock.Anything).
		Return(nil, errs.NewObjectNotFoundError("order", "1042")).Once()

	rec := f.do(http.MethodPost, "/api/v1/orders/1042/status", `{"status": "SP - In Production"}`,
		httpapi.ActorHeader, "u1")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
