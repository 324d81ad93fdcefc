package http

import (
	"time"

	"printshop/internal/core/application/quoting"
	"printshop/internal/core/domain/model/decoration"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/order"
	"printshop/internal/core/domain/model/pricing"
)

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Code      int            `json:"code"`
	Message   string         `json:"message"`
	Retryable bool           `json:"retryable,omitempty"`
	Order     *OrderResponse `json:"order,omitempty"`
}

// QuoteRequest is the pricing form as the UI sends it.
type QuoteRequest struct {
	Method       string   `json:"method" validate:"max=64"`
	Quantity     int      `json:"quantity"`
	ColorCount   int      `json:"colorCount" validate:"gte=0"`
	StitchCount  *int     `json:"stitchCount,omitempty" validate:"omitempty,gte=0"`
	Locations    []string `json:"locations" validate:"omitempty,dive,max=64"`
	GarmentType  string   `json:"garmentType,omitempty"`
	CustomerType string   `json:"customerType,omitempty"`
	Rush         bool     `json:"rush"`
	SetupNew     bool     `json:"setupNew"`
}

func (r QuoteRequest) params() decoration.RequestParams {
	return decoration.RequestParams{
		Method:       r.Method,
		Quantity:     r.Quantity,
		ColorCount:   r.ColorCount,
		StitchCount:  r.StitchCount,
		Locations:    r.Locations,
		GarmentType:  r.GarmentType,
		CustomerType: r.CustomerType,
		Rush:         r.Rush,
		SetupNew:     r.SetupNew,
	}
}

type SubmitQuoteResponse struct {
	SessionID string `json:"sessionId"`
	Seq       uint64 `json:"seq"`
}

// SnapshotResponse is the latest applied quote of a session. Pending is set
// while nothing has been applied yet.
type SnapshotResponse struct {
	Seq       uint64          `json:"seq"`
	Pending   bool            `json:"pending"`
	Result    *pricing.Result `json:"result"`
	Error     string          `json:"error,omitempty"`
	AppliedAt *time.Time      `json:"appliedAt,omitempty"`
}

func toSnapshotResponse(s quoting.Snapshot, ok bool) SnapshotResponse {
	if !ok {
		return SnapshotResponse{Pending: true}
	}
	resp := SnapshotResponse{Seq: s.Seq, Result: s.Result}
	if s.Err != nil {
		resp.Error = s.Err.Error()
	}
	if !s.AppliedAt.IsZero() {
		at := s.AppliedAt
		resp.AppliedAt = &at
	}
	return resp
}

type PricingHealthResponse struct {
	Healthy       bool      `json:"healthy"`
	UsingFallback bool      `json:"usingFallback"`
	CheckedAt     time.Time `json:"checkedAt"`
	Error         string    `json:"error,omitempty"`
}

type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required,max=128"`
}

type StatusChangeResponse struct {
	From      string    `json:"from"`
	To        string    `json:"to"`
	ChangedBy string    `json:"changedBy"`
	ChangedAt time.Time `json:"changedAt"`
}

type SizeResponse struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type LineItemResponse struct {
	ID          string         `json:"id"`
	StyleNumber string         `json:"styleNumber"`
	Description string         `json:"description"`
	Color       string         `json:"color"`
	Category    string         `json:"category"`
	Quantity    int            `json:"quantity"`
	UnitPrice   kernel.Money   `json:"unitPrice"`
	TotalCost   kernel.Money   `json:"totalCost"`
	Sizes       []SizeResponse `json:"sizes"`
}

type CustomerResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Company string `json:"company,omitempty"`
}

type OrderResponse struct {
	ID                string                 `json:"id"`
	OrderNumber       string                 `json:"orderNumber"`
	OrderNickname     string                 `json:"orderNickname,omitempty"`
	Status            string                 `json:"status"`
	BackendStatus     string                 `json:"backendStatus,omitempty"`
	Phase             string                 `json:"phase"`
	PhaseColor        string                 `json:"phaseColor"`
	TotalAmount       kernel.Money           `json:"totalAmount"`
	AmountPaid        kernel.Money           `json:"amountPaid"`
	AmountOutstanding kernel.Money           `json:"amountOutstanding"`
	DueDate           *time.Time             `json:"dueDate,omitempty"`
	CustomerDueDate   *time.Time             `json:"customerDueDate,omitempty"`
	CreatedAt         time.Time              `json:"createdAt"`
	StatusHistory     []StatusChangeResponse `json:"statusHistory"`
	Customer          *CustomerResponse      `json:"customer,omitempty"`
	LineItems         []LineItemResponse     `json:"lineItems"`
}

func toOrderResponse(o *order.Order) *OrderResponse {
	if o == nil {
		return nil
	}

	history := make([]StatusChangeResponse, 0, len(o.History()))
	for _, h := range o.History() {
		history = append(history, StatusChangeResponse{
			From:      h.From().String(),
			To:        h.To().String(),
			ChangedBy: h.ChangedBy().String(),
			ChangedAt: h.ChangedAt(),
		})
	}

	items := make([]LineItemResponse, 0, len(o.LineItems()))
	for _, li := range o.LineItems() {
		sizes := make([]SizeResponse, 0, len(li.Sizes()))
		for _, s := range li.Sizes() {
			sizes = append(sizes, SizeResponse{Label: string(s.Label), Count: s.Count})
		}
		items = append(items, LineItemResponse{
			ID:          li.ID(),
			StyleNumber: li.StyleNumber(),
			Description: li.Description(),
			Color:       li.Color(),
			Category:    li.Category(),
			Quantity:    li.Quantity(),
			UnitPrice:   li.UnitPrice(),
			TotalCost:   li.TotalCost(),
			Sizes:       sizes,
		})
	}

	var customer *CustomerResponse
	if c := o.Customer(); c != nil {
		customer = &CustomerResponse{ID: c.ID, Name: c.Name, Email: c.Email, Phone: c.Phone, Company: c.Company}
	}

	return &OrderResponse{
		ID:                o.ID(),
		OrderNumber:       o.Number(),
		OrderNickname:     o.Nickname(),
		Status:            o.Status().String(),
		BackendStatus:     o.BackendStatus(),
		Phase:             o.Phase().String(),
		PhaseColor:        o.Phase().Color(),
		TotalAmount:       o.TotalAmount(),
		AmountPaid:        o.AmountPaid(),
		AmountOutstanding: o.AmountOutstanding(),
		DueDate:           o.DueDate(),
		CustomerDueDate:   o.CustomerDueDate(),
		CreatedAt:         o.CreatedAt(),
		StatusHistory:     history,
		Customer:          customer,
		LineItems:         items,
	}
}
