package backend

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"time"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/order"
)

// unknownActor is recorded for history entries the backend stored without an author.
var unknownActor, _ = kernel.NewActorID("unknown")

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// mapper reshapes backend payloads, whatever their field casing, into domain orders.
type mapper struct {
	clock  kernel.Clock
	logger *slog.Logger
}

func (m mapper) toOrder(ctx context.Context, dto orderDTO) (*order.Order, error) {
	now := m.clock.Now()
	id := strings.TrimSpace(string(dto.ID))

	status, backendStatus := m.status(ctx, id, firstNonEmpty(dto.PrintavoStatusName, dto.PrintavoStatusNameSnake, dto.Status))

	total := firstMoney(dto.TotalAmount, dto.TotalAmountSnake)
	outstanding := firstMoney(dto.AmountOutstanding, dto.AmountOutstandingSnake)
	paid := total.Sub(outstanding).Max(kernel.Money{})

	dueDate := parseTime(firstNonEmpty(dto.DueDate, dto.DueDateSnake))
	createdAt := now
	if t := parseTime(firstNonEmpty(dto.CreatedAt, dto.CreatedAtSnake)); t != nil {
		createdAt = *t
	} else if dueDate != nil {
		createdAt = *dueDate
	}

	history := dto.StatusHistory
	if len(history) == 0 {
		history = dto.StatusHistorySnake
	}

	items := dto.LineItems
	if len(items) == 0 {
		items = dto.LineItemsSnake
	}
	lineItems := make([]order.LineItem, 0, len(items))
	var itemErrs error
	for _, li := range items {
		item, err := toLineItem(li)
		if err != nil {
			itemErrs = errors.Join(itemErrs, err)
			continue
		}
		lineItems = append(lineItems, item)
	}
	if itemErrs != nil {
		return nil, itemErrs
	}

	return order.RestoreOrder(order.RestoreParams{
		ID:              id,
		Number:          firstNonEmpty(dto.OrderNumber, dto.OrderNumberSnake, "#"+id),
		Nickname:        firstNonEmpty(dto.OrderNickname, dto.OrderNicknameSnake),
		Status:          status,
		BackendStatus:   backendStatus,
		History:         m.history(history, status, now),
		TotalAmount:     total,
		AmountPaid:      paid,
		DueDate:         dueDate,
		CustomerDueDate: parseTime(firstNonEmpty(dto.CustomerDueDate, dto.CustomerDueDateSnake)),
		CreatedAt:       createdAt,
		LineItems:       lineItems,
		Customer:        toCustomer(dto.Customer),
	})
}

// status returns the catalog status of raw. A name outside the catalog maps to
// order.DefaultStatus and is also returned as the backend status.
func (m mapper) status(ctx context.Context, orderID, raw string) (order.Status, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return order.DefaultStatus, ""
	}
	if s, ok := order.LookupStatus(raw); ok {
		return s, ""
	}
	m.logger.WarnContext(ctx, "Order has a status outside the workflow catalog, using default",
		"order_id", orderID, "status", raw, "default", order.DefaultStatus)
	return order.DefaultStatus, raw
}

// history sorts entries by time and appends a system entry when the backend
// status moved without a matching history record.
func (m mapper) history(entries []historyDTO, status order.Status, now time.Time) []order.StatusChange {
	if len(entries) == 0 {
		return nil
	}

	out := make([]order.StatusChange, 0, len(entries)+1)
	for _, e := range entries {
		at := now
		if t := parseTime(e.ChangedAt); t != nil {
			at = *t
		}
		by := unknownActor
		if actor, err := kernel.NewActorID(e.ChangedBy); err == nil {
			by = actor
		}
		out = append(out, order.NewStatusChange(canonicalStatus(e.PreviousStatus), canonicalStatus(e.Status), at, by))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ChangedAt().Before(out[j].ChangedAt())
	})

	last := out[len(out)-1]
	if last.To() != status {
		at := now
		if last.ChangedAt().After(at) {
			at = last.ChangedAt()
		}
		out = append(out, order.NewStatusChange(last.To(), status, at, kernel.SystemActor))
	}
	return out
}

// canonicalStatus restores catalog spelling; names outside the catalog are kept as sent.
func canonicalStatus(raw string) order.Status {
	if s, ok := order.LookupStatus(raw); ok {
		return s
	}
	return order.Status(strings.TrimSpace(raw))
}

func toLineItem(dto lineItemDTO) (order.LineItem, error) {
	var qty int
	switch {
	case dto.TotalQuantity != nil:
		qty = int(*dto.TotalQuantity)
	case dto.TotalQuantitySnake != nil:
		qty = int(*dto.TotalQuantitySnake)
	}

	var total *kernel.Money
	switch {
	case dto.TotalCost != nil:
		total = dto.TotalCost
	case dto.TotalCostSnake != nil:
		total = dto.TotalCostSnake
	}

	return order.NewLineItem(order.LineItemParams{
		ID:          string(dto.ID),
		Description: firstNonEmpty(dto.Description, dto.StyleDescription),
		StyleNumber: firstNonEmpty(dto.StyleNumber, dto.StyleNumberSnake),
		Color:       dto.Color,
		Category:    dto.Category,
		Quantity:    qty,
		UnitPrice:   firstMoney(dto.UnitCost, dto.UnitCostSnake),
		TotalCost:   total,
		Sizes:       sizes(dto),
	})
}

func sizes(dto lineItemDTO) map[order.SizeLabel]int {
	if s := dto.Sizes; s != nil {
		return map[order.SizeLabel]int{
			order.SizeXS:    int(s.XS),
			order.SizeS:     int(s.S),
			order.SizeM:     int(s.M),
			order.SizeL:     int(s.L),
			order.SizeXL:    int(s.XL),
			order.Size2XL:   int(s.XXL),
			order.Size3XL:   int(s.XXXL),
			order.Size4XL:   int(s.XXXXL),
			order.Size5XL:   int(s.XXXXXL),
			order.SizeOther: int(s.Other),
		}
	}
	return map[order.SizeLabel]int{
		order.SizeXS:    int(dto.SizeXS),
		order.SizeS:     int(dto.SizeS),
		order.SizeM:     int(dto.SizeM),
		order.SizeL:     int(dto.SizeL),
		order.SizeXL:    int(dto.SizeXL),
		order.Size2XL:   int(dto.Size2XL),
		order.Size3XL:   int(dto.Size3XL),
		order.Size4XL:   int(dto.Size4XL),
		order.Size5XL:   int(dto.Size5XL),
		order.SizeOther: int(dto.SizeOther),
	}
}

func toCustomer(dto *customerDTO) *order.CustomerRef {
	if dto == nil {
		return nil
	}
	return &order.CustomerRef{
		ID:      string(dto.ID),
		Name:    firstNonEmpty(dto.Name, "Unknown"),
		Email:   dto.Email,
		Phone:   dto.Phone,
		Company: dto.Company,
	}
}

func parseTime(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func firstMoney(values ...*kernel.Money) kernel.Money {
	for _, v := range values {
		if v != nil {
			return *v
		}
	}
	return kernel.Money{}
}
