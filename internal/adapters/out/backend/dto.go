package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"printshop/internal/core/domain/model/kernel"
)

// flexString accepts a JSON string or number; ids come as either.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number: %w", err)
	}
	*f = flexString(n.String())
	return nil
}

// flexInt accepts a JSON number or a numeric string.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) || bytes.Equal(data, []byte(`""`)) {
		*f = 0
		return nil
	}
	raw := string(bytes.Trim(data, `"`))
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("expected integer: %w", err)
	}
	*f = flexInt(n)
	return nil
}

type orderDTO struct {
	ID flexString `json:"id"`

	OrderNumber      string `json:"orderNumber"`
	OrderNumberSnake string `json:"order_number"`

	OrderNickname      string `json:"orderNickname"`
	OrderNicknameSnake string `json:"order_nickname"`

	Status                  string `json:"status"`
	PrintavoStatusName      string `json:"printavoStatusName"`
	PrintavoStatusNameSnake string `json:"printavo_status_name"`

	TotalAmount            *kernel.Money `json:"totalAmount"`
	TotalAmountSnake       *kernel.Money `json:"total_amount"`
	AmountOutstanding      *kernel.Money `json:"amountOutstanding"`
	AmountOutstandingSnake *kernel.Money `json:"amount_outstanding"`

	DueDate              string `json:"dueDate"`
	DueDateSnake         string `json:"due_date"`
	CustomerDueDate      string `json:"customerDueDate"`
	CustomerDueDateSnake string `json:"customer_due_date"`
	CreatedAt            string `json:"createdAt"`
	CreatedAtSnake       string `json:"created_at"`

	StatusHistory      []historyDTO `json:"statusHistory"`
	StatusHistorySnake []historyDTO `json:"status_history"`

	Customer *customerDTO `json:"customer"`

	LineItems      []lineItemDTO `json:"lineItems"`
	LineItemsSnake []lineItemDTO `json:"line_items"`
}

type historyDTO struct {
	Status         string `json:"status"`
	PreviousStatus string `json:"previous_status"`
	ChangedBy      string `json:"changed_by"`
	ChangedAt      string `json:"changed_at"`
}

// UnmarshalJSON also accepts a bare status name, which the order list
// endpoint uses for its history.
func (h *historyDTO) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		*h = historyDTO{}
		return json.Unmarshal(data, &h.Status)
	}
	type plain historyDTO
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*h = historyDTO(p)
	return nil
}

type customerDTO struct {
	ID      flexString `json:"id"`
	Name    string     `json:"name"`
	Email   string     `json:"email"`
	Phone   string     `json:"phone"`
	Company string     `json:"company"`
}

type sizesDTO struct {
	XS     flexInt `json:"xs"`
	S      flexInt `json:"s"`
	M      flexInt `json:"m"`
	L      flexInt `json:"l"`
	XL     flexInt `json:"xl"`
	XXL    flexInt `json:"xxl"`
	XXXL   flexInt `json:"xxxl"`
	XXXXL  flexInt `json:"xxxxl"`
	XXXXXL flexInt `json:"xxxxxl"`
	Other  flexInt `json:"other"`
}

type lineItemDTO struct {
	ID flexString `json:"id"`

	StyleNumber      string `json:"styleNumber"`
	StyleNumberSnake string `json:"style_number"`
	Description      string `json:"description"`
	StyleDescription string `json:"style_description"`
	Color            string `json:"color"`
	Category         string `json:"category"`

	UnitCost           *kernel.Money `json:"unitCost"`
	UnitCostSnake      *kernel.Money `json:"unit_cost"`
	TotalQuantity      *flexInt      `json:"totalQuantity"`
	TotalQuantitySnake *flexInt      `json:"total_quantity"`
	TotalCost          *kernel.Money `json:"totalCost"`
	TotalCostSnake     *kernel.Money `json:"total_cost"`

	Sizes *sizesDTO `json:"sizes"`

	SizeXS    flexInt `json:"size_xs"`
	SizeS     flexInt `json:"size_s"`
	SizeM     flexInt `json:"size_m"`
	SizeL     flexInt `json:"size_l"`
	SizeXL    flexInt `json:"size_xl"`
	Size2XL   flexInt `json:"size_2_xl"`
	Size3XL   flexInt `json:"size_3_xl"`
	Size4XL   flexInt `json:"size_4_xl"`
	Size5XL   flexInt `json:"size_5_xl"`
	SizeOther flexInt `json:"size_other"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type updateStatusResponse struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
}
