package order

import "time"

type Status string

const (
	StatusReceived  Status = "received"
	StatusPreparing Status = "preparing"
	StatusReady     Status = "ready"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

type Type string

const (
	TypeTable    Type = "table"
	TypeTakeaway Type = "takeaway"
)

type Order struct {
	ID            string    `json:"id"`
	OrderNumber   string    `json:"order_number"`
	Total         string    `json:"total"` // NUMERIC -> string
	Status        Status    `json:"status"`
	PaymentMethod *string   `json:"payment_method,omitempty"`
	AmountPaid    *string   `json:"amount_paid,omitempty"`
	ChangeAmount  *string   `json:"change_amount,omitempty"`
	TableID       *string   `json:"table_id,omitempty"`
	OrderType     Type      `json:"order_type"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Line is an immutable snapshot of one cart line at submission time.
type Line struct {
	ID         string `json:"id"`
	OrderID    string `json:"order_id"`
	ProductID  string `json:"product_id"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	UnitPrice  string `json:"unit_price"`
	TotalPrice string `json:"total_price"`
}
