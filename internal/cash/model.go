package cash

import "time"

type MovementType string

const (
	TypeOpen       MovementType = "open"
	TypeClose      MovementType = "close"
	TypeSale       MovementType = "sale"
	TypeWithdrawal MovementType = "withdrawal"
)

// Movement is one entry in the append-only daily cash ledger.
type Movement struct {
	ID          string       `json:"id"`
	Type        MovementType `json:"type"`
	Amount      string       `json:"amount"` // NUMERIC -> string
	Description *string      `json:"description,omitempty"`
	OrderID     *string      `json:"order_id,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}

// Summary is the derived state of today's register. Balance is never stored;
// it is recomputed from the movements every time.
type Summary struct {
	Open      bool       `json:"open"`
	Balance   string     `json:"balance"`
	Movements []Movement `json:"movements"`
}
