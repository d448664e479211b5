// Package cash keeps the daily cash register ledger. Movements are
// append-only; the balance and the open/closed state are derived aggregates.
package cash

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrAlreadyOpen   = errors.New("cash register is already open")
	ErrNotOpen       = errors.New("cash register is not open")
	ErrInvalidAmount = errors.New("amount must be positive")
)

// Balance folds today's movements: open and sale add, withdrawal subtracts.
// Close movements record the balance at closing time and contribute nothing.
func Balance(movements []Movement) decimal.Decimal {
	sum := decimal.Zero
	for _, m := range movements {
		amt, err := decimal.NewFromString(m.Amount)
		if err != nil {
			continue
		}
		switch m.Type {
		case TypeOpen, TypeSale:
			sum = sum.Add(amt)
		case TypeWithdrawal:
			sum = sum.Sub(amt)
		}
	}
	return sum
}

// IsOpen reports whether the register is currently open: an open movement
// exists today with no close after it.
func IsOpen(movements []Movement) bool {
	hasOpen, hasClose := false, false
	for _, m := range movements {
		switch m.Type {
		case TypeOpen:
			hasOpen = true
		case TypeClose:
			hasClose = true
		}
	}
	return hasOpen && !hasClose
}

func Summarize(movements []Movement) Summary {
	return Summary{
		Open:      IsOpen(movements),
		Balance:   Balance(movements).StringFixed(2),
		Movements: movements,
	}
}
