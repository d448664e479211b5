// Package checkout computes settlement details for a finalized sale. Pure
// arithmetic; persistence and printing belong to the caller.
package checkout

import (
	"errors"

	"github.com/shopspring/decimal"
)

type Method string

const (
	MethodCash Method = "cash"
	MethodPix  Method = "pix"
	MethodCard Method = "card"
)

var (
	ErrUnknownMethod       = errors.New("unknown payment method")
	ErrInsufficientPayment = errors.New("amount tendered is below the total")
)

func ValidMethod(m Method) bool {
	return m == MethodCash || m == MethodPix || m == MethodCard
}

type Settlement struct {
	Method     Method
	AmountPaid decimal.Decimal
	ChangeDue  decimal.Decimal
}

// Settle resolves how a sale of total is paid. For cash, tendered must cover
// the total or the sale must not proceed; for pix and card, tendered is
// ignored and the amount paid is exactly the total.
func Settle(total decimal.Decimal, m Method, tendered decimal.Decimal) (Settlement, error) {
	switch m {
	case MethodCash:
		if tendered.LessThan(total) {
			return Settlement{}, ErrInsufficientPayment
		}
		return Settlement{
			Method:     m,
			AmountPaid: tendered,
			ChangeDue:  tendered.Sub(total),
		}, nil
	case MethodPix, MethodCard:
		return Settlement{
			Method:     m,
			AmountPaid: total,
			ChangeDue:  decimal.Zero,
		}, nil
	default:
		return Settlement{}, ErrUnknownMethod
	}
}
