package checkout

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestSettleCashExact(t *testing.T) {
	s, err := Settle(dec("50.00"), MethodCash, dec("50.00"))
	require.NoError(t, err)
	assert.Equal(t, "50.00", s.AmountPaid.StringFixed(2))
	assert.Equal(t, "0.00", s.ChangeDue.StringFixed(2))
}

func TestSettleCashWithChange(t *testing.T) {
	s, err := Settle(dec("58.70"), MethodCash, dec("100.00"))
	require.NoError(t, err)
	assert.Equal(t, "100.00", s.AmountPaid.StringFixed(2))
	assert.Equal(t, "41.30", s.ChangeDue.StringFixed(2))
}

func TestSettleCashInsufficient(t *testing.T) {
	_, err := Settle(dec("50.00"), MethodCash, dec("40.00"))
	assert.ErrorIs(t, err, ErrInsufficientPayment)
}

func TestSettleCardIgnoresTendered(t *testing.T) {
	for _, tendered := range []string{"0", "10.00", "999.99"} {
		s, err := Settle(dec("50.00"), MethodCard, dec(tendered))
		require.NoError(t, err)
		assert.Equal(t, "50.00", s.AmountPaid.StringFixed(2))
		assert.Equal(t, "0.00", s.ChangeDue.StringFixed(2))
	}
}

func TestSettlePix(t *testing.T) {
	s, err := Settle(dec("25.90"), MethodPix, decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, "25.90", s.AmountPaid.StringFixed(2))
	assert.True(t, s.ChangeDue.IsZero())
}

func TestSettleUnknownMethod(t *testing.T) {
	_, err := Settle(dec("10.00"), Method("cheque"), decimal.Zero)
	assert.ErrorIs(t, err, ErrUnknownMethod)
}

func TestValidMethod(t *testing.T) {
	assert.True(t, ValidMethod(MethodCash))
	assert.True(t, ValidMethod(MethodPix))
	assert.True(t, ValidMethod(MethodCard))
	assert.False(t, ValidMethod(Method("")))
}
