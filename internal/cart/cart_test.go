package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

var (
	pastel = Product{ID: "a", Name: "Pastel de Carne", Price: dec("25.90"), Category: "pasteis"}
	suco   = Product{ID: "b", Name: "Suco de Laranja", Price: dec("6.90"), Category: "bebidas"}
)

func TestAddAccumulatesQuantity(t *testing.T) {
	c := New()
	c.Add(pastel)
	c.Add(pastel)
	c.Add(suco)

	assert.Equal(t, 3, c.TotalItems())
	assert.Equal(t, "58.70", c.Total().StringFixed(2))

	lines := c.Lines()
	assert.Len(t, lines, 2)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, "a", lines[0].ProductID)
}

func TestSetQuantity(t *testing.T) {
	c := New()
	c.Add(pastel)
	c.SetQuantity(pastel, 5)
	assert.Equal(t, 5, c.TotalItems())

	// zero removes the line
	c.SetQuantity(pastel, 0)
	assert.True(t, c.Empty())

	// zero on an absent product is a no-op
	c.SetQuantity(suco, 0)
	assert.True(t, c.Empty())

	// positive quantity on an absent product creates the line
	c.SetQuantity(suco, 3)
	assert.Equal(t, 3, c.TotalItems())
	assert.Equal(t, "20.70", c.Total().StringFixed(2))

	// negative clamps to zero, i.e. removes
	c.SetQuantity(suco, -1)
	assert.True(t, c.Empty())
}

func TestRemoveIsIdempotent(t *testing.T) {
	c := New()
	c.Add(pastel)
	c.Add(suco)

	c.Remove("a")
	first := c.Total()
	c.Remove("a")
	assert.True(t, first.Equal(c.Total()))
	assert.Equal(t, 1, c.TotalItems())
}

func TestNoLineSurvivesAtZero(t *testing.T) {
	c := New()
	c.Add(pastel)
	c.Add(suco)
	c.SetQuantity(pastel, 0)
	for _, l := range c.Lines() {
		assert.Greater(t, l.Quantity, 0)
	}
}

func TestTotalKeepsPrecisionAcrossManyAdds(t *testing.T) {
	c := New()
	p := Product{ID: "x", Name: "Cafezinho", Price: dec("0.10")}
	for i := 0; i < 1000; i++ {
		c.Add(p)
	}
	assert.Equal(t, "100.00", c.Total().StringFixed(2))
}

func TestClear(t *testing.T) {
	c := New()
	c.Add(pastel)
	c.Clear()
	assert.True(t, c.Empty())
	assert.Equal(t, "0.00", c.Total().StringFixed(2))

	// cart stays usable after Clear
	c.Add(suco)
	assert.Equal(t, 1, c.TotalItems())
}
