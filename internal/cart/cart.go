// Package cart tracks the in-progress product selection for one terminal
// session. Quantities and totals only; it never touches the database.
package cart

import "github.com/shopspring/decimal"

// Product is the snapshot taken when an item enters the cart. Later price
// changes on the catalog do not affect lines already added.
type Product struct {
	ID       string
	Name     string
	Price    decimal.Decimal
	Category string
}

type Line struct {
	ProductID string
	Name      string
	Price     decimal.Decimal
	Category  string
	Quantity  int
}

// Subtotal is price x quantity for this line.
func (l Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart keeps one line per product id, in insertion order.
type Cart struct {
	lines []Line
	index map[string]int
}

func New() *Cart {
	return &Cart{index: make(map[string]int)}
}

// Add puts one unit of p in the cart, incrementing the existing line if the
// product is already present.
func (c *Cart) Add(p Product) {
	if i, ok := c.index[p.ID]; ok {
		c.lines[i].Quantity++
		return
	}
	c.index[p.ID] = len(c.lines)
	c.lines = append(c.lines, Line{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Category:  p.Category,
		Quantity:  1,
	})
}

// SetQuantity forces the quantity of a line. Zero (or negative, which is
// clamped to zero) removes the line. Setting a positive quantity on an absent
// product creates the line, keeping the given snapshot.
func (c *Cart) SetQuantity(p Product, quantity int) {
	if quantity < 0 {
		quantity = 0
	}
	i, ok := c.index[p.ID]
	if quantity == 0 {
		if ok {
			c.removeAt(i)
		}
		return
	}
	if ok {
		c.lines[i].Quantity = quantity
		return
	}
	c.Add(p)
	c.lines[c.index[p.ID]].Quantity = quantity
}

// Remove drops the line for productID. Removing an absent product is a no-op.
func (c *Cart) Remove(productID string) {
	if i, ok := c.index[productID]; ok {
		c.removeAt(i)
	}
}

func (c *Cart) removeAt(i int) {
	delete(c.index, c.lines[i].ProductID)
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	for j := i; j < len(c.lines); j++ {
		c.index[c.lines[j].ProductID] = j
	}
}

// TotalItems is the sum of all line quantities.
func (c *Cart) TotalItems() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// Total is the exact sum of line subtotals. Callers round for display
// (StringFixed(2)); the cart itself never loses precision.
func (c *Cart) Total() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range c.lines {
		sum = sum.Add(l.Subtotal())
	}
	return sum
}

// Lines returns a copy of the cart content in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Empty() bool { return len(c.lines) == 0 }

// Clear empties the cart after a successful submission or sale.
func (c *Cart) Clear() {
	c.lines = nil
	c.index = make(map[string]int)
}
