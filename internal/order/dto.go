package order

// CartLineRequest is one cart line as submitted by a terminal. Price is the
// unit price snapshot the terminal took when the item was added.
// swagger:model CartLineRequest
type CartLineRequest struct {
	ProductID string `json:"product_id" example:"4e7d4e5c-5cb9-4a3f-9f21-7e1a4f9f2b2a"`
	Name      string `json:"name"       example:"Pastel de Carne"`
	Price     string `json:"price"      example:"25.90"`
	Quantity  int    `json:"quantity"   example:"2"`
}

// CreateOrderRequest submits a cart to the kitchen.
// swagger:model CreateOrderRequest
type CreateOrderRequest struct {
	TableID   *string           `json:"table_id,omitempty"`
	OrderType Type              `json:"order_type" example:"table"`
	Items     []CartLineRequest `json:"items"`
}

// FinalizeSaleRequest settles a cart immediately.
// swagger:model FinalizeSaleRequest
type FinalizeSaleRequest struct {
	Items         []CartLineRequest `json:"items"`
	PaymentMethod string            `json:"payment_method" example:"cash"`
	AmountPaid    string            `json:"amount_paid,omitempty" example:"100.00"`
}

// OrderResponse is an order with its line items and kitchen display fields.
// swagger:model OrderResponse
type OrderResponse struct {
	Order
	Items       []Line `json:"items,omitempty"`
	StatusLabel string `json:"status_label"`
	NextAction  string `json:"next_action,omitempty"`
	Elapsed     string `json:"elapsed,omitempty"`
}
