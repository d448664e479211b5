package main

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/pastelneto/pdv-backend/internal/cart"
	"github.com/pastelneto/pdv-backend/internal/checkout"
	"github.com/pastelneto/pdv-backend/internal/order"
	"github.com/pastelneto/pdv-backend/internal/receipt"
)

// cartFrom rebuilds the terminal's cart from the submitted line snapshots.
func cartFrom(items []order.CartLineRequest) (*cart.Cart, error) {
	c := cart.New()
	for _, it := range items {
		if it.ProductID == "" {
			return nil, errors.New("item without product_id")
		}
		if it.Quantity <= 0 {
			return nil, errors.New("item quantity must be positive")
		}
		price, err := decimal.NewFromString(it.Price)
		if err != nil || price.IsNegative() {
			return nil, errors.New("invalid item price")
		}
		c.SetQuantity(cart.Product{ID: it.ProductID, Name: it.Name, Price: price}, it.Quantity)
	}
	return c, nil
}

func orderResponse(o *order.Order, lines []order.Line, now time.Time) order.OrderResponse {
	return order.OrderResponse{
		Order:       *o,
		Items:       lines,
		StatusLabel: order.Label(o.Status),
		NextAction:  order.NextActionLabel(o.Status),
		Elapsed:     order.Elapsed(o.CreatedAt, now),
	}
}

func createOrderHandler(d *deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req order.CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		crt, err := cartFrom(req.Items)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		o, lines, err := d.orderSvc.SendToKitchen(c.Request.Context(), crt, req.TableID, req.OrderType)
		switch {
		case errors.Is(err, order.ErrEmptyCart), errors.Is(err, order.ErrInvalidOrderType):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create order"})
			return
		}
		c.JSON(http.StatusCreated, orderResponse(o, lines, time.Now()))
	}
}

func listOrdersHandler(d *deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var statuses []order.Status
		if raw := c.Query("status"); raw != "" {
			for _, s := range strings.Split(raw, ",") {
				st := order.Status(strings.TrimSpace(s))
				if !order.ValidStatus(st) {
					c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status filter"})
					return
				}
				statuses = append(statuses, st)
			}
		}
		// the kitchen asks for active statuses and wants oldest first;
		// the management view lists everything newest first
		oldestFirst := len(statuses) > 0
		orders, err := d.orders.List(c.Request.Context(), statuses, oldestFirst)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list orders"})
			return
		}
		now := time.Now()
		items := make([]order.OrderResponse, 0, len(orders))
		for i := range orders {
			lines, err := d.orders.GetLines(c.Request.Context(), orders[i].ID)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list orders"})
				return
			}
			items = append(items, orderResponse(&orders[i], lines, now))
		}
		c.JSON(http.StatusOK, gin.H{"items": items})
	}
}

func getOrderHandler(d *deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, lines, err := d.orders.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		c.JSON(http.StatusOK, orderResponse(o, lines, time.Now()))
	}
}

func advanceOrderHandler(d *deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, err := d.orderSvc.Advance(c.Request.Context(), c.Param("id"))
		switch {
		case errors.Is(err, order.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		case errors.Is(err, order.ErrIllegalTransition):
			c.JSON(http.StatusConflict, gin.H{"error": "illegal status transition"})
			return
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update order"})
			return
		}
		c.JSON(http.StatusOK, orderResponse(o, nil, time.Now()))
	}
}

func cancelOrderHandler(d *deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, err := d.orderSvc.Cancel(c.Request.Context(), c.Param("id"))
		switch {
		case errors.Is(err, order.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		case errors.Is(err, order.ErrNotCancellable):
			c.JSON(http.StatusConflict, gin.H{"error": "order can no longer be cancelled"})
			return
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not cancel order"})
			return
		}
		c.JSON(http.StatusOK, orderResponse(o, nil, time.Now()))
	}
}

func orderReceiptHandler(d *deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, lines, err := d.orders.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		html, err := receipt.RenderHTML(receipt.Build(o, lines, time.Now()))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not render receipt"})
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
	}
}

func finalizeSaleHandler(d *deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req order.FinalizeSaleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		method := checkout.Method(req.PaymentMethod)
		if !checkout.ValidMethod(method) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment method"})
			return
		}
		crt, err := cartFrom(req.Items)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		tendered := decimal.Zero
		if req.AmountPaid != "" {
			tendered, err = decimal.NewFromString(req.AmountPaid)
			if err != nil || tendered.IsNegative() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount_paid"})
				return
			}
		}

		o, lines, st, err := d.orderSvc.FinalizeSale(c.Request.Context(), crt, method, tendered)
		switch {
		case errors.Is(err, order.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		case errors.Is(err, checkout.ErrInsufficientPayment):
			c.JSON(http.StatusConflict, gin.H{"error": "amount tendered is below the total"})
			return
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not finalize sale"})
			return
		}

		html, err := receipt.RenderHTML(receipt.Build(o, lines, time.Now()))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not render receipt"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"order": orderResponse(o, lines, time.Now()),
			"settlement": gin.H{
				"method":      st.Method,
				"amount_paid": st.AmountPaid.StringFixed(2),
				"change_due":  st.ChangeDue.StringFixed(2),
			},
			"receipt_html": html,
		})
	}
}
