package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pastelneto/pdv-backend/internal/notify"
	"github.com/pastelneto/pdv-backend/internal/product"
)

func listProductsHandler(d *deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := d.products.ListActive(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list products"})
			return
		}
		if items == nil {
			items = []product.Product{}
		}
		c.JSON(http.StatusOK, gin.H{"items": items})
	}
}

func createProductHandler(d *deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req product.CreateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		if req.Name == "" || req.Category == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name and category are required"})
			return
		}
		price, err := decimal.NewFromString(req.Price)
		if err != nil || price.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid price"})
			return
		}

		p := &product.Product{
			ID:          uuid.NewString(),
			Name:        req.Name,
			Description: req.Description,
			Price:       price.StringFixed(2),
			Category:    req.Category,
			Active:      true,
		}
		if err := d.products.Create(c.Request.Context(), p); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create product"})
			return
		}
		d.feed.Publish(notify.TopicProducts)
		c.JSON(http.StatusCreated, p)
	}
}

func setProductActiveHandler(d *deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Active *bool `json:"active"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.Active == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "active is required"})
			return
		}
		err := d.products.SetActive(c.Request.Context(), c.Param("id"), *req.Active)
		switch {
		case errors.Is(err, product.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update product"})
			return
		}
		d.feed.Publish(notify.TopicProducts)
		c.Status(http.StatusNoContent)
	}
}
