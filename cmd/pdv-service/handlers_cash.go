package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/pastelneto/pdv-backend/internal/cash"
	"github.com/pastelneto/pdv-backend/internal/receipt"
)

func listCashMovementsHandler(d *deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		summary, err := d.cashSvc.Today(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list cash movements"})
			return
		}
		if summary.Movements == nil {
			summary.Movements = []cash.Movement{}
		}
		c.JSON(http.StatusOK, gin.H{"items": summary.Movements})
	}
}

func cashSummaryHandler(d *deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		summary, err := d.cashSvc.Today(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load cash summary"})
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}

func openCashHandler(d *deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		m, err := d.cashSvc.Open(c.Request.Context())
		switch {
		case errors.Is(err, cash.ErrAlreadyOpen):
			c.JSON(http.StatusConflict, gin.H{"error": "cash register is already open"})
			return
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not open cash register"})
			return
		}
		c.JSON(http.StatusCreated, m)
	}
}

func closeCashHandler(d *deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		m, summary, err := d.cashSvc.Close(c.Request.Context())
		switch {
		case errors.Is(err, cash.ErrNotOpen):
			c.JSON(http.StatusConflict, gin.H{"error": "cash register is not open"})
			return
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not close cash register"})
			return
		}
		report, err := receipt.RenderCloseReport(summary, time.Now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not render close report"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"movement": m, "report": report})
	}
}

func cashWithdrawalHandler(d *deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Amount      string `json:"amount"`
			Description string `json:"description"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		amount, err := decimal.NewFromString(req.Amount)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount"})
			return
		}
		m, err := d.cashSvc.Withdraw(c.Request.Context(), amount, req.Description)
		switch {
		case errors.Is(err, cash.ErrInvalidAmount):
			c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be positive"})
			return
		case errors.Is(err, cash.ErrNotOpen):
			c.JSON(http.StatusConflict, gin.H{"error": "cash register is not open"})
			return
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not record withdrawal"})
			return
		}
		c.JSON(http.StatusCreated, m)
	}
}
