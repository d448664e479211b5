package main

import (
	"github.com/gin-gonic/gin"

	"github.com/pastelneto/pdv-backend/internal/cash"
	"github.com/pastelneto/pdv-backend/internal/httpx"
	"github.com/pastelneto/pdv-backend/internal/notify"
	"github.com/pastelneto/pdv-backend/internal/order"
	"github.com/pastelneto/pdv-backend/internal/product"
	"github.com/pastelneto/pdv-backend/internal/table"
)

// deps is everything the handlers need; tests swap in stub repositories.
type deps struct {
	products product.Repository
	orders   order.Repository
	orderSvc *order.Service
	tables   table.Repository
	cashSvc  *cash.Service
	feed     notify.Feed
}

func newRouter(d *deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger())

	r.GET("/healthz", func(c *gin.Context) { c.String(200, "ok") })

	r.GET("/products", listProductsHandler(d))
	r.POST("/products", createProductHandler(d))
	r.PATCH("/products/:id/active", setProductActiveHandler(d))

	r.POST("/orders", createOrderHandler(d))
	r.GET("/orders", listOrdersHandler(d))
	r.GET("/orders/:id", getOrderHandler(d))
	r.POST("/orders/:id/advance", advanceOrderHandler(d))
	r.POST("/orders/:id/cancel", cancelOrderHandler(d))
	r.GET("/orders/:id/receipt", orderReceiptHandler(d))

	r.POST("/sales", finalizeSaleHandler(d))

	r.GET("/tables", listTablesHandler(d))
	r.PATCH("/tables/:id/status", setTableStatusHandler(d))

	r.GET("/cash/movements", listCashMovementsHandler(d))
	r.GET("/cash/summary", cashSummaryHandler(d))
	r.POST("/cash/open", openCashHandler(d))
	r.POST("/cash/close", closeCashHandler(d))
	r.POST("/cash/withdrawals", cashWithdrawalHandler(d))

	return r
}
