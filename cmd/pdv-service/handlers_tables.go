package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pastelneto/pdv-backend/internal/notify"
	"github.com/pastelneto/pdv-backend/internal/table"
)

func listTablesHandler(d *deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := d.tables.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list tables"})
			return
		}
		if items == nil {
			items = []table.Table{}
		}
		c.JSON(http.StatusOK, gin.H{"items": items})
	}
}

// setTableStatusHandler covers the manual side of occupancy: freeing a table
// after the customers leave, or reserving one.
func setTableStatusHandler(d *deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Status table.Status `json:"status"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || !table.ValidStatus(req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid table status"})
			return
		}
		err := d.tables.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
		switch {
		case errors.Is(err, table.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "table not found"})
			return
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update table"})
			return
		}
		d.feed.Publish(notify.TopicTables)
		c.Status(http.StatusNoContent)
	}
}
