package main

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/pastelneto/pdv-backend/internal/notify"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// wsHub pushes change hints to connected terminals. A hint names the
// collection that changed and nothing else; terminals re-fetch.
type wsHub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

func newWSHub(feed notify.Feed) *wsHub {
	h := &wsHub{clients: make(map[*websocket.Conn]bool)}
	for _, topic := range []string{notify.TopicOrders, notify.TopicTables, notify.TopicProducts, notify.TopicCash} {
		t := topic
		feed.Subscribe(t, func() { h.broadcast(t) })
	}
	return h
}

func (h *wsHub) broadcast(topic string) {
	data, err := json.Marshal(gin.H{"table": topic})
	if err != nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		if err := client.WriteMessage(websocket.TextMessage, data); err != nil {
			client.Close()
			delete(h.clients, client)
		}
	}
}

func (h *wsHub) handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			zap.S().Warnw("ws_upgrade_failed", "err", err)
			return
		}
		h.mu.Lock()
		h.clients[conn] = true
		h.mu.Unlock()

		defer func() {
			h.mu.Lock()
			delete(h.clients, conn)
			h.mu.Unlock()
			conn.Close()
		}()
		for {
			// terminals never send anything meaningful; reading just
			// detects the close
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}
}
