package api

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"shopfront/internal/models"
)

// WebSocket upgrader configuration
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // storefront widgets are embedded on arbitrary origins
	},
}

// wsChatFrame is one inbound turn. The client resends the full history each
// time; the server keeps no conversation state.
type wsChatFrame struct {
	Messages []models.ChatMessage `json:"messages"`
}

type wsErrorFrame struct {
	Error string `json:"error"`
}

// StorefrontChatWS runs the storefront chat over a WebSocket. Each inbound
// frame is processed exactly like one POST /chat turn.
func (s *Server) StorefrontChatWS(c *gin.Context) {
	shop, err := s.store.GetShopBySlug(c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shop not found"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}
	defer conn.Close()

	conn.SetReadLimit(512 * 1024) // 512KB
	conn.SetReadDeadline(time.Now().Add(5 * time.Minute))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(5 * time.Minute))
		return nil
	})

	for {
		var frame wsChatFrame
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(5 * time.Minute))

		items, err := s.store.GetMenu(shop.ID, true)
		if err != nil || len(items) == 0 {
			conn.WriteJSON(wsErrorFrame{Error: "No menu items found. Please upload a menu first."})
			continue
		}

		result, err := s.assistant.ProcessChat(c.Request.Context(), frame.Messages, shop.Name, shop.Address, items)
		if err != nil {
			s.metrics.ChatTurns.WithLabelValues("error").Inc()
			log.Printf("chat processing failed for shop %s: %v", shop.Slug, err)
			conn.WriteJSON(wsErrorFrame{Error: "The assistant is temporarily unavailable, please try again"})
			continue
		}
		s.metrics.ChatTurns.WithLabelValues("ok").Inc()

		if result.OrderDetails != nil {
			s.metrics.OrdersExtracted.Inc()
			if _, err := s.store.SaveOrder(shop.ID, *result.OrderDetails); err != nil {
				log.Printf("failed to persist order for shop %s: %v", shop.Slug, err)
			}
		}

		if err := conn.WriteJSON(result); err != nil {
			log.Printf("WebSocket write error: %v", err)
			return
		}
	}
}
