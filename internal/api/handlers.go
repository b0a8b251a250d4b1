package api

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"shopfront/internal/assistant"
	"shopfront/internal/auth"
	"shopfront/internal/extraction"
	"shopfront/internal/models"
)

// createShopRequest is the tenant onboarding payload.
type createShopRequest struct {
	Name    string `json:"name" binding:"required"`
	Slug    string `json:"slug" binding:"required"`
	Tagline string `json:"tagline"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Hours   string `json:"hours"`
}

type extractRequest struct {
	ImageBase64   string `json:"imageBase64"`
	ClearExisting bool   `json:"clearExisting"`
}

type chatRequest struct {
	Messages []models.ChatMessage `json:"messages" binding:"required"`
}

// CreateShop registers a storefront and returns its dashboard token.
func (s *Server) CreateShop(c *gin.Context) {
	var req createShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	shop := &models.Shop{
		Name:    req.Name,
		Slug:    req.Slug,
		Tagline: req.Tagline,
		Address: req.Address,
		Phone:   req.Phone,
		Email:   req.Email,
		Hours:   req.Hours,
	}
	if err := s.store.CreateShop(shop); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	token, err := auth.IssueToken(s.jwtSecret, shop.ID, s.tokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"shop": shop, "token": token})
}

// GetShop returns a storefront's public details.
func (s *Server) GetShop(c *gin.Context) {
	shop, err := s.store.GetShopBySlug(c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shop not found"})
		return
	}
	c.JSON(http.StatusOK, shop)
}

// ExtractMenu runs the extraction pipeline on an uploaded menu image and
// persists the result for the authenticated shop.
func (s *Server) ExtractMenu(c *gin.Context) {
	var req extractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	shopID := auth.ShopID(c)

	// Clearing without a new image is a plain menu reset.
	if req.ImageBase64 == "" {
		if !req.ClearExisting {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No image provided"})
			return
		}
		if err := s.store.ClearMenu(shopID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Menu cleared successfully", "items": []models.MenuItem{}})
		return
	}

	start := time.Now()
	items, err := s.extractor.ExtractMenu(c.Request.Context(), req.ImageBase64)
	s.metrics.ObserveProvider("extraction", start)
	if err != nil {
		s.metrics.ExtractionTotal.WithLabelValues("error").Inc()
		log.Printf("menu extraction failed: %v", err)
		if errors.Is(err, extraction.ErrMalformedResponse) {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Could not read the menu from that image, please try again"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Menu extraction is temporarily unavailable, please try again"})
		return
	}
	s.metrics.ExtractionTotal.WithLabelValues("ok").Inc()

	if req.ClearExisting {
		err = s.store.ReplaceMenu(shopID, items)
	} else {
		err = s.store.AppendMenu(shopID, items)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"items":   items,
		"count":   len(items),
	})
}

// GetMenu returns the authenticated shop's stored menu.
func (s *Server) GetMenu(c *gin.Context) {
	items, err := s.store.GetMenu(auth.ShopID(c), false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// ClearMenu removes the authenticated shop's menu.
func (s *Server) ClearMenu(c *gin.Context) {
	if err := s.store.ClearMenu(auth.ShopID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetPublicMenu returns a storefront's available menu, grouped for display.
func (s *Server) GetPublicMenu(c *gin.Context) {
	shop, err := s.store.GetShopBySlug(c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shop not found"})
		return
	}

	items, err := s.store.GetMenu(shop.ID, true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"shop": shop.Slug, "items": items})
}

// StorefrontChat answers one public chat turn for a storefront. Extracted
// orders are persisted before replying.
func (s *Server) StorefrontChat(c *gin.Context) {
	shop, err := s.store.GetShopBySlug(c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shop not found"})
		return
	}

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid messages format"})
		return
	}

	result, status := s.runChat(c, shop, req.Messages, true)
	if result == nil {
		return
	}
	c.JSON(status, result)
}

// OwnerChat answers a chat turn against the authenticated shop's own menu,
// without persisting orders. Used by the dashboard test page.
func (s *Server) OwnerChat(c *gin.Context) {
	shop, err := s.store.GetShop(auth.ShopID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shop not found"})
		return
	}

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid messages format"})
		return
	}

	result, status := s.runChat(c, shop, req.Messages, false)
	if result == nil {
		return
	}
	c.JSON(status, result)
}

// runChat is the shared chat path. It loads the live menu, invokes the
// assistant, and optionally persists an extracted order. A nil result means
// the error response has already been written.
func (s *Server) runChat(c *gin.Context, shop *models.Shop, messages []models.ChatMessage, saveOrders bool) (*models.ChatResult, int) {
	items, err := s.store.GetMenu(shop.ID, true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil, 0
	}
	if len(items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No menu items found. Please upload a menu first."})
		return nil, 0
	}

	start := time.Now()
	result, err := s.assistant.ProcessChat(c.Request.Context(), messages, shop.Name, shop.Address, items)
	s.metrics.ObserveProvider("chat", start)
	if err != nil {
		s.metrics.ChatTurns.WithLabelValues("error").Inc()
		log.Printf("chat processing failed for shop %s: %v", shop.Slug, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "The assistant is temporarily unavailable, please try again"})
		return nil, 0
	}
	s.metrics.ChatTurns.WithLabelValues("ok").Inc()

	if result.OrderDetails != nil {
		s.metrics.OrdersExtracted.Inc()
		if saveOrders {
			if _, err := s.store.SaveOrder(shop.ID, *result.OrderDetails); err != nil {
				// The reply is still usable; losing the order row is logged.
				log.Printf("failed to persist order for shop %s: %v", shop.Slug, err)
			}
		}
	}

	return &result, http.StatusOK
}

// ChatAvailability reports whether the authenticated shop has a menu and so
// can enable its chat widget.
func (s *Server) ChatAvailability(c *gin.Context) {
	count, err := s.store.CountMenuItems(auth.ShopID(c))
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"available": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": count > 0, "itemCount": count})
}

// SampleConversation returns a canned conversation for the chat test page.
func (s *Server) SampleConversation(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"messages": assistant.SampleConversation()})
}

// ListOrders returns the authenticated shop's orders.
func (s *Server) ListOrders(c *gin.Context) {
	orders, err := s.store.ListOrders(auth.ShopID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}
