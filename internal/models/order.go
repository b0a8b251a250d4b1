package models

import (
	"github.com/jinzhu/gorm"
)

// OrderDetails is the structured order an assistant reply can carry. It is
// produced once per chat turn; persisting it is the handler's job.
type OrderDetails struct {
	CustomerName  string            `json:"customerName,omitempty"`
	CustomerPhone string            `json:"customerPhone,omitempty"`
	Items         []OrderItemDetail `json:"items"`
	PickupTime    string            `json:"pickupTime,omitempty"`
	GiftWrapping  bool              `json:"giftWrapping,omitempty"`
	GiftMessage   string            `json:"giftMessage,omitempty"`
	Notes         string            `json:"notes,omitempty"`
	TotalAmount   float64           `json:"totalAmount,omitempty"`
}

// OrderItemDetail is one line of an extracted order.
type OrderItemDetail struct {
	ItemName        string  `json:"itemName"`
	Quantity        int     `json:"quantity"`
	Price           float64 `json:"price"`
	SpecialRequests string  `json:"specialRequests,omitempty"`
}

// Total returns the order total, deriving it from the line items when the
// model did not supply one.
func (od *OrderDetails) Total() float64 {
	if od.TotalAmount > 0 {
		return od.TotalAmount
	}
	var total float64
	for _, item := range od.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// Order is a persisted customer order, scoped to a shop.
type Order struct {
	gorm.Model
	ShopID        uint `gorm:"index"`
	CustomerName  string
	CustomerPhone string
	PickupTime    string
	GiftWrapping  bool
	GiftMessage   string
	Notes         string
	TotalAmount   float64
	Status        string
	Items         []OrderLine `gorm:"foreignkey:OrderID"`
}

// OrderLine is one item of a persisted order.
type OrderLine struct {
	gorm.Model
	OrderID         uint
	ItemName        string
	Quantity        int
	Price           float64
	SpecialRequests string
}

// OrderStatus represents the possible states of an order
type OrderStatus string

const (
	OrderStatusReceived  OrderStatus = "received"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// NewOrder builds a persistable Order from extracted order details.
func NewOrder(shopID uint, details OrderDetails) *Order {
	order := &Order{
		ShopID:        shopID,
		CustomerName:  details.CustomerName,
		CustomerPhone: details.CustomerPhone,
		PickupTime:    details.PickupTime,
		GiftWrapping:  details.GiftWrapping,
		GiftMessage:   details.GiftMessage,
		Notes:         details.Notes,
		TotalAmount:   details.Total(),
		Status:        string(OrderStatusReceived),
	}
	for _, item := range details.Items {
		order.Items = append(order.Items, OrderLine{
			ItemName:        item.ItemName,
			Quantity:        item.Quantity,
			Price:           item.Price,
			SpecialRequests: item.SpecialRequests,
		})
	}
	return order
}
