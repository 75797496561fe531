package models

import (
	"time"
)

// OrderStatus is the lifecycle state of an order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"    // placed, awaiting confirmation
	OrderStatusConfirmed  OrderStatus = "confirmed"  // confirmed by the boutique
	OrderStatusProcessing OrderStatus = "processing" // being prepared
	OrderStatusShipped    OrderStatus = "shipped"    // out for delivery
	OrderStatusDelivered  OrderStatus = "delivered"  // received by the customer
	OrderStatusCancelled  OrderStatus = "cancelled"  // cancelled at any point before delivery
)

// Payment methods accepted at checkout
const (
	PaymentMTN    = "MTN"    // MTN Mobile Money
	PaymentOrange = "ORANGE" // Orange Money
	PaymentCash   = "CASH"   // cash on delivery
	PaymentShop   = "SHOP"   // pay in the boutique
)

// PaymentMethods lists the accepted payment methods in display order
func PaymentMethods() []string {
	return []string{PaymentMTN, PaymentOrange, PaymentCash, PaymentShop}
}

// allowedTransitions is the explicit order state machine. Delivered and
// cancelled are terminal.
var allowedTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed:  {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivered:  {},
	OrderStatusCancelled:  {},
}

// Valid reports whether the status is a known order status
func (s OrderStatus) Valid() bool {
	_, ok := allowedTransitions[s]
	return ok
}

// CanTransitionTo reports whether moving from s to target is allowed
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, next := range allowedTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// Order is the persisted header of one checkout transaction. Amounts are
// whole CFA francs. Immutable after creation except Status and UpdatedAt.
type Order struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	CustomerID      uint        `gorm:"not null;index" json:"customer_id"`
	Customer        User        `gorm:"foreignKey:CustomerID" json:"customer"`
	Items           []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	TotalAmount     int64       `gorm:"not null" json:"total_amount"`
	ShippingFee     int64       `gorm:"not null" json:"shipping_fee"`
	PaymentMethod   string      `gorm:"not null" json:"payment_method"`
	Status          OrderStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	ShippingAddress string      `gorm:"type:text;not null" json:"shipping_address"`
	City            string      `gorm:"not null" json:"city"`
	PhoneNumber     string      `gorm:"not null" json:"phone_number"`
	Notes           string      `gorm:"type:text" json:"notes"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// OrderItem is one cart line frozen into an order. Price is the snapshot
// taken when the line entered the cart, not a live lookup.
type OrderItem struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	OrderID  uint   `gorm:"not null;index" json:"order_id"`
	ShoeID   uint   `gorm:"not null;index" json:"shoe_id"`
	Shoe     Shoe   `gorm:"foreignKey:ShoeID" json:"shoe"`
	Quantity int    `gorm:"not null;check:quantity > 0" json:"quantity"`
	Size     int    `gorm:"not null" json:"size"`
	Color    string `gorm:"not null" json:"color"`
	Price    int64  `gorm:"not null" json:"price"`
}

// TableName specifies the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}

// Subtotal returns the frozen price times quantity
func (i *OrderItem) Subtotal() int64 {
	return i.Price * int64(i.Quantity)
}
