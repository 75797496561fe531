package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/franckshoes/franck-shoes-api/models"
)

// ErrEmptyCart is returned when checkout is attempted with no cart lines;
// an order with zero items is never created
var ErrEmptyCart = errors.New("cart is empty")

// InsufficientStockError is returned when a cart line asks for more stock
// than the shoe has left at checkout time
type InsufficientStockError struct {
	ShoeID uint
	Name   string
}

func (e *InsufficientStockError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("insufficient stock for %q", e.Name)
	}
	return fmt.Sprintf("insufficient stock for shoe %d", e.ShoeID)
}

// CheckoutInfo is the validated shipping form accompanying an order
type CheckoutInfo struct {
	ShippingAddress string
	City            string
	PhoneNumber     string
	PaymentMethod   string
	Notes           string
}

// PlaceOrder transcribes the cart into a persisted order. The header, all
// items, and the stock decrements happen in one transaction, so a failure
// mid-way leaves nothing behind. The cart is cleared only after commit.
//
// Total = cart subtotal (snapshot prices) + city shipping fee.
func PlaceOrder(ctx context.Context, db *gorm.DB, cart *Cart, customer *models.User, info CheckoutInfo) (*models.Order, error) {
	if cart.Empty() {
		return nil, ErrEmptyCart
	}

	shippingFee := ShippingFeeFor(info.City)

	order := models.Order{
		CustomerID:      customer.ID,
		TotalAmount:     cart.Total() + shippingFee,
		ShippingFee:     shippingFee,
		PaymentMethod:   info.PaymentMethod,
		Status:          models.OrderStatusPending,
		ShippingAddress: info.ShippingAddress,
		City:            info.City,
		PhoneNumber:     info.PhoneNumber,
		Notes:           info.Notes,
	}

	lines := cart.Lines()
	err := db.Transaction(func(tx *gorm.DB) error {
		for _, line := range lines {
			// Conditional decrement: succeeds only if enough stock remains,
			// so two concurrent checkouts cannot both consume the last pair
			res := tx.Model(&models.Shoe{}).
				Where("id = ? AND stock >= ?", line.ShoeID, line.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", line.Quantity))
			if res.Error != nil {
				return fmt.Errorf("failed to reserve stock: %w", res.Error)
			}
			if res.RowsAffected == 0 {
				stockErr := &InsufficientStockError{ShoeID: line.ShoeID}
				var shoe models.Shoe
				if tx.Select("name").First(&shoe, line.ShoeID).Error == nil {
					stockErr.Name = shoe.Name
				}
				return stockErr
			}

			order.Items = append(order.Items, models.OrderItem{
				ShoeID:   line.ShoeID,
				Quantity: line.Quantity,
				Size:     line.Size,
				Color:    line.Color,
				Price:    line.Price,
			})
		}

		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := cart.Clear(ctx); err != nil {
		// The order exists; a stale cart is recoverable
		log.Printf("warning: failed to clear cart after order %d: %v", order.ID, err)
	}

	return &order, nil
}

// TransitionResult reports the outcome of a bulk status action
type TransitionResult struct {
	Updated []uint `json:"updated"`
	Skipped []uint `json:"skipped"`
}

// TransitionOrders applies a status transition to each order, skipping
// orders whose current status does not allow the move
func TransitionOrders(db *gorm.DB, orderIDs []uint, target models.OrderStatus) (*TransitionResult, error) {
	if !target.Valid() {
		return nil, fmt.Errorf("unknown order status %q", target)
	}

	result := &TransitionResult{Updated: []uint{}, Skipped: []uint{}}
	err := db.Transaction(func(tx *gorm.DB) error {
		var orders []models.Order
		if err := tx.Where("id IN ?", orderIDs).Find(&orders).Error; err != nil {
			return fmt.Errorf("failed to load orders: %w", err)
		}

		found := make(map[uint]bool, len(orders))
		for _, order := range orders {
			found[order.ID] = true
			if !order.Status.CanTransitionTo(target) {
				result.Skipped = append(result.Skipped, order.ID)
				continue
			}
			if err := tx.Model(&order).Update("status", target).Error; err != nil {
				return fmt.Errorf("failed to update order %d: %w", order.ID, err)
			}
			result.Updated = append(result.Updated, order.ID)
		}

		// Unknown IDs count as skipped rather than failing the batch
		for _, id := range orderIDs {
			if !found[id] {
				result.Skipped = append(result.Skipped, id)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
