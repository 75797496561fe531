package services

import (
	"context"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/franckshoes/franck-shoes-api/models"
)

// Cart is the per-visitor shopping cart, loaded from and saved back to the
// session store. One visitor per session, so there is no locking: concurrent
// requests from the same visitor are last-write-wins.
type Cart struct {
	store     SessionStore
	sessionID string
	session   *CartSession
}

// CartItemView is a cart line joined against the live catalog row. Subtotal
// is computed from the snapshot price, not the shoe's current price.
type CartItemView struct {
	Shoe     models.Shoe `json:"shoe"`
	Quantity int         `json:"quantity"`
	Size     int         `json:"size"`
	Color    string      `json:"color"`
	Price    int64       `json:"price"`
	Subtotal int64       `json:"subtotal"`
}

// LoadCart fetches the visitor's cart from the session store
func LoadCart(ctx context.Context, store SessionStore, sessionID string) (*Cart, error) {
	session, err := store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &Cart{store: store, sessionID: sessionID, session: session}, nil
}

func lineKey(shoeID uint, size int, color string) string {
	return fmt.Sprintf("%d_%d_%s", shoeID, size, color)
}

// Add increments the quantity for the shoe+size+color line, creating it
// with a price snapshot if absent
func (c *Cart) Add(shoe *models.Shoe, quantity, size int, color string) {
	key := lineKey(shoe.ID, size, color)

	line, exists := c.session.Lines[key]
	if !exists {
		line = CartLine{
			ShoeID: shoe.ID,
			Size:   size,
			Color:  color,
			Price:  shoe.Price,
		}
	}
	line.Quantity += quantity
	c.session.Lines[key] = line
}

// Remove deletes the line if present; removing an absent line is a no-op
func (c *Cart) Remove(shoeID uint, size int, color string) {
	delete(c.session.Lines, lineKey(shoeID, size, color))
}

// Update overwrites the quantity of an existing line. It reports whether
// the line existed; an absent line is left untouched.
func (c *Cart) Update(shoeID uint, quantity, size int, color string) bool {
	key := lineKey(shoeID, size, color)
	line, exists := c.session.Lines[key]
	if !exists {
		return false
	}
	line.Quantity = quantity
	c.session.Lines[key] = line
	return true
}

// Len returns the total number of articles across all lines
func (c *Cart) Len() int {
	count := 0
	for _, line := range c.session.Lines {
		count += line.Quantity
	}
	return count
}

// Empty reports whether the cart has no lines
func (c *Cart) Empty() bool {
	return len(c.session.Lines) == 0
}

// Total sums snapshot price times quantity across all lines. Live catalog
// price changes do not affect the total.
func (c *Cart) Total() int64 {
	var total int64
	for _, line := range c.session.Lines {
		total += line.Price * int64(line.Quantity)
	}
	return total
}

// Lines returns the cart lines in a stable order
func (c *Cart) Lines() []CartLine {
	keys := make([]string, 0, len(c.session.Lines))
	for key := range c.session.Lines {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	lines := make([]CartLine, 0, len(keys))
	for _, key := range keys {
		lines = append(lines, c.session.Lines[key])
	}
	return lines
}

// Items joins the cart lines against the current catalog rows. Lines whose
// shoe no longer exists are skipped. Each item's subtotal uses the frozen
// snapshot price.
func (c *Cart) Items(db *gorm.DB) ([]CartItemView, error) {
	if c.Empty() {
		return nil, nil
	}

	ids := make([]uint, 0, len(c.session.Lines))
	for _, line := range c.session.Lines {
		ids = append(ids, line.ShoeID)
	}

	var shoes []models.Shoe
	if err := db.Where("id IN ?", ids).Find(&shoes).Error; err != nil {
		return nil, fmt.Errorf("failed to load cart products: %w", err)
	}

	byID := make(map[uint]models.Shoe, len(shoes))
	for _, shoe := range shoes {
		byID[shoe.ID] = shoe
	}

	items := make([]CartItemView, 0, len(c.session.Lines))
	for _, line := range c.Lines() {
		shoe, ok := byID[line.ShoeID]
		if !ok {
			continue
		}
		items = append(items, CartItemView{
			Shoe:     shoe,
			Quantity: line.Quantity,
			Size:     line.Size,
			Color:    line.Color,
			Price:    line.Price,
			Subtotal: line.Price * int64(line.Quantity),
		})
	}
	return items, nil
}

// City returns the delivery city chosen on the cart page, if any
func (c *Cart) City() string {
	return c.session.City
}

// SetCity records the delivery city in the session
func (c *Cart) SetCity(city string) {
	c.session.City = city
}

// Save persists the cart back to the session store
func (c *Cart) Save(ctx context.Context) error {
	return c.store.Save(ctx, c.sessionID, c.session)
}

// Clear deletes the whole cart session from the store
func (c *Cart) Clear(ctx context.Context) error {
	c.session = NewCartSession()
	return c.store.Delete(ctx, c.sessionID)
}
