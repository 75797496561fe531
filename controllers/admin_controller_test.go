package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/franckshoes/franck-shoes-api/config"
	"github.com/franckshoes/franck-shoes-api/models"
)

func TestVendorDashboard(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	customer := seedCustomer(t, db, "aline")

	// Twelve orders: ten pending, two delivered
	for i := 0; i < 10; i++ {
		db.Create(&models.Order{
			CustomerID:      customer.ID,
			TotalAmount:     20000,
			ShippingFee:     2000,
			PaymentMethod:   models.PaymentMTN,
			Status:          models.OrderStatusPending,
			ShippingAddress: "Akwa",
			City:            "Douala",
			PhoneNumber:     "+237655555555",
		})
	}
	for i := 0; i < 2; i++ {
		db.Create(&models.Order{
			CustomerID:      customer.ID,
			TotalAmount:     50000,
			ShippingFee:     2500,
			PaymentMethod:   models.PaymentOrange,
			Status:          models.OrderStatusDelivered,
			ShippingAddress: "Bastos",
			City:            "Yaoundé",
			PhoneNumber:     "+237655555555",
		})
	}
	db.Create(&models.ContactMessage{
		Name: "Client", Email: "c@example.com", Subject: "Avis",
		Message: "En attente", Approved: false,
	})

	router := setupTestRouter()
	router.GET("/gestion/tableau-de-bord", mockAuthMiddleware(99, models.RoleVendor), VendorDashboard)

	w := performRequest(router, http.MethodGet, "/gestion/tableau-de-bord", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	data := parseResponse(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(12), data["total_orders"])
	assert.Equal(t, float64(10), data["pending_orders"])
	assert.Equal(t, float64(100000), data["delivered_revenue"], "Only delivered orders count as revenue")
	assert.Equal(t, float64(1), data["pending_messages"])
	assert.Len(t, data["recent_orders"].([]interface{}), 10)
}

func TestListOrdersFilters(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	customer := seedCustomer(t, db, "aline")
	db.Create(&models.Order{
		CustomerID: customer.ID, TotalAmount: 20000, ShippingFee: 2000,
		PaymentMethod: models.PaymentMTN, Status: models.OrderStatusPending,
		ShippingAddress: "Akwa", City: "Douala", PhoneNumber: "+237655555555",
	})
	db.Create(&models.Order{
		CustomerID: customer.ID, TotalAmount: 30000, ShippingFee: 2500,
		PaymentMethod: models.PaymentCash, Status: models.OrderStatusShipped,
		ShippingAddress: "Bastos", City: "Yaoundé", PhoneNumber: "+237655555555",
	})

	router := setupTestRouter()
	router.GET("/gestion/commandes", mockAuthMiddleware(99, models.RoleVendor), ListOrders)

	listedOrders := func(t *testing.T, path string) []interface{} {
		w := performRequest(router, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		data := parseResponse(t, w)["data"].(map[string]interface{})
		return data["orders"].([]interface{})
	}

	t.Run("No filter returns all", func(t *testing.T) {
		assert.Len(t, listedOrders(t, "/gestion/commandes"), 2)
	})

	t.Run("Status filter", func(t *testing.T) {
		orders := listedOrders(t, "/gestion/commandes?status=shipped")
		assert.Len(t, orders, 1)
		assert.Equal(t, "shipped", orders[0].(map[string]interface{})["status"])
	})

	t.Run("City filter", func(t *testing.T) {
		assert.Len(t, listedOrders(t, "/gestion/commandes?city=Douala"), 1)
	})

	t.Run("Payment filter", func(t *testing.T) {
		assert.Len(t, listedOrders(t, "/gestion/commandes?payment_method=CASH"), 1)
	})

	t.Run("Pagination meta", func(t *testing.T) {
		w := performRequest(router, http.MethodGet, "/gestion/commandes", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		data := parseResponse(t, w)["data"].(map[string]interface{})
		assert.Equal(t, float64(1), data["page"])
		assert.Equal(t, float64(2), data["total"])
		assert.Equal(t, float64(1), data["total_pages"])
	})

	t.Run("Unknown status filter", func(t *testing.T) {
		w := performRequest(router, http.MethodGet, "/gestion/commandes?status=teleported", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		response := parseResponse(t, w)
		errorData := response["error"].(map[string]interface{})
		assert.Equal(t, "INVALID_STATUS", errorData["code"])
	})
}

func TestTransitionOrdersEndpoint(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	customer := seedCustomer(t, db, "aline")

	pending := models.Order{
		CustomerID: customer.ID, TotalAmount: 20000, ShippingFee: 2000,
		PaymentMethod: models.PaymentMTN, Status: models.OrderStatusPending,
		ShippingAddress: "Akwa", City: "Douala", PhoneNumber: "+237655555555",
	}
	db.Create(&pending)

	delivered := models.Order{
		CustomerID: customer.ID, TotalAmount: 30000, ShippingFee: 2500,
		PaymentMethod: models.PaymentCash, Status: models.OrderStatusDelivered,
		ShippingAddress: "Bastos", City: "Yaoundé", PhoneNumber: "+237655555555",
	}
	db.Create(&delivered)

	router := setupTestRouter()
	router.POST("/gestion/commandes/statut", mockAuthMiddleware(99, models.RoleVendor), TransitionOrders)

	t.Run("Mixed batch updates and skips", func(t *testing.T) {
		w := performRequest(router, http.MethodPost, "/gestion/commandes/statut", map[string]interface{}{
			"order_ids": []uint{pending.ID, delivered.ID, 999},
			"status":    "confirmed",
		})
		assert.Equal(t, http.StatusOK, w.Code)

		data := parseResponse(t, w)["data"].(map[string]interface{})
		updated := data["updated"].([]interface{})
		skipped := data["skipped"].([]interface{})
		assert.Len(t, updated, 1)
		assert.Len(t, skipped, 2)

		var reloaded models.Order
		assert.NoError(t, db.First(&reloaded, pending.ID).Error)
		assert.Equal(t, models.OrderStatusConfirmed, reloaded.Status)
	})

	t.Run("Unknown target status", func(t *testing.T) {
		w := performRequest(router, http.MethodPost, "/gestion/commandes/statut", map[string]interface{}{
			"order_ids": []uint{pending.ID},
			"status":    "teleported",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		response := parseResponse(t, w)
		errorData := response["error"].(map[string]interface{})
		assert.Equal(t, "INVALID_STATUS", errorData["code"])
	})

	t.Run("Empty order list", func(t *testing.T) {
		w := performRequest(router, http.MethodPost, "/gestion/commandes/statut", map[string]interface{}{
			"order_ids": []uint{},
			"status":    "confirmed",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestShoeCRUD(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	category := seedCategory(t, db, "Baskets", "baskets")

	router := setupTestRouter()
	vendorAuth := mockAuthMiddleware(99, models.RoleVendor)
	router.POST("/gestion/chaussures", vendorAuth, CreateShoe)
	router.PUT("/gestion/chaussures/:id", vendorAuth, UpdateShoe)
	router.DELETE("/gestion/chaussures/:id", vendorAuth, DeleteShoe)

	validShoe := map[string]interface{}{
		"name":        "Air Street",
		"slug":        "air-street",
		"price":       25000,
		"category_id": category.ID,
		"main_color":  "noir",
		"min_size":    38,
		"max_size":    44,
		"stock":       10,
	}

	var createdID float64

	t.Run("Create", func(t *testing.T) {
		w := performRequest(router, http.MethodPost, "/gestion/chaussures", validShoe)
		assert.Equal(t, http.StatusCreated, w.Code)

		data := parseResponse(t, w)["data"].(map[string]interface{})
		createdID = data["id"].(float64)
		assert.Equal(t, "Air Street", data["name"])
	})

	t.Run("Duplicate slug", func(t *testing.T) {
		w := performRequest(router, http.MethodPost, "/gestion/chaussures", validShoe)
		assert.Equal(t, http.StatusConflict, w.Code)

		response := parseResponse(t, w)
		errorData := response["error"].(map[string]interface{})
		assert.Equal(t, "SLUG_EXISTS", errorData["code"])
	})

	t.Run("Size range outside bounds", func(t *testing.T) {
		bad := map[string]interface{}{}
		for k, v := range validShoe {
			bad[k] = v
		}
		bad["slug"] = "hors-pointure"
		bad["min_size"] = 30
		bad["max_size"] = 60

		w := performRequest(router, http.MethodPost, "/gestion/chaussures", bad)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		response := parseResponse(t, w)
		errorData := response["error"].(map[string]interface{})
		assert.Equal(t, "INVALID_SIZE_RANGE", errorData["code"])
	})

	t.Run("Negative price rejected", func(t *testing.T) {
		bad := map[string]interface{}{}
		for k, v := range validShoe {
			bad[k] = v
		}
		bad["slug"] = "prix-negatif"
		bad["price"] = -100

		w := performRequest(router, http.MethodPost, "/gestion/chaussures", bad)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Update", func(t *testing.T) {
		updated := map[string]interface{}{}
		for k, v := range validShoe {
			updated[k] = v
		}
		updated["price"] = 27500
		updated["featured"] = true

		w := performRequest(router, http.MethodPut,
			fmt.Sprintf("/gestion/chaussures/%.0f", createdID), updated)
		assert.Equal(t, http.StatusOK, w.Code)

		var shoe models.Shoe
		assert.NoError(t, db.First(&shoe, uint(createdID)).Error)
		assert.Equal(t, int64(27500), shoe.Price)
		assert.True(t, shoe.Featured)
	})

	t.Run("Delete", func(t *testing.T) {
		w := performRequest(router, http.MethodDelete,
			fmt.Sprintf("/gestion/chaussures/%.0f", createdID), nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var count int64
		db.Model(&models.Shoe{}).Count(&count)
		assert.Equal(t, int64(0), count, "Soft deleted shoes leave the catalog")

		var total int64
		db.Unscoped().Model(&models.Shoe{}).Count(&total)
		assert.Equal(t, int64(1), total, "The row itself survives for order history")
	})
}

func TestCategoryAdmin(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	router := setupTestRouter()
	vendorAuth := mockAuthMiddleware(99, models.RoleVendor)
	router.POST("/gestion/categories", vendorAuth, CreateCategory)
	router.DELETE("/gestion/categories/:id", vendorAuth, DeleteCategory)

	w := performRequest(router, http.MethodPost, "/gestion/categories", map[string]interface{}{
		"name": "Sandales",
		"slug": "sandales",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	data := parseResponse(t, w)["data"].(map[string]interface{})

	w = performRequest(router, http.MethodPost, "/gestion/categories", map[string]interface{}{
		"name": "Autres Sandales",
		"slug": "sandales",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = performRequest(router, http.MethodDelete,
		fmt.Sprintf("/gestion/categories/%.0f", data["id"].(float64)), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMessageModeration(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	pending := models.ContactMessage{
		Name: "Client A", Email: "a@example.com", Subject: "Avis",
		Message: "Superbe", Approved: false, IsTestimonial: true,
	}
	db.Create(&pending)
	db.Create(&models.ContactMessage{
		Name: "Client B", Email: "b@example.com", Subject: "Question",
		Message: "Horaires?", Approved: true,
	})

	router := setupTestRouter()
	vendorAuth := mockAuthMiddleware(99, models.RoleVendor)
	router.GET("/gestion/messages", vendorAuth, ListMessages)
	router.POST("/gestion/messages/:id/approuver", vendorAuth, ApproveMessage)

	t.Run("List all", func(t *testing.T) {
		w := performRequest(router, http.MethodGet, "/gestion/messages", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, parseResponse(t, w)["data"].([]interface{}), 2)
	})

	t.Run("List pending only", func(t *testing.T) {
		w := performRequest(router, http.MethodGet, "/gestion/messages?pending=true", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		messages := parseResponse(t, w)["data"].([]interface{})
		assert.Len(t, messages, 1)
		assert.Equal(t, "Client A", messages[0].(map[string]interface{})["name"])
	})

	t.Run("Approve", func(t *testing.T) {
		w := performRequest(router, http.MethodPost,
			fmt.Sprintf("/gestion/messages/%d/approuver", pending.ID), nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var reloaded models.ContactMessage
		assert.NoError(t, db.First(&reloaded, pending.ID).Error)
		assert.True(t, reloaded.Approved)
	})

	t.Run("Approve unknown message", func(t *testing.T) {
		w := performRequest(router, http.MethodPost, "/gestion/messages/999/approuver", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
