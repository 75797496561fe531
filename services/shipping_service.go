package services

import (
	"log"

	"github.com/franckshoes/franck-shoes-api/config"
)

var shippingTableInstance *config.ShippingTable

// InitShippingTable loads the city shipping-fee table. If the configured
// YAML path cannot be loaded the built-in defaults are used.
func InitShippingTable(cfg *config.Config) *config.ShippingTable {
	table, err := config.LoadShippingTable(cfg.ShippingTablePath)
	if err != nil {
		log.Printf("warning: %v, using default shipping table", err)
		table = config.DefaultShippingTable()
	}
	shippingTableInstance = table
	return table
}

// GetShippingTable returns the active shipping-fee table
func GetShippingTable() *config.ShippingTable {
	if shippingTableInstance == nil {
		shippingTableInstance = config.DefaultShippingTable()
	}
	return shippingTableInstance
}

// SetShippingTable sets the shipping-fee table (primarily for testing)
func SetShippingTable(table *config.ShippingTable) {
	shippingTableInstance = table
}

// ShippingFeeFor returns the delivery fee for a city, applying the default
// fee for cities missing from the table
func ShippingFeeFor(city string) int64 {
	return GetShippingTable().FeeFor(city)
}
