package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ShippingTable maps delivery cities to flat shipping fees in CFA francs.
// Cities not present in the table are charged the default fee.
type ShippingTable struct {
	Cities  map[string]int64 `yaml:"cities"`
	Default int64            `yaml:"default"`
}

// DefaultShippingTable returns the built-in city fee table
func DefaultShippingTable() *ShippingTable {
	return &ShippingTable{
		Cities: map[string]int64{
			"Douala":    2000,
			"Yaoundé":   2500,
			"Bafoussam": 3000,
			"Garoua":    4000,
			"Maroua":    4500,
		},
		Default: 5000,
	}
}

// LoadShippingTable reads a shipping fee table from a YAML file.
// An empty path returns the built-in defaults.
func LoadShippingTable(path string) (*ShippingTable, error) {
	if path == "" {
		return DefaultShippingTable(), nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open shipping table: %w", err)
	}
	defer file.Close()

	var table ShippingTable
	if err := yaml.NewDecoder(file).Decode(&table); err != nil {
		return nil, fmt.Errorf("failed to parse shipping table: %w", err)
	}
	if table.Default <= 0 {
		return nil, fmt.Errorf("shipping table %s has no default fee", path)
	}

	return &table, nil
}

// FeeFor returns the shipping fee for a city, falling back to the default
// fee for unknown cities
func (t *ShippingTable) FeeFor(city string) int64 {
	if fee, ok := t.Cities[city]; ok {
		return fee
	}
	return t.Default
}
