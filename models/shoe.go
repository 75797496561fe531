package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Shoe sizes sold by the boutique (European sizing)
const (
	MinShoeSize = 35
	MaxShoeSize = 50
)

// Shoe represents a product in the catalog. Prices are whole CFA francs.
type Shoe struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Name            string         `gorm:"not null" json:"name"`
	Slug            string         `gorm:"uniqueIndex;not null" json:"slug"`
	Description     string         `gorm:"type:text" json:"description"`
	Price           int64          `gorm:"not null;check:price >= 0" json:"price"`
	CategoryID      uint           `gorm:"not null;index" json:"category_id"`
	Category        Category       `gorm:"foreignKey:CategoryID" json:"category"`
	MainColor       string         `gorm:"not null" json:"main_color"`
	AvailableColors string         `json:"available_colors"` // comma-separated list
	MinSize         int            `gorm:"not null" json:"min_size"`
	MaxSize         int            `gorm:"not null" json:"max_size"`
	Stock           int            `gorm:"not null;default:0" json:"stock"`
	ImageS3Key      *string        `json:"image_s3_key"`
	ImageURL        *string        `gorm:"-" json:"image_url,omitempty"` // computed, presigned URL
	Featured        bool           `gorm:"not null;default:false" json:"featured"`
	Images          []ShoeImage    `gorm:"foreignKey:ShoeID" json:"images,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Shoe model
func (Shoe) TableName() string {
	return "shoes"
}

// AvailableSizes expands the min/max range into the list of sizes a
// customer can pick from
func (s *Shoe) AvailableSizes() []int {
	if s.MaxSize < s.MinSize {
		return nil
	}
	sizes := make([]int, 0, s.MaxSize-s.MinSize+1)
	for size := s.MinSize; size <= s.MaxSize; size++ {
		sizes = append(sizes, size)
	}
	return sizes
}

// ColorsList splits the comma-separated available colors
func (s *Shoe) ColorsList() []string {
	if s.AvailableColors == "" {
		return nil
	}
	parts := strings.Split(s.AvailableColors, ",")
	colors := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			colors = append(colors, trimmed)
		}
	}
	return colors
}

// ValidSizeRange reports whether the size bounds are inside the catalog
// range and ordered
func (s *Shoe) ValidSizeRange() bool {
	return s.MinSize >= MinShoeSize && s.MaxSize <= MaxShoeSize && s.MinSize <= s.MaxSize
}

// ShoeImage is a secondary product photo
type ShoeImage struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	ShoeID   uint    `gorm:"not null;index" json:"shoe_id"`
	S3Key    string  `gorm:"not null" json:"s3_key"`
	URL      *string `gorm:"-" json:"url,omitempty"` // computed, presigned URL
	Position int     `gorm:"not null;default:0" json:"position"`
}

// TableName specifies the table name for the ShoeImage model
func (ShoeImage) TableName() string {
	return "shoe_images"
}
