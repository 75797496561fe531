package models

import "time"

// ContactMessage is a public contact submission. It sits in a moderation
// queue and is never shown publicly until a vendor approves it.
type ContactMessage struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"not null" json:"name"`
	Email         string    `gorm:"not null" json:"email"`
	City          string    `json:"city"`
	Subject       string    `gorm:"not null" json:"subject"`
	Message       string    `gorm:"type:text;not null" json:"message"`
	Approved      bool      `gorm:"not null;default:false" json:"approved"`
	IsTestimonial bool      `gorm:"not null;default:false" json:"is_testimonial"`
	CreatedAt     time.Time `json:"created_at"`
}

// TableName specifies the table name for the ContactMessage model
func (ContactMessage) TableName() string {
	return "contact_messages"
}
