package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles
const (
	RoleCustomer = "customer"
	RoleVendor   = "vendor"
)

// User represents an account holder (customer or back-office vendor)
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Username     string         `gorm:"uniqueIndex;not null" json:"username"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
	Role         string         `gorm:"not null;default:'customer'" json:"role"` // "customer" or "vendor"
	Profile      *UserProfile   `gorm:"foreignKey:UserID" json:"profile,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// IsVendor reports whether the user may access the back-office
func (u *User) IsVendor() bool {
	return u.Role == RoleVendor
}

// UserProfile carries the delivery details attached one-to-one to a User.
// It is created explicitly by the registration flow, never by hooks.
type UserProfile struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	UserID         uint       `gorm:"uniqueIndex;not null" json:"user_id"`
	PhoneNumber    string     `json:"phone_number"`
	City           string     `json:"city"`
	Address        string     `gorm:"type:text" json:"address"`
	DateOfBirth    *time.Time `json:"date_of_birth"`
	PictureS3Key   *string    `json:"picture_s3_key"`
	PictureURL     *string    `gorm:"-" json:"picture_url,omitempty"` // computed, presigned URL
	UpdatedAt      time.Time  `json:"updated_at"`
}

// TableName specifies the table name for the UserProfile model
func (UserProfile) TableName() string {
	return "user_profiles"
}

// PasswordResetToken is a single-use token for the password reset flow
type PasswordResetToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"not null;index" json:"user_id"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
	Token     string     `gorm:"uniqueIndex;not null" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	UsedAt    *time.Time `json:"used_at"`
	CreatedAt time.Time  `json:"created_at"`
}

// TableName specifies the table name for the PasswordResetToken model
func (PasswordResetToken) TableName() string {
	return "password_reset_tokens"
}

// Usable reports whether the token can still redeem a password reset
func (t *PasswordResetToken) Usable(now time.Time) bool {
	return t.UsedAt == nil && now.Before(t.ExpiresAt)
}
