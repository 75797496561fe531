package services

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/franckshoes/franck-shoes-api/config"
	"github.com/franckshoes/franck-shoes-api/models"
)

const (
	// TokenLifetime is how long an issued access token stays valid
	TokenLifetime = 24 * time.Hour
	// resetTokenLifetime is how long a password reset token can be redeemed
	resetTokenLifetime = time.Hour
)

// ErrInvalidResetToken is returned when a password reset token is unknown,
// expired, or already used
var ErrInvalidResetToken = errors.New("invalid or expired reset token")

// HashPassword hashes a plaintext password with bcrypt
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// CheckPassword reports whether the plaintext password matches the hash
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// AuthService issues access tokens and manages the password reset flow
type AuthService struct {
	cfg *config.Config
}

// NewAuthService creates a new auth service instance
func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{cfg: cfg}
}

// GenerateToken issues a signed JWT for the user. The subject is the user
// ID; the role claim drives back-office access.
func (s *AuthService) GenerateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss":  s.cfg.JWTIssuer,
		"aud":  s.cfg.JWTAudience,
		"sub":  strconv.FormatUint(uint64(user.ID), 10),
		"role": user.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(TokenLifetime).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.SigningSecret()))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// CreatePasswordReset creates a single-use reset token for the account with
// the given email and hands it to the mailer. An unknown email returns
// (nil, nil) so callers can answer identically either way.
func (s *AuthService) CreatePasswordReset(db *gorm.DB, email string) (*models.PasswordResetToken, error) {
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}

	reset := models.PasswordResetToken{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(resetTokenLifetime),
	}
	if err := db.Create(&reset).Error; err != nil {
		return nil, fmt.Errorf("failed to create reset token: %w", err)
	}

	if err := GetMailer().SendPasswordReset(user.Email, reset.Token); err != nil {
		// Token stays valid; delivery is best-effort
		log.Printf("warning: failed to send reset mail to %s: %v", user.Email, err)
	}

	return &reset, nil
}

// ResetPassword redeems a reset token and replaces the account password
func (s *AuthService) ResetPassword(db *gorm.DB, token, newPassword string) error {
	var reset models.PasswordResetToken
	if err := db.Where("token = ?", token).First(&reset).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidResetToken
		}
		return fmt.Errorf("failed to look up reset token: %w", err)
	}

	now := time.Now()
	if !reset.Usable(now) {
		return ErrInvalidResetToken
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("id = ?", reset.UserID).
			Update("password_hash", hash).Error; err != nil {
			return fmt.Errorf("failed to update password: %w", err)
		}
		if err := tx.Model(&reset).Update("used_at", now).Error; err != nil {
			return fmt.Errorf("failed to mark token used: %w", err)
		}
		return nil
	})
}

// Mailer delivers account emails. Actual delivery is outside this system;
// the default implementation only logs.
type Mailer interface {
	SendPasswordReset(email, token string) error
}

// LogMailer writes outbound mail to the application log
type LogMailer struct{}

// SendPasswordReset logs the reset token instead of sending mail
func (LogMailer) SendPasswordReset(email, token string) error {
	log.Printf("password reset requested for %s (token %s)", email, token)
	return nil
}

var mailerInstance Mailer = LogMailer{}

// GetMailer returns the active mailer
func GetMailer() Mailer {
	return mailerInstance
}

// SetMailer sets the mailer (primarily for testing)
func SetMailer(m Mailer) {
	mailerInstance = m
}
