package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents an admin account. Every account may manage posts; there
// is no role hierarchy.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize the hash
	DisplayName  string    `json:"display_name"`
	TOTPSecret   *string   `json:"-"` // Nullable; set during optional 2FA enrollment
	TOTPEnabled  bool      `json:"totp_enabled"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Has2FA returns true if the user has completed TOTP enrollment and must
// verify a code after password login.
func (u *User) Has2FA() bool {
	return u.TOTPEnabled
}
