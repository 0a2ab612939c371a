package models

import (
	"time"

	"github.com/uptrace/bun"
)

// VerificationCode holds the single active password-reset code for an
// email address. Requesting a new code replaces the previous one; a
// successful reset deletes the row.
type VerificationCode struct {
	bun.BaseModel `bun:"table:verification_codes,alias:vc"`

	Email     string    `bun:",pk" json:"email"`
	CodeHash  string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Expired reports whether the code is past its validity window.
func (vc *VerificationCode) Expired(now time.Time) bool {
	return now.After(vc.ExpiresAt)
}
