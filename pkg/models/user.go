package models

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
	ThemeSepia = "sepia"
)

const (
	ViewModeGrid = "grid"
	ViewModeList = "list"
)

type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           int       `bun:",pk,nullzero" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Name         string    `bun:",nullzero" json:"name"`
	Email        string    `bun:",nullzero" json:"email"`
	PasswordHash string    `json:"-"` // Never expose password hash
	IsAdmin      bool      `json:"is_admin"`
	Theme        string    `bun:",nullzero" json:"theme"`
	ViewMode     string    `bun:",nullzero" json:"view_mode"`
}

// ValidTheme reports whether theme is one of the supported UI themes.
func ValidTheme(theme string) bool {
	switch theme {
	case ThemeLight, ThemeDark, ThemeSepia:
		return true
	}
	return false
}

// ValidViewMode reports whether mode is a supported library view mode.
func ValidViewMode(mode string) bool {
	switch mode {
	case ViewModeGrid, ViewModeList:
		return true
	}
	return false
}
