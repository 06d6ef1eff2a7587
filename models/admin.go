package models

import (
	"time"
)

// Admin is the single privileged identity type. There are no tiered roles:
// an active admin can do everything behind the auth gate.
type Admin struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Username     string     `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email        string     `gorm:"uniqueIndex;size:100;not null" json:"email"`
	PasswordHash string     `gorm:"size:255;not null" json:"-"` // never serialized
	FullName     string     `gorm:"size:100" json:"full_name"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login"`
}

func (a *Admin) ToDict() map[string]interface{} {
	var lastLogin interface{}
	if a.LastLogin != nil {
		lastLogin = a.LastLogin.UTC().Format(time.RFC3339)
	}
	return map[string]interface{}{
		"id":         a.ID,
		"username":   a.Username,
		"email":      a.Email,
		"full_name":  a.FullName,
		"is_active":  a.IsActive,
		"created_at": a.CreatedAt.UTC().Format(time.RFC3339),
		"last_login": lastLogin,
	}
}
