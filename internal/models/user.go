// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Role is the content role attached to a user's profile. It governs what
// a user may author, not what they may moderate; staff privilege is a
// separate axis carried on User.IsStaff.
type Role string

const (
	// RoleAuthor may create, edit and delete their own posts.
	RoleAuthor Role = "author"
	// RoleReader may comment and like but not author posts.
	RoleReader Role = "reader"
	// RoleAdmin is accepted on profiles for completeness; moderation
	// access is still gated by the IsStaff flag, never by this value.
	RoleAdmin Role = "admin"
)

// ValidRole reports whether r is a known content role.
func ValidRole(r Role) bool {
	return r == RoleAuthor || r == RoleReader || r == RoleAdmin
}

// User represents an account in the Inkwell application.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"unique;not null" json:"username"`
	Email     string         `gorm:"unique;not null" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	IsStaff   bool           `gorm:"default:false" json:"is_staff"`
	Profile   *Profile       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"profile,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Posts     []Post         `gorm:"foreignKey:UserID" json:"posts,omitempty"`
}

// Profile is the one-to-one companion record holding a user's content role.
// Every user has exactly one profile once signup completes.
type Profile struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	Role      Role      `gorm:"type:varchar(10);not null;default:'reader'" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RoleOf returns the user's content role, defaulting to reader when the
// profile has not been loaded or created yet.
func (u *User) RoleOf() Role {
	if u.Profile == nil {
		return RoleReader
	}
	return u.Profile.Role
}
