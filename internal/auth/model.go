package auth

import (
	"strings"
	"time"
)

// Role is the single authorization axis for the portal. Values are
// normalized once at resolution time; nothing else compares raw strings.
type Role string

const (
	RoleUser    Role = "user"
	RoleOfficer Role = "officer"
	RoleHead    Role = "head"
	RoleAdmin   Role = "admin"
)

// ParseRole normalizes a stored role string into the closed enumeration.
// The legacy "worker" alias maps to officer; anything unrecognized falls
// back to the plain user role.
func ParseRole(raw string) Role {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "admin":
		return RoleAdmin
	case "head":
		return RoleHead
	case "officer", "worker":
		return RoleOfficer
	default:
		return RoleUser
	}
}

func (r Role) IsAdmin() bool   { return r == RoleAdmin }
func (r Role) IsHead() bool    { return r == RoleHead }
func (r Role) IsOfficer() bool { return r == RoleOfficer }

func (r Role) String() string { return string(r) }

// ValidRole reports whether raw names a member of the enumeration
// (after alias mapping), as opposed to falling back to user.
func ValidRole(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "user", "officer", "worker", "head", "admin":
		return true
	}
	return false
}

type User struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	FullName        string    `gorm:"size:150;not null" json:"full_name"`
	Email           string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Phone           string    `gorm:"size:20" json:"phone"`
	PasswordHash    string    `gorm:"not null" json:"-"`
	Role            string    `gorm:"size:20;not null;default:'user';index" json:"role"`
	PasswordChanged bool      `gorm:"default:true" json:"password_changed"`
	EmailVerified   bool      `gorm:"default:false" json:"email_verified"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// Profile is the role-augmented identity handed to every authorized
// operation. It is resolved once per session establishment and treated as
// immutable afterwards; role edits take effect on the next issued token.
type Profile struct {
	UserID        uint   `json:"uid"`
	Email         string `json:"email"`
	FullName      string `json:"full_name"`
	Role          Role   `json:"role"`
	IsAdmin       bool   `json:"isAdmin"`
	IsHead        bool   `json:"isHead"`
	IsOfficer     bool   `json:"isOfficer"`
	EmailVerified bool   `json:"emailVerified"`
}

// NewProfile derives the flag set from a normalized role.
func NewProfile(u *User) Profile {
	role := ParseRole(u.Role)
	return Profile{
		UserID:        u.ID,
		Email:         u.Email,
		FullName:      u.FullName,
		Role:          role,
		IsAdmin:       role.IsAdmin(),
		IsHead:        role.IsHead(),
		IsOfficer:     role.IsOfficer(),
		EmailVerified: u.EmailVerified,
	}
}

// DegradedProfile is the availability fallback used when the profile
// lookup fails transiently during sign-in: the caller proceeds with the
// lowest-privilege role instead of being blocked.
func DegradedProfile(userID uint, email string) Profile {
	return Profile{
		UserID: userID,
		Email:  email,
		Role:   RoleUser,
	}
}
