package models

import (
	"strings"
	"time"
)

const (
	ROLE_ADMIN      = "admin"
	ROLE_LANDLORD   = "landlord"
	ROLE_CONTRACTOR = "contractor"
)

// Profile is the per-account record carrying the role. Its ID equals the
// Account ID.
type Profile struct {
	ID          string    `gorm:"type:char(36);primaryKey" json:"id"`
	Role        string    `gorm:"type:varchar(20);index;default:'landlord'" json:"role" validate:"oneof=admin landlord contractor"`
	Username    string    `gorm:"type:varchar(150);index" json:"username" validate:"required,min=3,max=150"`
	FullName    string    `gorm:"type:varchar(200)" json:"full_name" validate:"max=200"`
	Email       string    `gorm:"type:varchar(200);index" json:"email" validate:"required,email,max=200"`
	Phone       string    `gorm:"type:varchar(30)" json:"phone" validate:"max=30"`
	CompanyName string    `gorm:"type:varchar(200)" json:"company_name" validate:"max=200"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// IsValidRole reports whether role is one of the three portal roles.
func IsValidRole(role string) bool {
	switch role {
	case ROLE_ADMIN, ROLE_LANDLORD, ROLE_CONTRACTOR:
		return true
	}
	return false
}

// ProfileFromAccount builds the profile provisioned on first sign-in.
func ProfileFromAccount(a *Account) *Profile {
	role := a.MetadataRole
	if !IsValidRole(role) {
		role = ROLE_LANDLORD
	}
	username := strings.TrimSpace(a.MetadataUsername)
	if username == "" {
		username = a.Email
		if at := strings.Index(username, "@"); at > 0 {
			username = username[:at]
		}
	}
	return &Profile{
		ID:       a.ID,
		Role:     role,
		Username: username,
		FullName: a.MetadataFullName,
		Email:    a.Email,
	}
}

// DisplayName prefers the full name.
func (p *Profile) DisplayName() string {
	if p.FullName != "" {
		return p.FullName
	}
	return p.Username
}
