package models

import "time"

// RoleName defines the closed set of roles in the system
type RoleName string

const (
	RoleAdmin    RoleName = "admin"
	RoleStaff    RoleName = "staff"
	RoleCustomer RoleName = "customer"
)

// AllRoles lists every valid role, used for seeding and request validation
var AllRoles = []RoleName{RoleAdmin, RoleStaff, RoleCustomer}

// ValidRole reports whether name is a member of the closed role set
func ValidRole(name RoleName) bool {
	for _, r := range AllRoles {
		if r == name {
			return true
		}
	}
	return false
}

type Role struct {
	ID   uint     `json:"id" gorm:"primaryKey"`
	Name RoleName `json:"name" gorm:"uniqueIndex;not null"`
}

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;not null"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Active       bool      `json:"active" gorm:"default:true"`
	Roles        []Role    `json:"roles,omitempty" gorm:"many2many:user_roles"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RoleNames returns the user's role set as plain names for token claims
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, string(r.Name))
	}
	return names
}
