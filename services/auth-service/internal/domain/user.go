package domain

import "time"

type Role string

const (
	RoleTenant Role = "TENANT"
	RoleAdmin  Role = "ADMIN"
)

type User struct {
	ID           string `gorm:"primaryKey" json:"id"`
	Email        string `gorm:"uniqueIndex" json:"email"`
	PasswordHash string `json:"-"`
	Name         string `json:"name"`
	Role         Role   `gorm:"index" json:"role"` // TENANT|ADMIN

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
