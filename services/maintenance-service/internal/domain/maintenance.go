package domain

import "time"

const (
	StatusOpen       = "open"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
)

type Maintenance struct {
	ID          string `gorm:"primaryKey" json:"id"`
	PropertyID  string `gorm:"index" json:"property_id"`
	TenantID    string `gorm:"index" json:"tenant_id"`
	Title       string `json:"title"`
	Description string `gorm:"type:text" json:"description"`
	// Status is one of open, in-progress, completed.
	Status string `gorm:"index;default:open" json:"status"`
	// Priority is one of low, medium, high, urgent.
	Priority string `gorm:"default:low" json:"priority"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
