package domain

import "time"

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Tenant links a user to a property. Activation records are created by the
// booking.created consumer; at most one active record exists per
// (user, property) pair.
type Tenant struct {
	ID         string `gorm:"primaryKey" json:"id"`
	UserID     string `gorm:"index:idx_tenant_user_property" json:"user_id"`
	PropertyID int64  `gorm:"index:idx_tenant_user_property" json:"property_id"`

	FirstName        string `json:"first_name,omitempty"`
	LastName         string `json:"last_name,omitempty"`
	Email            string `json:"email,omitempty"`
	Phone            string `json:"phone,omitempty"`
	EmergencyContact string `json:"emergency_contact,omitempty"`
	EmergencyPhone   string `json:"emergency_phone,omitempty"`

	Status    string `gorm:"index" json:"status"` // active|inactive
	BookingID string `json:"booking_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
