package domain

import "time"

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// Booking is the authoritative record of one rental request. The booking
// service is the only writer of these rows; downstream services learn about
// transitions through published events.
type Booking struct {
	ID         string `gorm:"primaryKey" json:"id"`
	PropertyID int64  `gorm:"index" json:"property_id"`
	TenantID   string `gorm:"index" json:"tenant_id"`
	Status     Status `gorm:"index" json:"status"`

	// set only on approval
	ApprovedBy *string    `json:"approved_by,omitempty"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`
	// set only on rejection
	RejectionReason *string `gorm:"type:text" json:"rejection_reason,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Decided reports whether the booking has reached a terminal status.
func (b *Booking) Decided() bool {
	return b.Status == StatusApproved || b.Status == StatusRejected
}
