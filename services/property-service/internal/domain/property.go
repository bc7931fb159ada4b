package domain

import "time"

const (
	StatusAvailable   = "available"
	StatusUnavailable = "unavailable"
	StatusMaintenance = "maintenance"
)

type Property struct {
	ID          int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	Address     string  `json:"address"`
	City        string  `json:"city"`
	State       string  `json:"state"`
	ZipCode     string  `json:"zip_code"`
	RentAmount  float64 `gorm:"type:decimal(10,2)" json:"rent_amount"`
	Bedrooms    int     `json:"bedrooms"`
	Bathrooms   int     `json:"bathrooms"`
	Description string  `json:"description,omitempty"`

	// available|unavailable|maintenance; the booking.approved consumer moves
	// it to unavailable and never back
	Status string `gorm:"index;default:available" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
