package consumer

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/mamzpy/property-management-system/pkg/events"
	"github.com/mamzpy/property-management-system/services/property-service/internal/domain"
	"github.com/mamzpy/property-management-system/services/property-service/internal/service"
)

// Queue is this consumer's durable queue; competing instances share it.
const Queue = "property-service.booking-approved"

// BookingApproved marks a property unavailable once its booking is approved.
// The status change is monotonic within this workflow: the consumer never
// flips a property back to available.
type BookingApproved struct {
	repo service.Repository
	log  *zap.Logger
}

func NewBookingApproved(repo service.Repository, log *zap.Logger) *BookingApproved {
	return &BookingApproved{repo: repo, log: log}
}

// Handle processes one booking.approved delivery. A returned error requeues
// the message; nil acknowledges it.
func (c *BookingApproved) Handle(ctx context.Context, body []byte) error {
	ev, err := events.Decode[events.BookingApproved](body)
	if err != nil {
		c.log.Error("dropping undecodable booking.approved", zap.Error(err))
		return nil
	}

	p, err := c.repo.ByID(ctx, ev.PropertyID)
	if errors.Is(err, service.ErrNotFound) {
		// structurally missing reference; requeueing would loop forever
		c.log.Warn("booking.approved for unknown property",
			zap.Int64("property_id", ev.PropertyID),
			zap.String("booking_id", ev.BookingID),
			zap.String("correlation_id", ev.CorrelationID))
		return nil
	}
	if err != nil {
		return fmt.Errorf("load property %d: %w", ev.PropertyID, err)
	}

	if p.Status == domain.StatusUnavailable {
		c.log.Info("duplicate booking.approved, property already unavailable",
			zap.Int64("property_id", ev.PropertyID),
			zap.String("booking_id", ev.BookingID),
			zap.String("correlation_id", ev.CorrelationID))
		return nil
	}

	if err := c.repo.SetStatus(ctx, p.ID, domain.StatusUnavailable); err != nil {
		return fmt.Errorf("mark property %d unavailable: %w", p.ID, err)
	}

	c.log.Info("property marked unavailable",
		zap.Int64("property_id", p.ID),
		zap.String("booking_id", ev.BookingID),
		zap.String("correlation_id", ev.CorrelationID))
	return nil
}
