package consumer

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/mamzpy/property-management-system/pkg/events"
	"github.com/mamzpy/property-management-system/services/tenant-service/internal/domain"
	"github.com/mamzpy/property-management-system/services/tenant-service/internal/service"
)

// Queue is this consumer's durable queue; competing instances share it.
const Queue = "tenant-service.booking-created"

// BookingCreated activates a tenant record per (user, property) pair when a
// booking is created. Delivery is at-least-once, so the lookup runs before any
// write: a record that already exists means a duplicate, which is logged and
// acknowledged without a second write.
type BookingCreated struct {
	repo service.Repository
	log  *zap.Logger
}

func NewBookingCreated(repo service.Repository, log *zap.Logger) *BookingCreated {
	return &BookingCreated{repo: repo, log: log}
}

// Handle processes one booking.created delivery. A returned error requeues
// the message; nil acknowledges it.
func (c *BookingCreated) Handle(ctx context.Context, body []byte) error {
	ev, err := events.Decode[events.BookingCreated](body)
	if err != nil {
		// malformed payload never becomes valid on retry
		c.log.Error("dropping undecodable booking.created", zap.Error(err))
		return nil
	}

	existing, err := c.repo.ByUserAndProperty(ctx, ev.TenantID, ev.PropertyID)
	if err != nil && !errors.Is(err, service.ErrNotFound) {
		return fmt.Errorf("lookup tenant activation: %w", err)
	}
	if existing != nil {
		c.log.Info("duplicate booking.created, tenant already active",
			zap.String("booking_id", ev.BookingID),
			zap.String("user_id", ev.TenantID),
			zap.Int64("property_id", ev.PropertyID),
			zap.String("correlation_id", ev.CorrelationID))
		return nil
	}

	t := &domain.Tenant{
		UserID:     ev.TenantID,
		PropertyID: ev.PropertyID,
		Status:     domain.StatusActive,
		BookingID:  ev.BookingID,
	}
	if err := c.repo.Create(ctx, t); err != nil {
		return fmt.Errorf("create tenant activation: %w", err)
	}

	c.log.Info("tenant activated",
		zap.String("tenant_id", t.ID),
		zap.String("user_id", ev.TenantID),
		zap.Int64("property_id", ev.PropertyID),
		zap.String("booking_id", ev.BookingID),
		zap.String("correlation_id", ev.CorrelationID))
	return nil
}
