package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mamzpy/property-management-system/pkg/correlation"
	"github.com/mamzpy/property-management-system/pkg/events"
	"github.com/mamzpy/property-management-system/pkg/lock"
	"github.com/mamzpy/property-management-system/services/booking-service/internal/domain"
)

var (
	ErrNotFound       = errors.New("booking not found")
	ErrAlreadyDecided = errors.New("booking already decided")
	ErrDecisionBusy   = errors.New("booking decision in progress")
)

// Repository persists bookings. The gorm implementation lives in the
// repository package; tests use the in-memory one.
type Repository interface {
	Create(ctx context.Context, b *domain.Booking) error
	ByID(ctx context.Context, id string) (*domain.Booking, error)
	Update(ctx context.Context, b *domain.Booking) error
	List(ctx context.Context) ([]domain.Booking, error)
	ListPending(ctx context.Context) ([]domain.Booking, error)
}

// Publisher is the slice of the message bus the workflow needs.
type Publisher interface {
	Publish(ctx context.Context, exchange, key string, payload any) error
}

const decisionLockTTL = 5 * time.Second

// BookingSvc owns the booking state machine: PENDING on create, exactly one
// transition to APPROVED or REJECTED, terminal thereafter. Every transition
// is persisted before its event is published; a lost event never loses state.
type BookingSvc struct {
	repo   Repository
	pub    Publisher
	locker lock.Locker
	log    *zap.Logger
	now    func() time.Time
}

func NewBookingSvc(repo Repository, pub Publisher, locker lock.Locker, log *zap.Logger) *BookingSvc {
	return &BookingSvc{repo: repo, pub: pub, locker: locker, log: log, now: time.Now}
}

// Create persists a PENDING booking and then publishes booking.created.
// Publish failure is logged and swallowed: the persisted row is the source of
// truth and the notification is best-effort.
func (s *BookingSvc) Create(ctx context.Context, propertyID int64, tenantID, correlationID string) (*domain.Booking, error) {
	cid := correlation.Ensure(correlationID)

	b := &domain.Booking{
		PropertyID: propertyID,
		TenantID:   tenantID,
		Status:     domain.StatusPending,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	ev := events.BookingCreated{
		BookingID:     b.ID,
		PropertyID:    b.PropertyID,
		TenantID:      b.TenantID,
		Status:        string(b.Status),
		CorrelationID: cid,
		OccurredAt:    s.now().UTC(),
	}
	if err := s.pub.Publish(ctx, events.BookingExchange, events.RKBookingCreated, ev); err != nil {
		s.log.Warn("booking.created not published",
			zap.String("booking_id", b.ID),
			zap.String("correlation_id", cid),
			zap.Error(err))
	}
	return b, nil
}

// Approve moves a PENDING booking to APPROVED and publishes booking.approved.
// Concurrent decisions on the same booking are serialized by a keyed lock on
// top of the status guard.
func (s *BookingSvc) Approve(ctx context.Context, id, adminID, correlationID string) (*domain.Booking, error) {
	release, err := s.acquireDecision(ctx, id)
	if err != nil {
		return nil, err
	}
	defer release()

	b, err := s.repo.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Decided() {
		return nil, ErrAlreadyDecided
	}

	now := s.now().UTC()
	b.Status = domain.StatusApproved
	b.ApprovedBy = &adminID
	b.ApprovedAt = &now
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, fmt.Errorf("approve booking %s: %w", id, err)
	}

	cid := correlation.Ensure(correlationID)
	ev := events.BookingApproved{
		BookingID:     b.ID,
		PropertyID:    b.PropertyID,
		TenantID:      b.TenantID,
		Status:        string(b.Status),
		ApprovedBy:    adminID,
		ApprovedAt:    now,
		CorrelationID: cid,
		OccurredAt:    s.now().UTC(),
	}
	if err := s.pub.Publish(ctx, events.BookingExchange, events.RKBookingApproved, ev); err != nil {
		s.log.Warn("booking.approved not published",
			zap.String("booking_id", b.ID),
			zap.String("correlation_id", cid),
			zap.Error(err))
	}
	return b, nil
}

// Reject moves a PENDING booking to REJECTED. Downstream services have no
// interest in rejected bookings, so no event is published.
func (s *BookingSvc) Reject(ctx context.Context, id, reason string) (*domain.Booking, error) {
	release, err := s.acquireDecision(ctx, id)
	if err != nil {
		return nil, err
	}
	defer release()

	b, err := s.repo.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Decided() {
		return nil, ErrAlreadyDecided
	}

	b.Status = domain.StatusRejected
	if reason != "" {
		b.RejectionReason = &reason
	}
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, fmt.Errorf("reject booking %s: %w", id, err)
	}
	return b, nil
}

func (s *BookingSvc) Get(ctx context.Context, id string) (*domain.Booking, error) {
	return s.repo.ByID(ctx, id)
}

func (s *BookingSvc) List(ctx context.Context) ([]domain.Booking, error) {
	return s.repo.List(ctx)
}

func (s *BookingSvc) ListPending(ctx context.Context) ([]domain.Booking, error) {
	return s.repo.ListPending(ctx)
}

func (s *BookingSvc) acquireDecision(ctx context.Context, id string) (func(), error) {
	key := "booking:decide:" + id
	ok, err := s.locker.Acquire(ctx, key, decisionLockTTL)
	if err != nil {
		return nil, fmt.Errorf("acquire decision lock: %w", err)
	}
	if !ok {
		return nil, ErrDecisionBusy
	}
	return func() { _ = s.locker.Release(ctx, key) }, nil
}
