package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mamzpy/property-management-system/pkg/events"
	"github.com/mamzpy/property-management-system/pkg/lock"
	"github.com/mamzpy/property-management-system/services/booking-service/internal/domain"
	"github.com/mamzpy/property-management-system/services/booking-service/internal/repository"
	"github.com/mamzpy/property-management-system/services/booking-service/internal/service"
)

type published struct {
	exchange string
	key      string
	payload  any
}

type fakePublisher struct {
	calls []published
	err   error
}

func (p *fakePublisher) Publish(_ context.Context, exchange, key string, payload any) error {
	if p.err != nil {
		return p.err
	}
	p.calls = append(p.calls, published{exchange: exchange, key: key, payload: payload})
	return nil
}

func newSvc(t *testing.T) (*service.BookingSvc, *repository.MemoryRepo, *fakePublisher) {
	t.Helper()
	repo := repository.NewMemoryRepo()
	pub := &fakePublisher{}
	svc := service.NewBookingSvc(repo, pub, lock.NewMemoryLocker(), zap.NewNop())
	return svc, repo, pub
}

func TestCreatePersistsPendingAndPublishesOnce(t *testing.T) {
	svc, repo, pub := newSvc(t)

	b, err := svc.Create(context.Background(), 10, "tenant-123", "cid-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, b.Status)
	assert.NotEmpty(t, b.ID)

	stored, err := repo.ByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, stored.Status)

	require.Len(t, pub.calls, 1)
	assert.Equal(t, events.BookingExchange, pub.calls[0].exchange)
	assert.Equal(t, events.RKBookingCreated, pub.calls[0].key)

	ev, ok := pub.calls[0].payload.(events.BookingCreated)
	require.True(t, ok)
	assert.Equal(t, b.ID, ev.BookingID)
	assert.Equal(t, int64(10), ev.PropertyID)
	assert.Equal(t, "tenant-123", ev.TenantID)
	assert.Equal(t, string(domain.StatusPending), ev.Status)
	assert.Equal(t, "cid-1", ev.CorrelationID)
	assert.False(t, ev.OccurredAt.IsZero())
}

func TestCreateGeneratesCorrelationIDWhenAbsent(t *testing.T) {
	svc, _, pub := newSvc(t)

	_, err := svc.Create(context.Background(), 10, "tenant-123", "")
	require.NoError(t, err)

	ev := pub.calls[0].payload.(events.BookingCreated)
	assert.NotEmpty(t, ev.CorrelationID)
}

func TestCreateSurvivesPublishFailure(t *testing.T) {
	repo := repository.NewMemoryRepo()
	pub := &fakePublisher{err: errors.New("broker down")}
	svc := service.NewBookingSvc(repo, pub, lock.NewMemoryLocker(), zap.NewNop())

	b, err := svc.Create(context.Background(), 10, "tenant-123", "cid-1")
	require.NoError(t, err, "publish failure must not fail the committed state change")

	stored, err := repo.ByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, stored.Status)
}

func TestApproveTransitionsAndPublishes(t *testing.T) {
	svc, repo, pub := newSvc(t)

	b, err := svc.Create(context.Background(), 10, "tenant-123", "cid-e2e")
	require.NoError(t, err)

	approved, err := svc.Approve(context.Background(), b.ID, "admin-1", "cid-e2e")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, "admin-1", *approved.ApprovedBy)
	require.NotNil(t, approved.ApprovedAt)
	assert.Nil(t, approved.RejectionReason)

	stored, err := repo.ByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, stored.Status)

	require.Len(t, pub.calls, 2)
	assert.Equal(t, events.RKBookingApproved, pub.calls[1].key)
	ev, ok := pub.calls[1].payload.(events.BookingApproved)
	require.True(t, ok)
	assert.Equal(t, b.ID, ev.BookingID)
	assert.Equal(t, "admin-1", ev.ApprovedBy)
	assert.Equal(t, "cid-e2e", ev.CorrelationID, "approve event carries the caller's correlation id")
	assert.Equal(t, *approved.ApprovedAt, ev.ApprovedAt)
}

func TestApproveNotFoundPublishesNothing(t *testing.T) {
	svc, _, pub := newSvc(t)

	_, err := svc.Approve(context.Background(), "missing", "admin-1", "cid-1")
	assert.ErrorIs(t, err, service.ErrNotFound)
	assert.Empty(t, pub.calls)
}

func TestApproveRejectOnlyValidFromPending(t *testing.T) {
	svc, _, _ := newSvc(t)

	b, err := svc.Create(context.Background(), 10, "tenant-123", "")
	require.NoError(t, err)
	_, err = svc.Approve(context.Background(), b.ID, "admin-1", "")
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), b.ID, "admin-2", "")
	assert.ErrorIs(t, err, service.ErrAlreadyDecided)

	_, err = svc.Reject(context.Background(), b.ID, "too late")
	assert.ErrorIs(t, err, service.ErrAlreadyDecided)
}

func TestRejectStoresReasonAndPublishesNothing(t *testing.T) {
	svc, repo, pub := newSvc(t)

	b, err := svc.Create(context.Background(), 10, "tenant-123", "")
	require.NoError(t, err)
	pub.calls = nil

	rejected, err := svc.Reject(context.Background(), b.ID, "unit unavailable")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, rejected.Status)
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, "unit unavailable", *rejected.RejectionReason)
	assert.Nil(t, rejected.ApprovedBy)
	assert.Nil(t, rejected.ApprovedAt)

	stored, err := repo.ByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, stored.Status)

	assert.Empty(t, pub.calls, "rejection emits no event")
}

func TestRejectWithoutReasonLeavesReasonNil(t *testing.T) {
	svc, _, _ := newSvc(t)

	b, err := svc.Create(context.Background(), 10, "tenant-123", "")
	require.NoError(t, err)

	rejected, err := svc.Reject(context.Background(), b.ID, "")
	require.NoError(t, err)
	assert.Nil(t, rejected.RejectionReason)
}

func TestConcurrentDecisionIsSerializedByLock(t *testing.T) {
	repo := repository.NewMemoryRepo()
	pub := &fakePublisher{}
	locker := lock.NewMemoryLocker()
	svc := service.NewBookingSvc(repo, pub, locker, zap.NewNop())

	b, err := svc.Create(context.Background(), 10, "tenant-123", "")
	require.NoError(t, err)

	// simulate another in-flight decision holding the key
	ok, err := locker.Acquire(context.Background(), "booking:decide:"+b.ID, time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = svc.Approve(context.Background(), b.ID, "admin-1", "")
	assert.ErrorIs(t, err, service.ErrDecisionBusy)
}
