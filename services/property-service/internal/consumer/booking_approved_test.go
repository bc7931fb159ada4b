package consumer_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mamzpy/property-management-system/pkg/events"
	"github.com/mamzpy/property-management-system/services/property-service/internal/consumer"
	"github.com/mamzpy/property-management-system/services/property-service/internal/domain"
	"github.com/mamzpy/property-management-system/services/property-service/internal/repository"
	"github.com/mamzpy/property-management-system/services/property-service/internal/service"
)

func approvedBody(t *testing.T, propertyID int64) []byte {
	t.Helper()
	body, err := json.Marshal(events.BookingApproved{
		BookingID:     "booking-1",
		PropertyID:    propertyID,
		TenantID:      "tenant-123",
		Status:        "APPROVED",
		ApprovedBy:    "admin-1",
		ApprovedAt:    time.Now().UTC(),
		CorrelationID: "cid-1",
		OccurredAt:    time.Now().UTC(),
	})
	require.NoError(t, err)
	return body
}

func seedProperty(t *testing.T, repo *repository.MemoryRepo, status string) *domain.Property {
	t.Helper()
	p := &domain.Property{Address: "12 Main St", City: "Austin", Status: status}
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

func TestHandleMarksPropertyUnavailable(t *testing.T) {
	repo := repository.NewMemoryRepo()
	p := seedProperty(t, repo, domain.StatusAvailable)
	c := consumer.NewBookingApproved(repo, zap.NewNop())

	require.NoError(t, c.Handle(context.Background(), approvedBody(t, p.ID)))

	got, err := repo.ByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusUnavailable, got.Status)
}

func TestHandleRedeliveryPerformsNoSecondWrite(t *testing.T) {
	repo := repository.NewMemoryRepo()
	p := seedProperty(t, repo, domain.StatusAvailable)
	c := consumer.NewBookingApproved(repo, zap.NewNop())
	body := approvedBody(t, p.ID)

	require.NoError(t, c.Handle(context.Background(), body))
	writesAfterFirst := repo.Writes()

	require.NoError(t, c.Handle(context.Background(), body))
	assert.Equal(t, writesAfterFirst, repo.Writes(), "duplicate delivery must not write again")

	got, err := repo.ByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusUnavailable, got.Status)
}

func TestHandleUnknownPropertyIsAcked(t *testing.T) {
	c := consumer.NewBookingApproved(repository.NewMemoryRepo(), zap.NewNop())

	assert.NoError(t, c.Handle(context.Background(), approvedBody(t, 404)),
		"missing property must not requeue forever")
}

func TestHandleMalformedPayloadIsAcked(t *testing.T) {
	c := consumer.NewBookingApproved(repository.NewMemoryRepo(), zap.NewNop())

	assert.NoError(t, c.Handle(context.Background(), []byte("{not json")))
}

type failingRepo struct {
	service.Repository
	loadErr error
	setErr  error
}

func (r failingRepo) ByID(ctx context.Context, id int64) (*domain.Property, error) {
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	return r.Repository.ByID(ctx, id)
}

func (r failingRepo) SetStatus(ctx context.Context, id int64, status string) error {
	if r.setErr != nil {
		return r.setErr
	}
	return r.Repository.SetStatus(ctx, id, status)
}

func TestHandleStorageFailureIsRetried(t *testing.T) {
	boom := errors.New("db down")

	repo := repository.NewMemoryRepo()
	p := seedProperty(t, repo, domain.StatusAvailable)

	c := consumer.NewBookingApproved(failingRepo{Repository: repo, loadErr: boom}, zap.NewNop())
	assert.ErrorIs(t, c.Handle(context.Background(), approvedBody(t, p.ID)), boom)

	c = consumer.NewBookingApproved(failingRepo{Repository: repo, setErr: boom}, zap.NewNop())
	assert.ErrorIs(t, c.Handle(context.Background(), approvedBody(t, p.ID)), boom)
}
