package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mamzpy/property-management-system/pkg/correlation"
	"github.com/mamzpy/property-management-system/pkg/lock"
	"github.com/mamzpy/property-management-system/services/booking-service/internal/domain"
	"github.com/mamzpy/property-management-system/services/booking-service/internal/repository"
	"github.com/mamzpy/property-management-system/services/booking-service/internal/service"
	transport "github.com/mamzpy/property-management-system/services/booking-service/internal/transport/http"
)

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, string, string, any) error { return nil }

func newRouter(t *testing.T) (*gin.Engine, *repository.MemoryRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	repo := repository.NewMemoryRepo()
	svc := service.NewBookingSvc(repo, nopPublisher{}, lock.NewMemoryLocker(), zap.NewNop())
	return transport.NewRouter(svc, zap.NewNop()), repo
}

func TestCreateBooking(t *testing.T) {
	r, _ := newRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(`{"property_id":10}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(transport.UserHeader, "tenant-123")
	req.Header.Set(correlation.Header, "cid-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "cid-1", w.Header().Get(correlation.Header))

	var b domain.Booking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &b))
	assert.Equal(t, int64(10), b.PropertyID)
	assert.Equal(t, "tenant-123", b.TenantID)
	assert.Equal(t, domain.StatusPending, b.Status)
}

func TestCreateBookingRequiresIdentity(t *testing.T) {
	r, _ := newRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(`{"property_id":10}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestApproveFlow(t *testing.T) {
	r, repo := newRouter(t)

	seed := &domain.Booking{PropertyID: 10, TenantID: "tenant-123", Status: domain.StatusPending}
	require.NoError(t, repo.Create(context.Background(), seed))

	req := httptest.NewRequest(http.MethodPatch, "/bookings/"+seed.ID+"/approve", nil)
	req.Header.Set(transport.UserHeader, "admin-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var b domain.Booking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &b))
	assert.Equal(t, domain.StatusApproved, b.Status)
	require.NotNil(t, b.ApprovedBy)
	assert.Equal(t, "admin-1", *b.ApprovedBy)
	assert.NotNil(t, b.ApprovedAt)

	// second decision conflicts
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestApproveMissingBookingIs404(t *testing.T) {
	r, _ := newRouter(t)

	req := httptest.NewRequest(http.MethodPatch, "/bookings/nope/approve", nil)
	req.Header.Set(transport.UserHeader, "admin-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRejectWithReason(t *testing.T) {
	r, repo := newRouter(t)

	seed := &domain.Booking{PropertyID: 10, TenantID: "tenant-123", Status: domain.StatusPending}
	require.NoError(t, repo.Create(context.Background(), seed))

	req := httptest.NewRequest(http.MethodPatch, "/bookings/"+seed.ID+"/reject",
		strings.NewReader(`{"reason":"unit unavailable"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var b domain.Booking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &b))
	assert.Equal(t, domain.StatusRejected, b.Status)
	require.NotNil(t, b.RejectionReason)
	assert.Equal(t, "unit unavailable", *b.RejectionReason)
}

func TestListPending(t *testing.T) {
	r, repo := newRouter(t)

	require.NoError(t, repo.Create(context.Background(), &domain.Booking{PropertyID: 1, TenantID: "a", Status: domain.StatusPending}))
	require.NoError(t, repo.Create(context.Background(), &domain.Booking{PropertyID: 2, TenantID: "b", Status: domain.StatusApproved}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/bookings/pending", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var out []domain.Booking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out, 1)
	assert.Equal(t, domain.StatusPending, out[0].Status)
}
