package correlation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareInheritsIncomingHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var seen string
	r := gin.New()
	r.Use(Middleware())
	r.GET("/", func(c *gin.Context) {
		seen = FromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(Header, "cid-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "cid-123", seen)
	assert.Equal(t, "cid-123", w.Header().Get(Header))
}

func TestMiddlewareGeneratesWhenAbsent(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var seen string
	r := gin.New()
	r.Use(Middleware())
	r.GET("/", func(c *gin.Context) {
		seen = FromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotEmpty(t, seen)
	assert.Equal(t, seen, w.Header().Get(Header))
}

func TestOutboundForwardsID(t *testing.T) {
	ctx := WithID(context.Background(), "cid-forward")
	req := httptest.NewRequest(http.MethodGet, "http://property-service/properties/1", nil)

	Outbound(ctx, req)

	assert.Equal(t, "cid-forward", req.Header.Get(Header))
}

func TestEnsure(t *testing.T) {
	assert.Equal(t, "keep-me", Ensure("keep-me"))
	assert.NotEmpty(t, Ensure(""))
}
