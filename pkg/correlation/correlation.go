// Package correlation threads a correlation identifier through inbound
// requests, downstream calls and published events so every effect of one
// originating action can be tied together in logs across services.
package correlation

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Header is the wire name of the correlation identifier.
const Header = "x-correlation-id"

type ctxKey struct{}

// WithID stores a correlation id on the context.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the correlation id stored on the context, or "".
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// Ensure returns id, or a freshly generated identifier when id is empty.
func Ensure(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}

// Middleware assigns every inbound request a correlation id: the incoming
// header value when present, else a new one. The id is placed on the request
// context and echoed on the response.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := Ensure(c.GetHeader(Header))
		c.Request = c.Request.WithContext(WithID(c.Request.Context(), id))
		c.Header(Header, id)
		c.Next()
	}
}

// Outbound stamps the request with the correlation id from ctx, if any.
// Gateway clients call this on every downstream request.
func Outbound(ctx context.Context, req *http.Request) {
	if id := FromContext(ctx); id != "" {
		req.Header.Set(Header, id)
	}
}
