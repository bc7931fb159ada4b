package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamzpy/property-management-system/services/api-gateway/internal/clients"
)

type Proxy struct {
	reg *clients.Registry
	log *zap.Logger
}

func NewProxy(reg *clients.Registry, log *zap.Logger) *Proxy {
	return &Proxy{reg: reg, log: log}
}

// To returns a handler that relays the request to the given backend and
// copies the upstream status, headers and body back to the caller.
func (p *Proxy) To(base string) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp, err := p.reg.Forward(base, c.Request)
		if err != nil {
			p.log.Error("upstream call failed",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "upstream unavailable"})
			return
		}
		defer resp.Body.Close()

		if ct := resp.Header.Get("Content-Type"); ct != "" {
			c.Header("Content-Type", ct)
		}
		c.Status(resp.StatusCode)
		if _, err := io.Copy(c.Writer, resp.Body); err != nil {
			p.log.Warn("copying upstream response failed", zap.Error(err))
		}
	}
}
