package clients

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/mamzpy/property-management-system/pkg/config"
	"github.com/mamzpy/property-management-system/pkg/correlation"
)

// Registry resolves each backend service to its base URL and carries
// the shared HTTP client used for every upstream call.
type Registry struct {
	HTTP *http.Client

	Auth        string
	Property    string
	Tenant      string
	Booking     string
	Maintenance string
}

func New(cfg config.App) *Registry {
	return &Registry{
		HTTP:        &http.Client{Timeout: 10 * time.Second},
		Auth:        cfg.AuthServiceURL,
		Property:    cfg.PropertyServiceURL,
		Tenant:      cfg.TenantServiceURL,
		Booking:     cfg.BookingServiceURL,
		Maintenance: cfg.MaintenanceServiceURL,
	}
}

// Forward replays an incoming request against base, preserving the path,
// query string, body, identity headers and the correlation id.
func (r *Registry) Forward(base string, in *http.Request) (*http.Response, error) {
	var body io.Reader
	if in.Body != nil {
		raw, err := io.ReadAll(in.Body)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(raw)
	}

	url := base + in.URL.Path
	if in.URL.RawQuery != "" {
		url += "?" + in.URL.RawQuery
	}

	out, err := http.NewRequestWithContext(in.Context(), in.Method, url, body)
	if err != nil {
		return nil, err
	}
	for _, h := range []string{"Content-Type", "x-user-id", "x-user-role"} {
		if v := in.Header.Get(h); v != "" {
			out.Header.Set(h, v)
		}
	}
	correlation.Outbound(in.Context(), out)

	return r.HTTP.Do(out)
}
