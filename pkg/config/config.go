package config

import (
	"github.com/kelseyhightower/envconfig"
)

// App is the gateway configuration. Per-service mains define their own
// narrower config structs next to their entrypoints.
type App struct {
	// JWT
	JWTSecret    string `envconfig:"JWT_SECRET" required:"true"`
	JWTExpireMin int    `envconfig:"JWT_EXPIRE_MIN" default:"60"`

	// Downstream service base URLs
	AuthServiceURL        string `envconfig:"AUTH_SERVICE_URL" default:"http://auth-service:3001"`
	PropertyServiceURL    string `envconfig:"PROPERTY_SERVICE_URL" default:"http://property-service:3002"`
	TenantServiceURL      string `envconfig:"TENANT_SERVICE_URL" default:"http://tenant-service:3003"`
	BookingServiceURL     string `envconfig:"BOOKING_SERVICE_URL" default:"http://booking-service:3004"`
	MaintenanceServiceURL string `envconfig:"MAINTENANCE_SERVICE_URL" default:"http://maintenance-service:3005"`

	GatewayHTTPAddr string `envconfig:"GATEWAY_HTTP_ADDR" default:":3000"`
}

func Load() (App, error) {
	var c App
	err := envconfig.Process("", &c)
	return c, err
}
