package config

type SecurityLevel int

const (
	SecurityPublic SecurityLevel = iota // No authentication
	SecurityAccess                      // Access token required
)

// EndpointSecurityConfig maps "METHOD route-template" to the required security level
var EndpointSecurityConfig = map[string]SecurityLevel{
	// Operational
	"GET /healthz": SecurityPublic,
	"GET /metrics": SecurityPublic,

	// Payment gateway callbacks are authenticated by their signature
	"POST /api/v1/billing/webhook": SecurityPublic,

	// Scooters
	"GET /api/v1/scooters":               SecurityAccess,
	"POST /api/v1/scooters":              SecurityAccess,
	"GET /api/v1/scooters/{id}":          SecurityAccess,
	"POST /api/v1/scooters/{id}/reserve": SecurityAccess,
	"POST /api/v1/scooters/{id}/start":   SecurityAccess,
	"POST /api/v1/scooters/{id}/end":     SecurityAccess,

	// Reservations and rentals of the caller
	"GET /api/v1/reservations": SecurityAccess,
	"GET /api/v1/rentals":      SecurityAccess,

	// Tariffs
	"GET /api/v1/tariffs":  SecurityAccess,
	"POST /api/v1/tariffs": SecurityAccess,
}

// GetSecurityLevel returns the security level for a given endpoint
func GetSecurityLevel(endpoint string) SecurityLevel {
	if level, exists := EndpointSecurityConfig[endpoint]; exists {
		return level
	}
	// Default to highest security for unknown endpoints
	return SecurityAccess
}
