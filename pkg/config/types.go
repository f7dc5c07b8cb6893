package config

// DefaultBaseURL is the Inventio cloud host every tenant lives under.
const DefaultBaseURL = "https://app.cloud.inventio.it"

// Config represents the full tap configuration
type Config struct {
	BaseURL     string           `yaml:"base_url,omitempty"`    // API root, overridable for tests
	UserAgent   string           `yaml:"user_agent,omitempty"`  // User-Agent header to present as
	Limit       int              `yaml:"limit,omitempty"`       // Global per-request record limit
	StartDate   string           `yaml:"start_date,omitempty"`  // Earliest day to retrieve (AccountScheduleResult only)
	Destination Destination      `yaml:"destination,omitempty"` // Where records go (default singer stdout)
	Endpoints   []EndpointConfig `yaml:"endpoints"`             // Required: endpoints to extract
}

// EndpointConfig configures one endpoint across one or more companies.
// Companies maps company names to their smartapi access tokens.
type EndpointConfig struct {
	Endpoint  string            `yaml:"endpoint"`
	Companies map[string]string `yaml:"companies"`
	Limit     int               `yaml:"limit,omitempty"` // Overrides the global limit
}

// EffectiveLimit resolves the per-endpoint limit against the global one.
func (e EndpointConfig) EffectiveLimit(global int) int {
	if e.Limit > 0 {
		return e.Limit
	}
	return global
}

// Destination defines where extracted records are written
type Destination struct {
	Type DestinationType `yaml:"type"`           // singer or sqlite
	Path string          `yaml:"path,omitempty"` // Database file (sqlite only)
}

// DestinationType defines supported destination types
type DestinationType string

const (
	DestinationSinger DestinationType = "singer"
	DestinationSQLite DestinationType = "sqlite"
)
