package app

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// LocalDevOrigin is the frontend origin used during local development. When
// the configured frontend base matches it, login redirects target the test
// CAS host instead of the production one.
const LocalDevOrigin = "http://localhost:3000"

// Config holds runtime configuration for both tiers.
type Config struct {
	AppEnv            string        `envconfig:"APP_ENV" default:"development"`
	EdgeAddr          string        `envconfig:"EDGE_ADDR" default:":8080"`
	FunctionsAddr     string        `envconfig:"FUNCTIONS_ADDR" default:":8081"`
	AppReadTimeout    time.Duration `envconfig:"APP_READ_TIMEOUT" default:"15s"`
	AppWriteTimeout   time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"15s"`
	AppRequestTimeout time.Duration `envconfig:"APP_REQUEST_TIMEOUT" default:"30s"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	FrontendBaseURL  string `envconfig:"FRONTEND_BASE_URL" required:"true"`
	FunctionsBaseURL string `envconfig:"FUNCTIONS_BASE_URL" default:"http://127.0.0.1:8081"`

	CASHost     string        `envconfig:"CAS_HOST" default:"secure.its.yale.edu"`
	CASTestHost string        `envconfig:"CAS_TEST_HOST" default:"secure-tst.its.yale.edu"`
	CASTimeout  time.Duration `envconfig:"CAS_TIMEOUT" default:"10s"`

	// TokenSecret is not required here: the token issuer and verifier report
	// the missing secret themselves so /api/auth/verify can answer 500
	// instead of the process refusing to boot.
	TokenSecret string        `envconfig:"TOKEN_SECRET"`
	TokenTTL    time.Duration `envconfig:"TOKEN_TTL" default:"24h"`

	FirestoreProjectID  string `envconfig:"FIRESTORE_PROJECT_ID" required:"true"`
	FirestoreCredsFile  string `envconfig:"FIRESTORE_CREDENTIALS_FILE"`
	InstitutionDomain   string `envconfig:"INSTITUTION_DOMAIN" default:"yale.edu"`
}

// LoadConfig reads configuration from environment variables. A missing
// frontend base URL or Firestore project is a deployment error and fails
// startup before any request is served.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}
