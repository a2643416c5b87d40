package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// authkeeper client. It aggregates all sub-configurations and is populated
// by merging values from environment variables, command-line flags, and an
// optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the storage version tag
	// that invalidates stale local state on upgrade.
	App App `envPrefix:"APP_"`

	// Gateway holds the remote directory gateway endpoint settings.
	Gateway Gateway `envPrefix:"GATEWAY_"`

	// Admin holds the fixed administrative identity and the address of the
	// local admin/identity HTTP surface.
	Admin Admin `envPrefix:"ADMIN_"`

	// Watchdog holds the session reconciliation loop settings.
	Watchdog Watchdog `envPrefix:"WATCHDOG_"`

	// OTP holds one-time-code challenge settings.
	OTP OTP `envPrefix:"OTP_"`

	// Storage holds the local credential cache settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// VersionTag is the storage compatibility tag. When the tag persisted in
	// the local store differs from this value, the current session is
	// invalidated on startup while the user registry is preserved.
	// Env: APP_VERSION_TAG
	VersionTag string `env:"VERSION_TAG"`
}

// Gateway holds the remote directory gateway endpoint settings.
type Gateway struct {
	// URL is the base endpoint of the externally owned directory gateway.
	// Reads use query-string GETs, writes use form-encoded POSTs against
	// this single URL.
	// Env: GATEWAY_URL
	URL string `env:"URL"`

	// Timeout is the per-request deadline for gateway calls (e.g. "10s").
	// Env: GATEWAY_TIMEOUT
	Timeout time.Duration `env:"TIMEOUT"`
}

// Admin holds the fixed administrative identity. The admin account is exempt
// from the single-session invariant and never runs a watchdog.
type Admin struct {
	// Email is the administrative account email.
	// Env: ADMIN_EMAIL
	Email string `env:"EMAIL"`

	// PasswordDigest is the credential-hasher digest of the administrative
	// password. The plaintext is never configured.
	// Env: ADMIN_PASSWORD_DIGEST
	PasswordDigest string `env:"PASSWORD_DIGEST"`

	// HTTPAddress is the TCP address of the local admin/identity HTTP
	// surface, in "host:port" format. Empty disables the surface.
	// Env: ADMIN_ADDRESS
	HTTPAddress string `env:"ADDRESS"`
}

// Watchdog holds the session reconciliation loop settings.
type Watchdog struct {
	// Interval is the delay between reconciliation ticks (e.g. "5s").
	// Env: WATCHDOG_INTERVAL
	Interval time.Duration `env:"INTERVAL"`
}

// OTP holds one-time-code challenge settings.
type OTP struct {
	// ResendCooldown is how long a user must wait before requesting a new
	// code (e.g. "30s").
	// Env: OTP_RESEND_COOLDOWN
	ResendCooldown time.Duration `env:"RESEND_COOLDOWN"`

	// MaxAttempts caps verification attempts per challenge.
	// Zero means unlimited.
	// Env: OTP_MAX_ATTEMPTS
	MaxAttempts int `env:"MAX_ATTEMPTS"`
}

// Storage holds the local credential cache settings.
type Storage struct {
	// Path is the file path of the durable credential cache. The value
	// ":memory:" keeps all state in process memory (tests, dry runs).
	// Env: STORAGE_PATH
	Path string `env:"PATH"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
