package config

import (
	"strings"
	"time"
)

// Built-in defaults. The administrative identity ships with the application;
// the gateway URL is deployment-specific and must always be configured.
const (
	DefaultGatewayTimeout   = 10 * time.Second
	DefaultWatchdogInterval = 5 * time.Second
	DefaultOTPCooldown      = 30 * time.Second
	DefaultStoragePath      = "authkeeper.json"

	// DefaultVersionTag invalidates local sessions persisted by builds with
	// a different tag. Bump on releases that change session semantics.
	DefaultVersionTag = "OSM_REL_2025_V7_STRICT_SYNC"

	DefaultAdminEmail = "research1@omegaseikimobility.com"

	// DefaultAdminDigest is the credential-hasher digest of the
	// administrative password. The plaintext is never shipped.
	DefaultAdminDigest = "3970b54203666f884a4411130e9d6b2c2560e9063d83811801267b1860882736"
)

// applyDefaults fills every field the merged sources left at its zero value.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Gateway.Timeout <= 0 {
		cfg.Gateway.Timeout = DefaultGatewayTimeout
	}
	if cfg.Watchdog.Interval <= 0 {
		cfg.Watchdog.Interval = DefaultWatchdogInterval
	}
	if cfg.OTP.ResendCooldown <= 0 {
		cfg.OTP.ResendCooldown = DefaultOTPCooldown
	}
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = DefaultStoragePath
	}
	if cfg.App.VersionTag == "" {
		cfg.App.VersionTag = DefaultVersionTag
	}
	if cfg.Admin.Email == "" {
		cfg.Admin.Email = DefaultAdminEmail
	}
	if cfg.Admin.PasswordDigest == "" {
		cfg.Admin.PasswordDigest = DefaultAdminDigest
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.Gateway.URL == "" {
		return ErrInvalidGatewayConfigs
	}

	if !strings.Contains(cfg.Admin.Email, "@") {
		return ErrInvalidAdminConfigs
	}
	if len(cfg.Admin.PasswordDigest) != 64 {
		return ErrInvalidAdminConfigs
	}

	if cfg.OTP.MaxAttempts < 0 {
		return ErrInvalidOTPConfigs
	}

	return nil
}
