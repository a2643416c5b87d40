package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidGatewayConfigs indicates invalid gateway settings
	// (for example, a missing base URL).
	ErrInvalidGatewayConfigs = errors.New("invalid gateway configuration")
	// ErrInvalidAdminConfigs indicates invalid administrative identity
	// settings (for example, a malformed email or a digest that is not a
	// 64-character hex string).
	ErrInvalidAdminConfigs = errors.New("invalid admin configuration")
	// ErrInvalidOTPConfigs indicates invalid OTP challenge settings
	// (for example, a negative attempt cap).
	ErrInvalidOTPConfigs = errors.New("invalid otp configuration")
)
