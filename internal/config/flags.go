package config

import (
	"flag"
	"os"
	"time"
)

// ParseFlags parses all configuration flags from the process arguments.
//
// Flags:
//
//	-gateway-url directory gateway base URL
//	-gateway-timeout gateway request timeout (e.g., "10s")
//	-admin-email administrative account email
//	-admin-digest administrative password digest (hex)
//	-admin-address admin/identity HTTP surface address host:port
//	-watchdog-interval session reconciliation interval (e.g., "5s")
//	-otp-cooldown OTP resend cooldown (e.g., "30s")
//	-otp-max-attempts OTP verification attempt cap (0 = unlimited)
//	-storage-path local credential cache file path
//	-version-tag storage compatibility tag
//	-c/-config json file path with configs
func ParseFlags() *StructuredConfig {
	return parseFlagSet(flag.CommandLine, os.Args[1:])
}

func parseFlagSet(fs *flag.FlagSet, args []string) *StructuredConfig {
	var gatewayURL string
	var gatewayTimeout time.Duration
	var adminEmail string
	var adminDigest string
	var adminAddress string
	var watchdogInterval time.Duration
	var otpCooldown time.Duration
	var otpMaxAttempts int
	var storagePath string
	var versionTag string
	var jsonConfigPath string

	fs.StringVar(&gatewayURL, "gateway-url", "", "Directory gateway base URL")
	fs.DurationVar(&gatewayTimeout, "gateway-timeout", 0, "Gateway request timeout (e.g., 10s)")
	fs.StringVar(&adminEmail, "admin-email", "", "Administrative account email")
	fs.StringVar(&adminDigest, "admin-digest", "", "Administrative password digest")
	fs.StringVar(&adminAddress, "admin-address", "", "Admin HTTP surface address host:port")
	fs.DurationVar(&watchdogInterval, "watchdog-interval", 0, "Session reconciliation interval (e.g., 5s)")
	fs.DurationVar(&otpCooldown, "otp-cooldown", 0, "OTP resend cooldown (e.g., 30s)")
	fs.IntVar(&otpMaxAttempts, "otp-max-attempts", 0, "OTP verification attempt cap (0 = unlimited)")
	fs.StringVar(&storagePath, "storage-path", "", "Local credential cache file path")
	fs.StringVar(&versionTag, "version-tag", "", "Storage compatibility tag")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	_ = fs.Parse(args)

	return &StructuredConfig{
		App: App{
			VersionTag: versionTag,
		},
		Gateway: Gateway{
			URL:     gatewayURL,
			Timeout: gatewayTimeout,
		},
		Admin: Admin{
			Email:          adminEmail,
			PasswordDigest: adminDigest,
			HTTPAddress:    adminAddress,
		},
		Watchdog: Watchdog{
			Interval: watchdogInterval,
		},
		OTP: OTP{
			ResendCooldown: otpCooldown,
			MaxAttempts:    otpMaxAttempts,
		},
		Storage: Storage{
			Path: storagePath,
		},
		JSONFilePath: jsonConfigPath,
	}
}
