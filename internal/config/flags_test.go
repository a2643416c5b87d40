package config

import (
	"flag"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestParseFlagSet_AllFlags verifies that every flag lands in the right
// config field.
func TestParseFlagSet_AllFlags(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg := parseFlagSet(fs, []string{
		"-gateway-url", "https://flags.example.com/exec",
		"-gateway-timeout", "15s",
		"-admin-email", "root@example.com",
		"-admin-digest", "abcd",
		"-admin-address", "localhost:7070",
		"-watchdog-interval", "9s",
		"-otp-cooldown", "45s",
		"-otp-max-attempts", "4",
		"-storage-path", "/tmp/cache.json",
		"-version-tag", "REL_TEST",
		"-c", "/tmp/cfg.json",
	})

	assert.Equal(t, "https://flags.example.com/exec", cfg.Gateway.URL)
	assert.Equal(t, 15*time.Second, cfg.Gateway.Timeout)
	assert.Equal(t, "root@example.com", cfg.Admin.Email)
	assert.Equal(t, "abcd", cfg.Admin.PasswordDigest)
	assert.Equal(t, "localhost:7070", cfg.Admin.HTTPAddress)
	assert.Equal(t, 9*time.Second, cfg.Watchdog.Interval)
	assert.Equal(t, 45*time.Second, cfg.OTP.ResendCooldown)
	assert.Equal(t, 4, cfg.OTP.MaxAttempts)
	assert.Equal(t, "/tmp/cache.json", cfg.Storage.Path)
	assert.Equal(t, "REL_TEST", cfg.App.VersionTag)
	assert.Equal(t, "/tmp/cfg.json", cfg.JSONFilePath)
}

// TestParseFlagSet_ConfigAlias verifies -config works as an alias for -c.
func TestParseFlagSet_ConfigAlias(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg := parseFlagSet(fs, []string{"-config", "/etc/authkeeper.json"})

	assert.Equal(t, "/etc/authkeeper.json", cfg.JSONFilePath)
}

// TestParseFlagSet_NoFlags verifies the zero config comes back when nothing
// is passed (defaults are applied later by the builder).
func TestParseFlagSet_NoFlags(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg := parseFlagSet(fs, nil)

	assert.Empty(t, cfg.Gateway.URL)
	assert.Zero(t, cfg.Watchdog.Interval)
	assert.Empty(t, cfg.Storage.Path)
}
