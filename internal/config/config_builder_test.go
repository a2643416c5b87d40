package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dario.cat/mergo"
)

// TestBuild_MergePriority verifies that earlier sources win for fields they
// set and later sources fill the gaps (mergo keeps non-zero values).
func TestBuild_MergePriority(t *testing.T) {
	first := &StructuredConfig{
		Gateway: Gateway{URL: "https://gw.example.com/exec"},
	}
	second := &StructuredConfig{
		Gateway:  Gateway{URL: "https://ignored.example.com", Timeout: 3 * time.Second},
		Watchdog: Watchdog{Interval: 7 * time.Second},
	}

	b := newConfigBuilder()
	b.configs = append(b.configs, first, second)

	cfg, err := b.build()
	require.NoError(t, err)

	assert.Equal(t, "https://gw.example.com/exec", cfg.Gateway.URL)
	assert.Equal(t, 3*time.Second, cfg.Gateway.Timeout)
	assert.Equal(t, 7*time.Second, cfg.Watchdog.Interval)
}

// TestBuild_AppliesDefaults verifies that every knob left unset by all
// sources receives its built-in default.
func TestBuild_AppliesDefaults(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		Gateway: Gateway{URL: "https://gw.example.com/exec"},
	})

	cfg, err := b.build()
	require.NoError(t, err)

	assert.Equal(t, DefaultGatewayTimeout, cfg.Gateway.Timeout)
	assert.Equal(t, DefaultWatchdogInterval, cfg.Watchdog.Interval)
	assert.Equal(t, DefaultOTPCooldown, cfg.OTP.ResendCooldown)
	assert.Equal(t, DefaultStoragePath, cfg.Storage.Path)
	assert.Equal(t, DefaultVersionTag, cfg.App.VersionTag)
	assert.Equal(t, DefaultAdminEmail, cfg.Admin.Email)
	assert.Equal(t, DefaultAdminDigest, cfg.Admin.PasswordDigest)
	assert.Zero(t, cfg.OTP.MaxAttempts, "attempt cap defaults to unlimited")
}

// TestBuild_MissingGatewayURL verifies that validation rejects a config with
// no gateway endpoint.
func TestBuild_MissingGatewayURL(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{})

	_, err := b.build()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidGatewayConfigs)
}

// TestValidate_AdminDigestLength verifies that a malformed admin digest is
// rejected.
func TestValidate_AdminDigestLength(t *testing.T) {
	cfg := &StructuredConfig{
		Gateway: Gateway{URL: "https://gw.example.com/exec"},
		Admin:   Admin{Email: "admin@example.com", PasswordDigest: "short"},
	}

	assert.ErrorIs(t, cfg.validate(), ErrInvalidAdminConfigs)
}

// TestValidate_NegativeAttemptCap verifies that a negative OTP attempt cap is
// rejected.
func TestValidate_NegativeAttemptCap(t *testing.T) {
	cfg := &StructuredConfig{
		Gateway: Gateway{URL: "https://gw.example.com/exec"},
	}
	cfg.applyDefaults()
	cfg.OTP.MaxAttempts = -1

	assert.ErrorIs(t, cfg.validate(), ErrInvalidOTPConfigs)
}

// TestWithJSON_MergesFileValues verifies the JSON source is loaded when an
// earlier source points at a file.
func TestWithJSON_MergesFileValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	payload := `{
		"gateway": {"url": "https://json.example.com/exec", "timeout": "12s"},
		"otp": {"max_attempts": 5}
	}`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o600))

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: path})
	b = b.withJSON()

	cfg, err := b.build()
	require.NoError(t, err)

	assert.Equal(t, "https://json.example.com/exec", cfg.Gateway.URL)
	assert.Equal(t, 12*time.Second, cfg.Gateway.Timeout)
	assert.Equal(t, 5, cfg.OTP.MaxAttempts)
}

// TestMergo_DoesNotOverwriteNonZero pins the merge semantics the builder
// relies on.
func TestMergo_DoesNotOverwriteNonZero(t *testing.T) {
	dst := StructuredConfig{Gateway: Gateway{URL: "kept"}}
	src := StructuredConfig{Gateway: Gateway{URL: "discarded", Timeout: time.Second}}

	require.NoError(t, mergo.Merge(&dst, src))
	assert.Equal(t, "kept", dst.Gateway.URL)
	assert.Equal(t, time.Second, dst.Gateway.Timeout)
}
