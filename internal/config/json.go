package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] for the JSON file source.
// Durations accept both "5s"-style strings and nanosecond numbers.
type StructuredJSONConfig struct {
	App struct {
		VersionTag string `json:"version_tag"`
	} `json:"app,omitempty"`

	Gateway struct {
		URL     string   `json:"url"`
		Timeout Duration `json:"timeout"`
	} `json:"gateway,omitempty"`

	Admin struct {
		Email          string `json:"email"`
		PasswordDigest string `json:"password_digest"`
		HTTPAddress    string `json:"http_address"`
	} `json:"admin,omitempty"`

	Watchdog struct {
		Interval Duration `json:"interval"`
	} `json:"watchdog,omitempty"`

	OTP struct {
		ResendCooldown Duration `json:"resend_cooldown"`
		MaxAttempts    int      `json:"max_attempts"`
	} `json:"otp,omitempty"`

	Storage struct {
		Path string `json:"path"`
	} `json:"storage,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			VersionTag: jsonCfg.App.VersionTag,
		},
		Gateway: Gateway{
			URL:     jsonCfg.Gateway.URL,
			Timeout: time.Duration(jsonCfg.Gateway.Timeout),
		},
		Admin: Admin{
			Email:          jsonCfg.Admin.Email,
			PasswordDigest: jsonCfg.Admin.PasswordDigest,
			HTTPAddress:    jsonCfg.Admin.HTTPAddress,
		},
		Watchdog: Watchdog{
			Interval: time.Duration(jsonCfg.Watchdog.Interval),
		},
		OTP: OTP{
			ResendCooldown: time.Duration(jsonCfg.OTP.ResendCooldown),
			MaxAttempts:    jsonCfg.OTP.MaxAttempts,
		},
		Storage: Storage{
			Path: jsonCfg.Storage.Path,
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s".
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
