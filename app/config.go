// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"

	"taoui.org/app/internal/log"
)

// RunConfig configures an event loop. LoadRunConfig reads it from
// TAO_* environment variables.
type RunConfig struct {
	// Backend forces a windowing system: "x11", "glfw" or
	// "headless". Empty selects the platform default.
	Backend string `envconfig:"BACKEND"`
	// DeviceEventFilter controls the delivery of DeviceEvents.
	DeviceEventFilter DeviceEventFilter `envconfig:"DEVICE_EVENT_FILTER" default:"unfocused"`
	// LogLevel is one of "debug", "info", "warn" or "error".
	LogLevel       string `envconfig:"LOG_LEVEL" default:"warn"`
	LogDevelopment bool   `envconfig:"LOG_DEVELOPMENT" default:"false"`
	// LogOutput lists zap output paths, comma separated in the
	// environment.
	LogOutput []string `envconfig:"LOG_OUTPUT" default:"stderr"`
	// AnyThread allows creating the loop on a goroutine other than
	// the main goroutine on platforms that would refuse it.
	AnyThread bool `envconfig:"ANY_THREAD" default:"false"`
}

// DeviceEventFilter controls when DeviceEvents are delivered.
type DeviceEventFilter uint8

const (
	// FilterUnfocused drops device events while no window of the
	// loop has focus.
	FilterUnfocused DeviceEventFilter = iota
	// FilterAlways drops all device events.
	FilterAlways
	// FilterNever delivers all device events.
	FilterNever
)

// DefaultRunConfig returns the configuration used when none is given.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		DeviceEventFilter: FilterUnfocused,
		LogLevel:          "warn",
		LogOutput:         []string{"stderr"},
	}
}

// LoadRunConfig reads a RunConfig from the environment.
func LoadRunConfig() (RunConfig, error) {
	var cfg RunConfig
	if err := envconfig.Process("tao", &cfg); err != nil {
		return RunConfig{}, fmt.Errorf("app: failed to load config: %w", err)
	}
	return cfg, nil
}

func (c RunConfig) logger() *zap.Logger {
	cfg := log.DefaultConfig()
	if c.LogLevel != "" {
		cfg.Level = c.LogLevel
	}
	if len(c.LogOutput) > 0 {
		cfg.OutputPaths = c.LogOutput
	}
	cfg.Development = c.LogDevelopment
	return log.NewOrNop(cfg)
}

func (f DeviceEventFilter) String() string {
	switch f {
	case FilterUnfocused:
		return "unfocused"
	case FilterAlways:
		return "always"
	case FilterNever:
		return "never"
	default:
		panic("invalid DeviceEventFilter")
	}
}

// UnmarshalText parses "always", "unfocused" or "never".
func (f *DeviceEventFilter) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "unfocused", "":
		*f = FilterUnfocused
	case "always":
		*f = FilterAlways
	case "never":
		*f = FilterNever
	default:
		return fmt.Errorf("app: unknown device event filter %q", b)
	}
	return nil
}
