// Copyright 2026 The Casedesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads the casedesk client configuration.
//
// Configuration is a single YAML file specified by:
//   - CASEDESK_CONFIG environment variable, or
//   - --config flag passed to the command
//
// When neither is given, the defaults apply. There is no automatic
// discovery beyond that — configuration stays deterministic and
// auditable.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the client configuration.
type Config struct {
	// ServerURL is the casedesk server to talk to. When empty, the
	// server recorded in the session file is used.
	ServerURL string `yaml:"server_url"`

	// Sound rings the terminal bell when a fresh notification
	// arrives. Off by default.
	Sound bool `yaml:"sound"`

	// DesktopNotifications emits an OSC desktop notification for
	// fresh notifications. Off by default.
	DesktopNotifications bool `yaml:"desktop_notifications"`

	// NotificationPoll is the notification list refresh period.
	NotificationPoll Duration `yaml:"notification_poll"`

	// DashboardRefresh is the dashboard stats refresh period.
	DashboardRefresh Duration `yaml:"dashboard_refresh"`
}

// Duration is a time.Duration that unmarshals from YAML strings like
// "30s" or "2m".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("config: invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the plain time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		NotificationPoll: Duration(30 * time.Second),
		DashboardRefresh: Duration(60 * time.Second),
	}
}

// Load reads the config file named by CASEDESK_CONFIG, or returns
// Default when the variable is unset.
func Load() (*Config, error) {
	path := os.Getenv("CASEDESK_CONFIG")
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads a config file. Missing keys keep their defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.NotificationPoll.Std() < time.Second {
		return fmt.Errorf("notification_poll %s is below the 1s minimum", c.NotificationPoll.Std())
	}
	if c.DashboardRefresh.Std() < time.Second {
		return fmt.Errorf("dashboard_refresh %s is below the 1s minimum", c.DashboardRefresh.Std())
	}
	return nil
}
