// Copyright 2026 The Casedesk Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "casedesk.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.NotificationPoll.Std() != 30*time.Second {
		t.Errorf("NotificationPoll = %s, want 30s", cfg.NotificationPoll.Std())
	}
	if cfg.DashboardRefresh.Std() != 60*time.Second {
		t.Errorf("DashboardRefresh = %s, want 60s", cfg.DashboardRefresh.Std())
	}
	if cfg.Sound || cfg.DesktopNotifications {
		t.Error("alert outputs must default to off")
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
server_url: https://desk.example.com
sound: true
notification_poll: 45s
`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.ServerURL != "https://desk.example.com" {
		t.Errorf("ServerURL = %q", cfg.ServerURL)
	}
	if !cfg.Sound {
		t.Error("Sound = false, want true")
	}
	if cfg.NotificationPoll.Std() != 45*time.Second {
		t.Errorf("NotificationPoll = %s, want 45s", cfg.NotificationPoll.Std())
	}
	// Unset keys keep defaults.
	if cfg.DashboardRefresh.Std() != 60*time.Second {
		t.Errorf("DashboardRefresh = %s, want default 60s", cfg.DashboardRefresh.Std())
	}
}

func TestLoadFileRejectsBadValues(t *testing.T) {
	tests := map[string]string{
		"bad duration":   "notification_poll: soon",
		"below minimum":  "notification_poll: 100ms",
		"malformed yaml": "server_url: [",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadFile(writeConfig(t, content)); err == nil {
				t.Fatalf("LoadFile(%q) succeeded, want error", content)
			}
		})
	}
}

func TestLoadWithoutEnvReturnsDefaults(t *testing.T) {
	t.Setenv("CASEDESK_CONFIG", "")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.NotificationPoll.Std() != 30*time.Second {
		t.Errorf("NotificationPoll = %s, want 30s", cfg.NotificationPoll.Std())
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	t.Setenv("CASEDESK_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))
	if _, err := Load(); err == nil {
		t.Fatal("Load with an absent CASEDESK_CONFIG file should fail")
	}
}
