package client

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadClientConfig_CreatesDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg, err := LoadClientConfig(path)
	if err != nil {
		t.Fatalf("LoadClientConfig() failed: %v", err)
	}

	if cfg.Connection.GatewayURL == "" {
		t.Error("default config should have a gateway URL")
	}
	if cfg.Connection.DefaultChannel != "general" {
		t.Errorf("default channel = %q, want general", cfg.Connection.DefaultChannel)
	}
	if cfg.UI.TimestampFormat != "relative" {
		t.Errorf("default timestamp format = %q, want relative", cfg.UI.TimestampFormat)
	}

	// The default file should now exist and round-trip
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("default config was not written: %v", err)
	}
	if !strings.Contains(string(data), "ReactChat Client Configuration") {
		t.Error("written config should carry the header comment")
	}

	again, err := LoadClientConfig(path)
	if err != nil {
		t.Fatalf("re-loading written default failed: %v", err)
	}
	if again.Connection.GatewayURL != cfg.Connection.GatewayURL {
		t.Error("written default should load back identically")
	}
}

func TestLoadClientConfig_ParseError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[connection\ngateway_url = nope"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadClientConfig(path)
	if err == nil {
		t.Fatal("malformed TOML should fail to load")
	}
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("error type = %T, want *ConfigError", err)
	}
	if cfgErr.Path != path {
		t.Errorf("error path = %q, want %q", cfgErr.Path, path)
	}
}

func TestLoadClientConfig_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantIn  string
	}{
		{
			"bad gateway scheme",
			"[connection]\ngateway_url = \"http://example.com\"\n[local]\nstate_db = \"/tmp/x.db\"\n",
			"ws://",
		},
		{
			"bad timestamp format",
			"[connection]\ngateway_url = \"ws://x\"\n[local]\nstate_db = \"/tmp/x.db\"\n[ui]\ntimestamp_format = \"fuzzy\"\n",
			"timestamp format",
		},
		{
			"empty state db",
			"[connection]\ngateway_url = \"ws://x\"\n[local]\nstate_db = \"\"\n",
			"State database",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}

			_, err := LoadClientConfig(path)
			if err == nil {
				t.Fatal("invalid config should fail validation")
			}
			if !strings.Contains(err.Error(), tt.wantIn) {
				t.Errorf("error %q should mention %q", err.Error(), tt.wantIn)
			}
		})
	}
}

func TestConfigErrorLineNumber(t *testing.T) {
	e := &ConfigError{Path: "/x", Message: "broken", LineNumber: 12}
	if !strings.Contains(e.Error(), "line 12") {
		t.Errorf("error = %q, should include the line number", e.Error())
	}

	e = &ConfigError{Path: "/x", Message: "broken"}
	if strings.Contains(e.Error(), "line") {
		t.Errorf("error = %q, should not mention a line", e.Error())
	}
}

func TestExtractLineNumber(t *testing.T) {
	if got := extractLineNumber("toml: line 7: expected key"); got != 7 {
		t.Errorf("extractLineNumber() = %d, want 7", got)
	}
	if got := extractLineNumber("no numbers here"); got != 0 {
		t.Errorf("extractLineNumber() = %d, want 0", got)
	}
}

func TestGetStateDBPathExpandsHome(t *testing.T) {
	cfg := DefaultTOMLConfig()
	cfg.Local.StateDB = "~/state/reactchat.db"

	path, err := cfg.GetStateDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if strings.HasPrefix(path, "~") {
		t.Errorf("path %q should have ~ expanded", path)
	}
	home, _ := os.UserHomeDir()
	if !strings.HasPrefix(path, home) {
		t.Errorf("path %q should be under the home directory", path)
	}
}
