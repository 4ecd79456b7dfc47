package config

import (
	"testing"
)

func resetSingleton() {
	SetConfig(nil)
}

func TestGetConfig_Unset(t *testing.T) {
	resetSingleton()

	if cfg := GetConfig(); cfg != nil {
		t.Errorf("expected nil config before SetConfig, got %+v", cfg)
	}
}

func TestSetConfig(t *testing.T) {
	resetSingleton()
	t.Cleanup(resetSingleton)

	cfg := NewTestConfig().WithWorkspace("/set").Build()
	SetConfig(cfg)

	if got := GetConfig(); got != cfg {
		t.Error("GetConfig should return the config passed to SetConfig")
	}
}

func TestReloadConfig(t *testing.T) {
	resetSingleton()
	t.Cleanup(resetSingleton)

	dir := t.TempDir()
	configPath := writeConfig(t, dir, "output:\n  format: text\n")
	if _, err := ReloadConfig(configPath); err != nil {
		t.Fatalf("initial ReloadConfig failed: %v", err)
	}

	writeConfig(t, dir, "output:\n  format: json\n")
	cfg, err := ReloadConfig(configPath)
	if err != nil {
		t.Fatalf("ReloadConfig failed: %v", err)
	}
	if got := GetConfig(); got != cfg || got.Output.Format != "json" {
		t.Errorf("expected reloaded format json to be active, got %+v", got)
	}

	writeConfig(t, dir, "output:\n  format: html\n")
	if _, err := ReloadConfig(configPath); err == nil {
		t.Fatal("expected reload to fail validation")
	}
	if got := GetConfig().Output.Format; got != "json" {
		t.Errorf("failed reload should keep previous config, got %q", got)
	}
}
