package config

import "testing"

func TestSampleConfigIsValid(t *testing.T) {
	cfg, result, err := CheckBytes([]byte(SampleConfig), ".pre-commit-config.yaml")
	if err != nil {
		t.Fatalf("Sample config failed to check: %v", err)
	}
	if !result.Valid() {
		t.Fatalf("Sample config has validation errors: %v", result.Errors)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("Sample config has warnings: %v", result.Warnings)
	}
	if len(cfg.Repos) != 1 {
		t.Fatalf("Expected 1 repo in sample, got %d", len(cfg.Repos))
	}
	if len(cfg.Repos[0].Hooks) != 4 {
		t.Errorf("Expected 4 hooks in sample, got %d", len(cfg.Repos[0].Hooks))
	}
}
