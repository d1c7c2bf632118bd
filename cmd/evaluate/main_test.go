package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Classifier.ConfidenceThreshold != 0.2 {
		t.Errorf("expected default threshold 0.2, got %f", cfg.Classifier.ConfidenceThreshold)
	}
}

func TestLoadConfig_RejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"ngram min zero", "classifier:\n  ngram_min: 0\n"},
		{"unknown multi class", "classifier:\n  multi_class: softmax\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if err := os.WriteFile(filepath.Join(dir, "codechat.yaml"), []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := loadConfig(dir); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
