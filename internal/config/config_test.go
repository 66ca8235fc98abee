package config

import (
	"strings"
	"testing"
)

func validConfig() Config {
	return Config{
		OutputPath:     "/data/fmriprep",
		ReportsPerPage: 50,
	}
}

func TestValidate_OK(t *testing.T) {
	cfg := validConfig()
	cfg.FlipImages = []string{"sdc"}
	cfg.DropBackground = []string{"reconall"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_MissingOutputPath(t *testing.T) {
	cfg := validConfig()
	cfg.OutputPath = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty output path")
	}
}

func TestValidate_OverlappingMutationSets(t *testing.T) {
	cases := []struct {
		name string
		mut  func(*Config)
	}{
		{"flip and drop_foreground", func(c *Config) {
			c.FlipImages = []string{"sdc"}
			c.DropForeground = []string{"sdc"}
		}},
		{"flip and drop_background", func(c *Config) {
			c.FlipImages = []string{"sdc"}
			c.DropBackground = []string{"sdc"}
		}},
		{"drop_foreground and drop_background", func(c *Config) {
			c.DropForeground = []string{"sdc"}
			c.DropBackground = []string{"sdc"}
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mut(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected overlap error, got nil")
			}
			if !strings.Contains(err.Error(), "sdc") {
				t.Errorf("error should name the overlapping type, got: %v", err)
			}
		})
	}
}

func TestValidate_NegativePageSize(t *testing.T) {
	cfg := validConfig()
	cfg.ReportsPerPage = -1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative page size")
	}
}

func TestImageChanges(t *testing.T) {
	cfg := validConfig()
	if cfg.ImageChanges() {
		t.Error("no mutation sets: expected false")
	}
	cfg.DropForeground = []string{"sdc"}
	if !cfg.ImageChanges() {
		t.Error("non-empty mutation set: expected true")
	}
}
