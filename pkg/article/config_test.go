package article

import (
	"errors"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
	if !cfg.LazyLoad || !cfg.SizeImages || !cfg.WrapGIFs || !cfg.Figures || !cfg.HeadingAnchors || !cfg.WrapEmbeds {
		t.Error("expected every rule on by default")
	}
	if cfg.CaptionMarkup {
		t.Error("captions should be plain text by default")
	}
	if cfg.HeadingIDPrefix != "heading-" {
		t.Errorf("HeadingIDPrefix = %q", cfg.HeadingIDPrefix)
	}
}

func TestPresetAnchorsOnly(t *testing.T) {
	cfg := PresetAnchorsOnly()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("preset should be valid: %v", err)
	}
	if cfg.LazyLoad || cfg.SizeImages || cfg.WrapGIFs || cfg.Figures || cfg.WrapEmbeds {
		t.Error("only heading anchors should be on")
	}
	if !cfg.HeadingAnchors {
		t.Error("heading anchors should be on")
	}
}

func TestConfig_Merge(t *testing.T) {
	base := PresetAnchorsOnly()

	merged := base.Merge(&Config{
		ArticleSelector: "#post",
		HeadingLevels:   []string{"h2"},
		WrapEmbeds:      true,
	})

	if merged.ArticleSelector != "#post" {
		t.Errorf("ArticleSelector = %q", merged.ArticleSelector)
	}
	if len(merged.HeadingLevels) != 1 || merged.HeadingLevels[0] != "h2" {
		t.Errorf("HeadingLevels = %v", merged.HeadingLevels)
	}
	if !merged.WrapEmbeds {
		t.Error("WrapEmbeds should be switched on")
	}
	if merged.PlayerClass != "video-player" {
		t.Errorf("empty fields should keep base values, got %q", merged.PlayerClass)
	}
	if base.ArticleSelector != "main article" || base.WrapEmbeds {
		t.Error("Merge should not modify the receiver")
	}

	merged.HeadingLevels[0] = "h6"
	if base.HeadingLevels[0] != "h2" {
		t.Error("merged config should not share HeadingLevels with the base")
	}
}

func TestConfig_MergeNil(t *testing.T) {
	base := DefaultConfig()
	merged := base.Merge(nil)
	if merged == base {
		t.Error("Merge(nil) should return a copy")
	}
	if merged.ArticleSelector != base.ArticleSelector {
		t.Error("Merge(nil) should keep every value")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "empty selector",
			mutate:  func(c *Config) { c.ArticleSelector = "" },
			wantErr: "ArticleSelector is required",
		},
		{
			name:    "unparseable selector",
			mutate:  func(c *Config) { c.ArticleSelector = "main article[" },
			wantErr: "not a valid CSS selector",
		},
		{
			name:    "extension without dot",
			mutate:  func(c *Config) { c.OutputExtension = "html" },
			wantErr: `OutputExtension must start with "."`,
		},
		{
			name:    "unknown heading level",
			mutate:  func(c *Config) { c.HeadingLevels = []string{"h2", "p"} },
			wantErr: "must be one of",
		},
		{
			name:    "prefix containing hash",
			mutate:  func(c *Config) { c.HeadingIDPrefix = "#h-" },
			wantErr: "HeadingIDPrefix must not contain",
		},
		{
			name:    "missing asset root while sizing",
			mutate:  func(c *Config) { c.AssetRoot = "" },
			wantErr: "AssetRoot is required",
		},
		{
			name:    "missing asset root without sizing",
			mutate:  func(c *Config) { c.AssetRoot = ""; c.SizeImages = false },
			wantErr: "",
		},
		{
			name:    "empty prefix is allowed",
			mutate:  func(c *Config) { c.HeadingIDPrefix = "" },
			wantErr: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q should contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_ValidateReportsAll(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ArticleSelector = ""
	cfg.OutputExtension = "htm"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"ArticleSelector", "OutputExtension"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q should mention %s", err, want)
		}
	}
}
