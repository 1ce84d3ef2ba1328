package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_EmbeddedDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Screen.Width <= 0 || cfg.Screen.Height <= 0 {
		t.Errorf("invalid default screen size %dx%d", cfg.Screen.Width, cfg.Screen.Height)
	}
	if cfg.Particles.Count <= 0 {
		t.Errorf("invalid default particle count %d", cfg.Particles.Count)
	}
	if cfg.Physics.Friction <= 0 || cfg.Physics.Friction > 1 {
		t.Errorf("invalid default friction %v", cfg.Physics.Friction)
	}
	if cfg.Derived.WorkerCount < 1 {
		t.Errorf("derived worker count %d", cfg.Derived.WorkerCount)
	}
	if cfg.Derived.Width32 != float32(cfg.Screen.Width) {
		t.Errorf("derived width %v does not match %d", cfg.Derived.Width32, cfg.Screen.Width)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	override := []byte("particles:\n  count: 8192\nphysics:\n  attraction: 2.5\n")
	if err := os.WriteFile(path, override, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Particles.Count != 8192 {
		t.Errorf("count = %d, want 8192", cfg.Particles.Count)
	}
	if cfg.Physics.Attraction != 2.5 {
		t.Errorf("attraction = %v, want 2.5", cfg.Physics.Attraction)
	}
	// Untouched fields keep their defaults.
	if cfg.Screen.Width <= 0 {
		t.Errorf("screen width lost its default: %d", cfg.Screen.Width)
	}
	if cfg.Physics.Friction <= 0 {
		t.Errorf("friction lost its default: %v", cfg.Physics.Friction)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidate_RejectsBadValues(t *testing.T) {
	base := func() *Config {
		cfg, err := Load("")
		if err != nil {
			t.Fatal(err)
		}
		return cfg
	}

	cfg := base()
	cfg.Screen.Width = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for zero screen width")
	}

	cfg = base()
	cfg.Particles.Count = -8
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for negative particle count")
	}

	cfg = base()
	cfg.Physics.Friction = 1.5
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for friction above 1")
	}

	cfg = base()
	cfg.Render.MaxDensity = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for zero max density")
	}

	cfg = base()
	cfg.Workers.Count = -1
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for negative worker count")
	}
}

func TestWriteYAML_RoundTrips(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Particles.Count = 4096

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatal(err)
	}

	back, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if back.Particles.Count != 4096 {
		t.Errorf("round-tripped count = %d, want 4096", back.Particles.Count)
	}
}
