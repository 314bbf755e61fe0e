package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadAndResolve(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"model_dir": "models", "render_size": 128, "format": "tga"}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	cfg.Resolve(Flags{Size: 256})

	if cfg.ModelDir != "models" {
		t.Fatalf("ModelDir = %q", cfg.ModelDir)
	}
	if cfg.RenderSize != 256 {
		t.Fatalf("flag did not override render size: %d", cfg.RenderSize)
	}
	if cfg.Format != "tga" {
		t.Fatalf("Format = %q", cfg.Format)
	}
	if cfg.OutputDir != "renders" || cfg.Supersample != 2 || cfg.Workers <= 0 {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
	if cfg.Group != -1 || cfg.LOD != -1 {
		t.Fatalf("group/lod defaults: %+v", cfg)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.json"); err == nil {
		t.Fatal("missing file did not fail")
	}
}
