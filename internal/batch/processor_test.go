package batch

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"binfbx-tools/internal/binfbx"
	"binfbx-tools/internal/config"
)

// minimalContainer serializes an empty but structurally valid model.
func minimalContainer() []byte {
	w := &binfbx.Writer{}
	w.WriteU32(binfbx.Magic)
	w.WriteU32(0) // vertex buffer sizes
	w.WriteU32(0)
	w.WriteU32(0) // index count
	w.WriteU32(1) // index width
	w.WriteU32(0) // joints
	w.WriteU32(0) // reserved
	w.WriteU32(0)
	w.WriteF32(1) // global scale
	w.WriteU32(0) // lod thresholds
	w.WriteF32(1) // mirror sign
	w.WriteF32Array([]float32{0, 0, 0})
	w.WriteF32(0)
	w.WriteF32Array([]float32{0, 0, 0})
	w.WriteF32Array([]float32{0, 0, 0})
	w.WriteU32(0) // lod count
	w.WriteU32(0) // materials
	w.WriteU32(0) // material map 0
	w.WriteU32(0) // alternate maps
	w.WriteU32(0) // material map 1
	w.WriteU32(0) // group 0
	w.WriteU32(0) // group 1
	w.WriteU32(0) // trailer reserved
	w.WriteF32(0)
	w.WriteU32(0) // cdf
	return w.Bytes()
}

func TestRunRendersDirectory(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "chair.binfbx")
	if err := os.WriteFile(in, minimalContainer(), 0o644); err != nil {
		t.Fatal(err)
	}
	bad := filepath.Join(dir, "broken.binfbx")
	if err := os.WriteFile(bad, []byte{1, 2, 3}, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := config.Config{Group: -1, LOD: -1}
	cfg.Resolve(config.Flags{OutputDir: filepath.Join(dir, "out"), Size: 16, Workers: 2})
	cfg.Supersample = 1

	results := Run(cfg, []string{in, bad})
	if !results[0].Success {
		t.Fatalf("valid file failed: %s", results[0].Error)
	}
	if results[1].Success {
		t.Fatal("broken file reported success")
	}
	if _, err := os.Stat(filepath.Join(dir, "out", "chair.webp")); err != nil {
		t.Fatalf("output image missing: %v", err)
	}
}

func TestWriteManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.json")
	results := []Result{
		{Path: "a.binfbx", Image: "out/a.webp", Success: true},
		{Path: "b.binfbx", Error: "binfbx: bad magic"},
	}
	if err := WriteManifest(path, results); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var entries []ManifestEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if !entries[0].Success || entries[0].Image != "out/a.webp" {
		t.Fatalf("first entry wrong: %+v", entries[0])
	}
	if entries[1].Success || entries[1].Error == "" {
		t.Fatalf("second entry wrong: %+v", entries[1])
	}
}
