package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"binfbx-tools/internal/batch"
	"binfbx-tools/internal/config"
)

func main() {
	configFile := flag.String("config", "", "path to config.json")
	modelDir := flag.String("dir", "", "directory of .binfbx files")
	outputDir := flag.String("output", "", "output directory (default: renders)")
	size := flag.Int("size", 0, "output image size in pixels")
	format := flag.String("format", "", "output format: webp or tga")
	workers := flag.Int("workers", 0, "number of worker goroutines (default: NumCPU)")
	testN := flag.Int("test", 0, "render only first N files for testing")
	flag.Parse()

	cfg := config.Config{Group: -1, LOD: -1}
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	cfg.Resolve(config.Flags{
		ModelDir:  *modelDir,
		OutputDir: *outputDir,
		Size:      *size,
		Format:    *format,
		Workers:   *workers,
	})

	if cfg.ModelDir == "" {
		fmt.Fprintln(os.Stderr, "Error: no model directory. Use -dir or config.json.")
		os.Exit(1)
	}

	files, err := filepath.Glob(filepath.Join(cfg.ModelDir, "*.binfbx"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error scanning %s: %v\n", cfg.ModelDir, err)
		os.Exit(1)
	}
	sort.Strings(files)
	if *testN > 0 && *testN < len(files) {
		files = files[:*testN]
	}
	if len(files) == 0 {
		fmt.Println("No models to render.")
		os.Exit(0)
	}

	fmt.Printf("BinFBX batch renderer (%s)\n", cfg.Format)
	fmt.Printf("Models: %d, Workers: %d\n", len(files), cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()
	results := batch.Run(cfg, files)

	succeeded, failed := 0, 0
	for _, r := range results {
		if r.Success {
			succeeded++
			continue
		}
		failed++
		fmt.Fprintf(os.Stderr, "  FAIL %s: %s\n", r.Path, r.Error)
	}
	fmt.Printf("Done in %.1fs: %d ok, %d failed\n", time.Since(start).Seconds(), succeeded, failed)

	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", manifestPath, err)
		os.Exit(1)
	}
	if failed > 0 {
		os.Exit(1)
	}
}
