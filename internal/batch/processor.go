package batch

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"binfbx-tools/internal/binfbx"
	"binfbx-tools/internal/config"
	"binfbx-tools/internal/preview"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
)

// Result holds the outcome of processing one model file.
type Result struct {
	Path    string
	Image   string
	Success bool
	Error   string
}

// Run renders every file using a worker pool. Each file's decode, render
// and encode cycle is independent, so there is no shared state between
// workers beyond the results slice.
func Run(cfg config.Config, files []string) []Result {
	total := len(files)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					rate := float64(p) / elapsed
					fmt.Printf("  [%d/%d] %.1f models/sec\n", p, total, rate)
				}
			}
		}
	}()

	// Worker pool
	fileChan := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range fileChan {
				results[idx] = processFile(cfg, files[idx])
				processed.Add(1)
			}
		}()
	}

	for i := range files {
		fileChan <- i
	}
	close(fileChan)

	wg.Wait()
	close(done)

	return results
}

func processFile(cfg config.Config, path string) Result {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{Path: path, Error: err.Error()}
	}

	model, err := binfbx.Read(data)
	if err != nil {
		return Result{Path: path, Error: err.Error()}
	}

	img := preview.Render(model, preview.Options{
		Group:       cfg.Group,
		LOD:         cfg.LOD,
		Size:        cfg.RenderSize,
		Supersample: cfg.Supersample,
	})

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	outPath := filepath.Join(cfg.OutputDir, stem+"."+cfg.Format)
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return Result{Path: path, Error: err.Error()}
	}
	if err := Save(outPath, cfg.Format, img); err != nil {
		return Result{Path: path, Error: err.Error()}
	}

	return Result{Path: path, Image: outPath, Success: true}
}

// Save encodes an image to the named file as WebP or TGA.
func Save(path, format string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("batch: create %s: %w", path, err)
	}
	defer f.Close()

	switch format {
	case "tga":
		err = tga.Encode(f, img)
	default:
		err = nativewebp.Encode(f, img, nil)
	}
	if err != nil {
		return fmt.Errorf("batch: encode %s: %w", path, err)
	}
	return nil
}
