package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"binfbx-tools/internal/batch"
	"binfbx-tools/internal/binfbx"
	"binfbx-tools/internal/preview"
)

func main() {
	var inputFile, outputFile string
	flag.StringVar(&inputFile, "i", "", "input .binfbx file")
	flag.StringVar(&inputFile, "in", "", "input .binfbx file (same as -i)")
	flag.StringVar(&outputFile, "o", "", "output image (default: input with image extension)")
	size := flag.Int("size", 512, "output image size in pixels")
	supersample := flag.Int("supersample", 2, "supersampling factor")
	format := flag.String("format", "webp", "output format: webp or tga")
	group := flag.Int("group", -1, "mesh group to render, -1 for both")
	lod := flag.Int("lod", 0, "LOD tier to render, -1 for all")
	flag.Parse()

	if inputFile == "" && flag.NArg() > 0 {
		inputFile = flag.Arg(0)
	}
	if inputFile == "" {
		fmt.Fprintln(os.Stderr, "Error: no input file provided.")
		flag.Usage()
		os.Exit(1)
	}
	if *format != "webp" && *format != "tga" {
		fmt.Fprintf(os.Stderr, "Error: unknown format %q, want webp or tga\n", *format)
		os.Exit(1)
	}
	if outputFile == "" {
		stem := strings.TrimSuffix(inputFile, ".binfbx")
		outputFile = stem + "." + *format
	}

	data, err := os.ReadFile(inputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", inputFile, err)
		os.Exit(1)
	}
	model, err := binfbx.Read(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing %s: %v\n", inputFile, err)
		os.Exit(1)
	}

	img := preview.Render(model, preview.Options{
		Group:       *group,
		LOD:         *lod,
		Size:        *size,
		Supersample: *supersample,
	})
	if err := batch.Save(outputFile, *format, img); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", outputFile)
}
