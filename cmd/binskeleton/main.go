package main

import (
	"flag"
	"fmt"
	"os"

	"binfbx-tools/internal/binskeleton"
)

func main() {
	var inputFile string
	flag.StringVar(&inputFile, "i", "", "input .binskeleton file")
	flag.StringVar(&inputFile, "in", "", "input .binskeleton file (same as -i)")
	flag.Parse()

	if inputFile == "" && flag.NArg() > 0 {
		inputFile = flag.Arg(0)
	}
	if inputFile == "" {
		fmt.Fprintln(os.Stderr, "Error: no input file provided.")
		flag.Usage()
		os.Exit(1)
	}

	data, err := os.ReadFile(inputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", inputFile, err)
		os.Exit(1)
	}
	skeleton, err := binskeleton.Read(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing %s: %v\n", inputFile, err)
		os.Exit(1)
	}
	skeleton.Dump(os.Stdout)
}
