package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"binfbx-tools/internal/binfbx"
)

// removeSpec identifies one mesh by group, LOD and per-LOD index.
type removeSpec struct {
	group      int
	lod, index uint32
}

// removeList collects repeated -remove flags in order.
type removeList []removeSpec

func (r *removeList) String() string {
	parts := make([]string, len(*r))
	for i, s := range *r {
		parts[i] = fmt.Sprintf("%d,%d,%d", s.group, s.lod, s.index)
	}
	return strings.Join(parts, " ")
}

func (r *removeList) Set(value string) error {
	fields := strings.FieldsFunc(value, func(c rune) bool {
		return c == ',' || c == ' '
	})
	if len(fields) != 3 {
		return fmt.Errorf("want group,lod,index, got %q", value)
	}
	group, err := strconv.Atoi(fields[0])
	if err != nil {
		return fmt.Errorf("bad group %q", fields[0])
	}
	lod, err := strconv.ParseUint(fields[1], 10, 32)
	if err != nil {
		return fmt.Errorf("bad lod %q", fields[1])
	}
	index, err := strconv.ParseUint(fields[2], 10, 32)
	if err != nil {
		return fmt.Errorf("bad index %q", fields[2])
	}
	*r = append(*r, removeSpec{group: group, lod: uint32(lod), index: uint32(index)})
	return nil
}

func main() {
	var inputFile, outputFile string
	var removes removeList
	flag.StringVar(&inputFile, "i", "", "input .binfbx file")
	flag.StringVar(&inputFile, "in", "", "input .binfbx file (same as -i)")
	flag.StringVar(&outputFile, "o", "", "output file; omit to skip rewriting")
	flag.StringVar(&outputFile, "out", "", "output file (same as -o)")
	dump := flag.Bool("dump", false, "print a structural summary")
	verbose := flag.Bool("v", false, "list joints and uniform variables in the dump")
	flag.Var(&removes, "remove", "mesh to remove as group,lod,index (repeatable)")
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
	model, err := binfbx.Read(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing %s: %v\n", inputFile, err)
		os.Exit(1)
	}

	for _, r := range removes {
		if !model.RemoveMesh(r.group, r.lod, r.index) {
			fmt.Fprintf(os.Stderr, "Mesh group=%d lod=%d index=%d not found, skipping\n", r.group, r.lod, r.index)
		}
	}

	if *dump {
		model.Dump(os.Stdout, *verbose)
	}

	if outputFile != "" {
		out, err := model.Write()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error serializing: %v\n", err)
			os.Exit(1)
		}
		if err := os.WriteFile(outputFile, out, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", outputFile, err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s (%d bytes)\n", outputFile, len(out))
	}
}
