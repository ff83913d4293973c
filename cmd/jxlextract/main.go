// Command jxlextract extracts the bare codestream from a JXL container file.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/tetsuo/jxl"
)

func main() {
	verbose := false
	var paths []string
	for _, arg := range os.Args[1:] {
		if arg == "--verbose" || arg == "-v" {
			verbose = true
			continue
		}
		paths = append(paths, arg)
	}

	if len(paths) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <input.jxl> <output.jxl> [--verbose]\n", os.Args[0])
		os.Exit(1)
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if _, err := os.Stat(paths[0]); err != nil {
		fmt.Fprintf(os.Stderr, "error: input file not found: %s\n", paths[0])
		os.Exit(1)
	}

	res, err := jxl.Extract(paths[0], paths[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if verbose {
		fmt.Printf("container:  %d bytes\n", res.ContainerSize)
		fmt.Printf("codestream: %d bytes\n", res.CodestreamSize)
		fmt.Printf("overhead removed: %d bytes\n", res.Overhead())
	}
}
