package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Sentinel errors for file discovery.
var (
	ErrInvalidExtension   = errors.New("file must have .md, .markdown or .txt extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrOutputNotDir       = errors.New("output must be a directory when rendering several files")
)

// inputExtensions are the post body files picked up from directories.
var inputExtensions = []string{".md", ".markdown", ".txt"}

// FileToRender is a single input and where its HTML goes.
type FileToRender struct {
	InputPath  string
	OutputPath string
}

// discoverFiles expands inputs (files or directories) into render jobs.
// An output ending in .html names the single output file; any other
// non-empty output is a directory mirroring the input tree.
func discoverFiles(inputs []string, output string) ([]FileToRender, error) {
	var files []FileToRender
	for _, input := range inputs {
		found, err := discoverInput(input, output)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}

	if isHTMLFile(output) && len(files) > 1 {
		return nil, fmt.Errorf("%w: %s", ErrOutputNotDir, output)
	}
	return files, nil
}

func discoverInput(inputPath, output string) ([]FileToRender, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if !hasInputExtension(inputPath) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidExtension, inputPath)
		}
		return []FileToRender{{InputPath: inputPath, OutputPath: resolveOutputPath(inputPath, output, "")}}, nil
	}

	var files []FileToRender
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() || !hasInputExtension(path) {
			return nil
		}
		files = append(files, FileToRender{InputPath: path, OutputPath: resolveOutputPath(path, output, inputPath)})
		return nil
	})
	return files, err
}

// resolveOutputPath determines the HTML output path for an input file.
func resolveOutputPath(inputPath, output, baseInputDir string) string {
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))

	if output == "" {
		return filepath.Join(filepath.Dir(inputPath), base+".html")
	}
	if isHTMLFile(output) {
		return output
	}

	if baseInputDir != "" {
		if relPath, err := filepath.Rel(baseInputDir, inputPath); err == nil {
			return filepath.Join(output, filepath.Dir(relPath), base+".html")
		}
	}
	return filepath.Join(output, base+".html")
}

func hasInputExtension(path string) bool {
	return slices.Contains(inputExtensions, strings.ToLower(filepath.Ext(path)))
}

func isHTMLFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".html")
}
