// Package types holds the domain and wire types shared by the docpanel
// client, controller and CLI.
package types

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File extensions accepted by the two upload surfaces.
const (
	JSONExt = ".json"
	PDFExt  = ".pdf"
)

// StagedFile is a file chosen locally but not yet sent to the server.
// Path is the content handle; the file is opened only when uploaded.
type StagedFile struct {
	Name string `json:"name" yaml:"name"`
	Size int64  `json:"size" yaml:"size"`
	Path string `json:"path" yaml:"path"`
}

// IsJSON reports whether the file qualifies for the JSON staging area.
// Matching is case-sensitive, like the page it replaces.
func (f StagedFile) IsJSON() bool {
	return strings.HasSuffix(f.Name, JSONExt)
}

// IsPDF reports whether the file qualifies for PDF processing.
func (f StagedFile) IsPDF() bool {
	return strings.HasSuffix(strings.ToLower(f.Name), PDFExt)
}

// StageFromPath stats path and returns a StagedFile for it.
func StageFromPath(path string) (StagedFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return StagedFile{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return StagedFile{}, fmt.Errorf("%s is a directory", path)
	}
	return StagedFile{
		Name: filepath.Base(path),
		Size: info.Size(),
		Path: path,
	}, nil
}

// StagePaths stats every path. Glob patterns are expanded first so that
// "*.json" typed into the TUI behaves like a multi-select in a file picker.
func StagePaths(paths []string) ([]StagedFile, error) {
	var files []StagedFile
	for _, p := range paths {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		matches, err := filepath.Glob(p)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", p, err)
		}
		if len(matches) == 0 {
			matches = []string{p}
		}
		for _, m := range matches {
			f, err := StageFromPath(m)
			if err != nil {
				return nil, err
			}
			files = append(files, f)
		}
	}
	return files, nil
}

// FilterJSON returns the files whose name ends in .json, preserving order.
func FilterJSON(files []StagedFile) []StagedFile {
	var out []StagedFile
	for _, f := range files {
		if f.IsJSON() {
			out = append(out, f)
		}
	}
	return out
}

// FilterPDF returns the files that look like PDFs, preserving order.
func FilterPDF(files []StagedFile) []StagedFile {
	var out []StagedFile
	for _, f := range files {
		if f.IsPDF() {
			out = append(out, f)
		}
	}
	return out
}
