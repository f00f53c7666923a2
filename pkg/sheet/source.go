package sheet

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// Source identifies where a section's tabular text lives so loaders can read
// published URLs, local exports, fs.FS fixtures, or workbook tabs without
// leaking implementation details.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile     SourceKind = "file"
	SourceKindFS       SourceKind = "fs"
	SourceKindURL      SourceKind = "url"
	SourceKindWorkbook SourceKind = "workbook"
)

// workbookSeparator splits a workbook location into file path and tab name.
const workbookSeparator = "#"

type fileSource struct {
	path string
}

func (s fileSource) Location() string {
	return s.path
}

func (s fileSource) Kind() SourceKind {
	return SourceKindFile
}

// SourceFromFile returns a Source pointing to a TSV file on disk.
func SourceFromFile(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

type fsSource struct {
	name string
}

func (s fsSource) Location() string {
	return s.name
}

func (s fsSource) Kind() SourceKind {
	return SourceKindFS
}

// SourceFromFS returns a Source identifying a resource inside an fs.FS.
func SourceFromFS(name string) Source {
	return fsSource{name: name}
}

type urlSource struct {
	raw string
}

func (s urlSource) Location() string {
	return s.raw
}

func (s urlSource) Kind() SourceKind {
	return SourceKindURL
}

// SourceFromURL parses the supplied URL string and returns a Source. It panics
// if the URL is invalid to surface configuration mistakes early.
func SourceFromURL(raw string) Source {
	if raw == "" {
		panic("sheet: empty URL source")
	}
	if _, err := url.ParseRequestURI(raw); err != nil {
		panic(fmt.Sprintf("sheet: invalid URL %q: %v", raw, err))
	}
	return urlSource{raw: raw}
}

type workbookSource struct {
	path  string
	sheet string
}

func (s workbookSource) Location() string {
	return s.path + workbookSeparator + s.sheet
}

func (s workbookSource) Kind() SourceKind {
	return SourceKindWorkbook
}

// SourceFromWorkbook identifies one tab of a local .xlsx export.
func SourceFromWorkbook(path, sheet string) Source {
	return workbookSource{path: filepath.Clean(path), sheet: strings.TrimSpace(sheet)}
}

// SplitWorkbookLocation reverses a workbook Location into path and tab name.
func SplitWorkbookLocation(location string) (path, sheet string, ok bool) {
	idx := strings.LastIndex(location, workbookSeparator)
	if idx <= 0 || idx == len(location)-1 {
		return "", "", false
	}
	return location[:idx], location[idx+1:], true
}
