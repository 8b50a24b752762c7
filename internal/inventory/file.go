package inventory

import (
	"bufio"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Format selects the on-disk encoding of a catalog file.
type Format string

const (
	// FormatCSV stores one "sku,quantity,unit_price" record per line.
	FormatCSV Format = "csv"
	// FormatJSON stores a canonical JSON document.
	FormatJSON Format = "json"
)

// FormatForPath picks the format from the file extension. Anything other
// than .json is treated as CSV.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatCSV
}

// FileBackend stores a catalog in a single UTF-8 text file.
type FileBackend struct {
	Path   string
	Format Format
}

// NewFileBackend returns a backend for path with the format inferred from
// its extension.
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{Path: path, Format: FormatForPath(path)}
}

func (f *FileBackend) String() string {
	return "file:" + f.Path
}

// Load reads and decodes the file. The handle is closed on every return
// path. A leading UTF-8 BOM is dropped and BOM-marked UTF-16 is transcoded;
// any other content must be valid UTF-8.
func (f *FileBackend) Load(ctx context.Context) ([]Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, persistenceError("load", err, "cancelled")
	}

	file, err := os.Open(f.Path)
	if err != nil {
		return nil, persistenceError("load", err, "cannot open catalog file")
	}
	defer file.Close()

	data, err := io.ReadAll(transform.NewReader(file, unicode.BOMOverride(transform.Nop)))
	if err != nil {
		return nil, persistenceError("load", err, "cannot read %s", f.Path)
	}
	if !utf8.Valid(data) {
		return nil, persistenceError("load", nil, "%s is not valid UTF-8", f.Path)
	}

	switch f.Format {
	case FormatJSON:
		return decodeJSON(data)
	default:
		return decodeCSV(data)
	}
}

// Save encodes items into a temp file next to the target, syncs it and
// renames it over the target. An existing target keeps its permission bits;
// a new file gets 0644. On any failure the temp file is removed and the
// existing target is left as it was.
func (f *FileBackend) Save(ctx context.Context, items []Item) (err error) {
	if err := ctx.Err(); err != nil {
		return persistenceError("save", err, "cancelled")
	}

	dir, base := filepath.Split(f.Path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return persistenceError("save", err, "cannot create temp file")
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	w := bufio.NewWriter(tmp)
	switch f.Format {
	case FormatJSON:
		err = encodeJSON(w, items)
	default:
		err = encodeCSV(w, items)
	}
	if err != nil {
		return persistenceError("save", err, "cannot encode catalog")
	}
	if err = w.Flush(); err != nil {
		return persistenceError("save", err, "cannot write %s", tmp.Name())
	}
	if err = tmp.Sync(); err != nil {
		return persistenceError("save", err, "cannot sync %s", tmp.Name())
	}
	mode := os.FileMode(0o644)
	if info, statErr := os.Stat(f.Path); statErr == nil {
		mode = info.Mode().Perm()
	}
	if err = tmp.Chmod(mode); err != nil {
		return persistenceError("save", err, "cannot chmod %s", tmp.Name())
	}
	if err = tmp.Close(); err != nil {
		return persistenceError("save", err, "cannot close %s", tmp.Name())
	}
	if err = os.Rename(tmp.Name(), f.Path); err != nil {
		return persistenceError("save", err, "cannot replace %s", f.Path)
	}
	return nil
}
