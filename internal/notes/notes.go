// Package notes reads technician note files from disk.
package notes

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/rotisserie/eris"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
)

// ReadFile reads a notes or transcript file and returns its text with
// line endings normalized to \n and any leading byte-order mark dropped.
//
// A non-empty encoding is resolved by IANA/WHATWG name (utf-8,
// windows-1252, latin1, ...). An empty encoding means UTF-8, falling back
// to Windows-1252 when the bytes are not valid UTF-8, which is what
// dictation exports from older field tablets contain.
func ReadFile(path, encoding string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", eris.Wrapf(err, "notes: read %s", path)
	}

	text, err := decode(data, encoding)
	if err != nil {
		return "", err
	}

	text = strings.TrimPrefix(text, "\uFEFF")
	return strings.ReplaceAll(text, "\r\n", "\n"), nil
}

func decode(data []byte, encoding string) (string, error) {
	if encoding != "" {
		enc, err := htmlindex.Get(encoding)
		if err != nil {
			return "", eris.Wrapf(err, "notes: unsupported encoding %q", encoding)
		}
		decoded, err := enc.NewDecoder().Bytes(data)
		if err != nil {
			return "", eris.Wrapf(err, "notes: decode %s", encoding)
		}
		return string(decoded), nil
	}

	if utf8.Valid(data) {
		return string(data), nil
	}

	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return "", eris.Wrap(err, "notes: decode windows-1252")
	}
	return string(decoded), nil
}

// ListDir returns the note files directly under dir (.txt, .md, .text
// extensions), sorted by name. Subdirectories are ignored.
func ListDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, eris.Wrapf(err, "notes: list %s", dir)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".txt", ".md", ".text":
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}
