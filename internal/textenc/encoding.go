// Package textenc decodes word lists and input files stored in legacy
// single-byte charsets before they reach the tokenizer
package textenc

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Default is the pass-through encoding name
const Default = "utf-8"

var encodings = map[string]encoding.Encoding{
	"windows-1252": charmap.Windows1252,
	"cp1252":       charmap.Windows1252,
	"iso-8859-1":   charmap.ISO8859_1,
	"latin1":       charmap.ISO8859_1,
	"iso-8859-15":  charmap.ISO8859_15,
}

// Lookup resolves an encoding name. UTF-8 (and the empty name) resolve to
// nil, meaning the input is read as-is
func Lookup(name string) (encoding.Encoding, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	switch key {
	case "", Default, "utf8", "ascii":
		return nil, nil
	}
	enc, ok := encodings[key]
	if !ok {
		return nil, fmt.Errorf("unknown encoding %q (supported: %s)", name, strings.Join(Names(), ", "))
	}
	return enc, nil
}

// NewReader wraps r so that it yields UTF-8 text
func NewReader(r io.Reader, name string) (io.Reader, error) {
	enc, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return r, nil
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}

// Names lists the accepted encoding names
func Names() []string {
	names := []string{Default}
	for name := range encodings {
		names = append(names, name)
	}
	sort.Strings(names[1:])
	return names
}
