package pipeline

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ppiankov/spchk/internal/textenc"
)

// Source opens input files and splits them into lines
type Source struct {
	encoding string
}

// NewSource creates a Source decoding files from the named charset
func NewSource(encoding string) (*Source, error) {
	if _, err := textenc.Lookup(encoding); err != nil {
		return nil, err
	}
	return &Source{encoding: encoding}, nil
}

// Open opens path for line reading. The caller closes the returned file
func (s *Source) Open(path string) (*os.File, io.Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}

	r, err := textenc.NewReader(f, s.encoding)
	if err != nil {
		_ = f.Close()
		return nil, nil, fmt.Errorf("decode: %w", err)
	}
	return f, r, nil
}

// EachLine calls fn for every line of r with its 1-based number. Lines end
// at '\n', which is not passed to fn; a final unterminated line is still
// delivered. Lines have no length limit. Iteration stops early when fn
// returns false
func EachLine(r io.Reader, fn func(lineNo int, line string) bool) error {
	br := bufio.NewReader(r)
	for lineNo := 1; ; lineNo++ {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return err
		}
		if line == "" && err == io.EOF {
			return nil
		}

		if !fn(lineNo, strings.TrimSuffix(line, "\n")) {
			return nil
		}
		if err == io.EOF {
			return nil
		}
	}
}
