// Package srcio opens MGol source files, transparently stripping a
// leading UTF-8 byte-order mark so a file saved by a Windows-based
// student editor doesn't trip the scanner's out-of-alphabet error on
// its very first byte.
//
// Grounded on tqw.LoadResourceBundle's os.Open-then-transform shape
// (dekarrin-tunaq/internal/tqw/tqw.go), generalized from TOML decoding
// to a plain byte stream since the scanner, not a decoder, is what
// ultimately consumes the result.
package srcio

import (
	"io"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Open opens path and wraps it in a BOM-stripping transform.Reader. It
// never widens the scanner's accepted alphabet (spec.md §1 Non-goals):
// only a leading BOM, never part of that alphabet, is removed.
// Everything after it reaches the scanner byte-for-byte.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	return &readCloser{r: transform.NewReader(f, decoder), c: f}, nil
}

type readCloser struct {
	r io.Reader
	c io.Closer
}

func (rc *readCloser) Read(p []byte) (int, error) { return rc.r.Read(p) }
func (rc *readCloser) Close() error                { return rc.c.Close() }
