// Package emit implements EmitBuffer (spec.md §3, §6): the buffered C
// output and temporary-variable ledger that semantic actions append to
// during reduction, flushed verbatim once compilation succeeds.
package emit

import (
	"fmt"
	"io"
	"strings"
)

// TempKind is the C type a compiler-generated temporary holds.
type TempKind int

const (
	Int TempKind = iota
	Real
)

func (k TempKind) cType() string {
	if k == Real {
		return "real"
	}
	return "inteiro"
}

const prologue = `#include <stdio.h>

typedef char literal[256];
typedef int inteiro;
typedef double real;

void main(void)
{
`

const epilogue = `    return 0;
}
`

// Buffer accumulates the temp-variable ledger and the body text of the
// one C translation unit a compilation produces. Temp indices are
// 0-based and monotonically increasing for the Buffer's lifetime
// (spec.md I4).
type Buffer struct {
	temps []TempKind
	body  []string
}

// New returns an empty Buffer.
func New() *Buffer {
	return &Buffer{}
}

// AllocTemp records a new temporary of kind and returns its C name,
// e.g. "T0", "T1".
func (b *Buffer) AllocTemp(kind TempKind) string {
	idx := len(b.temps)
	b.temps = append(b.temps, kind)
	return fmt.Sprintf("T%d", idx)
}

// Append adds one text fragment to the body, in order.
func (b *Buffer) Append(text string) {
	b.body = append(b.body, text)
}

// Appendf is Append with fmt.Sprintf formatting.
func (b *Buffer) Appendf(format string, args ...any) {
	b.Append(fmt.Sprintf(format, args...))
}

// TempCount returns how many temporaries have been allocated.
func (b *Buffer) TempCount() int { return len(b.temps) }

// Body returns the accumulated body fragments joined as one string,
// for tests that check emitted output against spec.md §8 scenarios.
func (b *Buffer) Body() string {
	return strings.Join(b.body, "")
}

// Flush writes the fixed prologue, the temp declaration block (only if
// any temporaries were allocated), the accumulated body, and the fixed
// epilogue (spec.md §6). Callers only invoke Flush once diagnostics
// are confirmed to be empty (spec.md P6).
func (b *Buffer) Flush(w io.Writer) error {
	if _, err := io.WriteString(w, prologue); err != nil {
		return err
	}
	if len(b.temps) > 0 {
		if _, err := io.WriteString(w, "    /*----Variaveis temporarias----*/\n"); err != nil {
			return err
		}
		for i, kind := range b.temps {
			if _, err := fmt.Fprintf(w, "    %s T%d\n", kind.cType(), i); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "    /*------------------------------*/\n"); err != nil {
			return err
		}
	}
	for _, frag := range b.body {
		if _, err := io.WriteString(w, frag); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, epilogue)
	return err
}
