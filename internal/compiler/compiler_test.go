package compiler

import (
	"strings"
	"testing"

	"github.com/dekarrin/mgolc/internal/mgrammar"
	"github.com/dekarrin/mgolc/internal/parse"
	"github.com/dekarrin/mgolc/internal/tablegen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileProducesSourceWhenDiagnosticsEmpty(t *testing.T) {
	tables, conflicts, err := tablegen.Build(mgrammar.New())
	require.NoError(t, err)
	require.Empty(t, conflicts)

	res := Compile(strings.NewReader("inicio varinicio inteiro x; varfim; x <- 3; fim"), tables)
	require.True(t, res.Diagnostics.Empty())
	assert.Contains(t, res.CSource, "#include <stdio.h>")
	assert.Contains(t, res.CSource, "x = 3;")
}

func TestCompileWithUndeclaredVariableProducesNoSource(t *testing.T) {
	tables, conflicts, err := tablegen.Build(mgrammar.New())
	require.NoError(t, err)
	require.Empty(t, conflicts)

	res := Compile(strings.NewReader("inicio varinicio varfim; z <- 1; fim"), tables)
	require.False(t, res.Diagnostics.Empty())
	assert.Empty(t, res.CSource)
}

func TestCompileTracedInvokesCallbackForEachStep(t *testing.T) {
	tables, conflicts, err := tablegen.Build(mgrammar.New())
	require.NoError(t, err)
	require.Empty(t, conflicts)

	var events []parse.TraceEvent
	res := CompileTraced(strings.NewReader("inicio varinicio varfim; fim"), tables, func(ev parse.TraceEvent) {
		events = append(events, ev)
	})
	require.True(t, res.Diagnostics.Empty())
	assert.NotEmpty(t, events)
	assert.Equal(t, "accept", events[len(events)-1].Kind)
}
