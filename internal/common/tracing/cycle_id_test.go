package tracing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWithCycleID_AssignsOnce(t *testing.T) {
	ctx := t.Context()
	require.Empty(t, CycleID(ctx))

	ctx = WithCycleID(ctx)
	id := CycleID(ctx)
	require.NotEmpty(t, id)

	require.Equal(t, id, CycleID(WithCycleID(ctx)))
}

func TestWithCycleID_DistinctPerCycle(t *testing.T) {
	a := CycleID(WithCycleID(t.Context()))
	b := CycleID(WithCycleID(t.Context()))

	require.NotEqual(t, a, b)
}
