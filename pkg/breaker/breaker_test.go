package breaker_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mercadorenta/rentas-client/pkg/breaker"
)

func TestBreaker_OpensAndRecovers(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")
	b := breaker.New(4, 50*time.Millisecond, 1.0, 2)

	for i := 0; i < 4; i++ {
		require.ErrorIs(t, b.Call(func() error { return errBoom }), errBoom)
	}

	// fully failed window: subsequent calls are swallowed
	require.ErrorIs(t, b.Call(func() error { return nil }), breaker.ErrOpen)

	time.Sleep(60 * time.Millisecond)

	// half-open: probes run for real, then the breaker closes
	require.NoError(t, b.Call(func() error { return nil }))
	require.NoError(t, b.Call(func() error { return nil }))
	require.NoError(t, b.Call(func() error { return nil }))
}

func TestBreaker_AbreAlAlcanzarRatio(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")
	b := breaker.New(4, time.Minute, 0.5, 2)

	// the window does not need to fill: 2 failures out of 4 already hit 0.5
	require.ErrorIs(t, b.Call(func() error { return errBoom }), errBoom)
	require.ErrorIs(t, b.Call(func() error { return errBoom }), errBoom)
	require.ErrorIs(t, b.Call(func() error { return nil }), breaker.ErrOpen)
}

func TestBreaker_HalfOpenFailureReopens(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")
	b := breaker.New(2, 30*time.Millisecond, 0.5, 2)

	require.Error(t, b.Call(func() error { return errBoom }))
	require.Error(t, b.Call(func() error { return errBoom }))
	require.ErrorIs(t, b.Call(func() error { return nil }), breaker.ErrOpen)

	time.Sleep(40 * time.Millisecond)
	require.ErrorIs(t, b.Call(func() error { return errBoom }), errBoom)
	require.ErrorIs(t, b.Call(func() error { return nil }), breaker.ErrOpen)
}
