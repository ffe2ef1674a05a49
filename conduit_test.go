package conduit_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/c360/conduit/layer"
	"github.com/c360/conduit/metric"
	"github.com/c360/conduit/middleware/buffer"
	"github.com/c360/conduit/middleware/limit"
	"github.com/c360/conduit/middleware/metrics"
	"github.com/c360/conduit/middleware/timeout"
	"github.com/c360/conduit/service"
	"github.com/c360/conduit/servicetest"
)

// Assemble a realistic stack and drive it hard: instrumentation outermost,
// then a deadline, then a shared concurrency limit, then a buffered leaf.
func TestFullStack(t *testing.T) {
	leaf := servicetest.NewLatency(2*time.Millisecond, func(n int) (int, error) {
		return n + 1, nil
	})
	reg := metric.NewRegistry()

	buffered := buffer.New[int, int](leaf, 16)
	defer buffered.Close()

	stack := layer.NewStack[int, int]().
		Use(metrics.NewLayer[int, int](reg, "stack")).
		Use(timeout.NewLayer[int, int](time.Second)).
		Use(limit.NewLayer[int, int](4))
	svc := stack.Build(buffered)

	var g errgroup.Group
	for i := 0; i < 8; i++ {
		clone := service.Clone(svc)
		i := i
		g.Go(func() error {
			for j := 0; j < 25; j++ {
				resp, err := service.Do[int, int](context.Background(), clone, i)
				if err != nil {
					return err
				}
				if resp != i+1 {
					t.Errorf("expected %d, got %d", i+1, resp)
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, int64(200), leaf.Completed())
	assert.Equal(t, int64(0), leaf.Canceled())
}

// A deadline deep in a stack must surface through outer layers with its
// identity intact, and the abandoned work must release every reservation.
func TestFullStack_TimeoutSurfacesAndReleases(t *testing.T) {
	leaf := servicetest.NewLatency(100*time.Millisecond, func(n int) (int, error) {
		return n, nil
	})

	svc := layer.Chain(
		limit.NewLayer[int, int](1),
		timeout.NewLayer[int, int](5*time.Millisecond),
	).Wrap(leaf)

	_, err := service.Do[int, int](context.Background(), svc, 1)
	require.Error(t, err)
	assert.True(t, timeout.IsElapsed(err), "Elapsed must survive erasure through the limit layer")

	// The limit permit was released when the timed-out computation was
	// abandoned; readiness must come back promptly.
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	err = service.AwaitReady[int, int](ctx, svc)
	require.NoError(t, err, "permit leaked by a timed-out request")
}
