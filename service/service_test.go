package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/conduit/errors"
)

// gatedService reports Pending until opened, then Ready forever.
// It records registered wakers and fires them on Open.
type gatedService struct {
	mu     sync.Mutex
	open   bool
	failed error
	wakers []Waker
}

func (g *gatedService) PollReady(w Waker) (Readiness, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failed != nil {
		return Pending, g.failed
	}
	if g.open {
		return Ready, nil
	}
	if w != nil {
		g.wakers = append(g.wakers, w)
	}
	return Pending, nil
}

func (g *gatedService) Call(req string) *Future[string] {
	return ResolvedFuture("echo:" + req)
}

func (g *gatedService) Open() {
	g.mu.Lock()
	g.open = true
	wakers := g.wakers
	g.wakers = nil
	g.mu.Unlock()
	for _, w := range wakers {
		w()
	}
}

func TestReadiness_String(t *testing.T) {
	assert.Equal(t, "pending", Pending.String())
	assert.Equal(t, "ready", Ready.String())
	assert.Equal(t, "unknown", Readiness(42).String())
}

func TestFunc_AlwaysReady(t *testing.T) {
	svc := Func[int, int](func(n int) (int, error) { return n * 2, nil })

	r, err := svc.PollReady(nil)
	require.NoError(t, err)
	assert.Equal(t, Ready, r)

	resp, err := svc.Call(21).Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, resp)
}

func TestFunc_ErrorDoesNotInvalidateService(t *testing.T) {
	boom := fmt.Errorf("transient boom")
	svc := Func[int, int](func(int) (int, error) { return 0, boom })

	_, err := svc.Call(1).Wait(context.Background())
	assert.ErrorIs(t, err, boom)

	// Per-request failure: the service stays usable.
	r, err := svc.PollReady(nil)
	require.NoError(t, err)
	assert.Equal(t, Ready, r)
}

func TestAwaitReady_ParksUntilWoken(t *testing.T) {
	gate := &gatedService{}

	done := make(chan error, 1)
	go func() {
		done <- AwaitReady[string, string](context.Background(), gate)
	}()

	select {
	case err := <-done:
		t.Fatalf("AwaitReady returned before the gate opened: %v", err)
	case <-time.After(20 * time.Millisecond):
	}

	gate.Open()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("AwaitReady did not return after wake")
	}
}

func TestAwaitReady_ContextExpiry(t *testing.T) {
	gate := &gatedService{} // never opens

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := AwaitReady[string, string](ctx, gate)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestAwaitReady_PermanentFailure(t *testing.T) {
	gate := &gatedService{failed: errors.ErrServiceClosed}

	err := AwaitReady[string, string](context.Background(), gate)
	require.Error(t, err)
	assert.True(t, errors.IsPermanent(err))
	assert.ErrorIs(t, err, errors.ErrServiceClosed)
	assert.True(t, strings.Contains(err.Error(), "service.AwaitReady"))
}

func TestDo_ReadinessThenCall(t *testing.T) {
	gate := &gatedService{}
	gate.Open()

	resp, err := Do[string, string](context.Background(), gate, "ping")
	require.NoError(t, err)
	assert.Equal(t, "echo:ping", resp)
}

func TestDo_ContextCancelsInFlight(t *testing.T) {
	svc := Func[int, int](func(n int) (int, error) {
		time.Sleep(200 * time.Millisecond)
		return n, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := Do[int, int](ctx, svc, 1)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 100*time.Millisecond,
		"Do must return as soon as the context expires, not wait for the function")
}
