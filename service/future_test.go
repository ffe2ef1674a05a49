package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/conduit/errors"
)

func TestFuture_CompleteResolves(t *testing.T) {
	fut := NewFuture[string]()
	assert.False(t, fut.Resolved())
	assert.False(t, fut.Canceled())

	_, err := fut.Result()
	assert.ErrorIs(t, err, errors.ErrNotReady)

	ok := fut.Complete("hello", nil)
	require.True(t, ok)
	assert.True(t, fut.Resolved())

	select {
	case <-fut.Done():
	default:
		t.Fatal("Done channel must be closed after completion")
	}

	resp, err := fut.Result()
	require.NoError(t, err)
	assert.Equal(t, "hello", resp)
}

func TestFuture_FirstCompletionWins(t *testing.T) {
	fut := NewFuture[int]()
	require.True(t, fut.Complete(1, nil))
	assert.False(t, fut.Complete(2, nil))

	resp, err := fut.Result()
	require.NoError(t, err)
	assert.Equal(t, 1, resp)
}

func TestFuture_CancelDiscardsLateCompletion(t *testing.T) {
	fut := NewFuture[int]()
	fut.Cancel()

	assert.True(t, fut.Canceled())
	assert.False(t, fut.Resolved())
	assert.False(t, fut.Complete(42, nil), "completion after cancel must be discarded")

	_, err := fut.Result()
	assert.ErrorIs(t, err, errors.ErrCanceled)
}

func TestFuture_CancelIsIdempotent(t *testing.T) {
	fut := NewFuture[int]()
	var releases atomic.Int32
	fut.OnCancel(func() { releases.Add(1) })

	fut.Cancel()
	fut.Cancel()
	assert.Equal(t, int32(1), releases.Load())
}

func TestFuture_CancelAfterResolveIsNoop(t *testing.T) {
	fut := NewFuture[int]()
	fut.Complete(7, nil)
	fut.Cancel()

	assert.True(t, fut.Resolved())
	assert.False(t, fut.Canceled())
	resp, err := fut.Result()
	require.NoError(t, err)
	assert.Equal(t, 7, resp)
}

func TestFuture_OnCancelRunsSynchronously(t *testing.T) {
	fut := NewFuture[int]()

	var order []string
	fut.OnCancel(func() { order = append(order, "first") })
	fut.OnCancel(func() { order = append(order, "second") })

	fut.Cancel()
	// Hooks must have run before Cancel returned, in registration order.
	require.Equal(t, []string{"first", "second"}, order)
}

func TestFuture_OnCancelAfterCancelRunsImmediately(t *testing.T) {
	fut := NewFuture[int]()
	fut.Cancel()

	ran := false
	fut.OnCancel(func() { ran = true })
	assert.True(t, ran)
}

func TestFuture_OnCancelDroppedAfterResolve(t *testing.T) {
	fut := NewFuture[int]()
	fut.Complete(1, nil)

	fut.OnCancel(func() { t.Fatal("hook must not run on a resolved future") })
}

func TestFuture_PollRegistersWaker(t *testing.T) {
	fut := NewFuture[int]()

	woke := make(chan struct{}, 1)
	done := fut.Poll(func() { woke <- struct{}{} })
	assert.False(t, done)

	fut.Complete(3, nil)

	select {
	case <-woke:
	case <-time.After(time.Second):
		t.Fatal("waker was not invoked on completion")
	}
	assert.True(t, fut.Poll(nil))
}

func TestFuture_WaitReturnsResult(t *testing.T) {
	fut := NewFuture[string]()
	go func() {
		time.Sleep(10 * time.Millisecond)
		fut.Complete("done", nil)
	}()

	resp, err := fut.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "done", resp)
}

func TestFuture_WaitContextExpiryCancels(t *testing.T) {
	fut := NewFuture[string]()
	var released atomic.Bool
	fut.OnCancel(func() { released.Store(true) })

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := fut.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.True(t, fut.Canceled())
	assert.True(t, released.Load(), "reservations must be released when Wait abandons the future")
}

func TestFuture_FailedAndResolvedConstructors(t *testing.T) {
	ok := ResolvedFuture(99)
	resp, err := ok.Result()
	require.NoError(t, err)
	assert.Equal(t, 99, resp)

	boom := fmt.Errorf("boom")
	bad := FailedFuture[int](boom)
	_, err = bad.Result()
	assert.ErrorIs(t, err, boom)
}
