package database

import (
	"context"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWithSignalCancel_NotCanceledWithoutSignal(t *testing.T) {
	ctx, stop := WithSignalCancel(context.Background(), nil)
	defer stop()

	select {
	case <-ctx.Done():
		t.Fatal("context should not be canceled without a signal")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestWithSignalCancel_Callback(t *testing.T) {
	if os.Getenv("CI") == "true" {
		t.Skip("Skipping signal test in CI environment")
	}

	received := make(chan os.Signal, 1)
	ctx, stop := WithSignalCancel(context.Background(), func(sig os.Signal) {
		received <- sig
	})
	defer stop()

	time.Sleep(10 * time.Millisecond) // let the goroutine start
	assert.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGINT))

	select {
	case <-ctx.Done():
		assert.Equal(t, syscall.SIGINT, <-received)
	case <-time.After(time.Second):
		t.Fatal("context was not canceled after SIGINT")
	}
}

func TestWithSignalCancel_Stop(t *testing.T) {
	parent, cancelParent := context.WithCancel(context.Background())
	defer cancelParent()

	ctx, stop := WithSignalCancel(parent, nil)
	assert.NoError(t, ctx.Err())

	stop()
	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context was not canceled by stop")
	}
	assert.NoError(t, parent.Err(), "stop must not cancel the parent")
}
