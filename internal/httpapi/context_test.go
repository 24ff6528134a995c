package httpapi

import (
	"context"
	"testing"
	"time"
)

func TestJoinContextsCancelsOnEither(t *testing.T) {
	a, cancelA := context.WithCancel(context.Background())
	b := context.Background()
	ctx, cancel := joinContexts(a, b)
	defer cancel()
	cancelA()
	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatalf("joined context not canceled when a was canceled")
	}

	a2 := context.Background()
	b2, cancelB := context.WithCancel(context.Background())
	ctx2, cancel2 := joinContexts(a2, b2)
	defer cancel2()
	cancelB()
	select {
	case <-ctx2.Done():
	case <-time.After(time.Second):
		t.Fatalf("joined context not canceled when b was canceled")
	}
}

func TestSetBaseContextNilResets(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	SetBaseContext(ctx)
	if serverBaseCtx != ctx {
		t.Fatalf("base context not set")
	}
	cancel()
	SetBaseContext(nil) //nolint:staticcheck
	if serverBaseCtx.Err() != nil {
		t.Fatalf("base context should be reset to Background")
	}
}

func TestConfigSetters(t *testing.T) {
	SetMaxBodyBytes(-1)
	if maxBodyBytes != 1<<20 {
		t.Fatalf("max body bytes not reset, got %d", maxBodyBytes)
	}
	SetMaxBodyBytes(2048)
	if maxBodyBytes != 2048 {
		t.Fatalf("max body bytes=%d", maxBodyBytes)
	}
	SetMaxBodyBytes(0)

	SetTrainTimeout(-time.Second)
	if trainTimeout != 0 {
		t.Fatalf("negative train timeout should clamp to 0")
	}
}
