package lock

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestLocalLockerMutualExclusion(t *testing.T) {
	locker := NewLocalLocker()
	ctx := context.Background()

	release, err := locker.Acquire(ctx, "close-day", time.Second)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}

	if _, err := locker.Acquire(ctx, "close-day", time.Second); !errors.Is(err, ErrNotAcquired) {
		t.Fatalf("second Acquire err = %v, want ErrNotAcquired", err)
	}

	// A different key is independent.
	other, err := locker.Acquire(ctx, "other", time.Second)
	if err != nil {
		t.Fatalf("Acquire other key: %v", err)
	}
	other()

	release()
	release2, err := locker.Acquire(ctx, "close-day", time.Second)
	if err != nil {
		t.Fatalf("Acquire after release: %v", err)
	}
	release2()
}
