package scheduling

import (
	"context"
	"testing"
	"time"
)

func TestBusinessLocks(t *testing.T) {
	ctx := context.Background()
	locks := newBusinessLocks()

	release, err := locks.acquire(ctx, "biz-1", time.Second)
	if err != nil {
		t.Fatalf("first acquire failed: %v", err)
	}

	// A second caller on the same business times out.
	if _, err := locks.acquire(ctx, "biz-1", 20*time.Millisecond); CodeOf(err) != CodeBusy {
		t.Fatalf("contended acquire: code = %q, want busy", CodeOf(err))
	}

	// A different business is unaffected.
	other, err := locks.acquire(ctx, "biz-2", 20*time.Millisecond)
	if err != nil {
		t.Fatalf("other business blocked: %v", err)
	}
	other()

	release()
	release2, err := locks.acquire(ctx, "biz-1", 20*time.Millisecond)
	if err != nil {
		t.Fatalf("acquire after release failed: %v", err)
	}
	release2()
}

func TestBusinessLocksEvictIdleEntries(t *testing.T) {
	ctx := context.Background()
	locks := newBusinessLocks()

	entryCount := func() int {
		locks.mu.Lock()
		defer locks.mu.Unlock()
		return len(locks.entries)
	}

	release, err := locks.acquire(ctx, "biz-1", time.Second)
	if err != nil {
		t.Fatalf("acquire failed: %v", err)
	}
	if n := entryCount(); n != 1 {
		t.Fatalf("entries while held = %d, want 1", n)
	}

	// A timed-out waiter must not leave an entry behind.
	if _, err := locks.acquire(ctx, "biz-1", time.Millisecond); CodeOf(err) != CodeBusy {
		t.Fatalf("contended acquire: code = %q, want busy", CodeOf(err))
	}
	if n := entryCount(); n != 1 {
		t.Fatalf("entries after timed-out waiter = %d, want 1", n)
	}

	release()
	if n := entryCount(); n != 0 {
		t.Fatalf("entries after release = %d, want 0", n)
	}
}

func TestBusinessLocksContextCancelled(t *testing.T) {
	locks := newBusinessLocks()

	release, err := locks.acquire(context.Background(), "biz-1", time.Second)
	if err != nil {
		t.Fatalf("acquire failed: %v", err)
	}
	defer release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := locks.acquire(ctx, "biz-1", time.Minute); CodeOf(err) != CodeBusy {
		t.Fatalf("cancelled acquire: code = %q, want busy", CodeOf(err))
	}
}
