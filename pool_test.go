package mdpress

import (
	"sync"
	"testing"
)

func TestConverterPoolAcquireRelease(t *testing.T) {
	t.Parallel()

	pool := NewConverterPool(2, WithBackend(BackendNative))
	defer func() { _ = pool.Close() }()

	if pool.Size() != 2 {
		t.Errorf("Size() = %d, want 2", pool.Size())
	}

	a, err := pool.Acquire()
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	b, err := pool.Acquire()
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if a == b {
		t.Error("pool returned the same converter twice while both held")
	}

	pool.Release(a)
	c, err := pool.Acquire()
	if err != nil {
		t.Fatalf("Acquire() after release error = %v", err)
	}
	if c != a {
		t.Error("released converter not reused")
	}

	pool.Release(b)
	pool.Release(c)
}

func TestConverterPoolConcurrent(t *testing.T) {
	t.Parallel()

	pool := NewConverterPool(3, WithBackend(BackendNative))
	defer func() { _ = pool.Close() }()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c, err := pool.Acquire()
			if err != nil {
				t.Errorf("Acquire() error = %v", err)
				return
			}
			pool.Release(c)
		}()
	}
	wg.Wait()
}

func TestConverterPoolCloseIdempotent(t *testing.T) {
	t.Parallel()

	pool := NewConverterPool(1, WithBackend(BackendNative))
	if err := pool.Close(); err != nil {
		t.Fatalf("first Close() error = %v", err)
	}
	if err := pool.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestResolvePoolSize(t *testing.T) {
	t.Parallel()

	if got := ResolvePoolSize(5); got != 5 {
		t.Errorf("explicit workers: got %d, want 5", got)
	}

	got := ResolvePoolSize(0)
	if got < MinPoolSize || got > MaxPoolSize {
		t.Errorf("auto size %d outside [%d, %d]", got, MinPoolSize, MaxPoolSize)
	}
}
