package mdenrich

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// Compile-time interface check.
var _ interface {
	Acquire(context.Context) (*Converter, error)
	Release(*Converter)
	Size() int
	Close() error
} = (*ConverterPool)(nil)

func TestResolvePoolSize(t *testing.T) {
	t.Parallel()

	gomaxprocs := runtime.GOMAXPROCS(0)

	tests := []struct {
		name    string
		workers int
		want    int
	}{
		{name: "explicit takes priority", workers: 4, want: 4},
		{name: "explicit=1 for sequential", workers: 1, want: 1},
		{name: "explicit capped", workers: MaxPoolSize + 10, want: MaxPoolSize},
		{name: "zero uses GOMAXPROCS", workers: 0, want: min(max(gomaxprocs, MinPoolSize), MaxPoolSize)},
		{name: "negative uses GOMAXPROCS", workers: -3, want: min(max(gomaxprocs, MinPoolSize), MaxPoolSize)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ResolvePoolSize(tt.workers); got != tt.want {
				t.Errorf("ResolvePoolSize(%d) = %d, want %d", tt.workers, got, tt.want)
			}
		})
	}
}

func TestNewConverterPool_Size(t *testing.T) {
	t.Parallel()

	if got := NewConverterPool(0).Size(); got != MinPoolSize {
		t.Errorf("Size() = %d, want %d", got, MinPoolSize)
	}
	if got := NewConverterPool(3).Size(); got != 3 {
		t.Errorf("Size() = %d, want 3", got)
	}
}

func TestConverterPool_AcquireRelease(t *testing.T) {
	t.Parallel()

	pool := NewConverterPool(1)
	defer pool.Close()

	first, err := pool.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	pool.Release(first)

	second, err := pool.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if first != second {
		t.Error("Acquire() created a new converter instead of reusing the released one")
	}
	pool.Release(second)
}

func TestConverterPool_BlocksAtCapacity(t *testing.T) {
	t.Parallel()

	pool := NewConverterPool(1)
	defer pool.Close()

	conv, err := pool.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := pool.Acquire(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Acquire() error = %v, want DeadlineExceeded", err)
	}

	pool.Release(conv)
}

func TestConverterPool_InvalidOptions(t *testing.T) {
	t.Parallel()

	pool := NewConverterPool(2, WithTimeout(0))
	defer pool.Close()

	for range 3 {
		if _, err := pool.Acquire(context.Background()); !errors.Is(err, ErrInvalidOption) {
			t.Fatalf("Acquire() error = %v, want ErrInvalidOption", err)
		}
	}
}

func TestConverterPool_Close(t *testing.T) {
	t.Parallel()

	pool := NewConverterPool(1)
	conv, err := pool.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}

	done := make(chan error, 1)
	go func() {
		_, err := pool.Acquire(context.Background())
		done <- err
	}()

	time.Sleep(20 * time.Millisecond)
	if err := pool.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := pool.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}

	select {
	case err := <-done:
		if !errors.Is(err, ErrPoolClosed) {
			t.Errorf("blocked Acquire() error = %v, want ErrPoolClosed", err)
		}
	case <-time.After(time.Second):
		t.Fatal("blocked Acquire() did not return after Close")
	}

	pool.Release(conv)
	if _, err := pool.Acquire(context.Background()); !errors.Is(err, ErrPoolClosed) {
		t.Errorf("Acquire() after Close error = %v, want ErrPoolClosed", err)
	}
}

func TestConverterPool_Concurrent(t *testing.T) {
	t.Parallel()

	pool := NewConverterPool(3)
	defer pool.Close()

	var (
		wg     sync.WaitGroup
		failed atomic.Int32
	)
	for i := range 12 {
		wg.Add(1)
		go func() {
			defer wg.Done()

			conv, err := pool.Acquire(context.Background())
			if err != nil {
				failed.Add(1)
				return
			}
			defer pool.Release(conv)

			md := "# Doc\n\nParagraph " + string(rune('a'+i)) + "\n"
			if _, err := conv.Render(context.Background(), Input{Markdown: md}); err != nil {
				failed.Add(1)
			}
		}()
	}
	wg.Wait()

	if n := failed.Load(); n != 0 {
		t.Errorf("%d concurrent renders failed", n)
	}
}
