package mdpress

import (
	"errors"
	"runtime"
	"sync"
)

const (
	// MinPoolSize is the floor for auto-sized pools.
	MinPoolSize = 1

	// MaxPoolSize caps browser instances to limit memory (~200MB each).
	MaxPoolSize = 8

	// Half the CPUs, leaving headroom for Chrome child processes.
	cpuDivisor = 2
)

// ConverterPool hands out Converter instances for parallel batch work.
// Every converter owns its own browser, so pool capacity directly
// bounds the number of concurrent Chrome instances. Converters come
// into existence lazily on first Acquire rather than at pool creation.
type ConverterPool struct {
	size       int
	opts       []Option
	converters []*Converter
	sem        chan *Converter
	mu         sync.Mutex
	created    int
	closed     bool
}

// NewConverterPool creates a pool with capacity n, each converter
// configured with opts. Values of n below 1 are raised to 1.
func NewConverterPool(n int, opts ...Option) *ConverterPool {
	if n < 1 {
		n = 1
	}
	return &ConverterPool{
		size:       n,
		opts:       opts,
		converters: make([]*Converter, 0, n),
		sem:        make(chan *Converter, n),
	}
}

// Acquire returns an idle converter, builds a new one while capacity
// remains, or blocks until a Release frees one.
func (p *ConverterPool) Acquire() (*Converter, error) {
	select {
	case c := <-p.sem:
		return c, nil
	default:
	}

	p.mu.Lock()
	if p.created == p.size {
		p.mu.Unlock()
		return <-p.sem, nil
	}
	p.created++
	p.mu.Unlock()

	// Construction happens outside the lock; it may launch a browser.
	c, err := NewConverter(p.opts...)
	if err != nil {
		p.mu.Lock()
		p.created--
		p.mu.Unlock()
		return nil, err
	}

	p.mu.Lock()
	p.converters = append(p.converters, c)
	p.mu.Unlock()
	return c, nil
}

// Release returns c to the pool. Releasing into a closed pool is a
// no-op; Close owns teardown of every converter it ever created.
func (p *ConverterPool) Release(c *Converter) {
	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()
	if closed {
		return
	}
	p.sem <- c
}

// Close shuts down every converter the pool created. Errors from
// individual converters are joined rather than short-circuiting so all
// browsers get a teardown attempt.
func (p *ConverterPool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.sem)
	converters := p.converters
	p.mu.Unlock()

	var errs []error
	for _, c := range converters {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Size reports the pool capacity.
func (p *ConverterPool) Size() int {
	return p.size
}

// ResolvePoolSize picks a pool size. An explicit positive workers
// value wins; otherwise the size derives from GOMAXPROCS, which
// automaxprocs has already adjusted for container CPU quotas.
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}
	n := runtime.GOMAXPROCS(0) / cpuDivisor
	return min(max(n, MinPoolSize), MaxPoolSize)
}
