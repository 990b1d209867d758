package main

import (
	"context"

	mdpress "github.com/mdpress/mdpress"
)

// CLIConverter is the interface for the conversion service.
type CLIConverter interface {
	Convert(ctx context.Context, input mdpress.Input) (*mdpress.Result, error)
}

// Compile-time interface implementation check.
var _ CLIConverter = (*mdpress.Converter)(nil)

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire() (CLIConverter, error)
	Release(CLIConverter)
	Size() int
	Close() error
}

// converterPool adapts mdpress.ConverterPool to the CLI Pool interface.
type converterPool struct {
	pool *mdpress.ConverterPool
}

// newConverterPool creates a pool with capacity for n converters.
// Converters are created lazily when acquired, not at pool creation.
func newConverterPool(n int, opts ...mdpress.Option) Pool {
	return &converterPool{pool: mdpress.NewConverterPool(n, opts...)}
}

func (p *converterPool) Acquire() (CLIConverter, error) {
	return p.pool.Acquire()
}

func (p *converterPool) Release(c CLIConverter) {
	if conv, ok := c.(*mdpress.Converter); ok {
		p.pool.Release(conv)
	}
}

func (p *converterPool) Size() int {
	return p.pool.Size()
}

func (p *converterPool) Close() error {
	return p.pool.Close()
}
