package main

import (
	"context"

	"github.com/alnah/go-mdenrich"
)

// Renderer is the part of mdenrich.Converter the CLI uses.
type Renderer interface {
	Render(ctx context.Context, input mdenrich.Input) (*mdenrich.Result, error)
	Enrich(ctx context.Context, input mdenrich.Input) (*mdenrich.Result, error)
}

// Compile-time interface implementation check.
var _ Renderer = (*mdenrich.Converter)(nil)

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire(ctx context.Context) (Renderer, error)
	Release(Renderer)
	Size() int
}

// converterPool adapts mdenrich.ConverterPool to Pool.
type converterPool struct {
	pool *mdenrich.ConverterPool
}

// Compile-time check that converterPool implements Pool.
var _ Pool = (*converterPool)(nil)

// newConverterPool creates a pool of workers converters sharing opts.
func newConverterPool(workers int, opts ...mdenrich.Option) *converterPool {
	return &converterPool{pool: mdenrich.NewConverterPool(mdenrich.ResolvePoolSize(workers), opts...)}
}

func (p *converterPool) Acquire(ctx context.Context) (Renderer, error) {
	conv, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return conv, nil
}

func (p *converterPool) Release(r Renderer) {
	if conv, ok := r.(*mdenrich.Converter); ok {
		p.pool.Release(conv)
	}
}

func (p *converterPool) Size() int { return p.pool.Size() }

func (p *converterPool) Close() error { return p.pool.Close() }
