package http

import (
	"context"
	"sync"
)

// Pool recycles Request instances across requests. It is safe for concurrent use; the requests it
// hands out are not. Every request returned by Get has been fully re-initialized.
type Pool struct {
	pool    sync.Pool
	logger  Logger
	metrics Metrics
}

// NewPool creates a pool. logger and metrics may be nil.
func NewPool(logger Logger, metrics Metrics) *Pool {
	return &Pool{logger: logger, metrics: metrics}
}

// Get returns a request initialized with the given values, reusing a released instance when one
// is available.
func (p *Pool) Get(ctx context.Context, query, form, attributes, cookies, files, server map[string]any,
	content []byte) *Request {
	source := "reused"

	r, ok := p.pool.Get().(*Request)
	if !ok {
		source = "new"
		r = &Request{defaultLocale: defaultLocale}

		if p.logger != nil {
			p.logger.Debugf("request pool empty, allocating a new request")
		}
	}

	r.Initialize(query, form, attributes, cookies, files, server, content)

	if p.metrics != nil {
		p.metrics.IncrementCounter(ctx, MetricPoolGets, "source", source)
	}

	return r
}

// Put releases r back to the pool. The caller must not use r afterwards. Locale and session are
// detached so nothing of the previous request leaks into the next one.
func (p *Pool) Put(ctx context.Context, r *Request) {
	if r == nil {
		return
	}

	r.session = nil
	r.locale = ""
	r.defaultLocale = defaultLocale

	p.pool.Put(r)

	if p.metrics != nil {
		p.metrics.IncrementCounter(ctx, MetricPoolPuts)
	}
}
