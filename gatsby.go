package gatsby

import (
	"context"
	"time"

	"github.com/bahadirdogan/gatsby/query"
	"github.com/bahadirdogan/gatsby/store"
)

// Gatsby is the public entry point of the query engine. It composes the
// executors over an explicitly provided store handle and carries the
// ambient concerns (logging, metrics) of the embedding application.
type Gatsby struct {
	engine  *query.Engine
	logger  *Logger
	metrics MetricsCollector
}

// New creates a query engine over the given store.
func New(s store.Store, optFns ...Option) *Gatsby {
	opts := options{
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &Gatsby{
		engine:  query.New(s),
		logger:  opts.logger,
		metrics: opts.metricsCollector,
	}
}

// RunQuery executes one query to completion against the current snapshot
// of the store.
//
// The returned Result distinguishes three states: matches found, an empty
// result (first-only mode or no filter given), and absent (a real filter
// matched nothing in all mode). The context is used for logging only; the
// executors run synchronously and do not suspend.
func (g *Gatsby) RunQuery(ctx context.Context, spec query.QuerySpec) (query.Result, error) {
	start := time.Now()

	res, err := g.engine.Run(spec)
	err = translateError(err)

	g.metrics.RecordQuery(len(res.Nodes), time.Since(start), err)
	g.logger.LogQuery(ctx, spec.Types, len(res.Nodes), res.Absent, err)

	if err != nil {
		return query.Result{}, err
	}
	return res, nil
}
