package gatsby

type options struct {
	logger           *Logger
	metricsCollector MetricsCollector
}

// Option configures constructor behavior.
type Option func(*options)

// WithLogger configures structured logging. The default logger discards
// all output.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector configures operational metrics collection. The
// default collector is a no-op.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}
