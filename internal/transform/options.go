package transform

type options struct {
	workers int
}

// Option configures Rotate and Scale.
type Option func(*options)

// WithWorkers sets how many goroutines fill output rows. Values below 1 use
// runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

func collect(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
