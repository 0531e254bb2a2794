package volumetric

// Option tunes a single DSM build or render pass.
type Option func(*passOptions)

type passOptions struct {
	progress Progress
}

// WithProgress routes pass progress to p instead of the package Reporter.
func WithProgress(p Progress) Option {
	return func(o *passOptions) { o.progress = p }
}

func buildOptions(opts []Option) passOptions {
	o := passOptions{progress: Reporter}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
