package z0matrix

// Option configures a Compositor during creation.
//
// Example:
//
//	c, err := z0matrix.NewCompositor(cfg, z0matrix.WithProgress(bar))
type Option func(*compositorOptions)

// compositorOptions holds optional collaborators of a Compositor.
type compositorOptions struct {
	progress Progress
}

// defaultOptions returns the default compositor options.
func defaultOptions() compositorOptions {
	return compositorOptions{
		progress: nopProgress{},
	}
}

// WithProgress sets the progress observer. A nil Progress disables reporting.
func WithProgress(p Progress) Option {
	return func(o *compositorOptions) {
		if p == nil {
			p = nopProgress{}
		}
		o.progress = p
	}
}
