package ustr

// Option is a functional option for configuring a new String.
type Option func(*options)

type options struct {
	capacity int
}

// WithCapacity preallocates room for n bytes.
func WithCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.capacity = n
		}
	}
}
