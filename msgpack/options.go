package msgpack

// DefaultMaxDepth is the nesting limit used by Decode unless WithMaxDepth
// says otherwise.
const DefaultMaxDepth = 128

type config struct {
	maxDepth   int
	strictKeys bool
}

// Option configures Decode.
type Option func(*config)

// WithMaxDepth limits how deeply arrays and maps may be nested. Exceeding
// the limit fails with TooDeep.
func WithMaxDepth(n int) Option {
	return func(c *config) {
		c.maxDepth = n
	}
}

// WithStrictMapKeys controls how map keys are handled. In strict mode, the
// default, only str keys are accepted. Otherwise scalar keys are converted to
// their textual form and bin keys to hex. Nil, array and map keys are always
// rejected.
func WithStrictMapKeys(strict bool) Option {
	return func(c *config) {
		c.strictKeys = strict
	}
}

func newConfig(opts []Option) config {
	c := config{maxDepth: DefaultMaxDepth, strictKeys: true}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
