package differ

// Option is a functional option for configuring a Differ.
type Option func(*differ)

// WithIgnoredFields sets field paths to skip during comparison. A path is
// matched exactly as it would be reported, e.g. "data[].timestamp".
func WithIgnoredFields(paths ...string) Option {
	return func(d *differ) {
		for _, p := range paths {
			d.ignoreFields[p] = true
		}
	}
}
