package catalogs

import (
	"github.com/rs/zerolog"

	"github.com/lucheestiy/bizcatalog/pkg/logging"
)

// loadOptions configures Load and Read.
type loadOptions struct {
	dropSource string
	sanitize   bool
	logger     *zerolog.Logger
	path       string
}

// Option configures how a catalog is loaded.
type Option func(*loadOptions)

func loadDefaults() *loadOptions {
	return &loadOptions{sanitize: true, logger: logging.Default()}
}

func (o *loadOptions) apply(opts ...Option) *loadOptions {
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithDroppedSource discards every record whose source tag equals source.
func WithDroppedSource(source string) Option {
	return func(o *loadOptions) {
		o.dropSource = source
	}
}

// WithoutSanitize keeps records exactly as read. Used by read-only
// inspection commands that must report what is on disk.
func WithoutSanitize() Option {
	return func(o *loadOptions) {
		o.sanitize = false
	}
}

// WithLogger sets the logger skipped lines are reported to at debug level.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *loadOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// withPath names the file being read in parse errors.
func withPath(path string) Option {
	return func(o *loadOptions) {
		o.path = path
	}
}
