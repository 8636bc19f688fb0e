package importer

import (
	"time"

	"github.com/agentstation/utc"

	"github.com/lucheestiy/bizcatalog/pkg/errors"
)

// options configures an import run.
type options struct {
	existingPath string
	outputPath   string
	maxCompanies int
	inPlace      bool
	backup       bool
	dryRun       bool
	now          func() utc.Time
}

func defaultOptions() *options {
	return &options{
		now: utc.Now,
	}
}

// Option is a function that configures an import run.
type Option func(*options) error

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, o.validate()
}

func (o *options) validate() error {
	if o.existingPath == "" {
		return errors.NewValidationError("existing_jsonl", o.existingPath, "is required")
	}
	if !o.dryRun && !o.inPlace && o.outputPath == "" {
		return errors.NewValidationError("output_jsonl", o.outputPath, "is required unless writing in place")
	}
	return nil
}

// destination is the file a run writes.
func (o *options) destination() string {
	if o.inPlace {
		return o.existingPath
	}
	return o.outputPath
}

// WithExistingCatalog sets the catalog the run starts from.
func WithExistingCatalog(path string) Option {
	return func(o *options) error {
		o.existingPath = path
		return nil
	}
}

// WithOutput sets where the merged catalog is written when not in place.
func WithOutput(path string) Option {
	return func(o *options) error {
		o.outputPath = path
		return nil
	}
}

// WithMaxCompanies caps the number of newly imported records. Zero means
// no cap.
func WithMaxCompanies(n int) Option {
	return func(o *options) error {
		if n < 0 {
			return errors.NewValidationError("max_companies", n, "cannot be negative")
		}
		o.maxCompanies = n
		return nil
	}
}

// WithInPlace overwrites the existing catalog instead of writing the output path.
func WithInPlace(enabled bool) Option {
	return func(o *options) error {
		o.inPlace = enabled
		return nil
	}
}

// WithBackup copies the existing catalog aside before an in-place overwrite.
func WithBackup(enabled bool) Option {
	return func(o *options) error {
		o.backup = enabled
		return nil
	}
}

// WithDryRun computes the report without writing anything.
func WithDryRun(enabled bool) Option {
	return func(o *options) error {
		o.dryRun = enabled
		return nil
	}
}

// WithClock replaces the clock used for report and backup timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) error {
		if now == nil {
			return errors.NewValidationError("clock", nil, "cannot be nil")
		}
		o.now = func() utc.Time { return utc.New(now()) }
		return nil
	}
}
