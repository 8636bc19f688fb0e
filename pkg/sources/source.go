// Package sources defines the interface of the directories companies are
// imported from and the row type they produce.
//
// A source yields its rows in a stable order, one at a time:
//
//	err := src.Each(ctx, func(row sources.Row) error {
//		if done {
//			return sources.ErrStop
//		}
//		return handle(row)
//	})
//
// Returning ErrStop from the callback ends the iteration without an error.
package sources

import (
	"context"
	"slices"

	"github.com/lucheestiy/bizcatalog/pkg/errors"
)

// ID represents the identifier of a data source. It doubles as the source
// tag written into every record imported from it.
type ID string

// String returns the string representation of a source ID.
func (id ID) String() string {
	return string(id)
}

// Known source IDs.
const (
	BelarusinfoID ID = "belarusinfo"
)

// IDs returns all available source IDs.
func IDs() []ID {
	return []ID{BelarusinfoID}
}

// IsValid returns true if the ID is one of the defined constants.
func (id ID) IsValid() bool {
	return slices.Contains(IDs(), id)
}

// ErrStop can be returned by an Each callback to end iteration early.
var ErrStop = errors.New("stop iteration")

// Rubric is a source rubric attached to a company.
type Rubric struct {
	Name string
	URL  string
}

// Row is one company as published by a source directory.
type Row struct {
	ID       int64
	Name     string
	Excerpt  string
	About    string
	Address  string
	Phones   []string
	Emails   []string
	Websites []string
	Rubrics  []Rubric
}

// Source represents a directory of companies.
type Source interface {
	// ID returns the identifier of this source
	ID() ID

	// Each calls fn for every finished company row, ordered by row ID.
	// Iteration stops at the first error fn returns; ErrStop is not
	// reported to the caller.
	Each(ctx context.Context, fn func(Row) error) error

	// Close releases the underlying resources
	Close() error
}
