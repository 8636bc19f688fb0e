package sources

import (
	"context"
	"sort"

	"github.com/lucheestiy/bizcatalog/pkg/errors"
)

// Memory is a Source backed by a slice of rows.
type Memory struct {
	id   ID
	rows []Row
}

// NewMemory returns a Source that yields rows sorted by ID.
func NewMemory(id ID, rows ...Row) *Memory {
	sorted := make([]Row, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	return &Memory{id: id, rows: sorted}
}

// ID implements Source.
func (m *Memory) ID() ID { return m.id }

// Each implements Source.
func (m *Memory) Each(ctx context.Context, fn func(Row) error) error {
	for _, row := range m.rows {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(row); err != nil {
			if errors.Is(err, ErrStop) {
				return nil
			}
			return err
		}
	}
	return nil
}

// Close implements Source.
func (m *Memory) Close() error { return nil }
