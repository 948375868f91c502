package matchers

import (
	"context"
	"fmt"
)

// Record is a stored item. Tags makes it non-comparable with ==.
type Record struct {
	ID   int
	Name string
	Tags []string
}

// Repository is the dependency the tests match against.
type Repository interface {
	Save(ctx context.Context, rec Record) error
	Find(query string, limit int) ([]Record, error)
}

// Rename finds up to limit records matching query and saves each with a new name.
// It returns how many were saved.
func Rename(ctx context.Context, repo Repository, query, name string, limit int) (int, error) {
	found, err := repo.Find(query, limit)
	if err != nil {
		return 0, fmt.Errorf("find %q: %w", query, err)
	}

	for i, rec := range found {
		rec.Name = name
		if err := repo.Save(ctx, rec); err != nil {
			return i, fmt.Errorf("save %d: %w", rec.ID, err)
		}
	}

	return len(found), nil
}
