package aws

import (
	"context"
	"fmt"
)

// MaxPageSize is the largest page the ECR describe APIs accept
const MaxPageSize int32 = 1000

// PageFunc fetches one page of items starting at token and returns the token of the next page
type PageFunc[T any] func(ctx context.Context, token *string) ([]T, *string, error)

// CollectPages calls fetch until a page comes back without a next token and
// returns every item seen. The first failing page aborts the whole collection.
func CollectPages[T any](ctx context.Context, fetch PageFunc[T]) ([]T, error) {
	var items []T
	var token *string

	for page := 1; ; page++ {
		batch, next, err := fetch(ctx, token)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch page %d: %w", page, err)
		}
		items = append(items, batch...)

		if next == nil || *next == "" {
			return items, nil
		}
		token = next
	}
}
