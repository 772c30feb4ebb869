package aws

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pagedSource serves items in pages of the given sizes, linked by string tokens
func pagedSource(sizes []int) (PageFunc[int], *[]*string) {
	var seen []*string
	starts := make([]int, len(sizes))
	total := 0
	for i, n := range sizes {
		starts[i] = total
		total += n
	}

	return func(_ context.Context, token *string) ([]int, *string, error) {
		seen = append(seen, token)
		page := 0
		if token != nil {
			if _, err := fmt.Sscanf(*token, "page-%d", &page); err != nil {
				return nil, nil, err
			}
		}

		items := make([]int, sizes[page])
		for i := range items {
			items[i] = starts[page] + i
		}

		if page == len(sizes)-1 {
			return items, nil, nil
		}
		next := fmt.Sprintf("page-%d", page+1)
		return items, &next, nil
	}, &seen
}

func TestCollectPages(t *testing.T) {
	tests := []struct {
		name  string
		sizes []int
	}{
		{"single page", []int{5}},
		{"empty single page", []int{0}},
		{"even pages", []int{3, 3, 3}},
		{"uneven pages", []int{1, 7, 0, 2}},
		{"many small pages", []int{1, 1, 1, 1, 1, 1, 1, 1, 1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetch, seen := pagedSource(tt.sizes)

			items, err := CollectPages(context.Background(), fetch)
			require.NoError(t, err)

			total := 0
			for _, n := range tt.sizes {
				total += n
			}
			require.Len(t, items, total)
			for i, v := range items {
				assert.Equal(t, i, v)
			}

			assert.Len(t, *seen, len(tt.sizes))
			assert.Nil(t, (*seen)[0], "first request must not carry a token")
		})
	}
}

func TestCollectPagesRechunkingIsIdempotent(t *testing.T) {
	a, _ := pagedSource([]int{10})
	b, _ := pagedSource([]int{2, 5, 3})

	fromA, err := CollectPages(context.Background(), a)
	require.NoError(t, err)
	fromB, err := CollectPages(context.Background(), b)
	require.NoError(t, err)

	assert.ElementsMatch(t, fromA, fromB)
}

func TestCollectPagesEmptyTokenStops(t *testing.T) {
	calls := 0
	empty := ""
	items, err := CollectPages(context.Background(), func(_ context.Context, _ *string) ([]string, *string, error) {
		calls++
		return []string{"a"}, &empty, nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, items)
	assert.Equal(t, 1, calls)
}

func TestCollectPagesFailureReturnsNoItems(t *testing.T) {
	boom := errors.New("throttled")
	calls := 0
	items, err := CollectPages(context.Background(), func(_ context.Context, _ *string) ([]int, *string, error) {
		calls++
		if calls == 3 {
			return nil, nil, boom
		}
		next := "more"
		return []int{calls}, &next, nil
	})

	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "page 3")
	assert.Nil(t, items)
}
