package twitch

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// scriptedPages returns a fetcher that serves pages in order and records the
// cursor of every call.
func scriptedPages[T any](pages ...*Page[T]) (PageFetcher[T], *[]string) {
	var cursors []string
	fetch := func(_ context.Context, cursor string) (*Page[T], error) {
		cursors = append(cursors, cursor)
		if len(cursors) > len(pages) {
			return nil, errors.New("fetched past the last page")
		}
		return pages[len(cursors)-1], nil
	}
	return fetch, &cursors
}

func page[T any](cursor string, data ...T) *Page[T] {
	p := &Page[T]{Data: data}
	if cursor != "" {
		p.Pagination = &Pagination{Cursor: cursor}
	}
	return p
}

func TestFetchAllFollowsCursorThroughEmptyPages(t *testing.T) {
	t.Parallel()

	fetch, cursors := scriptedPages(
		page("x", "a", "b"),
		page("x2", "c"),
		page[string]("x2"),
		page("", "d"),
	)

	items, err := FetchAll(t.Context(), fetch, 0)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c", "d"}, items)
	require.Equal(t, []string{"", "x", "x2", "x2"}, *cursors)
}

func TestFetchAllStopsOnEmptyPagination(t *testing.T) {
	t.Parallel()

	fetch, cursors := scriptedPages(
		page("x", 1),
		&Page[int]{Data: []int{2}, Pagination: &Pagination{}},
	)

	items, err := FetchAll(t.Context(), fetch, 0)
	require.NoError(t, err)
	require.Equal(t, []int{1, 2}, items)
	require.Len(t, *cursors, 2)
}

func TestFetchAllLimitOvershoots(t *testing.T) {
	t.Parallel()

	t.Run("stops after the page that exceeds the limit", func(t *testing.T) {
		fetch, cursors := scriptedPages(
			page("p2", 1, 2),
			page("p3", 3, 4),
			page("p4", 5, 6),
		)

		items, err := FetchAll(t.Context(), fetch, 3)
		require.NoError(t, err)
		require.Equal(t, []int{1, 2, 3, 4}, items)
		require.Len(t, *cursors, 2)
	})

	t.Run("reaching the limit exactly keeps going", func(t *testing.T) {
		fetch, cursors := scriptedPages(
			page("p2", 1, 2),
			page("p3", 3, 4),
			page("", 5, 6),
		)

		items, err := FetchAll(t.Context(), fetch, 4)
		require.NoError(t, err)
		require.Equal(t, []int{1, 2, 3, 4, 5, 6}, items)
		require.Len(t, *cursors, 3)
	})
}

func TestFetchAllPropagatesErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	calls := 0
	fetch := func(_ context.Context, cursor string) (*Page[string], error) {
		calls++
		if calls == 3 {
			return nil, boom
		}
		return page("next", "item"), nil
	}

	items, err := FetchAll(t.Context(), fetch, 0)
	require.ErrorIs(t, err, boom)
	require.Same(t, boom, err)
	require.Nil(t, items)
	require.Equal(t, 3, calls)
}

func TestPageJSONKeepsExtraFields(t *testing.T) {
	t.Parallel()

	const body = `{
		"data": [{"id": "1"}, {"id": "2"}],
		"pagination": {"cursor": "eyJiIjpudWxsfQ"},
		"total": 42,
		"template": "https://example.com/{id}"
	}`

	type item struct {
		ID string `json:"id"`
	}

	var p Page[item]
	require.NoError(t, json.Unmarshal([]byte(body), &p))
	require.Equal(t, []item{{ID: "1"}, {ID: "2"}}, p.Data)
	require.Equal(t, "eyJiIjpudWxsfQ", p.Cursor())
	require.Len(t, p.Extra, 2)
	require.JSONEq(t, `42`, string(p.Extra["total"]))

	out, err := json.Marshal(p)
	require.NoError(t, err)
	require.JSONEq(t, body, string(out))
}

func TestPageJSONWithoutPagination(t *testing.T) {
	t.Parallel()

	var p Page[string]
	require.NoError(t, json.Unmarshal([]byte(`{"data": []}`), &p))
	require.Empty(t, p.Data)
	require.Empty(t, p.Cursor())
	require.Nil(t, p.Extra)

	require.Error(t, json.Unmarshal([]byte(`{"data": {}}`), &p))
}
