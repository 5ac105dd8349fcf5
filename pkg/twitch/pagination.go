package twitch

import (
	"context"
	"encoding/json"
	"fmt"
)

// Pagination is the pagination object of a Helix response. Cursor is opaque
// and is passed back verbatim as the "after" parameter of the next request.
type Pagination struct {
	Cursor string `json:"cursor,omitempty"`
}

// ForwardPagination is embedded in request types that page forwards.
type ForwardPagination struct {
	After string `url:"after,omitempty"`
}

// BackwardPagination is embedded in request types that page backwards.
type BackwardPagination struct {
	Before string `url:"before,omitempty"`
}

// Page is one page of a Helix list response. Top-level fields other than
// data and pagination are kept in Extra and written back by MarshalJSON.
type Page[T any] struct {
	Data       []T
	Pagination *Pagination
	Extra      map[string]json.RawMessage
}

// Cursor returns the cursor of the next page, or "" on the last page.
func (p *Page[T]) Cursor() string {
	if p.Pagination == nil {
		return ""
	}
	return p.Pagination.Cursor
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Page[T]) UnmarshalJSON(b []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}

	var page Page[T]
	if raw, ok := fields["data"]; ok {
		if err := json.Unmarshal(raw, &page.Data); err != nil {
			return fmt.Errorf("data: %w", err)
		}
		delete(fields, "data")
	}
	if raw, ok := fields["pagination"]; ok {
		if err := json.Unmarshal(raw, &page.Pagination); err != nil {
			return fmt.Errorf("pagination: %w", err)
		}
		delete(fields, "pagination")
	}
	if len(fields) > 0 {
		page.Extra = fields
	}

	*p = page
	return nil
}

// MarshalJSON implements json.Marshaler.
func (p Page[T]) MarshalJSON() ([]byte, error) {
	fields := make(map[string]any, len(p.Extra)+2)
	for k, v := range p.Extra {
		fields[k] = v
	}

	data := p.Data
	if data == nil {
		data = []T{}
	}
	fields["data"] = data
	if p.Pagination != nil {
		fields["pagination"] = p.Pagination
	}

	return json.Marshal(fields)
}

// PageFetcher fetches the page that starts at cursor. The first page is
// requested with an empty cursor.
type PageFetcher[T any] func(ctx context.Context, cursor string) (*Page[T], error)

// FetchAll follows cursors from the first page until the server stops
// returning one, concatenating every page's data in order. Pages with no data
// but a cursor are followed too.
//
// If limit > 0, fetching also stops once more than limit items have been
// collected. The check runs after each page is appended, so the result can
// exceed limit by up to one page; it is not truncated.
//
// The first error from fetch is returned unchanged and any items collected so
// far are dropped.
func FetchAll[T any](ctx context.Context, fetch PageFetcher[T], limit int) ([]T, error) {
	var (
		items  []T
		cursor string
	)

	for {
		page, err := fetch(ctx, cursor)
		if err != nil {
			return nil, err
		}
		if page == nil {
			return items, nil
		}

		items = append(items, page.Data...)
		cursor = page.Cursor()

		if cursor == "" || (limit > 0 && len(items) > limit) {
			return items, nil
		}
	}
}
