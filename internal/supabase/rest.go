package supabase

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"classroom/internal/apperr"
)

// Query builds a single table request. Filters are ANDed.
type Query struct {
	client  *Client
	table   string
	filters url.Values
	orders  []string
}

func (c *Client) From(table string) *Query {
	return &Query{
		client:  c,
		table:   table,
		filters: url.Values{},
	}
}

func (q *Query) Eq(column, value string) *Query {
	q.filters.Add(column, "eq."+value)
	return q
}

func (q *Query) Order(column string, desc bool) *Query {
	dir := "asc"
	if desc {
		dir = "desc"
	}
	q.orders = append(q.orders, column+"."+dir)
	return q
}

func (q *Query) values() url.Values {
	v := url.Values{}
	for key, vals := range q.filters {
		v[key] = append([]string(nil), vals...)
	}
	if len(q.orders) > 0 {
		v.Set("order", strings.Join(q.orders, ","))
	}
	v.Set("select", "*")
	return v
}

func (q *Query) path() string { return "rest/v1/" + q.table }

var representation = http.Header{"Prefer": {"return=representation"}}

// Select decodes the matching rows into dest, which should be a pointer to a
// slice.
func (q *Query) Select(ctx context.Context, dest any) error {
	return q.client.do(ctx, http.MethodGet, q.path(), q.values(), nil, nil, dest)
}

// Insert creates row and decodes the stored representation into dest.
func (q *Query) Insert(ctx context.Context, row any, dest any) error {
	return q.client.do(ctx, http.MethodPost, q.path(), q.values(), row, representation, dest)
}

// Update applies patch to the filtered rows and decodes them into dest.
func (q *Query) Update(ctx context.Context, patch any, dest any) error {
	if len(q.filters) == 0 {
		return apperr.Upstream(errors.New("refusing unfiltered update on " + q.table))
	}
	return q.client.do(ctx, http.MethodPatch, q.path(), q.values(), patch, representation, dest)
}

// Delete removes the filtered rows and decodes them into dest.
func (q *Query) Delete(ctx context.Context, dest any) error {
	if len(q.filters) == 0 {
		return apperr.Upstream(errors.New("refusing unfiltered delete on " + q.table))
	}
	return q.client.do(ctx, http.MethodDelete, q.path(), q.values(), nil, representation, dest)
}
