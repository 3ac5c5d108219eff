// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination provides shared types and helpers for API list endpoints.
//
// Two styles are supported:
//
//   - Window: "limit" and "offset" query parameters.
//   - Page: a 1-indexed "page" query parameter with a fixed page size.
//
// Both produce the same [Meta] block, with absolute next/previous links that
// keep every other query parameter of the original request.
package pagination

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/taibuivan/yamdb/pkg/convert"
)

const (
	// DefaultLimit is the window size if "limit" is missing or invalid.
	DefaultLimit = 10
	// MaxLimit is the upper bound for "limit".
	MaxLimit = 100
	// PageSize is the number of items per page for page-numbered lists.
	PageSize = 10
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1
)

// ErrInvalidPage is returned for a malformed or out-of-range page number.
var ErrInvalidPage = errors.New("pagination: invalid page")

// # Window pagination

// Window holds the parsed limit and offset from a request's query string.
type Window struct {
	Limit  int
	Offset int
}

// WindowFromRequest parses "limit" and "offset".
//
// Invalid or non-positive limits fall back to [DefaultLimit]; excessive ones
// are clamped to [MaxLimit]. Invalid offsets fall back to zero.
func WindowFromRequest(request *http.Request) Window {
	limit := positiveInt(request, "limit", DefaultLimit, false)
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Window{
		Limit:  limit,
		Offset: positiveInt(request, "offset", 0, true),
	}
}

// Meta builds the response metadata for a window over count items.
func (w Window) Meta(request *http.Request, count int) Meta {
	meta := Meta{Count: count}

	if w.Offset+w.Limit < count {
		meta.Next = link(request, map[string]string{
			"limit":  strconv.Itoa(w.Limit),
			"offset": strconv.Itoa(w.Offset + w.Limit),
		})
	}

	if w.Offset > 0 {
		values := map[string]string{"limit": strconv.Itoa(w.Limit)}
		if previous := w.Offset - w.Limit; previous > 0 {
			values["offset"] = strconv.Itoa(previous)
		} else {
			values["offset"] = ""
		}
		meta.Previous = link(request, values)
	}

	return meta
}

// # Page pagination

// Page is a 1-indexed page of [PageSize] items.
type Page struct {
	Number int
	Size   int
}

// PageFromRequest parses "page". A present but malformed value is [ErrInvalidPage].
func PageFromRequest(request *http.Request) (Page, error) {
	page := Page{Number: DefaultPage, Size: PageSize}

	raw := request.URL.Query().Get("page")
	if raw == "" {
		return page, nil
	}

	number, ok := convert.ToIntStrict(raw)
	if !ok || number < 1 {
		return page, ErrInvalidPage
	}
	page.Number = number
	return page, nil
}

// Offset returns the SQL OFFSET for the page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// Limit returns the SQL LIMIT for the page.
func (p Page) Limit() int {
	return p.Size
}

// Check reports [ErrInvalidPage] when the page lies beyond count items.
// The first page always exists, even for an empty list.
func (p Page) Check(count int) error {
	if p.Number > 1 && p.Offset() >= count {
		return ErrInvalidPage
	}
	return nil
}

// Meta builds the response metadata for the page over count items.
func (p Page) Meta(request *http.Request, count int) Meta {
	meta := Meta{Count: count}

	if p.Offset()+p.Size < count {
		meta.Next = link(request, map[string]string{"page": strconv.Itoa(p.Number + 1)})
	}

	switch {
	case p.Number == 2:
		meta.Previous = link(request, map[string]string{"page": ""})
	case p.Number > 2:
		meta.Previous = link(request, map[string]string{"page": strconv.Itoa(p.Number - 1)})
	}

	return meta
}

// # Metadata

// Meta is the pagination metadata included in API list responses.
type Meta struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
}

// link rebuilds the absolute request URL with overrides applied.
// An empty override value removes the parameter.
func link(request *http.Request, overrides map[string]string) *string {
	query := request.URL.Query()
	for key, value := range overrides {
		if value == "" {
			query.Del(key)
			continue
		}
		query.Set(key, value)
	}

	target := url.URL{
		Scheme:   scheme(request),
		Host:     request.Host,
		Path:     request.URL.Path,
		RawQuery: query.Encode(),
	}

	result := target.String()
	return &result
}

func scheme(request *http.Request) string {
	if proto := request.Header.Get("X-Forwarded-Proto"); proto != "" {
		return proto
	}
	if request.TLS != nil {
		return "https"
	}
	return "http"
}

// positiveInt parses a query parameter, returning fallback when it is absent,
// malformed, negative, or zero (unless allowZero).
func positiveInt(request *http.Request, key string, fallback int, allowZero bool) int {
	n, ok := convert.ToIntStrict(request.URL.Query().Get(key))
	if !ok || n < 0 || (n == 0 && !allowZero) {
		return fallback
	}

	return n
}
