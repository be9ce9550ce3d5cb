// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination parses page requests for snippet listings and builds
// the metadata returned next to each page.
//
// Listings are addressed with 1-indexed "page" and "limit" query parameters.
// Stores receive a [Params] and derive their offset from it; handlers attach
// a [Meta] to the rendered page.
package pagination

import (
	"net/http"
	"strconv"
)

// Listing bounds.
const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params selects one page of a listing.
type Params struct {
	Page  int
	Limit int
}

// Offset is the number of items before the first one on the page.
func (params Params) Offset() int {
	return max(params.Page-1, 0) * params.Limit
}

// Meta describes where a rendered page sits within the whole listing.
type Meta struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
}

// NewMeta builds the metadata for a page of a listing holding total items.
func NewMeta(page, limit, total int) Meta {
	meta := Meta{Page: page, Limit: limit, Total: total}
	if limit > 0 {
		meta.TotalPages = (total + limit - 1) / limit
	}
	meta.HasNext = page < meta.TotalPages
	return meta
}

// FromRequest reads "page" and "limit" from the query string.
//
// Missing, unparseable or non-positive values take the defaults; a limit
// above [MaxLimit] is capped at [MaxLimit].
func FromRequest(request *http.Request) Params {
	query := request.URL.Query()

	page, err := strconv.Atoi(query.Get("page"))
	if err != nil || page < 1 {
		page = DefaultPage
	}

	limit, err := strconv.Atoi(query.Get("limit"))
	if err != nil || limit < 1 {
		limit = DefaultLimit
	}

	return Params{Page: page, Limit: min(limit, MaxLimit)}
}
