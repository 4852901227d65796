package model

import (
	"net/url"
	"strconv"
	"strings"
)

// FilterAll is the sentinel meaning "no constraint" for category and
// country filters.
const FilterAll = "all"

// ProductFilter holds the optional criteria for a listing search. It is
// constructed per request and discarded after the query runs.
type ProductFilter struct {
	Search       string
	CategoryID   string
	Country      string
	MinPrice     *float64
	MaxPrice     *float64
	VerifiedOnly bool
	FeaturedOnly bool
}

// ParseProductFilter builds a ProductFilter from request query parameters.
// Numeric bounds are parsed leniently: a malformed minPrice or maxPrice is
// treated as absent rather than rejected.
func ParseProductFilter(values url.Values) ProductFilter {
	return ProductFilter{
		Search:       strings.TrimSpace(values.Get("search")),
		CategoryID:   strings.TrimSpace(values.Get("category")),
		Country:      strings.TrimSpace(values.Get("country")),
		MinPrice:     parsePrice(values.Get("minPrice")),
		MaxPrice:     parsePrice(values.Get("maxPrice")),
		VerifiedOnly: values.Get("verified") == "true",
		FeaturedOnly: values.Get("featured") == "true",
	}
}

func parsePrice(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
