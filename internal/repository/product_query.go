package repository

import (
	sq "github.com/Masterminds/squirrel"

	"globaltrade/internal/model"
)

// psql builds queries with PostgreSQL placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// productSearchColumns are the columns selected by listing search and
// detail queries, including the joined seller and category rows.
var productSearchColumns = []string{
	"p.id", "p.seller_id", "p.category_id", "p.title", "p.description",
	"p.price", "p.currency", "p.minimum_order_quantity", "p.unit",
	"p.origin_country", "p.hs_code", "p.status", "p.featured",
	"p.created_at", "p.updated_at",
	"s.full_name", "s.company_name", "s.country", "s.verified",
	"c.name",
}

// buildProductSearch translates filter criteria into a single SQL query
// over active listings. Each optional criterion contributes exactly one
// predicate; results are ordered newest first.
func buildProductSearch(filter model.ProductFilter) (string, []any, error) {
	builder := psql.Select(productSearchColumns...).
		From("products p").
		Join("profiles s ON s.id = p.seller_id").
		LeftJoin("categories c ON c.id = p.category_id").
		Where(sq.Eq{"p.status": model.ProductStatusActive})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		builder = builder.Where(sq.Or{
			sq.ILike{"p.title": pattern},
			sq.ILike{"p.description": pattern},
			sq.ILike{"p.hs_code": pattern},
		})
	}

	if filter.CategoryID != "" && filter.CategoryID != model.FilterAll {
		builder = builder.Where(sq.Eq{"p.category_id": filter.CategoryID})
	}

	if filter.Country != "" && filter.Country != model.FilterAll {
		pattern := "%" + filter.Country + "%"
		builder = builder.Where(sq.Or{
			sq.ILike{"p.origin_country": pattern},
			sq.ILike{"s.country": pattern},
		})
	}

	if filter.MinPrice != nil {
		builder = builder.Where(sq.GtOrEq{"p.price": *filter.MinPrice})
	}

	if filter.MaxPrice != nil {
		builder = builder.Where(sq.LtOrEq{"p.price": *filter.MaxPrice})
	}

	if filter.VerifiedOnly {
		// Post-join constraint on the seller profile.
		builder = builder.Where(sq.Eq{"s.verified": true})
	}

	if filter.FeaturedOnly {
		builder = builder.Where(sq.Eq{"p.featured": true})
	}

	return builder.OrderBy("p.created_at DESC").ToSql()
}

// buildSuggestionQuery matches the search text against listing titles, HS
// codes and seller company names of active listings.
func buildSuggestionQuery(query string, limit int) (string, []any, error) {
	pattern := "%" + query + "%"
	return psql.Select("p.title", "p.hs_code", "s.company_name").
		From("products p").
		Join("profiles s ON s.id = p.seller_id").
		Where(sq.Eq{"p.status": model.ProductStatusActive}).
		Where(sq.Or{
			sq.ILike{"p.title": pattern},
			sq.ILike{"p.hs_code": pattern},
			sq.ILike{"s.company_name": pattern},
		}).
		Limit(uint64(limit)).
		ToSql()
}
