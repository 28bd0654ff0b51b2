package postgres

import (
	"fmt"
	"strings"

	"github.com/lightbnb/lightbnb/internal/domain"
)

var searchSelect = `SELECT ` + propertyColumns + `, avg(property_reviews.rating) AS average_rating
FROM properties
JOIN property_reviews ON property_reviews.property_id = properties.id
`

// predicate is one filter of a property search, rendered as
// "<column> <op> $n<cast>" with value bound to $n.
type predicate struct {
	column string
	op     string
	value  any
	cast   string
}

// searchPredicates lists the present criteria in their fixed order:
// city, minimum price, maximum price, minimum rating. City is a
// case-insensitive substring match.
func searchPredicates(c domain.SearchCriteria) []predicate {
	var preds []predicate
	if c.City != nil {
		preds = append(preds, predicate{column: "city", op: "ILIKE", value: "%" + *c.City + "%"})
	}
	if c.MinimumPricePerNight != nil {
		preds = append(preds, predicate{column: "properties.cost_per_night", op: ">=", value: *c.MinimumPricePerNight})
	}
	if c.MaximumPricePerNight != nil {
		preds = append(preds, predicate{column: "properties.cost_per_night", op: "<=", value: *c.MaximumPricePerNight})
	}
	if c.MinimumRating != nil {
		// rating is an integer column; numeric keeps fractional minimums exact.
		preds = append(preds, predicate{column: "property_reviews.rating", op: ">=", value: *c.MinimumRating, cast: "::numeric"})
	}
	return preds
}

// buildSearchQuery renders the property search statement and its arguments.
// Filter arguments come first in predicate order; the limit is always the
// last argument.
func buildSearchQuery(c domain.SearchCriteria, limit int, mode domain.WhereMode) (string, []any) {
	preds := searchPredicates(c)
	args := make([]any, 0, len(preds)+1)

	var sb strings.Builder
	sb.WriteString(searchSelect)

	whereEmitted := false
	for _, p := range preds {
		args = append(args, p.value)

		keyword := "AND"
		switch mode {
		case domain.WhereModeLegacy:
			if p.column == "city" {
				keyword = "WHERE"
			}
		default:
			if !whereEmitted {
				keyword = "WHERE"
			}
		}
		whereEmitted = true

		fmt.Fprintf(&sb, "%s %s %s $%d%s\n", keyword, p.column, p.op, len(args), p.cast)
	}

	args = append(args, limit)
	fmt.Fprintf(&sb, "GROUP BY properties.id\nORDER BY cost_per_night\nLIMIT $%d", len(args))

	return sb.String(), args
}
