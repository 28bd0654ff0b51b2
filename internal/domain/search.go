package domain

// DefaultLimit caps result sets when the caller does not choose a limit.
const DefaultLimit = 10

// SearchCriteria holds the optional property filters. A nil field is absent.
type SearchCriteria struct {
	City                 *string
	MinimumPricePerNight *int64
	MaximumPricePerNight *int64
	MinimumRating        *float64
}

// IsEmpty reports whether no filter is set.
func (c SearchCriteria) IsEmpty() bool {
	return c.City == nil && c.MinimumPricePerNight == nil &&
		c.MaximumPricePerNight == nil && c.MinimumRating == nil
}

// WhereMode selects how the property search joins its predicates.
type WhereMode int

const (
	// WhereModeCorrected opens the first emitted predicate with WHERE.
	WhereModeCorrected WhereMode = iota
	// WhereModeLegacy lets only the city predicate open with WHERE; every
	// other predicate is joined with AND even when it comes first. Without a
	// city, the leading AND extends the join condition instead of opening a
	// WHERE clause.
	WhereModeLegacy
)

func (m WhereMode) String() string {
	if m == WhereModeLegacy {
		return "legacy"
	}
	return "corrected"
}
