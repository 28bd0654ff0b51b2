package service

import (
	"fmt"

	"github.com/lightbnb/lightbnb/internal/domain"
	apperrors "github.com/lightbnb/lightbnb/pkg/errors"
)

// resolveLimit maps an unset limit to domain.DefaultLimit and rejects
// negative values.
func resolveLimit(limit int) (int, error) {
	switch {
	case limit < 0:
		return 0, apperrors.InvalidInput(fmt.Sprintf("limit must be a positive integer, got %d", limit))
	case limit == 0:
		return domain.DefaultLimit, nil
	default:
		return limit, nil
	}
}
