package postgres

import (
	"errors"
	"fmt"

	"github.com/sm8ta/webike_rental_service/internal/core/domain"

	"github.com/lib/pq"
)

// translate maps driver errors onto domain errors. notFound is returned for
// foreign key violations, which here always mean a missing referenced row.
func translate(err error, notFound error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23502":
			return fmt.Errorf("%w: required field %s is missing", domain.ErrValidation, pqErr.Column)
		case "23503":
			return notFound
		case "23505":
			return fmt.Errorf("%w: %s", domain.ErrConflict, pqErr.Constraint)
		case "23514":
			return fmt.Errorf("%w: check %s failed", domain.ErrValidation, pqErr.Constraint)
		}
	}
	return err
}
