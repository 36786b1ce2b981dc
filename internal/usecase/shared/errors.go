package shared

import (
	"space-booking/internal/infra"
	"space-booking/internal/pkg/errs"
)

// MapRepoErr maps a missing row to notFound and marks everything else as a
// database failure.
func MapRepoErr(err error, notFound error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return notFound
	}
	return errs.Mark(err, errs.ErrDatabaseOperationFailed)
}
