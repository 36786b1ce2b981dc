package pgconv

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

func UUIDFromPgtype(pu pgtype.UUID) (uuid.UUID, bool) {
	if !pu.Valid {
		return uuid.Nil, false
	}
	return uuid.UUID(pu.Bytes), true
}

// UUIDsFromPgtype drops NULL elements.
func UUIDsFromPgtype(pus []pgtype.UUID) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(pus))
	for _, pu := range pus {
		if id, ok := UUIDFromPgtype(pu); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

func UUIDToPgtype(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}

func UUIDsToPgtype(ids []uuid.UUID) []pgtype.UUID {
	pus := make([]pgtype.UUID, len(ids))
	for i, id := range ids {
		pus[i] = UUIDToPgtype(id)
	}
	return pus
}
