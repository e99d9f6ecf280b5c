package service

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/jurnal-kelas-api/pkg/errors"
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// storeMessages holds the localized messages for one failing operation.
type storeMessages struct {
	notFound string
	conflict string
	internal string
}

// mapStoreError logs a persistence failure and converts it into the client
// facing error taxonomy.
func mapStoreError(logger *zap.Logger, op string, err error, msgs storeMessages) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) && msgs.notFound != "" {
		return appErrors.Clone(appErrors.ErrNotFound, msgs.notFound)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pqUniqueViolation:
			if msgs.conflict != "" {
				return appErrors.Wrap(err, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, msgs.conflict)
			}
		case pqForeignKeyViolation:
			if msgs.notFound != "" {
				return appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, msgs.notFound)
			}
		}
	}
	logger.Error(op+" failed", zap.Error(err))
	return appErrors.Internal(err, msgs.internal)
}
