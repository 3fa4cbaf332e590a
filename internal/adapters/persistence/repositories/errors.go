package repositories

import (
	"errors"

	"github.com/curlykit/PTLab2/internal/core/domain"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
)

// mapDatabaseError translates driver constraint violations into domain errors
func mapDatabaseError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return domain.ErrDuplicateEntry
		case "23503":
			return domain.ErrInvalidReference
		}
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case 1062:
			return domain.ErrDuplicateEntry
		case 1452:
			return domain.ErrInvalidReference
		}
	}

	return err
}
