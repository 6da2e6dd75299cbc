package repositories

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

var (
	// ErrNotFound is wrapped by every lookup that matches no row, e.g. "course not found"
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is wrapped when an insert violates a unique key
	ErrDuplicate = errors.New("already exists")
)

// MySQL error number for duplicate key violations
const mysqlDuplicateEntry = 1062

func isDuplicateKey(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}
