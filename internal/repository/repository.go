package repository

import (
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/mysql"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
)

// Repository wraps the shared database handle and the goqu query builder.
// The dialect is fixed at startup by configuration; all feature repositories
// build queries through the same wrapper regardless of backing store.
type Repository struct {
	DB      *sql.DB
	Builder *goqu.Database
	dialect string
}

func NewRepository(db *sql.DB, dialect string) *Repository {
	return &Repository{
		DB:      db,
		Builder: goqu.Dialect(dialect).DB(db),
		dialect: dialect,
	}
}

func (r *Repository) Dialect() string {
	return r.dialect
}

// WithTransaction runs fn inside a transaction, rolling back on error or
// panic and committing otherwise.
func (r *Repository) WithTransaction(fn func(tx *goqu.TxDatabase) error) (err error) {
	rawTx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}

	tx := goqu.NewTx(r.dialect, rawTx)
	defer func() {
		if p := recover(); p != nil {
			rawTx.Rollback()
			panic(p)
		} else if err != nil {
			rawTx.Rollback()
		} else {
			err = rawTx.Commit()
		}
	}()

	err = fn(tx)
	return
}
