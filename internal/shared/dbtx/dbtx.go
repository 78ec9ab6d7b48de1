package dbtx

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// Bind returns a gorm session whose statements run on tx, so a service can
// mix gorm repositories and raw SQL (outbox) in one database transaction.
// A nil tx returns db unchanged.
func Bind(db *gorm.DB, tx *sql.Tx) *gorm.DB {
	if tx == nil {
		return db
	}

	// Context forces a statement clone, so the root db's ConnPool is never touched.
	bound := db.Session(&gorm.Session{
		Context:                context.Background(),
		NewDB:                  true,
		SkipDefaultTransaction: true,
	})
	bound.Statement.ConnPool = tx
	return bound
}
