//go:build !no_sqlite && !cgo

package db

import (
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/Karin-Goldin/wedding-app/pkg/configs"
)

// createSQLiteDialector uses the pure-Go driver so cross-compiled builds keep
// SQLite support.
func createSQLiteDialector(dsn string) gorm.Dialector {
	return sqlite.Open(dsn)
}

func init() {
	RegisterDialectorFactory(configs.SQLite, createSQLiteDialector)
}
