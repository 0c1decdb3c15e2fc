package testsupport

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// NewSQLiteMemoryDB opens a private in-memory sqlite database. Every call gets
// its own database so tests never share tables.
func NewSQLiteMemoryDB() (*sql.DB, error) {
	return sql.Open("sqlite3", SQLiteMemoryDSN())
}

// SQLiteMemoryDSN returns a DSN naming a fresh shared-cache memory database.
func SQLiteMemoryDSN() string {
	name := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("file:sitenav_%s?mode=memory&cache=shared&_fk=1", name)
}
