package vectorstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/tursodatabase/go-libsql"
	"linearmath.dev/pkg/assert"
)

func checkTableExists(db *sqlx.DB) (bool, error) {
	query := `SELECT name
FROM sqlite_master
WHERE type='table' AND name='StoredVectors';`

	var tableName string
	err := db.Get(&tableName, query)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return tableName == "StoredVectors", nil
}

func deleteTable(db *sqlx.DB) error {
	query := `DROP TABLE IF EXISTS StoredVectors;`
	_, err := db.Exec(query)
	return err
}

// CreateStoredVectors creates the StoredVectors table unless it exists.
func (s *Sqlite) CreateStoredVectors() error {
	exists, err := checkTableExists(s.db)
	if err != nil {
		return fmt.Errorf("error while checking for the table existing: %w", err)
	}
	if exists {
		return nil
	}

	query := `
    CREATE TABLE StoredVectors (
        id TEXT PRIMARY KEY,
        name TEXT UNIQUE,
        width INTEGER,
        data BLOB,
        created_at TEXT
    );`

	_, err = s.db.Exec(query)
	if err != nil {
		return err
	}

	var createNameIndex = `CREATE INDEX idx_name ON StoredVectors (name);`
	_, err = s.db.Exec(createNameIndex)

	return err
}

// Reset drops and recreates the table.
func (s *Sqlite) Reset() error {
	if err := deleteTable(s.db); err != nil {
		return err
	}
	return s.CreateStoredVectors()
}

type Sqlite struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func getLogger() *slog.Logger {
	return slog.Default().With("area", "Sqlite")
}

func ClearSQLiteFiles(path string) {
	path = strings.TrimPrefix(path, "file:")
	os.Remove(path)
	os.Remove(fmt.Sprintf("%s-shm", path))
	os.Remove(fmt.Sprintf("%s-wal", path))
}

// EnsureSqliteURI turns a plain path into the file: URI libsql expects.
func EnsureSqliteURI(path string) string {
	if strings.HasPrefix(path, "file:") || strings.Contains(path, "://") {
		return path
	}
	return "file:" + path
}

func NewSqlite(path string) *Sqlite {
	logger := getLogger()
	db, err := sqlx.Open("libsql", EnsureSqliteURI(path))
	assert.NoError(err, "failed to open db", "err", err)
	return &Sqlite{
		db:     db,
		logger: logger,
	}
}

func (s *Sqlite) Close() error {
	return s.db.Close()
}

func (s *Sqlite) setPragma(name string, value string) error {
	row := s.db.QueryRowx(fmt.Sprintf("PRAGMA %s=%s;", name, value))
	var v string
	err := row.Scan(&v)
	if err != nil {
		return fmt.Errorf("could not scan pragma %s=%s: %w", name, value, err)
	}
	s.logger.Debug(name, "value", v)
	return nil
}

func (s *Sqlite) SetSqliteModes() error {
	return errors.Join(
		s.setPragma("busy_timeout", "3000"),
		s.setPragma("journal_mode", "WAL"),
	)
}

func (s *Sqlite) Count() int {
	selectQuery := `SELECT COUNT(*)
FROM StoredVectors;`

	var count int
	err := s.db.Get(&count, selectQuery)
	assert.NoError(err, "unable to get vector count", "err", err)

	return count
}

func (s *Sqlite) Put(vec StoredVector) error {
	s.logger.Debug("Put", "vector", vec.String())
	query := `INSERT OR REPLACE INTO StoredVectors (id, name, width, data, created_at)
VALUES (?, ?, ?, ?, ?);`

	_, err := s.db.Exec(query, vec.Id, vec.Name, vec.Width, vec.Data, vec.CreatedAt)

	return err
}

func (j *Sqlite) Run(ctx context.Context) {}

func (s *Sqlite) GetAll() ([]StoredVector, error) {
	var vecs []StoredVector
	query := `SELECT id, name, width, data, created_at FROM StoredVectors ORDER BY created_at, name;`

	err := s.db.Select(&vecs, query)
	if err != nil {
		return nil, err
	}

	return vecs, nil
}

func (s *Sqlite) getOne(column string, value string) *StoredVector {
	g := []StoredVector{}
	err := s.db.Select(&g, fmt.Sprintf(`SELECT id, name, width, data, created_at
FROM StoredVectors
WHERE %s=?;`, column), value)
	if err != nil {
		s.logger.Error("lookup failed", column, value, "error", err)
		return nil
	}
	if len(g) == 1 {
		s.logger.Debug("lookup", column, value, "vector", g[0].String())
		return &g[0]
	}
	return nil
}

func (s *Sqlite) GetById(id string) *StoredVector {
	return s.getOne("id", id)
}

func (s *Sqlite) GetByName(name string) *StoredVector {
	return s.getOne("name", name)
}
