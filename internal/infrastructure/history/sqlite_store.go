package history

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/doeshing/deskcommander/internal/domain"
	"github.com/doeshing/deskcommander/internal/pkg/filesystem"
	"github.com/doeshing/deskcommander/internal/ports"
)

// SQLiteStore persists attempts in ~/.deskcommander/history.db.
type SQLiteStore struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

// NewSQLiteStore creates (or opens) the history database at its default location.
func NewSQLiteStore() (*SQLiteStore, error) {
	return NewSQLiteStoreAt(filepath.Join(filesystem.UserHomeDir(), ".deskcommander", "history.db"))
}

// NewSQLiteStoreAt creates (or opens) a history database at path.
func NewSQLiteStoreAt(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &SQLiteStore{db: db, path: path}
	if err := store.init(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS attempts (
		id TEXT PRIMARY KEY,
		timestamp TEXT,
		prompt TEXT,
		command TEXT,
		output TEXT,
		status TEXT,
		executed INTEGER,
		exit_code INTEGER,
		duration_ms INTEGER
	);`)
	return err
}

// Save inserts a new record.
func (s *SQLiteStore) Save(record domain.HistoryRecord) error {
	record.TruncateOutput()
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`INSERT INTO attempts
		(id, timestamp, prompt, command, output, status, executed, exit_code, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.Timestamp.Format(domain.TimestampFormat),
		record.Prompt,
		record.Command,
		record.Output,
		string(record.Status),
		boolToInt(record.Executed),
		record.ExitCode,
		record.DurationMS,
	)
	return err
}

// Records returns persisted entries newest-first (limit/search optional).
func (s *SQLiteStore) Records(limit int, search string) ([]domain.HistoryRecord, error) {
	builder := strings.Builder{}
	builder.WriteString("SELECT id, timestamp, prompt, command, output, status, executed, exit_code, duration_ms FROM attempts")
	var args []interface{}
	if search != "" {
		builder.WriteString(" WHERE prompt LIKE ? OR command LIKE ?")
		args = append(args, "%"+search+"%", "%"+search+"%")
	}
	builder.WriteString(" ORDER BY datetime(timestamp) DESC")
	if limit > 0 {
		builder.WriteString(" LIMIT ?")
		args = append(args, limit)
	}
	rows, err := s.db.Query(builder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var records []domain.HistoryRecord
	for rows.Next() {
		var rec domain.HistoryRecord
		var ts, status string
		var executed int
		if err := rows.Scan(&rec.ID, &ts, &rec.Prompt, &rec.Command, &rec.Output, &status, &executed, &rec.ExitCode, &rec.DurationMS); err != nil {
			return nil, err
		}
		if t, err := time.Parse(domain.TimestampFormat, ts); err == nil {
			rec.Timestamp = t
		}
		rec.Status = domain.CommandStatus(status)
		rec.Executed = executed == 1
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Clear deletes all persisted entries.
func (s *SQLiteStore) Clear() error {
	_, err := s.db.Exec("DELETE FROM attempts")
	return err
}

// ExportJSON writes the attempts table to a jsonl file.
func (s *SQLiteStore) ExportJSON(dest string) error {
	records, err := s.Records(0, "")
	if err != nil {
		return err
	}
	file, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer file.Close()
	for _, rec := range records {
		b, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		if _, err := file.Write(append(b, '\n')); err != nil {
			return err
		}
	}
	return nil
}

// Path returns the sqlite database path.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

var _ ports.HistoryRepository = (*SQLiteStore)(nil)
