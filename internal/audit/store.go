// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/evidence-engine/pkg/types"
)

// FileStore keeps one JSON document per request under a directory, keyed
// by request id. Demo-mode persistence: records stay human-inspectable.
type FileStore struct {
	dir string
}

// NewFileStore creates the record directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, types.NewPersistenceError("open", err)
	}
	return &FileStore{dir: dir}, nil
}

// Put writes the record atomically: a temp file in the same directory is
// renamed into place, so a failed write never leaves a partial record.
func (s *FileStore) Put(_ context.Context, record types.AuditRecord) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return types.NewPersistenceError("put", err)
	}

	tmp, err := os.CreateTemp(s.dir, record.RequestID+".*.tmp")
	if err != nil {
		return types.NewPersistenceError("put", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return types.NewPersistenceError("put", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return types.NewPersistenceError("put", err)
	}

	if err := os.Rename(tmp.Name(), s.path(record.RequestID)); err != nil {
		os.Remove(tmp.Name())
		return types.NewPersistenceError("put", err)
	}
	return nil
}

// Get reads the record for requestID.
func (s *FileStore) Get(_ context.Context, requestID string) (types.AuditRecord, error) {
	data, err := os.ReadFile(s.path(requestID))
	if err != nil {
		return types.AuditRecord{}, types.NewPersistenceError("get", err)
	}
	var record types.AuditRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return types.AuditRecord{}, types.NewPersistenceError("get", err)
	}
	return record, nil
}

// List returns all records, oldest first.
func (s *FileStore) List(ctx context.Context) ([]types.AuditRecord, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, types.NewPersistenceError("list", err)
	}

	var records []types.AuditRecord
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		record, err := s.Get(ctx, strings.TrimSuffix(entry.Name(), ".json"))
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	sort.Slice(records, func(i, j int) bool { return records[i].Timestamp < records[j].Timestamp })
	return records, nil
}

func (s *FileStore) path(requestID string) string {
	return filepath.Join(s.dir, requestID+".json")
}

// SQLiteStore is the durable keyed store for production mode: one row per
// request, WAL journaling, a single INSERT per record so the write is
// all-or-nothing.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the audit database at path and ensures
// the schema exists.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, types.NewPersistenceError("open", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, types.NewPersistenceError("open", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS audit_records (
		request_id TEXT PRIMARY KEY,
		timestamp TEXT NOT NULL,
		request_hash TEXT NOT NULL,
		response_hash TEXT NOT NULL,
		model_version TEXT NOT NULL,
		latency_ms INTEGER NOT NULL,
		signed_by TEXT NOT NULL,
		user_id TEXT,
		hallucination_alert INTEGER NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, types.NewPersistenceError("open", fmt.Errorf("creating schema: %w", err))
	}

	return &SQLiteStore{db: db}, nil
}

// Close releases the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Put inserts the record. Records are never mutated, so a duplicate
// request id is an error rather than an upsert.
func (s *SQLiteStore) Put(ctx context.Context, record types.AuditRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO audit_records
			(request_id, timestamp, request_hash, response_hash, model_version, latency_ms, signed_by, user_id, hallucination_alert)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.RequestID, record.Timestamp, record.RequestHash, record.ResponseHash,
		record.ModelVersion, record.LatencyMs, record.SignedBy,
		nullable(record.UserID), boolToInt(record.HallucinationAlert),
	)
	if err != nil {
		return types.NewPersistenceError("put", err)
	}
	return nil
}

// Get reads the record for requestID.
func (s *SQLiteStore) Get(ctx context.Context, requestID string) (types.AuditRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT request_id, timestamp, request_hash, response_hash, model_version, latency_ms, signed_by, user_id, hallucination_alert
		 FROM audit_records WHERE request_id = ?`, requestID)
	record, err := scanRecord(row)
	if err != nil {
		return types.AuditRecord{}, types.NewPersistenceError("get", err)
	}
	return record, nil
}

// List returns all records, oldest first.
func (s *SQLiteStore) List(ctx context.Context) ([]types.AuditRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT request_id, timestamp, request_hash, response_hash, model_version, latency_ms, signed_by, user_id, hallucination_alert
		 FROM audit_records ORDER BY timestamp`)
	if err != nil {
		return nil, types.NewPersistenceError("list", err)
	}
	defer rows.Close()

	var records []types.AuditRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, types.NewPersistenceError("list", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, types.NewPersistenceError("list", err)
	}
	return records, nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanRecord(row scannable) (types.AuditRecord, error) {
	var (
		record types.AuditRecord
		userID sql.NullString
		alert  int
	)
	err := row.Scan(
		&record.RequestID, &record.Timestamp, &record.RequestHash, &record.ResponseHash,
		&record.ModelVersion, &record.LatencyMs, &record.SignedBy, &userID, &alert,
	)
	if err != nil {
		return types.AuditRecord{}, err
	}
	if userID.Valid {
		record.UserID = userID.String
	}
	record.HallucinationAlert = alert != 0
	return record, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
