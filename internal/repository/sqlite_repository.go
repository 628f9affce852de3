package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/TeknoZest/damenschstorefront/internal/models"
)

// SQLiteSnapshotRepository persists snapshots as JSON payloads. Writes go
// through a single mutex because SQLite allows one writer at a time.
type SQLiteSnapshotRepository struct {
	db     *sql.DB
	logger *zap.Logger
	mu     sync.Mutex
}

// NewSQLiteSnapshotRepository opens dbPath and creates the snapshot tables
// if they do not exist.
func NewSQLiteSnapshotRepository(dbPath string, logger *zap.Logger) (*SQLiteSnapshotRepository, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	repo := &SQLiteSnapshotRepository{db: db, logger: logger}
	if err := repo.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	logger.Info("SQLite snapshot store ready", zap.String("path", dbPath))
	return repo, nil
}

func (r *SQLiteSnapshotRepository) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS listing_snapshots (
		category TEXT NOT NULL,
		query_key TEXT NOT NULL,
		payload TEXT NOT NULL,
		saved_at TEXT NOT NULL,
		PRIMARY KEY (category, query_key)
	);

	CREATE TABLE IF NOT EXISTS product_snapshots (
		slug TEXT PRIMARY KEY,
		payload TEXT NOT NULL,
		saved_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_listing_snapshots_category ON listing_snapshots(category);
	`
	_, err := r.db.Exec(schema)
	return err
}

func (r *SQLiteSnapshotRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteSnapshotRepository) SaveListing(ctx context.Context, category, queryKey string, result models.ListingResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode listing snapshot: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	query := `
		INSERT INTO listing_snapshots (category, query_key, payload, saved_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(category, query_key) DO UPDATE SET payload = excluded.payload, saved_at = excluded.saved_at
	`
	if _, err := r.db.ExecContext(ctx, query, category, queryKey, string(payload), time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("failed to save listing snapshot: %w", err)
	}
	return nil
}

func (r *SQLiteSnapshotRepository) FindListing(ctx context.Context, category, queryKey string) (*ListingSnapshot, error) {
	query := `SELECT payload, saved_at FROM listing_snapshots WHERE category = ? AND query_key = ?`

	var payload, savedAt string
	err := r.db.QueryRowContext(ctx, query, category, queryKey).Scan(&payload, &savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query listing snapshot: %w", err)
	}

	snapshot := &ListingSnapshot{Category: category, QueryKey: queryKey}
	if err := json.Unmarshal([]byte(payload), &snapshot.Result); err != nil {
		return nil, fmt.Errorf("failed to decode listing snapshot: %w", err)
	}
	snapshot.SavedAt, _ = time.Parse(time.RFC3339, savedAt)
	return snapshot, nil
}

func (r *SQLiteSnapshotRepository) SaveProduct(ctx context.Context, slug string, product models.Product) error {
	payload, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("failed to encode product snapshot: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	query := `
		INSERT INTO product_snapshots (slug, payload, saved_at)
		VALUES (?, ?, ?)
		ON CONFLICT(slug) DO UPDATE SET payload = excluded.payload, saved_at = excluded.saved_at
	`
	if _, err := r.db.ExecContext(ctx, query, slug, string(payload), time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("failed to save product snapshot: %w", err)
	}
	return nil
}

func (r *SQLiteSnapshotRepository) FindProduct(ctx context.Context, slug string) (*ProductSnapshot, error) {
	var payload, savedAt string
	err := r.db.QueryRowContext(ctx, `SELECT payload, saved_at FROM product_snapshots WHERE slug = ?`, slug).Scan(&payload, &savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query product snapshot: %w", err)
	}

	snapshot := &ProductSnapshot{}
	if err := json.Unmarshal([]byte(payload), &snapshot.Product); err != nil {
		return nil, fmt.Errorf("failed to decode product snapshot: %w", err)
	}
	snapshot.SavedAt, _ = time.Parse(time.RFC3339, savedAt)
	return snapshot, nil
}

func (r *SQLiteSnapshotRepository) DeleteProduct(ctx context.Context, slug string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.db.ExecContext(ctx, `DELETE FROM product_snapshots WHERE slug = ?`, slug); err != nil {
		return fmt.Errorf("failed to delete product snapshot: %w", err)
	}
	return nil
}
