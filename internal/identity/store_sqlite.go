package identity

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"abod-card-app/internal/model"

	_ "modernc.org/sqlite" // Pure Go SQLite driver - no CGO required
)

// profileName is the fixed key the guest profile is stored under, one record
// per installation. Matches the storage key the web client used.
const profileName = "guestUser"

// GuestStore persists the guest profile in a local SQLite file so reopening
// the app restores the same guest identity without re-registration.
type GuestStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewGuestStore opens (or creates) the guest profile database.
// dbPath is the path to the SQLite database file (e.g., "./data/guest.db")
func NewGuestStore(dbPath string) (*GuestStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000", dbPath)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite: %w", err)
	}

	// SQLite connection pool settings
	db.SetMaxOpenConns(1) // SQLite only supports 1 writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0) // Keep connection alive

	if err := createTables(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	log.Printf("[GuestStore] Initialized with database: %s", dbPath)
	return &GuestStore{db: db}, nil
}

// createTables creates the guest profile table.
func createTables(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS guest_profile (
		profile_name TEXT PRIMARY KEY,
		guest_id TEXT NOT NULL,
		first_name TEXT NOT NULL,
		phone TEXT NOT NULL,
		is_guest INTEGER NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL
	);
	`
	_, err := db.Exec(query)
	return err
}

// Load returns the stored guest profile, if any.
func (s *GuestStore) Load(ctx context.Context) (model.GuestBuyer, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT guest_id, first_name, phone, created_at FROM guest_profile WHERE profile_name = ?`

	var g model.GuestBuyer
	var createdAt time.Time

	err := s.db.QueryRowContext(ctx, query, profileName).Scan(&g.GuestID, &g.FirstName, &g.Phone, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.GuestBuyer{}, false, nil
		}
		return model.GuestBuyer{}, false, fmt.Errorf("failed to load guest profile: %w", err)
	}

	g.IsGuest = true
	g.CreatedAt = createdAt
	return g, true, nil
}

// Save inserts or replaces the guest profile.
func (s *GuestStore) Save(ctx context.Context, g model.GuestBuyer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO guest_profile (profile_name, guest_id, first_name, phone, is_guest, created_at)
		VALUES (?, ?, ?, ?, 1, ?)
		ON CONFLICT(profile_name) DO UPDATE SET
			guest_id = excluded.guest_id,
			first_name = excluded.first_name,
			phone = excluded.phone,
			created_at = excluded.created_at`

	_, err := s.db.ExecContext(ctx, query, profileName, g.GuestID, g.FirstName, g.Phone, g.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save guest profile: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *GuestStore) Close() error {
	return s.db.Close()
}
