package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/ponyo877/chatroom/server/domain"
)

// Open opens the SQLite catalog at path and creates the schema if needed.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	if err := Migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func Migrate(db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS rooms (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			created_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS configs (
			owner_token TEXT PRIMARY KEY,
			display_name TEXT NOT NULL
		)`,
	}
	for _, query := range schema {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to migrate schema: %w", err)
		}
	}
	return nil
}

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) ListRooms() ([]domain.RoomRecord, error) {
	return r.queryRooms("SELECT id, name, created_at FROM rooms ORDER BY id")
}

func (r *Repository) queryRooms(query string, args ...any) ([]domain.RoomRecord, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query rooms: %w", err)
	}
	defer rows.Close()

	rooms := []domain.RoomRecord{}
	for rows.Next() {
		var id int
		var name string
		var createdAt time.Time
		if err := rows.Scan(&id, &name, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan room: %w", err)
		}
		rooms = append(rooms, domain.NewRoomRecord(id, name, createdAt))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over rooms: %w", err)
	}
	return rooms, nil
}

func (r *Repository) CreateRoom(name string) error {
	query := "INSERT INTO rooms (name, created_at) VALUES (?, ?)"
	if _, err := r.db.Exec(query, name, time.Now()); err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return fmt.Errorf("room '%s': %w", name, domain.ErrAlreadyExists)
		}
		return fmt.Errorf("failed to insert room '%s': %w", name, err)
	}
	return nil
}

func (r *Repository) GetConfig(ownerToken string) (domain.Config, error) {
	query := "SELECT display_name FROM configs WHERE owner_token = ?"
	var displayName string
	if err := r.db.QueryRow(query, ownerToken).Scan(&displayName); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Config{}, domain.ErrNotFound
		}
		return domain.Config{}, fmt.Errorf("error querying config: %w", err)
	}
	return domain.NewConfig(displayName, ownerToken), nil
}

func (r *Repository) CreateConfig(config domain.Config) error {
	query := `INSERT INTO configs (owner_token, display_name) VALUES (?, ?)
		ON CONFLICT(owner_token) DO UPDATE SET display_name = excluded.display_name`
	if _, err := r.db.Exec(query, config.OwnerToken, config.DisplayName); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}
