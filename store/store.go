package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

var ErrNotFound = errors.New("object not found")

type Object struct {
	Name      string
	Ext       string
	Size      int
	CreatedAt time.Time
	// Data is nil in List results.
	Data []byte
}

type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the SQLite database
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode for better concurrent performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Put stores data under a fresh random name with the given extension.
func (s *Store) Put(ctx context.Context, ext string, data []byte) (Object, error) {
	name, err := newName(ext)
	if err != nil {
		return Object{}, err
	}
	if data == nil {
		data = []byte{}
	}
	now := s.now()
	if _, err := s.db.ExecContext(ctx,
		"INSERT INTO objects (name, ext, data, created_at) VALUES (?, ?, ?, ?)",
		name, ext, data, now.UnixNano(),
	); err != nil {
		return Object{}, fmt.Errorf("failed to insert object: %w", err)
	}
	return Object{
		Name:      name,
		Ext:       ext,
		Size:      len(data),
		CreatedAt: now,
		Data:      data,
	}, nil
}

func (s *Store) Get(ctx context.Context, name string) (Object, error) {
	var (
		obj       = Object{Name: name}
		createdAt int64
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT ext, data, created_at FROM objects WHERE name = ?", name,
	).Scan(&obj.Ext, &obj.Data, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Object{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return Object{}, fmt.Errorf("failed to query object: %w", err)
	}
	obj.Size = len(obj.Data)
	obj.CreatedAt = time.Unix(0, createdAt)
	return obj, nil
}

// List returns up to limit objects, newest first, without their data.
func (s *Store) List(ctx context.Context, limit int) ([]Object, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT name, ext, length(data), created_at FROM objects ORDER BY created_at DESC, id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query objects: %w", err)
	}
	defer rows.Close()

	objects := []Object{}
	for rows.Next() {
		var (
			obj       Object
			createdAt int64
		)
		if err := rows.Scan(&obj.Name, &obj.Ext, &obj.Size, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan object: %w", err)
		}
		obj.CreatedAt = time.Unix(0, createdAt)
		objects = append(objects, obj)
	}
	return objects, rows.Err()
}

func newName(ext string) (string, error) {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", fmt.Errorf("failed to generate object name: %w", err)
	}
	return hex.EncodeToString(b[:]) + "." + ext, nil
}
