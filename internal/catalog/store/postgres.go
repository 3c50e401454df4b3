package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"axisd/internal/axis"
	"axisd/internal/catalog"
)

// PostgresStore persists catalog records in PostgreSQL. The coordinate is
// stored as JSONB next to its derived columns so listing and lookups never
// re-derive hashes.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate creates the catalog table if it does not exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS coordinate_catalog (
			hash         TEXT PRIMARY KEY,
			nuremberg    TEXT NOT NULL,
			usi          TEXT NOT NULL,
			coordinate   JSONB NOT NULL,
			completeness DOUBLE PRECISION NOT NULL,
			created_at   TIMESTAMPTZ NOT NULL,
			updated_at   TIMESTAMPTZ NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("migrate coordinate_catalog: %w", err)
	}
	return nil
}

func (s *PostgresStore) Save(ctx context.Context, record catalog.Record) (catalog.Record, error) {
	payload, err := json.Marshal(record.Coordinate)
	if err != nil {
		return catalog.Record{}, fmt.Errorf("marshal coordinate: %w", err)
	}

	query := `
		INSERT INTO coordinate_catalog (hash, nuremberg, usi, coordinate, completeness, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		ON CONFLICT (hash) DO UPDATE SET
			nuremberg    = EXCLUDED.nuremberg,
			usi          = EXCLUDED.usi,
			coordinate   = EXCLUDED.coordinate,
			completeness = EXCLUDED.completeness,
			updated_at   = EXCLUDED.updated_at
		RETURNING created_at, updated_at
	`
	err = s.db.QueryRowContext(ctx, query,
		record.Hash, record.Nuremberg, record.USI, payload, record.Completeness, record.CreatedAt,
	).Scan(&record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return catalog.Record{}, fmt.Errorf("save coordinate: %w", err)
	}
	return record, nil
}

func (s *PostgresStore) Get(ctx context.Context, hash string) (*catalog.Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT hash, nuremberg, usi, coordinate, completeness, created_at, updated_at
		FROM coordinate_catalog
		WHERE hash = $1
	`, hash)

	record, err := scanRecord(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, catalog.ErrNotFound
		}
		return nil, fmt.Errorf("get coordinate: %w", err)
	}
	return record, nil
}

func (s *PostgresStore) List(ctx context.Context, limit, offset int) ([]catalog.Record, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT hash, nuremberg, usi, coordinate, completeness, created_at, updated_at
		FROM coordinate_catalog
		ORDER BY created_at, hash
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list coordinates: %w", err)
	}
	defer rows.Close()

	records := []catalog.Record{}
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan coordinate: %w", err)
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list coordinates: %w", err)
	}
	return records, nil
}

func (s *PostgresStore) Delete(ctx context.Context, hash string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM coordinate_catalog WHERE hash = $1`, hash)
	if err != nil {
		return fmt.Errorf("delete coordinate: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete coordinate: %w", err)
	}
	if affected == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM coordinate_catalog`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count coordinates: %w", err)
	}
	return count, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*catalog.Record, error) {
	var record catalog.Record
	var payload []byte
	if err := row.Scan(
		&record.Hash, &record.Nuremberg, &record.USI, &payload,
		&record.Completeness, &record.CreatedAt, &record.UpdatedAt,
	); err != nil {
		return nil, err
	}

	coord := &axis.Coordinate{}
	if err := json.Unmarshal(payload, coord); err != nil {
		return nil, fmt.Errorf("unmarshal coordinate: %w", err)
	}
	record.Coordinate = coord
	return &record, nil
}
