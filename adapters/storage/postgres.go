package storage

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"

	"plancost/core/types"
	"plancost/internal/errors"
)

// PostgresStore persists rooms and estimates relationally. Replace
// operations run delete+insert inside one transaction.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens a connection and ensures the schema exists
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, errors.Storage("cannot open postgres connection", err)
	}
	store := &PostgresStore{db: db}
	if err := store.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *PostgresStore) ensureSchema() error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS rooms (
			id UUID PRIMARY KEY,
			drawing_id TEXT NOT NULL,
			name TEXT NOT NULL,
			room_type TEXT NOT NULL,
			area_m2 DOUBLE PRECISION NOT NULL,
			centroid_x DOUBLE PRECISION NOT NULL,
			centroid_y DOUBLE PRECISION NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS rooms_drawing_idx ON rooms (drawing_id)`,
		`CREATE TABLE IF NOT EXISTS estimates (
			drawing_id TEXT PRIMARY KEY,
			id UUID NOT NULL,
			mode TEXT NOT NULL,
			payload JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS rate_cards (
			id UUID PRIMARY KEY,
			category TEXT NOT NULL,
			item_name TEXT NOT NULL,
			unit TEXT NOT NULL,
			rate NUMERIC(12,2) NOT NULL,
			location TEXT NOT NULL DEFAULT '',
			effective_from DATE NOT NULL,
			active BOOLEAN NOT NULL DEFAULT true
		)`,
	}
	for _, stmt := range ddl {
		if _, err := s.db.Exec(stmt); err != nil {
			return errors.Storage("cannot create schema", err)
		}
	}
	return nil
}

// ReplaceRooms swaps all rooms for a drawing in one transaction
func (s *PostgresStore) ReplaceRooms(ctx context.Context, drawingID string, rooms []types.ClassifiedRoom) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Storage("cannot begin transaction", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM rooms WHERE drawing_id = $1`, drawingID); err != nil {
		return errors.Storage("cannot delete previous rooms", err)
	}
	for _, room := range rooms {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO rooms (id, drawing_id, name, room_type, area_m2, centroid_x, centroid_y)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			uuid.NewString(), drawingID, room.Name, string(room.Type),
			room.AreaM2, room.Centroid.X, room.Centroid.Y)
		if err != nil {
			return errors.Storage("cannot insert room", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return errors.Storage("cannot commit room replacement", err)
	}
	return nil
}

// Rooms returns the stored rooms for a drawing
func (s *PostgresStore) Rooms(ctx context.Context, drawingID string) ([]types.ClassifiedRoom, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, room_type, area_m2, centroid_x, centroid_y
		 FROM rooms WHERE drawing_id = $1 ORDER BY name`, drawingID)
	if err != nil {
		return nil, errors.Storage("cannot query rooms", err)
	}
	defer rows.Close()

	var out []types.ClassifiedRoom
	for rows.Next() {
		var room types.ClassifiedRoom
		var roomType string
		if err := rows.Scan(&room.Name, &roomType, &room.AreaM2, &room.Centroid.X, &room.Centroid.Y); err != nil {
			return nil, errors.Storage("cannot scan room row", err)
		}
		room.Type = types.RoomType(roomType)
		out = append(out, room)
	}
	return out, rows.Err()
}

// ReplaceEstimate swaps the estimate for a drawing in one transaction
func (s *PostgresStore) ReplaceEstimate(ctx context.Context, drawingID string, estimate *StoredEstimate) error {
	payload, err := json.Marshal(estimate)
	if err != nil {
		return errors.Internal("cannot marshal estimate", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Storage("cannot begin transaction", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM estimates WHERE drawing_id = $1`, drawingID); err != nil {
		return errors.Storage("cannot delete previous estimate", err)
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO estimates (drawing_id, id, mode, payload) VALUES ($1, $2, $3, $4)`,
		drawingID, estimate.ID, string(estimate.Mode), payload)
	if err != nil {
		return errors.Storage("cannot insert estimate", err)
	}
	if err := tx.Commit(); err != nil {
		return errors.Storage("cannot commit estimate replacement", err)
	}
	return nil
}

// Estimate returns the stored estimate for a drawing
func (s *PostgresStore) Estimate(ctx context.Context, drawingID string) (*StoredEstimate, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM estimates WHERE drawing_id = $1`, drawingID).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("estimate", drawingID)
	}
	if err != nil {
		return nil, errors.Storage("cannot query estimate", err)
	}

	var estimate StoredEstimate
	if err := json.Unmarshal(payload, &estimate); err != nil {
		return nil, errors.Internal("cannot unmarshal estimate", err)
	}
	return &estimate, nil
}

// RateEntries returns all rate-card rows
func (s *PostgresStore) RateEntries(ctx context.Context) ([]types.RateEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT category, item_name, unit, rate, location, effective_from, active
		 FROM rate_cards ORDER BY category, item_name, effective_from`)
	if err != nil {
		return nil, errors.Storage("cannot query rate cards", err)
	}
	defer rows.Close()

	var out []types.RateEntry
	for rows.Next() {
		var entry types.RateEntry
		var category, rate string
		if err := rows.Scan(&category, &entry.ItemName, &entry.Unit, &rate,
			&entry.Location, &entry.EffectiveFrom, &entry.Active); err != nil {
			return nil, errors.Storage("cannot scan rate row", err)
		}
		entry.Category = types.Category(category)
		parsed, err := decimal.NewFromString(rate)
		if err != nil {
			return nil, errors.Internal("invalid rate value", err).WithContext("item", entry.ItemName)
		}
		entry.Rate = parsed
		out = append(out, entry)
	}
	return out, rows.Err()
}

// Close closes the database connection
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
