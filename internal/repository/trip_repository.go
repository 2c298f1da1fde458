// Package repository contains the SQL persistence layer.  Only completed
// trips are archived; live allocation state stays in memory and is never
// written to the database.
package repository

import (
	"context"
	"database/sql"
	"time"
)

// TripRepo archives completed (released or cancelled) parking trips.  The
// archive is append-only: rows are inserted when a request reaches a
// terminal state and are never updated.  All timestamp fields are stored
// in UTC.
type TripRepo struct {
	db *sql.DB
}

// NewTripRepo returns a new TripRepo bound to the given database.
func NewTripRepo(db *sql.DB) *TripRepo { return &TripRepo{db: db} }

// TripRow mirrors the schema of the parking_trips table.  It is used by the
// repository when constructing or scanning rows; handlers convert it to the
// JSON trip shape.
type TripRow struct {
	ID               uint64
	RequestID        string
	VehicleID        string
	RequestedZone    string
	AllocatedZone    sql.NullString
	SlotID           sql.NullString
	State            string
	CrossZonePenalty int
	DurationSeconds  float64
	CreatedAt        time.Time
	EndedAt          time.Time
}

// EnsureSchema creates the parking_trips table when it does not exist.  The
// server calls this once at startup so a fresh database needs no manual
// migration step.
func (r *TripRepo) EnsureSchema(ctx context.Context) error {
	const q = `CREATE TABLE IF NOT EXISTS parking_trips (
        id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
        request_id VARCHAR(32) NOT NULL,
        vehicle_id VARCHAR(64) NOT NULL,
        requested_zone VARCHAR(64) NOT NULL,
        allocated_zone VARCHAR(64) NULL,
        slot_id VARCHAR(128) NULL,
        state VARCHAR(16) NOT NULL,
        cross_zone_penalty INT NOT NULL DEFAULT 0,
        duration_seconds DOUBLE NOT NULL DEFAULT 0,
        created_at DATETIME NOT NULL,
        ended_at DATETIME NOT NULL,
        PRIMARY KEY (id),
        KEY idx_trips_vehicle (vehicle_id),
        KEY idx_trips_state (state)
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`
	_, err := r.db.ExecContext(ctx, q)
	return err
}

// Insert appends one trip row to the archive.
func (r *TripRepo) Insert(ctx context.Context, row *TripRow) error {
	const q = `INSERT INTO parking_trips
        (request_id, vehicle_id, requested_zone, allocated_zone, slot_id, state, cross_zone_penalty, duration_seconds, created_at, ended_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, q,
		row.RequestID, row.VehicleID, row.RequestedZone, row.AllocatedZone, row.SlotID,
		row.State, row.CrossZonePenalty, row.DurationSeconds, row.CreatedAt, row.EndedAt,
	)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	row.ID = uint64(id)
	return nil
}

// ListRecent returns the most recent trips, newest first, capped at limit.
func (r *TripRepo) ListRecent(ctx context.Context, limit int) ([]TripRow, error) {
	if limit <= 0 {
		limit = 50
	}
	const q = `SELECT id, request_id, vehicle_id, requested_zone, allocated_zone, slot_id,
        state, cross_zone_penalty, duration_seconds, created_at, ended_at
        FROM parking_trips ORDER BY id DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TripRow
	for rows.Next() {
		var t TripRow
		if err := rows.Scan(
			&t.ID, &t.RequestID, &t.VehicleID, &t.RequestedZone, &t.AllocatedZone, &t.SlotID,
			&t.State, &t.CrossZonePenalty, &t.DurationSeconds, &t.CreatedAt, &t.EndedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
