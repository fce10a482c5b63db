package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mcrocce/meteodash/internal/models"
)

const preferredLocationKey = "preferred_location"

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// GetSnapshot returns the cached weather snapshot, or nil when the cache is
// empty. There is a single cache slot; a new snapshot replaces the old one.
func (s *Store) GetSnapshot() (*models.WeatherSnapshot, error) {
	row := s.db.QueryRow(`
		SELECT latitude, longitude, display_name, fetched_at, payload
		FROM snapshot_cache
		WHERE slot = 1
	`)

	var (
		lat, lon    float64
		displayName string
		fetchedAt   time.Time
		payload     string
	)
	err := row.Scan(&lat, &lon, &displayName, &fetchedAt, &payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var snap models.WeatherSnapshot
	if err := json.Unmarshal([]byte(payload), &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot payload: %w", err)
	}
	snap.Coordinates = models.Coordinates{Latitude: lat, Longitude: lon}
	snap.DisplayName = displayName
	snap.FetchedAt = fetchedAt
	return &snap, nil
}

func (s *Store) PutSnapshot(snap *models.WeatherSnapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot payload: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO snapshot_cache (slot, latitude, longitude, display_name, fetched_at, payload)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT(slot) DO UPDATE SET
			latitude = excluded.latitude,
			longitude = excluded.longitude,
			display_name = excluded.display_name,
			fetched_at = excluded.fetched_at,
			payload = excluded.payload
	`, snap.Coordinates.Latitude, snap.Coordinates.Longitude, snap.DisplayName, snap.FetchedAt.UTC(), string(payload))
	return err
}

func (s *Store) GetPreferredLocation() (*models.ResolvedLocation, error) {
	value, err := s.GetPreference(preferredLocationKey)
	if err != nil {
		return nil, err
	}
	if value == "" {
		return nil, nil
	}

	var loc models.ResolvedLocation
	if err := json.Unmarshal([]byte(value), &loc); err != nil {
		return nil, fmt.Errorf("decode preferred location: %w", err)
	}
	return &loc, nil
}

func (s *Store) SetPreferredLocation(loc models.ResolvedLocation) error {
	value, err := json.Marshal(loc)
	if err != nil {
		return fmt.Errorf("encode preferred location: %w", err)
	}
	return s.SetPreference(preferredLocationKey, string(value))
}

func (s *Store) GetPreference(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM preferences WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (s *Store) SetPreference(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO preferences (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, key, value, time.Now().UTC())
	return err
}

type FetchLogEntry struct {
	ID          int64
	StartedAt   time.Time
	CompletedAt sql.NullTime
	Latitude    sql.NullFloat64
	Longitude   sql.NullFloat64
	DisplayName sql.NullString
	Source      string
	Status      string
	Error       sql.NullString
}

func (s *Store) LogFetch(entry FetchLogEntry) error {
	_, err := s.db.Exec(`
		INSERT INTO fetch_log (started_at, completed_at, latitude, longitude, display_name, source, status, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, entry.StartedAt, entry.CompletedAt, entry.Latitude, entry.Longitude, entry.DisplayName, entry.Source, entry.Status, entry.Error)
	return err
}

func (s *Store) RecentFetches(limit int) ([]FetchLogEntry, error) {
	rows, err := s.db.Query(`
		SELECT id, started_at, completed_at, latitude, longitude, display_name, source, status, error
		FROM fetch_log
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []FetchLogEntry
	for rows.Next() {
		var e FetchLogEntry
		if err := rows.Scan(&e.ID, &e.StartedAt, &e.CompletedAt, &e.Latitude, &e.Longitude, &e.DisplayName, &e.Source, &e.Status, &e.Error); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
