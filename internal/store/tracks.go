package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/franz/trackbench/internal/util"
	"github.com/jmoiron/sqlx"
)

// Track represents one row of the tracks table. Every field is nullable.
type Track struct {
	Artist           sql.NullString  `db:"artist"`
	TrackName        sql.NullString  `db:"track"`
	Album            sql.NullString  `db:"album"`
	AlbumType        sql.NullString  `db:"album_type"`
	Danceability     sql.NullFloat64 `db:"danceability"`
	Energy           sql.NullFloat64 `db:"energy"`
	Loudness         sql.NullFloat64 `db:"loudness"`
	Speechiness      sql.NullFloat64 `db:"speechiness"`
	Acousticness     sql.NullFloat64 `db:"acousticness"`
	Instrumentalness sql.NullFloat64 `db:"instrumentalness"`
	Liveness         sql.NullFloat64 `db:"liveness"`
	Valence          sql.NullFloat64 `db:"valence"`
	Tempo            sql.NullFloat64 `db:"tempo"`
	DurationMin      sql.NullFloat64 `db:"duration_min"`
	Views            sql.NullFloat64 `db:"views"`
	Likes            sql.NullFloat64 `db:"likes"`
	Comments         sql.NullFloat64 `db:"comments"`
	Stream           sql.NullFloat64 `db:"stream"`
	Licensed         sql.NullBool    `db:"licensed"`
	OfficialVideo    sql.NullBool    `db:"official_video"`
	EnergyLiveness   sql.NullFloat64 `db:"energy_liveness"`
	MostPlayedOn     sql.NullString  `db:"most_played_on"`
}

// Provision drops the tracks table if present and recreates it empty.
// The drop and create run in one transaction so a failure leaves the
// previous table intact. Idempotent: repeated calls always end with the
// same empty table.
func (s *Store) Provision(ctx context.Context) error {
	err := s.Transaction(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS tracks"); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, schemaTracks)
		return err
	})
	if err != nil {
		return &util.SchemaError{Detail: "provision tracks", Err: err}
	}
	return nil
}

// InsertTrack inserts a single track row
func (s *Store) InsertTrack(ctx context.Context, t *Track) error {
	_, err := s.db.ExecContext(ctx, insertTrackSQL,
		t.Artist, t.TrackName, t.Album, t.AlbumType,
		t.Danceability, t.Energy, t.Loudness, t.Speechiness,
		t.Acousticness, t.Instrumentalness, t.Liveness, t.Valence,
		t.Tempo, t.DurationMin,
		t.Views, t.Likes, t.Comments, t.Stream,
		t.Licensed, t.OfficialVideo,
		t.EnergyLiveness, t.MostPlayedOn,
	)
	if err != nil {
		return fmt.Errorf("failed to insert track: %w", err)
	}
	return nil
}

var insertTrackSQL = fmt.Sprintf(
	"INSERT INTO tracks (%s) VALUES (%s)",
	strings.Join(TrackColumns, ", "),
	strings.TrimSuffix(strings.Repeat("?, ", len(TrackColumns)), ", "),
)

// CountTracks returns the number of rows in the tracks table
func (s *Store) CountTracks(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM tracks"); err != nil {
		return 0, fmt.Errorf("failed to count tracks: %w", err)
	}
	return n, nil
}

// Columns returns the column names of the tracks table in declared order
func (s *Store) Columns(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "PRAGMA table_info(tracks)")
	if err != nil {
		return nil, fmt.Errorf("failed to read table info: %w", err)
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var cid, notNull, pk int
		var name, colType string
		var dflt sql.NullString
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dflt, &pk); err != nil {
			return nil, fmt.Errorf("failed to scan table info: %w", err)
		}
		cols = append(cols, name)
	}
	return cols, rows.Err()
}

// HasColumn reports whether the tracks table has the named column
func (s *Store) HasColumn(ctx context.Context, name string) (bool, error) {
	cols, err := s.Columns(ctx)
	if err != nil {
		return false, err
	}
	for _, c := range cols {
		if c == name {
			return true, nil
		}
	}
	return false, nil
}

// Indexes returns the names of indexes on the tracks table
func (s *Store) Indexes(ctx context.Context) ([]string, error) {
	var names []string
	err := s.db.SelectContext(ctx, &names, `
		SELECT name FROM sqlite_master
		WHERE type = 'index' AND tbl_name = 'tracks'
		AND name NOT LIKE 'sqlite_%'
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list indexes: %w", err)
	}
	return names, nil
}

// HasIndex reports whether an index with the given name exists
func (s *Store) HasIndex(ctx context.Context, name string) (bool, error) {
	var count int
	err := s.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM sqlite_master
		WHERE type = 'index' AND name = ?
	`, name)
	if err != nil {
		return false, fmt.Errorf("failed to check index: %w", err)
	}
	return count > 0, nil
}
