package catalog

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/franz/trackbench/internal/store"
	"github.com/franz/trackbench/internal/util"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	require.NoError(t, st.Provision(context.Background()))
	return st.DB()
}

// insert adds a tracks row with just the given columns set
func insert(t *testing.T, db *sqlx.DB, cols map[string]any) {
	t.Helper()
	names := make([]string, 0, len(cols))
	marks := make([]string, 0, len(cols))
	args := make([]any, 0, len(cols))
	for name, value := range cols {
		names = append(names, name)
		marks = append(marks, "?")
		args = append(args, value)
	}
	query := fmt.Sprintf("INSERT INTO tracks (%s) VALUES (%s)",
		strings.Join(names, ", "), strings.Join(marks, ", "))
	_, err := db.Exec(query, args...)
	require.NoError(t, err)
}

func mustGet(t *testing.T, name string) Entry {
	t.Helper()
	entry, err := Get(name)
	require.NoError(t, err)
	return entry
}

func TestTopTracksPerArtist(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	// Artist A has four tracks; only the three most viewed may appear
	insert(t, db, map[string]any{"artist": "A", "track": "a1", "views": 400.0})
	insert(t, db, map[string]any{"artist": "A", "track": "a2", "views": 300.0})
	insert(t, db, map[string]any{"artist": "A", "track": "a3", "views": 100.0})
	insert(t, db, map[string]any{"artist": "A", "track": "a4", "views": 50.0})
	insert(t, db, map[string]any{"artist": "B", "track": "b1", "views": 10.0})
	insert(t, db, map[string]any{"artist": "B", "track": "b2", "views": 20.0})

	result, err := Run(ctx, db, mustGet(t, "top-tracks-per-artist"))
	require.NoError(t, err)
	require.Equal(t, []string{"artist", "track", "views"}, result.Columns)

	perArtist := map[string][]float64{}
	for _, row := range result.Rows {
		perArtist[row[0].(string)] = append(perArtist[row[0].(string)], row[2].(float64))
	}

	// At most three rows per artist, and each kept row dominates every
	// dropped row of the same artist
	assert.Equal(t, []float64{400, 300, 100}, perArtist["A"])
	assert.Equal(t, []float64{20, 10}, perArtist["B"])
}

func TestTopTrackPerArtistExample(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	insert(t, db, map[string]any{"artist": "A", "track": "big", "views": 300.0})
	insert(t, db, map[string]any{"artist": "A", "track": "mid", "views": 100.0})
	insert(t, db, map[string]any{"artist": "A", "track": "small", "views": 50.0})

	result, err := Run(ctx, db, mustGet(t, "top-tracks-per-artist"))
	require.NoError(t, err)
	require.NotEmpty(t, result.Rows)

	// The first row for the artist is the single most-viewed track
	assert.Equal(t, "big", result.Rows[0][1])
	assert.Equal(t, 300.0, result.Rows[0][2])
}

func TestAboveAverageLiveness(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	// liveness 1, 2, 3: mean is 2, so only the 3 row qualifies
	insert(t, db, map[string]any{"artist": "A", "track": "t1", "liveness": 1.0})
	insert(t, db, map[string]any{"artist": "A", "track": "t2", "liveness": 2.0})
	insert(t, db, map[string]any{"artist": "A", "track": "t3", "liveness": 3.0})

	result, err := Run(ctx, db, mustGet(t, "above-average-liveness"))
	require.NoError(t, err)

	require.Len(t, result.Rows, 1)
	assert.Equal(t, "t3", result.Rows[0][1])
	assert.Equal(t, 3.0, result.Rows[0][2])
}

func TestEnergyLivenessRatio(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	// Zero and NULL liveness must be excluded, not faulted on
	insert(t, db, map[string]any{"track": "zero", "energy": 0.9, "liveness": 0.0})
	insert(t, db, map[string]any{"track": "null", "energy": 0.9})
	insert(t, db, map[string]any{"track": "high", "energy": 0.8, "liveness": 0.2})
	insert(t, db, map[string]any{"track": "low", "energy": 0.3, "liveness": 0.3})

	result, err := Run(ctx, db, mustGet(t, "energy-liveness-ratio"))
	require.NoError(t, err)

	require.Len(t, result.Rows, 1)
	assert.Equal(t, "high", result.Rows[0][1])
	assert.Greater(t, result.Rows[0][2].(float64), 1.2)
}

func TestCumulativeLikes(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	insert(t, db, map[string]any{"track": "t1", "views": 10.0, "likes": 5.0})
	insert(t, db, map[string]any{"track": "t2", "views": 20.0, "likes": 7.0})
	insert(t, db, map[string]any{"track": "t3", "views": 30.0, "likes": 9.0})

	result, err := Run(ctx, db, mustGet(t, "cumulative-likes"))
	require.NoError(t, err)
	require.Len(t, result.Rows, 3)

	// Prefix sums are non-decreasing and end at the grand total
	var prev float64
	for _, row := range result.Rows {
		sum := row[2].(float64)
		assert.GreaterOrEqual(t, sum, prev)
		prev = sum
	}
	assert.Equal(t, 21.0, prev)
}

func TestQueriesArePureReads(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	insert(t, db, map[string]any{
		"artist": "A", "track": "t1", "album": "X", "album_type": "single",
		"views": 100.0, "likes": 10.0, "liveness": 0.2, "energy": 0.8,
		"danceability": 0.5, "duration_min": 3.5, "licensed": 1,
		"official_video": 1, "most_played_on": "Spotify",
	})
	insert(t, db, map[string]any{
		"artist": "B", "track": "t2", "album": "Y", "album_type": "album",
		"views": 200.0, "likes": 20.0, "liveness": 0.4, "energy": 0.6,
		"danceability": 0.7, "duration_min": 4.1, "licensed": 0,
		"official_video": 0, "most_played_on": "Youtube",
	})

	for entry := range List("") {
		first, err := Run(ctx, db, entry)
		require.NoError(t, err, "entry %s", entry.Name)
		second, err := Run(ctx, db, entry)
		require.NoError(t, err, "entry %s", entry.Name)

		assert.Equal(t, first, second, "entry %s is not a pure read", entry.Name)
	}
}

func TestRunBadSQL(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	bad := Entry{Name: "bad", Tier: TierEasy, SQL: "SELECT popularity FROM tracks"}
	_, err := Run(ctx, db, bad)
	require.Error(t, err)

	var queryErr *util.QueryError
	require.True(t, errors.As(err, &queryErr))
	assert.Equal(t, "bad", queryErr.Entry)
}

func TestRunEngineFailure(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	mock.ExpectQuery("SELECT").WillReturnError(errors.New("engine gone"))

	db := sqlx.NewDb(mockDB, "sqlmock")
	entry := Entry{Name: "track-listing", SQL: "SELECT artist FROM tracks"}

	_, err = Run(context.Background(), db, entry)
	require.Error(t, err)

	var queryErr *util.QueryError
	require.True(t, errors.As(err, &queryErr))
	assert.Equal(t, "track-listing", queryErr.Entry)
}
