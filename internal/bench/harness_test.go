package bench

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/franz/trackbench/internal/catalog"
	"github.com/franz/trackbench/internal/store"
	"github.com/franz/trackbench/internal/util"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	ctx := context.Background()
	require.NoError(t, st.Provision(ctx))

	for i := 0; i < 200; i++ {
		_, err := st.DB().ExecContext(ctx, `
			INSERT INTO tracks (artist, track, views, likes, liveness, energy)
			VALUES (?, ?, ?, ?, ?, ?)
		`, fmt.Sprintf("artist-%d", i%20), fmt.Sprintf("track-%d", i),
			float64(i*13%997), float64(i), 0.1+float64(i%9)/10, 0.5)
		require.NoError(t, err)
	}
	return st
}

func mustGet(t *testing.T, name string) catalog.Entry {
	t.Helper()
	entry, err := catalog.Get(name)
	require.NoError(t, err)
	return entry
}

func TestMeasure(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	m, err := Measure(ctx, st, mustGet(t, "top-tracks-per-artist"))
	require.NoError(t, err)

	assert.Greater(t, m.PlanningMS, 0.0)
	assert.Greater(t, m.ExecutionMS, 0.0)
	assert.NotEmpty(t, m.Plan)
}

func TestMeasureDoesNotMutate(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	before, err := st.CountTracks(ctx)
	require.NoError(t, err)
	indexesBefore, err := st.Indexes(ctx)
	require.NoError(t, err)

	_, err = Measure(ctx, st, mustGet(t, "artist-total-views"))
	require.NoError(t, err)

	after, err := st.CountTracks(ctx)
	require.NoError(t, err)
	indexesAfter, err := st.Indexes(ctx)
	require.NoError(t, err)

	assert.Equal(t, before, after)
	assert.Equal(t, indexesBefore, indexesAfter)
}

func TestApplyIndex(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	created, name, err := ApplyIndex(ctx, st, "views")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "idx_tracks_views", name)

	ok, err := st.HasIndex(ctx, name)
	require.NoError(t, err)
	assert.True(t, ok)

	// Second application is an explicit skip, not a duplicate index
	created, name, err = ApplyIndex(ctx, st, "views")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "idx_tracks_views", name)

	indexes, err := st.Indexes(ctx)
	require.NoError(t, err)
	assert.Len(t, indexes, 1)
}

func TestApplyIndexMissingColumn(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	_, _, err := ApplyIndex(ctx, st, "popularity")
	require.Error(t, err)

	var idxErr *util.IndexError
	require.True(t, errors.As(err, &idxErr))
	assert.Equal(t, "popularity", idxErr.Column)
}

func TestCompare(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	entry := mustGet(t, "top-tracks-per-artist")

	c, err := Compare(ctx, st, entry, "views")
	require.NoError(t, err)

	_, err = uuid.Parse(c.ID)
	assert.NoError(t, err)
	assert.Equal(t, entry.Name, c.Entry)
	assert.Equal(t, "views", c.Column)
	assert.True(t, c.IndexCreated)
	assert.Greater(t, c.Baseline.ExecutionMS, 0.0)
	assert.Greater(t, c.Indexed.ExecutionMS, 0.0)
	assert.Greater(t, c.Speedup, 0.0)

	// On a fixture this small the timings are noise-dominated, so the
	// speed-up ratio itself is not asserted; that property only holds on
	// datasets large enough for the index to matter.

	// Re-running is safe and skips index creation
	again, err := Compare(ctx, st, entry, "views")
	require.NoError(t, err)
	assert.False(t, again.IndexCreated)
	assert.NotEqual(t, c.ID, again.ID)
}

func TestCompareMissingColumn(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	_, err := Compare(ctx, st, mustGet(t, "track-listing"), "popularity")
	require.Error(t, err)

	var idxErr *util.IndexError
	assert.True(t, errors.As(err, &idxErr))
}

func TestMeasureEngineFailure(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	mock.ExpectPrepare("SELECT").WillReturnError(errors.New("engine gone"))

	st := store.NewWithDB(sqlx.NewDb(mockDB, "sqlmock"))
	entry := catalog.Entry{Name: "track-listing", SQL: "SELECT artist FROM tracks"}

	_, err = Measure(context.Background(), st, entry)
	require.Error(t, err)

	var queryErr *util.QueryError
	require.True(t, errors.As(err, &queryErr))
	assert.Equal(t, "track-listing", queryErr.Entry)
}
