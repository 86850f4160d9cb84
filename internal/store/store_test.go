package store

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/agri-weather-dashboard/internal/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := Open(":memory:", logger)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})
	require.NoError(t, s.EnsureSchema(context.Background()))
	return s
}

func TestEnsureSchema_Idempotent(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.EnsureSchema(context.Background()))

	n, err := s.CountForecasts(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestInsertAndListForecasts(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	records := []domain.ForecastRecord{
		{Location: "Taipei City", MinTemp: 18.5, MaxTemp: 24.0, Description: "Cloudy"},
		{Location: "Tainan City", MinTemp: 21.0, MaxTemp: 28.5, Description: "Sunny"},
	}
	require.NoError(t, s.InsertForecasts(ctx, records))

	n, err := s.CountForecasts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	stored, err := s.ListForecasts(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 2)

	assert.Equal(t, int64(1), stored[0].ID)
	assert.Equal(t, "Taipei City", stored[0].Location)
	assert.Equal(t, 18.5, stored[0].MinTemp)
	assert.Equal(t, 24.0, stored[0].MaxTemp)
	assert.Equal(t, "Cloudy", stored[0].Description)

	assert.Equal(t, int64(2), stored[1].ID)
	assert.Equal(t, "Tainan City", stored[1].Location)
}

func TestListForecasts_OrderedByID(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.InsertForecasts(ctx, []domain.ForecastRecord{
		{Location: "Yilan County"},
		{Location: "Chiayi City"},
		{Location: "Penghu County"},
	}))

	stored, err := s.ListForecasts(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 3)
	assert.Equal(t, "Yilan County", stored[0].Location)
	assert.Equal(t, "Chiayi City", stored[1].Location)
	assert.Equal(t, "Penghu County", stored[2].Location)
}

func TestVersion_TracksRowCount(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	v0, err := s.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), v0.Rows)

	require.NoError(t, s.InsertForecasts(ctx, []domain.ForecastRecord{{Location: "Taipei City"}}))

	v1, err := s.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v1.Rows)
	assert.NotEqual(t, v0, v1)
}

func TestOpen_CreatesParentDirectory(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	path := filepath.Join(t.TempDir(), "nested", "weather.db")

	s, err := Open(path, logger)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.EnsureSchema(context.Background()))

	v, err := s.Version(context.Background())
	require.NoError(t, err)
	assert.False(t, v.ModTime.IsZero())
}
