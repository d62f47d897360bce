package storage

import (
	"context"
	"math"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"device-catalog/models"
	"device-catalog/utils"
)

func TestPostgresStoreRoundTrip(t *testing.T) {
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("Skipping integration test: TEST_POSTGRES_DSN not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := NewPostgresStore(ctx, dsn, &utils.RetryConfig{MaxAttempts: 2, BaseDelay: time.Second})
	require.NoError(t, err)
	defer store.Close()

	first := sampleDevice()
	second := sampleDevice()
	second.ID = 8
	second.Model = "iPhone 15 Plus"
	second.RAM = math.NaN()

	snap := models.NewSnapshot("test", []models.Device{first, second})
	require.NoError(t, store.Sync(ctx, snap))

	got, err := store.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, first, got[0])
	assert.Equal(t, "iPhone 15 Plus", got[1].Model)
	assert.True(t, math.IsNaN(got[1].RAM), "NULL should come back as NaN")
}

func TestNullableMapping(t *testing.T) {
	assert.False(t, nullable(math.NaN()).Valid)
	assert.Equal(t, 12.5, nullable(12.5).Float64)
	assert.True(t, math.IsNaN(fromNullable(nullable(math.NaN()))))
	assert.Equal(t, 3.0, fromNullable(nullable(3)))
}
