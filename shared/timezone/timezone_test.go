package timezone_test

import (
	"testing"
	"time"

	"kingdom/shared/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	t.Cleanup(func() { _ = timezone.Init("UTC") })

	t.Run("known zone", func(t *testing.T) {
		require.NoError(t, timezone.Init("Africa/Nairobi"))
		assert.Equal(t, "Africa/Nairobi", timezone.Location().String())
	})

	t.Run("empty name selects UTC", func(t *testing.T) {
		require.NoError(t, timezone.Init(""))
		assert.Equal(t, time.UTC, timezone.Location())
	})

	t.Run("unknown zone falls back to UTC", func(t *testing.T) {
		assert.Error(t, timezone.Init("Mars/Olympus"))
		assert.Equal(t, time.UTC, timezone.Location())
	})
}

func TestParseAndFormat(t *testing.T) {
	require.NoError(t, timezone.Init("Africa/Nairobi"))
	t.Cleanup(func() { _ = timezone.Init("UTC") })

	parsed, err := timezone.Parse("2006-01-02", "2025-03-01")
	require.NoError(t, err)
	assert.Equal(t, "2025-02-28T21:00:00Z", parsed.UTC().Format(time.RFC3339))

	utc := time.Date(2025, 3, 1, 21, 30, 0, 0, time.UTC)
	assert.Equal(t, "2025-03-02 00:30", timezone.Format(utc, "2006-01-02 15:04"))
	assert.Equal(t, timezone.Location(), timezone.Now().Location())

	_, err = timezone.Parse("2006-01-02", "01/03/2025")
	assert.Error(t, err)
}
