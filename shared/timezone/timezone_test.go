package timezone_test

import (
	"drivingschool/shared/timezone"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNow(t *testing.T) {
	now := timezone.Now()

	assert.False(t, now.IsZero())
	assert.Equal(t, timezone.GetLocation(), now.Location())
}

func TestToAppTime(t *testing.T) {
	lessonStart := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	converted := timezone.ToAppTime(lessonStart)

	assert.True(t, lessonStart.Equal(converted))
	assert.Equal(t, timezone.GetLocation(), converted.Location())
}

func TestParseAndFormat(t *testing.T) {
	parsed, err := timezone.Parse(time.DateTime, "2025-03-14 09:30:00")
	require.NoError(t, err)
	assert.Equal(t, timezone.GetLocation(), parsed.Location())
	assert.Equal(t, "2025-03-14 09:30:00", timezone.Format(parsed, time.DateTime))

	_, err = timezone.Parse(time.DateOnly, "14/03/2025")
	assert.Error(t, err)
}
