package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-01-10")
	require.NoError(t, err)
	assert.Equal(t, 2025, d.Year)
	assert.Equal(t, time.January, d.Month)
	assert.Equal(t, 10, d.Day)

	_, err = ParseDate("10/01/2025")
	assert.Error(t, err)
	_, err = ParseDate("")
	assert.Error(t, err)
}

func TestDateOrderingAndArithmetic(t *testing.T) {
	a, err := ParseDate("2025-01-10")
	require.NoError(t, err)
	b := a.AddDays(1)

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.False(t, a.Before(a))

	end := a.AddDays(6)
	assert.Equal(t, "2025-01-16", end.String())

	// month rollover
	eom, err := ParseDate("2025-01-31")
	require.NoError(t, err)
	assert.Equal(t, "2025-02-01", eom.AddDays(1).String())
}

func TestDateJSONRoundTrip(t *testing.T) {
	d, err := ParseDate("2025-06-30")
	require.NoError(t, err)

	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-06-30"`, string(raw))

	var back Date
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, d, back)

	assert.Error(t, json.Unmarshal([]byte(`"not-a-date"`), &back))
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2025, 3, 5, 13, 45, 0, 0, time.UTC)))
	assert.Equal(t, "2025-03-05", d.String())

	require.NoError(t, d.Scan("2025-03-06"))
	assert.Equal(t, "2025-03-06", d.String())

	// sqlite may hand back a full timestamp string
	require.NoError(t, d.Scan("2025-03-07T00:00:00Z"))
	assert.Equal(t, "2025-03-07", d.String())

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	assert.Error(t, d.Scan(42))
}

func TestDateOfUsesLocalCalendarDay(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*3600)
	late := time.Date(2025, 3, 5, 23, 30, 0, 0, loc)
	assert.Equal(t, "2025-03-05", DateOf(late).String())
}
