package value_objects_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/felixgeelhaar/taskflow/internal/tracking/domain/value_objects"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := value_objects.ParseDate("2025-01-15")
	require.NoError(t, err)
	assert.Equal(t, value_objects.NewDate(2025, time.January, 15), d)

	d, err = value_objects.ParseDate("2025-01-15T23:30:00-05:00")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-15", d.String(), "uses the timestamp's own offset")

	_, err = value_objects.ParseDate("15/01/2025")
	assert.ErrorIs(t, err, value_objects.ErrInvalidDate)
}

func TestDateOf_IgnoresTimeOfDay(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	late := time.Date(2025, 1, 15, 23, 59, 59, 0, tokyo)
	early := time.Date(2025, 1, 15, 0, 0, 0, 0, tokyo)

	assert.True(t, value_objects.DateOf(late).Equal(value_objects.DateOf(early)))
	// The same instant seen from UTC is the previous day.
	assert.Equal(t, "2025-01-14", value_objects.DateOf(early.UTC()).String())
}

func TestDate_Arithmetic(t *testing.T) {
	d := value_objects.NewDate(2025, time.January, 31)

	assert.Equal(t, "2025-02-01", d.AddDays(1).String())
	assert.Equal(t, "2025-01-30", d.AddDays(-1).String())
	assert.Equal(t, "2025-02-01", d.AddMonths(1).String())
	assert.Equal(t, "2024-12-01", d.AddMonths(-1).String())
	assert.Equal(t, "2025-01-01", d.FirstOfMonth().String())
	assert.Equal(t, "2024-02-29", value_objects.NewDate(2024, time.February, 10).LastOfMonth().String())
	assert.Equal(t, time.Friday, d.Weekday())
}

func TestDate_DaysUntil(t *testing.T) {
	today := value_objects.NewDate(2025, time.March, 8)

	assert.Equal(t, 0, today.DaysUntil(today))
	assert.Equal(t, 2, today.DaysUntil(value_objects.NewDate(2025, time.March, 10)))
	assert.Equal(t, -8, today.DaysUntil(value_objects.NewDate(2025, time.February, 28)))
}

func TestDate_DaysUntil_FarDates(t *testing.T) {
	today := value_objects.NewDate(2025, time.January, 1)

	assert.Equal(t, 365242, today.DaysUntil(value_objects.NewDate(3025, time.January, 1)))
	assert.Equal(t, -365242, value_objects.NewDate(3025, time.January, 1).DaysUntil(today))
	assert.Equal(t, 2921940, value_objects.NewDate(1, time.January, 1).DaysUntil(value_objects.NewDate(8001, time.January, 1)))
}

func TestDate_Compare(t *testing.T) {
	a := value_objects.NewDate(2024, time.December, 31)
	b := value_objects.NewDate(2025, time.January, 1)

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.Equal(t, 0, a.Compare(a))
	assert.False(t, a.Equal(b))
}

func TestDate_ZeroAndText(t *testing.T) {
	var zero value_objects.Date
	assert.True(t, zero.IsZero())
	assert.Equal(t, "", zero.String())

	type wrapper struct {
		Due value_objects.Date `json:"due"`
	}
	data, err := json.Marshal(wrapper{Due: value_objects.NewDate(2025, time.January, 5)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"due":"2025-01-05"}`, string(data))

	var decoded wrapper
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, value_objects.NewDate(2025, time.January, 5), decoded.Due)
}

func TestDate_In(t *testing.T) {
	loc := time.FixedZone("UTC-3", -3*60*60)
	start := value_objects.NewDate(2025, time.January, 5).In(loc)

	assert.Equal(t, 0, start.Hour())
	assert.Equal(t, loc, start.Location())
}
