package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDateJSON(t *testing.T) {
	d := NewDate(2024, time.March, 7)

	out, err := json.Marshal(d)
	require.NoError(t, err)
	require.Equal(t, `"2024-03-07"`, string(out))

	var back Date
	require.NoError(t, json.Unmarshal(out, &back))
	require.True(t, back.Equal(d.Time))

	var bad Date
	require.Error(t, json.Unmarshal([]byte(`"07.03.2024"`), &bad))
}

func TestDateSQLValue(t *testing.T) {
	d := NewDate(2024, time.March, 7)
	v, err := d.Value()
	require.NoError(t, err)
	require.Equal(t, "2024-03-07", v, "stored as a comparable string")

	v, err = (Date{}).Value()
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestDateScan(t *testing.T) {
	var d Date

	require.NoError(t, d.Scan("2024-03-07"))
	require.Equal(t, "2024-03-07", d.String())

	require.NoError(t, d.Scan([]byte("2024-03-07")))
	require.Equal(t, "2024-03-07", d.String())

	// timestamps keep only the date part
	require.NoError(t, d.Scan("2024-03-07 15:04:05"))
	require.Equal(t, "2024-03-07", d.String())

	require.NoError(t, d.Scan(time.Date(2024, time.March, 7, 23, 59, 0, 0, time.UTC)))
	require.Equal(t, "2024-03-07", d.String())

	require.NoError(t, d.Scan(nil))
	require.True(t, d.IsZero())

	require.Error(t, d.Scan(42))
}

func TestToday(t *testing.T) {
	d := Today()
	require.Zero(t, d.Hour())
	require.Zero(t, d.Minute())
	require.Equal(t, time.UTC, d.Location())
}
