package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateTime(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "local date-time",
			input: "2025-11-15T10:00:00",
			want:  time.Date(2025, 11, 15, 10, 0, 0, 0, time.UTC),
		},
		{
			name:  "without seconds",
			input: "2025-11-15T10:00",
			want:  time.Date(2025, 11, 15, 10, 0, 0, 0, time.UTC),
		},
		{
			name:  "fractional seconds",
			input: "2025-11-15T10:00:00.250",
			want:  time.Date(2025, 11, 15, 10, 0, 0, 250_000_000, time.UTC),
		},
		{
			name:  "offset is normalized to UTC",
			input: "2025-11-15T10:00:00+03:00",
			want:  time.Date(2025, 11, 15, 7, 0, 0, 0, time.UTC),
		},
		{
			name:  "zulu",
			input: "2025-11-15T10:00:00Z",
			want:  time.Date(2025, 11, 15, 10, 0, 0, 0, time.UTC),
		},
		{name: "empty", input: "   ", wantErr: true},
		{name: "date only", input: "2025-11-15", wantErr: true},
		{name: "garbage", input: "tomorrow", wantErr: true},
		{name: "zero instant", input: "0001-01-01T00:00:00", wantErr: true},
		{name: "zero instant zulu", input: "0001-01-01T00:00:00Z", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDateTime(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidDateTime)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got.Time()), "got %s", got)
		})
	}
}

func TestDateTime_JSON(t *testing.T) {
	var payload struct {
		StartDate DateTime `json:"startDate"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"startDate":"2025-11-15T10:00:00"}`), &payload))
	assert.Equal(t, "2025-11-15T10:00:00", payload.StartDate.String())

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"startDate":"2025-11-15T10:00:00"}`, string(out))

	err = json.Unmarshal([]byte(`{"startDate":"not a date"}`), &payload)
	assert.ErrorIs(t, err, ErrInvalidDateTime)
}

func TestDateTime_ScanValue(t *testing.T) {
	var d DateTime

	require.NoError(t, d.Scan(time.Date(2025, 11, 15, 10, 0, 0, 0, time.FixedZone("", 0))))
	assert.Equal(t, "2025-11-15T10:00:00", d.String())

	require.NoError(t, d.Scan([]byte("2025-11-15 12:30:00")))
	assert.Equal(t, "2025-11-15T12:30:00", d.String())

	v, err := d.Value()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 11, 15, 12, 30, 0, 0, time.UTC), v)

	assert.Error(t, d.Scan(42))
}
