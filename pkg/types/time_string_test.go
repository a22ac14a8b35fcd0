package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "plain", input: "09:30", want: "09:30"},
		{name: "postgres time column", input: "14:00:00", want: "14:00"},
		{name: "midnight", input: "00:00", want: "00:00"},
		{name: "hour out of range", input: "24:00", wantErr: true},
		{name: "minute out of range", input: "10:60", wantErr: true},
		{name: "no leading zero", input: "9:30", wantErr: true},
		{name: "garbage", input: "noon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestTimeString_Compare(t *testing.T) {
	start := MustTimeString("10:00")
	end := MustTimeString("11:00")

	assert.True(t, start.IsBefore(end))
	assert.True(t, end.IsAfter(start))
	assert.True(t, start.Equal(MustTimeString("10:00")))
	assert.False(t, start.IsZero())
	assert.True(t, TimeString{}.IsZero())
}

func TestTimeString_AddMinutes(t *testing.T) {
	got, err := MustTimeString("10:45").AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, "11:15", got.String())

	_, err = MustTimeString("23:30").AddMinutes(45)
	assert.ErrorIs(t, err, ErrTimeOverflow)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan([]byte("08:15:00")))
	assert.Equal(t, "08:15", ts.String())

	require.NoError(t, ts.Scan(time.Date(0, 1, 1, 17, 5, 0, 0, time.UTC)))
	assert.Equal(t, "17:05", ts.String())

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}

func TestTimeString_JSON(t *testing.T) {
	text, err := MustTimeString("07:05").MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "07:05", string(text))

	var parsed TimeString
	require.NoError(t, parsed.UnmarshalText([]byte("18:20")))
	assert.Equal(t, 18*60+20, parsed.Minutes())
}
