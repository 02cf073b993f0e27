package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReminderTime(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		raw     string
		want    time.Time
		wantErr bool
	}{
		{
			name: "later today",
			raw:  "14:30",
			want: time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC),
		},
		{
			name: "already past rolls to tomorrow",
			raw:  "08:15",
			want: time.Date(2026, 3, 11, 8, 15, 0, 0, time.UTC),
		},
		{
			name: "exact current minute rolls forward",
			raw:  "09:00",
			want: time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC),
		},
		{name: "missing colon", raw: "1430", wantErr: true},
		{name: "hour out of range", raw: "24:00", wantErr: true},
		{name: "minute out of range", raw: "12:60", wantErr: true},
		{name: "not numeric", raw: "ab:cd", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseReminderTime(tc.raw, now)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tc.want.Equal(got), "want %v got %v", tc.want, got)
		})
	}
}
