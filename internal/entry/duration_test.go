package entry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{in: "1h30m", want: 90 * time.Minute},
		{in: "30", want: 30 * time.Second},
		{in: "1 day", want: 24 * time.Hour},
		{in: "2 hours 30 minutes", want: 150 * time.Minute},
		{in: "1 week and 2 days", want: 9 * 24 * time.Hour},
		{in: "1 hour, 5 mins", want: 65 * time.Minute},
		{in: "1.5 hours", want: 90 * time.Minute},
		{in: "3 Weeks", want: 21 * 24 * time.Hour},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseDuration(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseDuration_Invalid(t *testing.T) {
	for _, in := range []string{"", "  ", "soon", "1 fortnight", "5 minutes ago", "-5h", "-1 day", "9999999999999 years", "300000 years"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseDuration(in)
			assert.Error(t, err)
		})
	}
}
