package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMinuteOfDay(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:00", 540, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"-1:30", 0, true},
		{"0900", 0, true},
		{"nine", 0, true},
		{"", 0, true},
	}

	for _, test := range tests {
		got, err := ParseMinuteOfDay(test.input)
		if test.wantErr {
			assert.Errorf(t, err, "input %q", test.input)
		} else {
			require.NoErrorf(t, err, "input %q", test.input)
			assert.Equalf(t, test.want, got, "input %q", test.input)
		}
	}
}

func TestFormatMinuteOfDay(t *testing.T) {
	assert.Equal(t, "09:05", FormatMinuteOfDay(545))
	assert.Equal(t, "00:00", FormatMinuteOfDay(0))
	assert.Equal(t, "17:00", FormatMinuteOfDay(1020))
}
