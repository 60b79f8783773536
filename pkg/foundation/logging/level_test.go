package logging

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelString(t *testing.T) {
	tests := []struct {
		level          Level
		expectedString string
	}{
		{DEBUG, "DEBUG"},
		{INFO, "INFO"},
		{NOTICE, "NOTICE"},
		{WARN, "WARN"},
		{ERROR, "ERROR"},
		{FATAL, "FATAL"},
		{Level(99), ""},
	}

	for i, tc := range tests {
		assert.Equal(t, tc.expectedString, tc.level.String(), "TEST[%d], Failed.\n", i)
	}
}

func TestLevelColor(t *testing.T) {
	tests := []struct {
		level         Level
		expectedColor uint
	}{
		{ERROR, 31},
		{FATAL, 31},
		{WARN, 33},
		{NOTICE, 33},
		{INFO, 36},
		{DEBUG, 36},
		{Level(99), 37},
	}

	for i, tc := range tests {
		assert.Equal(t, tc.expectedColor, tc.level.color(), "TEST[%d], Failed.\n", i)
	}
}

func TestGetLevelFromString(t *testing.T) {
	tests := []struct {
		desc  string
		input string
		level Level
	}{
		{"debug", "debug", DEBUG},
		{"info upper", "INFO", INFO},
		{"notice", "Notice", NOTICE},
		{"warn", "warn", WARN},
		{"error", "error", ERROR},
		{"fatal", "fatal", FATAL},
		{"unknown falls back to info", "verbose", INFO},
		{"empty falls back to info", "", INFO},
	}

	for i, tc := range tests {
		assert.Equal(t, tc.level, GetLevelFromString(tc.input), "TEST[%d], Failed.\n%s", i, tc.desc)
	}
}

func TestGetLevelFromString_RoundTrip(t *testing.T) {
	for l := DEBUG; l <= FATAL; l++ {
		assert.Equal(t, l, GetLevelFromString(l.String()), "TEST[%d], Failed.\n", l)
		assert.Equal(t, l, GetLevelFromString(strings.ToLower(l.String())), "TEST[%d], Failed.\n", l)
	}
}

func TestLevel_MarshalJSON(t *testing.T) {
	b, err := WARN.MarshalJSON()

	assert.NoError(t, err)
	assert.Equal(t, `"WARN"`, string(b))

	b, err = Level(0).MarshalJSON()

	assert.NoError(t, err)
	assert.Equal(t, `""`, string(b))
}
