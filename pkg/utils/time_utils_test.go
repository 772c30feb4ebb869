package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStartOfMonth(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)

	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"mid month", time.Date(2024, time.March, 15, 9, 30, 0, 0, time.UTC), time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)},
		{"first instant", time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)},
		{"leap day", time.Date(2024, time.February, 29, 23, 59, 59, 0, time.UTC), time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)},
		{"non-UTC input uses UTC month", time.Date(2024, time.April, 1, 3, 0, 0, 0, tokyo), time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StartOfMonth(tt.in)
			assert.True(t, tt.want.Equal(got), "got %s", got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestFormatTimestamp(t *testing.T) {
	assert.Empty(t, FormatTimestamp(nil))

	ts := time.Date(2024, time.February, 3, 4, 5, 6, 0, time.FixedZone("X", 3600))
	assert.Equal(t, "2024-02-03 03:05:06", FormatTimestamp(&ts))
}

func TestRegionDescriptiveName(t *testing.T) {
	name, ok := GetRegionDescriptiveName("eu-west-1")
	assert.True(t, ok)
	assert.Equal(t, "EU (Ireland)", name)

	name, ok = GetRegionDescriptiveName("nowhere-1")
	assert.False(t, ok)
	assert.Empty(t, name)
	assert.True(t, IsValidRegion("ap-northeast-2"))
	assert.False(t, IsValidRegion("nowhere-1"))
}
