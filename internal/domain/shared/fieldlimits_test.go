package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateUnderLimit(t *testing.T) {
	kept, tail := Truncate("short", 10)
	assert.Equal(t, "short", kept)
	assert.Empty(t, tail)
}

func TestTruncateOverLimit(t *testing.T) {
	kept, tail := Truncate("abcdefghij", 5)
	assert.Equal(t, "abcde", kept)
	assert.Equal(t, "fghij", tail)
}

func TestFieldLimitsHasWaypointLabel(t *testing.T) {
	limit, ok := FieldLimits["waypoint.label"]
	assert.True(t, ok)
	assert.Equal(t, 45, limit)
}
