package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateRunIDFormat(t *testing.T) {
	id := GenerateRunID("run", "/var/tmbuild/out/tm.db", 4021)
	parts := strings.Split(id, "-")
	assert.Equal(t, "run", parts[0])
	assert.Equal(t, "tm", parts[1])
	assert.Equal(t, "4021", parts[2])
	assert.Len(t, parts[3], 8)
}

func TestGenerateRunIDDistinctAcrossCalls(t *testing.T) {
	a := GenerateRunID("run", "/data/tm.db", 1)
	b := GenerateRunID("run", "/data/tm.db", 1)
	assert.NotEqual(t, a, b)
}

func TestPathStemStripsExtension(t *testing.T) {
	assert.Equal(t, "tm", pathStem("/var/tmbuild/out/tm.db"))
	assert.Equal(t, "graphs", pathStem("graphs"))
}
