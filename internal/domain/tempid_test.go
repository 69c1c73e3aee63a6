package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTempID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewTempID()
		assert.True(t, strings.HasPrefix(id, TempIDPrefix))
		assert.False(t, seen[id], "temp ids must be unique")
		seen[id] = true
	}
}

func TestIsTempID(t *testing.T) {
	assert.True(t, IsTempID(NewTempID()))
	assert.False(t, IsTempID("task-1"))
	assert.False(t, IsTempID(""))
	// Server ids never carry the prefix, so a bare prefix is local.
	assert.True(t, IsTempID("tmp-"))
}
