package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUUIDGenerator_GeneratesValidDistinctIDs(t *testing.T) {
	g := NewUUIDGenerator()

	a, b := g.Generate(), g.Generate()
	assert.True(t, IsUUID(a))
	assert.True(t, IsUUID(b))
	assert.NotEqual(t, a, b)
}

func TestIsUUID(t *testing.T) {
	assert.True(t, IsUUID("7f1c1f0e-3a4b-4c5d-8e9f-0a1b2c3d4e5f"))
	assert.False(t, IsUUID(""))
	assert.False(t, IsUUID("p2"))
	assert.False(t, IsUUID("{7f1c1f0e-3a4b-4c5d-8e9f-0a1b2c3d4e5f}"))
	assert.False(t, IsUUID("7f1c1f0e3a4b4c5d8e9f0a1b2c3d4e5f"))
}
