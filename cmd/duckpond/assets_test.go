package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDuckMesh(t *testing.T) {
	m := newDuckMesh()
	assert.Len(t, m.vertices, 3+16+12+6)
	assert.Len(t, m.indices, 3*(16+12+6))
	for _, i := range m.indices {
		assert.Less(t, int(i), len(m.vertices))
	}

	// The head sits toward the nose, which points along -x.
	var minX float64
	for _, v := range m.vertices {
		minX = min(minX, v.pos.X())
		assert.GreaterOrEqual(t, v.u, float32(0))
		assert.Less(t, v.u, float32(textureSize))
	}
	assert.Less(t, minX, -1.0)
}
