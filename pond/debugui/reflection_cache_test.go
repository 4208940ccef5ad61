package debugui

import (
	"reflect"
	"testing"

	"github.com/plus3/duckpond/pond"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldNames(fields []FieldInfo) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}

func TestReflectionCachePose(t *testing.T) {
	rc := NewReflectionCache()
	fields := rc.Fields(reflect.TypeFor[pond.Pose]())
	require.Equal(t, []string{"Position", "Heading", "Scale"}, fieldNames(fields))
	for _, f := range fields {
		assert.True(t, f.Editable, f.Name)
	}
}

func TestReflectionCacheWander(t *testing.T) {
	rc := NewReflectionCache()
	fields := rc.Fields(reflect.TypeFor[pond.Wander]())
	require.Len(t, fields, 1)
	assert.Equal(t, "Spline", fields[0].Name)
	assert.True(t, fields[0].IsPointer)
	assert.Equal(t, reflect.TypeFor[pond.Spline](), fields[0].Type)
	assert.False(t, fields[0].Editable)

	assert.Empty(t, rc.Fields(reflect.TypeFor[pond.Spline]()), "spline state is private")
}

func TestReflectionCacheReusesEntries(t *testing.T) {
	rc := NewReflectionCache()
	typ := reflect.TypeFor[pond.PlayerControlled]()
	first := rc.Fields(typ)
	second := rc.Fields(typ)
	assert.Equal(t, []string{"Tuning", "Speed", "TurnRate", "Clock", "StatusDeadline", "StatusArmed"}, fieldNames(first))
	assert.Same(t, &first[0], &second[0])
	assert.Empty(t, rc.Fields(reflect.TypeFor[float64]()))
}
