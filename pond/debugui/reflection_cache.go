package debugui

import (
	"reflect"
	"sync"
)

// FieldInfo describes one exported field the inspector can show.
type FieldInfo struct {
	Name      string
	Index     int
	Type      reflect.Type
	IsPointer bool
	Editable  bool
}

// ReflectionCache memoizes the inspectable fields of behavior and pose types.
type ReflectionCache struct {
	mu     sync.RWMutex
	fields map[reflect.Type][]FieldInfo
}

func NewReflectionCache() *ReflectionCache {
	return &ReflectionCache{
		fields: make(map[reflect.Type][]FieldInfo),
	}
}

// Fields lists the exported fields of struct type t, pointers unwrapped.
// Non-struct types have none.
func (rc *ReflectionCache) Fields(t reflect.Type) []FieldInfo {
	rc.mu.RLock()
	cached, ok := rc.fields[t]
	rc.mu.RUnlock()
	if ok {
		return cached
	}

	rc.mu.Lock()
	defer rc.mu.Unlock()
	if cached, ok := rc.fields[t]; ok {
		return cached
	}

	var fields []FieldInfo
	if t.Kind() == reflect.Struct {
		for i := range t.NumField() {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}
			fieldType := field.Type
			isPointer := fieldType.Kind() == reflect.Pointer
			if isPointer {
				fieldType = fieldType.Elem()
			}
			fields = append(fields, FieldInfo{
				Name:      field.Name,
				Index:     i,
				Type:      fieldType,
				IsPointer: isPointer,
				Editable:  editable(fieldType),
			})
		}
	}

	rc.fields[t] = fields
	return fields
}

// editable reports whether the inspector has an input widget for t.
func editable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Float32, reflect.Float64, reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	case reflect.Array:
		return t.Len() <= 4 && (t.Elem().Kind() == reflect.Float64 || t.Elem().Kind() == reflect.Float32)
	}
	return false
}

var fieldCache = NewReflectionCache()
