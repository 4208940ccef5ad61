package pond

import (
	"fmt"
	"sync"
)

// Resource keys requested for every duck.
const (
	DuckMesh    = "duck.mesh"
	DuckTexture = "duck.texture"
)

// Handle is an opaque reference to a loaded asset. The simulation only stores
// it for whoever draws the duck.
type Handle struct {
	Key   string
	Value any
}

// Valid reports whether the handle refers to a loaded asset.
func (h Handle) Valid() bool {
	return h.Value != nil
}

// Resources looks up assets by name.
type Resources interface {
	Mesh(key string) (Handle, error)
	Texture(key string) (Handle, error)
}

// Catalog is an in-memory Resources filled by the host before ducks are created.
type Catalog struct {
	mu       sync.RWMutex
	meshes   map[string]any
	textures map[string]any
}

func NewCatalog() *Catalog {
	return &Catalog{
		meshes:   make(map[string]any),
		textures: make(map[string]any),
	}
}

// AddMesh registers a mesh under key, replacing any previous one.
func (c *Catalog) AddMesh(key string, mesh any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.meshes[key] = mesh
}

// AddTexture registers a texture under key, replacing any previous one.
func (c *Catalog) AddTexture(key string, texture any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.textures[key] = texture
}

func (c *Catalog) Mesh(key string) (Handle, error) {
	return c.lookup(c.meshes, "mesh", key)
}

func (c *Catalog) Texture(key string) (Handle, error) {
	return c.lookup(c.textures, "texture", key)
}

func (c *Catalog) lookup(m map[string]any, kind, key string) (Handle, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := m[key]
	if !ok {
		return Handle{}, fmt.Errorf("%w: %s %q", ErrUnknownResource, kind, key)
	}
	return Handle{Key: key, Value: v}, nil
}

// loadDuckAssets resolves the mesh and texture every duck carries. A nil
// Resources leaves both handles empty.
func loadDuckAssets(res Resources) (mesh, texture Handle, err error) {
	if res == nil {
		return Handle{Key: DuckMesh}, Handle{Key: DuckTexture}, nil
	}
	if mesh, err = res.Mesh(DuckMesh); err != nil {
		return Handle{}, Handle{}, err
	}
	if texture, err = res.Texture(DuckTexture); err != nil {
		return Handle{}, Handle{}, err
	}
	return mesh, texture, nil
}
