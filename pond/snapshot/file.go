package snapshot

import (
	"compress/gzip"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/plus3/duckpond/pond"
)

// Marshal encodes the scene as indented JSON.
func Marshal(scene *pond.Scene) ([]byte, error) {
	doc, err := Capture(scene)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(doc, "", "  ")
}

// Unmarshal decodes a scene written by Marshal.
func Unmarshal(data []byte, res pond.Resources) (*pond.Scene, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc.Restore(res)
}

// Save writes the scene to a gzip-compressed JSON file. The file is written
// beside path and renamed into place, so a failed save leaves the previous
// one intact.
func Save(path string, scene *pond.Scene) error {
	data, err := Marshal(scene)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	zw := gzip.NewWriter(tmp)
	zw.Name = filepath.Base(path)
	zw.ModTime = scene.Time
	if _, err := zw.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Load reads a scene written by Save.
func Load(path string, res pond.Resources) (*pond.Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	var doc Document
	if err := json.NewDecoder(zr).Decode(&doc); err != nil {
		return nil, err
	}
	return doc.Restore(res)
}
