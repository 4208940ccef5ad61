package main

import (
	"image"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/duckpond/pond"
)

const textureSize = 16

// meshVertex is a point of the duck model in its own frame, nose toward -x,
// with texture coordinates in pixels.
type meshVertex struct {
	pos    mgl64.Vec3
	u, v   float32
	shaded bool
}

type duckMesh struct {
	vertices []meshVertex
	indices  []uint16
}

// disc adds a flat ellipse centered at c as a triangle fan, sampling the
// texture column u.
func (m *duckMesh) disc(c mgl64.Vec3, rx, rz float64, segments int, u float32) {
	center := uint16(len(m.vertices))
	m.vertices = append(m.vertices, meshVertex{pos: c, u: u, v: textureSize / 4})
	for i := range segments {
		a := 2 * math.Pi * float64(i) / float64(segments)
		p := c.Add(mgl64.Vec3{rx * math.Cos(a), 0, rz * math.Sin(a)})
		m.vertices = append(m.vertices, meshVertex{pos: p, u: u, v: textureSize * 3 / 4, shaded: math.Sin(a) > 0})
	}
	for i := range segments {
		next := (i+1)%segments + 1
		m.indices = append(m.indices, center, center+uint16(i)+1, center+uint16(next))
	}
}

// newDuckMesh builds a low-poly duck from flat discs: body, head and bill.
func newDuckMesh() *duckMesh {
	m := &duckMesh{}
	m.disc(mgl64.Vec3{0.1, 0.3, 0}, 0.9, 0.55, 16, textureSize/8)
	m.disc(mgl64.Vec3{-0.6, 0.8, 0}, 0.35, 0.3, 12, textureSize*3/8)
	m.disc(mgl64.Vec3{-1.0, 0.75, 0}, 0.2, 0.1, 6, textureSize*5/8)
	return m
}

// newDuckTexture paints the palette the mesh samples: body, head and bill
// columns, each lighter toward the top.
func newDuckTexture() *ebiten.Image {
	palette := []color.RGBA{
		{240, 236, 220, 255}, // body
		{40, 120, 70, 255},   // head
		{240, 170, 40, 255},  // bill
		{90, 70, 50, 255},    // spare
	}
	img := image.NewRGBA(image.Rect(0, 0, textureSize, textureSize))
	for x := range textureSize {
		base := palette[x*len(palette)/textureSize]
		for y := range textureSize {
			shade := 1 - 0.3*float64(y)/textureSize
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(float64(base.R) * shade),
				G: uint8(float64(base.G) * shade),
				B: uint8(float64(base.B) * shade),
				A: 255,
			})
		}
	}
	return ebiten.NewImageFromImage(img)
}

func newCatalog() *pond.Catalog {
	catalog := pond.NewCatalog()
	catalog.AddMesh(pond.DuckMesh, newDuckMesh())
	catalog.AddTexture(pond.DuckTexture, newDuckTexture())
	return catalog
}
