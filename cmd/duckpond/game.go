package main

import (
	"cmp"
	"fmt"
	"image/color"
	"log"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/duckpond/pond"
	"github.com/plus3/duckpond/pond/debugui"
	debugui_ebiten "github.com/plus3/duckpond/pond/debugui/ebiten"
	"github.com/plus3/duckpond/pond/snapshot"
)

const (
	gridSpacing = 5.0
	gridExtent  = 60.0
)

var (
	waterColor  = color.RGBA{46, 92, 128, 255}
	gridColor   = color.RGBA{70, 120, 160, 255}
	playerTint  = [3]float32{1, 0.85, 0.6}
	wanderTint  = [3]float32{1, 1, 1}
	shadedScale = float32(0.75)
)

// Game implements ebiten.Game: it ticks the scene, handles the snapshot and
// debug keys, and draws the ducks through the follow camera.
type Game struct {
	runner   *pond.Runner
	camera   *pond.FollowCamera
	overlay  *debugui.Overlay
	backend  *debugui_ebiten.ImguiBackend
	catalog  *pond.Catalog
	snapshot string

	width, height int
	status        string
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	in := pond.Neutral
	if !g.overlay.Input.WantCaptureKeyboard {
		in = keyboard()
		g.handleHotkeys()
	}

	if err := g.runner.Once(1/float64(ebiten.TPS()), in); err != nil {
		g.report("%v", err)
	}
	g.backend.Frame(g.overlay)
	return nil
}

func (g *Game) handleHotkeys() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyF1):
		g.overlay.ToggleDebug()
	case inpututil.IsKeyJustPressed(ebiten.KeyF5):
		if err := snapshot.Save(g.snapshot, g.runner.Scene()); err != nil {
			g.report("save failed: %v", err)
			return
		}
		g.report("saved %s", g.snapshot)
	case inpututil.IsKeyJustPressed(ebiten.KeyF9):
		scene, err := snapshot.Load(g.snapshot, g.catalog)
		if err != nil {
			g.report("load failed: %v", err)
			return
		}
		scene.SetWorkers(g.runner.Scene().Workers())
		g.runner.SetScene(scene)
		g.report("loaded %s", g.snapshot)
	}
}

func (g *Game) report(format string, args ...any) {
	g.status = fmt.Sprintf(format, args...)
	log.Println(g.status)
}

func (g *Game) projection() mgl64.Mat4 {
	aspect := float64(g.width) / float64(max(g.height, 1))
	return mgl64.Perspective(mgl64.DegToRad(FieldOfView), aspect, 0.1, 500)
}

func (g *Game) project(p mgl64.Vec3) (mgl64.Vec2, bool) {
	return g.camera.Project(p, g.projection(), g.width, g.height)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(waterColor)
	scene := g.runner.Scene()

	g.drawGrid(screen, scene.PlayerPose().Position)

	// Painter's order: farthest duck first.
	ducks := slices.Collect(scene.All())
	eye := g.camera.Eye
	slices.SortFunc(ducks, func(a, b *pond.Duck) int {
		return cmp.Compare(b.Pose.Position.Sub(eye).Len(), a.Pose.Position.Sub(eye).Len())
	})
	for _, d := range ducks {
		tint := wanderTint
		if d == scene.Player {
			tint = playerTint
		}
		g.drawDuck(screen, d, tint)
	}

	g.drawHUD(screen, scene)
	g.backend.DrawOver(screen)
}

func (g *Game) drawGrid(screen *ebiten.Image, center mgl64.Vec3) {
	cx := gridSpacing * float64(int(center.X()/gridSpacing))
	cz := gridSpacing * float64(int(center.Z()/gridSpacing))
	for off := -gridExtent; off <= gridExtent; off += gridSpacing {
		g.drawLine(screen, mgl64.Vec3{cx + off, 0, cz - gridExtent}, mgl64.Vec3{cx + off, 0, cz + gridExtent})
		g.drawLine(screen, mgl64.Vec3{cx - gridExtent, 0, cz + off}, mgl64.Vec3{cx + gridExtent, 0, cz + off})
	}
}

// drawLine draws a ground segment, trimming the part behind the camera.
func (g *Game) drawLine(screen *ebiten.Image, a, b mgl64.Vec3) {
	const steps = 24
	var prev mgl64.Vec2
	havePrev := false
	for i := 0; i <= steps; i++ {
		p := a.Add(b.Sub(a).Mul(float64(i) / steps))
		s, ok := g.project(p)
		if ok && havePrev {
			vector.StrokeLine(screen, float32(prev.X()), float32(prev.Y()), float32(s.X()), float32(s.Y()), 1, gridColor, true)
		}
		prev, havePrev = s, ok
	}
}

func (g *Game) drawDuck(screen *ebiten.Image, d *pond.Duck, tint [3]float32) {
	mesh, ok := d.Mesh.Value.(*duckMesh)
	if !ok {
		return
	}
	texture, ok := d.Texture.Value.(*ebiten.Image)
	if !ok {
		return
	}

	rotate := mgl64.Rotate3DY(d.Pose.Heading)
	vertices := make([]ebiten.Vertex, len(mesh.vertices))
	for i, mv := range mesh.vertices {
		world := d.Pose.Position.Add(rotate.Mul3x1(mv.pos.Mul(d.Pose.Scale)))
		s, ok := g.project(world)
		if !ok {
			return
		}
		shade := float32(1)
		if mv.shaded {
			shade = shadedScale
		}
		vertices[i] = ebiten.Vertex{
			DstX:   float32(s.X()),
			DstY:   float32(s.Y()),
			SrcX:   mv.u,
			SrcY:   mv.v,
			ColorR: tint[0] * shade,
			ColorG: tint[1] * shade,
			ColorB: tint[2] * shade,
			ColorA: 1,
		}
	}
	screen.DrawTriangles(vertices, mesh.indices, texture, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

func (g *Game) drawHUD(screen *ebiten.Image, scene *pond.Scene) {
	speed := 0.0
	if control, ok := scene.Player.Behavior().(*pond.PlayerControlled); ok {
		speed = control.Speed
	}
	text := fmt.Sprintf("%s  speed %.1f  ducks %d\nWASD move, Shift boost, Q quack, F1 debug, F5 save, F9 load",
		scene.Time.Format("15:04"), speed, scene.Len())
	if g.status != "" {
		text += "\n" + g.status
	}
	ebitenutil.DebugPrint(screen, text)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	g.backend.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
