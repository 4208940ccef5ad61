package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/duckpond/audio"
	"github.com/plus3/duckpond/config"
	"github.com/plus3/duckpond/internal/host"
	"github.com/plus3/duckpond/pond"
	"github.com/plus3/duckpond/pond/snapshot"
)

// keyHold is how long a press stays held without a key repeat.
const keyHold = 180 * time.Millisecond

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	flag.StringVar(&cfg.Placements, "placements", cfg.Placements, "Placement file; empty uses the built-in pond.")
	flag.StringVar(&cfg.Snapshot, "snapshot", cfg.Snapshot, "Snapshot file restored on start and written with F5.")
	flag.IntVar(&cfg.TickRate, "tick-rate", cfg.TickRate, "Ticks per second.")
	mute := flag.Bool("mute", false, "Disable sound.")
	flag.Parse()
	if cfg.Snapshot == "" {
		cfg.Snapshot = "duckpond.json.gz"
	}

	scene, err := host.Scene(cfg, nil)
	if scene == nil {
		log.Fatalf("Failed to create scene: %v", err)
	}

	sound := audio.NewSpeaker()
	if !*mute {
		if err := sound.Init(); err != nil {
			log.Printf("Sound disabled: %v", err)
		}
	}
	defer sound.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("Failed to create screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("Failed to init screen: %v", err)
	}
	defer screen.Fini()

	runner := pond.NewRunner(scene)
	runner.Observe(audio.NewStatusTrigger(statusText(scene), sound.Quack))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	t := &terminal{
		runner:   runner,
		view:     &view{screen: screen},
		latch:    NewLatch(keyHold),
		sound:    sound,
		snapshot: cfg.Snapshot,
	}
	t.run(ctx, screen, cfg.TickInterval())
}

// statusText is the status text of the player's controller.
func statusText(scene *pond.Scene) string {
	if control, ok := scene.Player.Behavior().(*pond.PlayerControlled); ok {
		return control.Tuning.StatusText
	}
	return pond.DefaultTuning().StatusText
}

type terminal struct {
	runner   *pond.Runner
	view     *view
	latch    *Latch
	sound    *audio.Speaker
	snapshot string
}

func (t *terminal) run(ctx context.Context, screen tcell.Screen, interval time.Duration) {
	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-events:
			if !t.handle(ev) {
				return
			}
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			if err := t.runner.Once(dt, t.latch.Keys(now)); err != nil {
				t.view.status = err.Error()
			}
			t.view.draw(t.runner.Scene())
		}
	}
}

// handle applies one terminal event and reports whether to keep running.
func (t *terminal) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyF5:
			if err := snapshot.Save(t.snapshot, t.runner.Scene()); err != nil {
				t.view.status = "save failed: " + err.Error()
				return true
			}
			t.view.status = "saved " + t.snapshot
			t.sound.Blip(880)
		case tcell.KeyF9:
			scene, err := snapshot.Load(t.snapshot, nil)
			if err != nil {
				t.view.status = "load failed: " + err.Error()
				return true
			}
			t.runner.SetScene(scene)
			t.latch.Release()
			t.view.status = "loaded " + t.snapshot
			t.sound.Blip(660)
		case tcell.KeyUp:
			t.latch.Press(pond.Forward, ev.When())
		case tcell.KeyDown:
			t.latch.Press(pond.Backward, ev.When())
		case tcell.KeyLeft:
			t.latch.Press(pond.TurnLeft, ev.When())
		case tcell.KeyRight:
			t.latch.Press(pond.TurnRight, ev.When())
		case tcell.KeyRune:
			for _, c := range runeControls(ev.Rune()) {
				t.latch.Press(c, ev.When())
			}
		}
	case *tcell.EventResize:
		t.view.screen.Sync()
	}
	return true
}

// runeControls maps a typed letter to controls. Shift is only visible as an
// uppercase letter, so uppercase movement keys also boost.
func runeControls(r rune) []pond.Control {
	var controls []pond.Control
	switch unicode.ToLower(r) {
	case 'w':
		controls = append(controls, pond.Forward)
	case 's':
		controls = append(controls, pond.Backward)
	case 'a':
		controls = append(controls, pond.TurnLeft)
	case 'd':
		controls = append(controls, pond.TurnRight)
	case 'q':
		return []pond.Control{pond.Signal}
	default:
		return nil
	}
	if unicode.IsUpper(r) {
		controls = append(controls, pond.Boost)
	}
	return controls
}
