package pond

// Frame describes a completed tick to observers.
type Frame struct {
	Tick      int64
	DeltaTime float64
	Input     Keys
	Scene     *Scene
	// Err joins the queued commands that could not be applied this tick.
	Err error
}

// Observer reacts to the state of a scene after a tick, for example to frame
// a camera or publish the scene. Observers must not mutate ducks directly;
// they queue changes through Scene.Commands.
type Observer interface {
	Observe(f *Frame)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(f *Frame)

func (fn ObserverFunc) Observe(f *Frame) {
	fn(f)
}
