package pond

// Placement describes where an autonomous duck starts.
type Placement struct {
	Name    string
	X, Z    float64
	Heading float64
	Scale   float64
}

func (p Placement) Pose() Pose {
	return NewPose(p.X, p.Z, p.Heading, p.Scale)
}
