package geom

// Segment is the parametric ray Origin + t*Disp. A body's trajectory for one
// tick is the Segment from its position along its velocity, with t in [0,1).
type Segment struct {
	Origin Vec
	Disp   Vec
}

// At returns the point at parameter t.
func (s Segment) At(t float64) Vec {
	return s.Origin.Add(s.Disp.Scale(t))
}

// End returns the point at t = 1.
func (s Segment) End() Vec {
	return s.Origin.Add(s.Disp)
}
