package quickmath

type AABB struct {
	Min, Max Vector2
}

func (a AABB) Intersect(b AABB) bool {
	return a.Min.X() < b.Max.X() && a.Max.X() > b.Min.X() &&
		a.Min.Y() < b.Max.Y() && a.Max.Y() > b.Min.Y()
}

// Contains is inclusive on every edge.
func (a AABB) Contains(p Vector2) bool {
	return p.X() >= a.Min.X() && p.X() <= a.Max.X() &&
		p.Y() >= a.Min.Y() && p.Y() <= a.Max.Y()
}

func (a AABB) Center() Vector2 {
	return a.Min.Add(a.Max).Scale(0.5)
}

func (a AABB) Extents() Vector2 {
	return a.Max.Sub(a.Min)
}
