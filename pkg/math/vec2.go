package math

// Vec2 is a point on the ground plane, either in lattice units or world units.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Scale returns v * scalar.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Lift places a ground-plane point at height y, mapping the plane's Y onto world Z.
func (v Vec2) Lift(y float64) Vec3 {
	return Vec3{X: v.X, Y: y, Z: v.Y}
}
